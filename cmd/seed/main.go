package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/auth"
	"github.com/sand-hq/campaign-api/internal/config"
	"github.com/sand-hq/campaign-api/internal/fault"
	mongodoc "github.com/sand-hq/campaign-api/internal/infrastructure/mongo"
	"github.com/sand-hq/campaign-api/internal/server"
)

type seedOptions struct {
	envName         string
	envDir          string
	clientCount     int
	demo            bool
	dropCollections bool
	randomSeed      int64
}

var opts seedOptions

var rootCmd = &cobra.Command{
	Use:           "seed",
	Short:         "Create the admin account and optional demo data",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&opts.envName, "env", "", "env ファイル名 (例: local, staging)。空なら読み込まない")
	flags.StringVar(&opts.envDir, "env-dir", filepath.Join("..", "env"), "env ファイルのディレクトリ")
	flags.IntVar(&opts.clientCount, "clients", 3, "デモ用に生成するクライアント数")
	flags.BoolVar(&opts.demo, "demo", false, "デモ用のクライアント・キャンペーン・フォーム・ユーザーを生成する")
	flags.BoolVar(&opts.dropCollections, "drop", false, "既存コレクションを削除してから投入する")
	flags.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "乱数シード（再現用）")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if opts.envName != "" {
		if err := loadEnvFiles(opts.envDir, opts.envName); err != nil {
			return fmt.Errorf("環境変数の読み込みに失敗しました: %w", err)
		}
	}
	if opts.clientCount < 0 {
		return fmt.Errorf("clients は 0 以上を指定してください")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger.Named("seed")
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	client, err := mongodoc.Connect(ctx, cfg.MongoURI, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("MongoDB 接続に失敗しました: %w", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.MongoDatabase)
	cols := server.Collections(cfg)

	if opts.dropCollections {
		if err := dropCollections(ctx, db, cols); err != nil {
			return fmt.Errorf("コレクション削除に失敗しました: %w", err)
		}
		logger.Info("既存コレクションを削除しました")
	}
	if err := mongodoc.EnsureIndexes(ctx, db, cols); err != nil {
		return fmt.Errorf("インデックス作成に失敗しました: %w", err)
	}

	issuer, err := auth.NewIssuer(cfg.JWTConfigs, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		return err
	}
	svc := server.NewServices(db, cols, nil, issuer)

	if err := seedAdmin(ctx, svc, cfg.Admin, logger); err != nil {
		return err
	}
	if !opts.demo {
		return nil
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	summary, err := seedDemo(ctx, svc, rng, opts.clientCount)
	if err != nil {
		return err
	}
	logger.Info("Seed 完了",
		zap.Int("clients", summary.clients),
		zap.Int("campaigns", summary.campaigns),
		zap.Int("forms", summary.forms),
		zap.Int("records", summary.records),
		zap.Int64("randomSeed", opts.randomSeed),
	)
	return nil
}

// seedAdmin は管理者アカウントを作成する。既に存在する場合は何もしない。
func seedAdmin(ctx context.Context, svc server.Services, seed config.AdminSeed, logger *zap.Logger) error {
	if seed.Email == "" || seed.Password == "" {
		logger.Warn("ADMIN_EMAIL / ADMIN_PASSWORD が未設定のため管理者作成をスキップします")
		return nil
	}
	_, err := svc.Accounts.CreateUser(ctx, adminapp.CreateUserCommand{
		Name:     seed.Name,
		Email:    seed.Email,
		Password: seed.Password,
		Role:     admindomain.RoleAdmin.String(),
	})
	if fault.IsValidation(err) {
		logger.Warn("管理者アカウントを作成しませんでした", zap.String("email", seed.Email), zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("管理者アカウントの作成に失敗しました: %w", err)
	}
	logger.Info("管理者アカウントを作成しました", zap.String("email", seed.Email))
	return nil
}

type demoSummary struct {
	clients   int
	campaigns int
	forms     int
	records   int
}

var (
	companyNames  = []string{"Aurora Foods", "Blue Harbor", "Cobalt Mobile", "Delta Apparel", "Evergreen Pharma", "Falcon Motors"}
	cities        = []string{"Mumbai", "Delhi", "Pune", "Chennai", "Kolkata", "Jaipur"}
	campaignKinds = []string{"Summer Sampling", "Festive Push", "Retail Audit", "Product Launch"}
	regions       = []string{"North", "South", "East", "West"}
)

// seedDemo はサービス層経由でデモデータを投入する。バリデーションや動的コレクション作成も本番と同じ経路を通る。
func seedDemo(ctx context.Context, svc server.Services, rng *rand.Rand, clientCount int) (demoSummary, error) {
	var summary demoSummary
	suffix := fmt.Sprintf("%04d", rng.Intn(10000))

	promoter, err := createDemoUser(ctx, svc, "Demo Promoter", "promoter", suffix)
	if err != nil {
		return summary, err
	}
	mis, err := createDemoUser(ctx, svc, "Demo MIS", "mis", suffix)
	if err != nil {
		return summary, err
	}
	manager, err := createDemoUser(ctx, svc, "Demo Manager", "manager", suffix)
	if err != nil {
		return summary, err
	}

	for i := 0; i < clientCount; i++ {
		name := companyNames[rng.Intn(len(companyNames))]
		client, err := svc.Clients.Create(ctx, adminapp.CreateClientCommand{
			Name:     fmt.Sprintf("%s %d", name, i+1),
			Location: cities[rng.Intn(len(cities))],
			Website:  fmt.Sprintf("https://%s.example.com", slugify(name)),
			PhotoURL: fmt.Sprintf("https://picsum.photos/seed/%s-%d/200", slugify(name), i),
		})
		if err != nil {
			return summary, fmt.Errorf("クライアントの作成に失敗しました: %w", err)
		}
		summary.clients++
		if _, err := svc.Assignments.Assign(ctx, admindomain.AssignManagerClient, manager.ID, client.ID); err != nil {
			return summary, err
		}

		for j := 0; j < 1+rng.Intn(2); j++ {
			campaign, err := svc.Campaigns.Create(ctx, adminapp.CreateCampaignCommand{
				Title:    fmt.Sprintf("%s %d", campaignKinds[rng.Intn(len(campaignKinds))], j+1),
				ClientID: client.ID,
				LogoURL:  fmt.Sprintf("https://picsum.photos/seed/%s/120", client.ID),
			})
			if err != nil {
				return summary, fmt.Errorf("キャンペーンの作成に失敗しました: %w", err)
			}
			summary.campaigns++
			if _, err := svc.Assignments.Assign(ctx, admindomain.AssignMISCampaign, mis.ID, campaign.ID); err != nil {
				return summary, err
			}

			form, err := svc.Forms.Create(ctx, adminapp.CreateFormCommand{
				CampaignID: campaign.ID,
				Fields:     demoFields(),
			})
			if err != nil {
				return summary, fmt.Errorf("フォームの作成に失敗しました: %w", err)
			}
			summary.forms++

			if _, err := svc.Assignments.Assign(ctx, admindomain.AssignPromoterForm, promoter.ID, form.ID); err != nil {
				return summary, err
			}
			if _, err := svc.Rights.Grant(ctx, adminapp.GrantRightsCommand{
				FormID:     form.ID,
				CampaignID: campaign.ID,
				ClientID:   client.ID,
				EmployeeID: mis.ID,
				Flags:      admindomain.RightsPatch{ViewData: boolPtr(true)},
			}); err != nil {
				return summary, err
			}

			for k := 0; k < 2+rng.Intn(4); k++ {
				_, err := svc.Data.SubmitToForm(ctx, form.ID, adminapp.SubmitDataCommand{
					Payload: map[string]any{
						"Name":   fmt.Sprintf("Respondent %d", k+1),
						"Region": regions[rng.Intn(len(regions))],
						"Age":    float64(18 + rng.Intn(40)),
					},
					SubmittedBy: promoter.ID,
				})
				if err != nil {
					return summary, fmt.Errorf("回答データの投入に失敗しました: %w", err)
				}
				summary.records++
			}
		}
	}
	return summary, nil
}

func createDemoUser(ctx context.Context, svc server.Services, name, role, suffix string) (*admindomain.User, error) {
	user, err := svc.Accounts.CreateUser(ctx, adminapp.CreateUserCommand{
		Name:     name,
		Email:    fmt.Sprintf("%s+%s@example.com", role, suffix),
		Password: "password-" + suffix,
		Role:     role,
	})
	if err != nil {
		return nil, fmt.Errorf("%s ユーザーの作成に失敗しました: %w", role, err)
	}
	return user, nil
}

func demoFields() []adminapp.FieldCommand {
	return []adminapp.FieldCommand{
		{Title: "Name", Type: "text", Required: true},
		{Title: "Region", Type: "dropdown", Options: regions, Required: true},
		{Title: "Age", Type: "number", Rule: "value >= 18"},
	}
}

func dropCollections(ctx context.Context, db *mongo.Database, cols mongodoc.Collections) error {
	forms, err := db.ListCollectionNames(ctx, bson.M{"name": bson.M{"$regex": "^form_"}})
	if err != nil {
		return err
	}
	names := append(forms, cols.Clients, cols.Campaigns, cols.Forms, cols.Rights, cols.Users, cols.Assignments)
	for _, name := range names {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}

func loadEnvFiles(dir, envName string) error {
	base := filepath.Clean(dir)
	files := []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	}
	for _, file := range files {
		if err := loadEnvFile(file); err != nil {
			return err
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s の読み込みに失敗しました: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if err := os.Setenv(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func slugify(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "-")
}

func boolPtr(v bool) *bool { return &v }
