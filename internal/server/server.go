package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/auth"
	"github.com/sand-hq/campaign-api/internal/config"
	mongodoc "github.com/sand-hq/campaign-api/internal/infrastructure/mongo"
	"github.com/sand-hq/campaign-api/internal/infrastructure/storage"
	adminhttp "github.com/sand-hq/campaign-api/internal/interfaces/http/admin"
	commonhttp "github.com/sand-hq/campaign-api/internal/interfaces/http/common"
	portalhttp "github.com/sand-hq/campaign-api/internal/interfaces/http/portal"
)

// Server は HTTP サーバーのライフサイクルを管理し、Admin/Portal の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *zap.Logger
	client         *mongo.Client
	database       *mongo.Database
	collections    mongodoc.Collections
	verifier       *auth.Verifier
	admin          *adminhttp.Handler
	portal         *portalhttp.Handler
	addr           string
	allowedOrigins []string
	maxUploadBytes int64
	requestTimeout time.Duration
}

// Run は索引を用意してから HTTP サーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run(ctx context.Context) error {
	if err := mongodoc.EnsureIndexes(ctx, s.database, s.collections); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP サーバー起動", zap.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	return s.waitForShutdown(ctx, httpServer, errChan)
}

// Router はミドルウェアとルーティングを組み立てる。
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))
	if s.maxUploadBytes > 0 {
		router.Use(middleware.RequestSize(s.maxUploadBytes))
	}
	if s.requestTimeout > 0 {
		router.Use(middleware.Timeout(s.requestTimeout))
	}

	router.Get("/healthz", s.healthHandler())

	router.Route("/api/v1", func(r chi.Router) {
		s.portal.Register(r, s.authMiddleware)
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Use(commonhttp.RequireRole(s.logger, admindomain.RoleAdmin.String()))
			s.admin.Register(r)
		})
	})
	return router
}

// healthHandler は MongoDB への疎通確認を行い、監視系からのヘルスチェック要求に応える。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断する。
func (s *Server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		s.logger.Warn("MongoDB 切断時にエラー", zap.Error(err))
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func (s *Server) waitForShutdown(ctx context.Context, httpServer *http.Server, errChan <-chan error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer s.shutdown()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("サーバーが異常終了: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("停止要求を受信。サーバー停止処理を開始します")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("サーバー停止時にエラー: %w", err)
		}
		return nil
	}
}

// Services bundles the application services behind the HTTP surface.
type Services struct {
	Clients     adminapp.ClientService
	Campaigns   adminapp.CampaignService
	Forms       adminapp.FormService
	Rights      adminapp.RightsService
	Data        adminapp.DataService
	Assignments adminapp.AssignmentService
	Accounts    adminapp.AccountService
	Dashboard   adminapp.DashboardService
}

// Collections maps the configured collection names.
func Collections(cfg config.Config) mongodoc.Collections {
	return mongodoc.Collections{
		Clients:     cfg.ClientCollection,
		Campaigns:   cfg.CampaignCollection,
		Forms:       cfg.FormCollection,
		Rights:      cfg.RightsCollection,
		Users:       cfg.UserCollection,
		Assignments: cfg.AssignmentCollection,
	}
}

// NewServices は Mongo リポジトリとアップローダーからアプリケーションサービスを組み立てる。
// uploader が nil の場合、画像は URL 指定のみ受け付ける。
func NewServices(db *mongo.Database, cols mongodoc.Collections, uploader adminapp.PhotoUploader, tokens adminapp.TokenIssuer) Services {
	clientRepo := mongodoc.NewClientRepository(db, cols.Clients)
	campaignRepo := mongodoc.NewCampaignRepository(db, cols.Campaigns)
	formRepo := mongodoc.NewFormRepository(db, cols.Forms)
	rightsRepo := mongodoc.NewRightsRepository(db, cols.Rights)
	userRepo := mongodoc.NewUserRepository(db, cols.Users)
	assignmentRepo := mongodoc.NewAssignmentRepository(db, cols.Assignments)
	dynamic := mongodoc.NewDynamicStore(db)

	return Services{
		Clients:     adminapp.NewClientService(clientRepo, uploader),
		Campaigns:   adminapp.NewCampaignService(campaignRepo, uploader),
		Forms:       adminapp.NewFormService(formRepo, campaignRepo, dynamic),
		Rights:      adminapp.NewRightsService(rightsRepo),
		Data:        adminapp.NewDataService(formRepo, dynamic),
		Assignments: adminapp.NewAssignmentService(userRepo, assignmentRepo, formRepo, campaignRepo, clientRepo),
		Accounts:    adminapp.NewAccountService(userRepo, assignmentRepo, tokens),
		Dashboard:   adminapp.NewDashboardService(clientRepo, campaignRepo, formRepo, userRepo),
	}
}

// New は Config と Mongo クライアントを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(ctx context.Context, cfg config.Config, client *mongo.Client) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	issuer, err := auth.NewIssuer(cfg.JWTConfigs, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	var uploader adminapp.PhotoUploader
	storageCfg := storage.Config(cfg.Storage)
	if storageCfg.Enabled() {
		s3Uploader, err := storage.NewS3Uploader(ctx, storageCfg)
		if err != nil {
			return nil, fmt.Errorf("init photo storage: %w", err)
		}
		uploader = s3Uploader
	} else {
		logger.Info("photo storage disabled; only photo URLs are accepted")
	}

	database := client.Database(cfg.MongoDatabase)
	cols := Collections(cfg)
	svc := NewServices(database, cols, uploader, issuer)

	srv := &Server{
		logger:         logger,
		client:         client,
		database:       database,
		collections:    cols,
		verifier:       auth.NewVerifier(cfg.JWTConfigs, cfg.JWTAudience),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		maxUploadBytes: cfg.MaxUploadBytes,
		requestTimeout: cfg.RequestTimeout,
	}
	srv.admin = adminhttp.NewHandler(adminhttp.Config{
		Logger:      logger,
		Clients:     svc.Clients,
		Campaigns:   svc.Campaigns,
		Forms:       svc.Forms,
		Rights:      svc.Rights,
		Data:        svc.Data,
		Assignments: svc.Assignments,
		Accounts:    svc.Accounts,
		Dashboard:   svc.Dashboard,
	})
	srv.portal = portalhttp.NewHandler(portalhttp.Config{
		Logger:      logger,
		Accounts:    svc.Accounts,
		Assignments: svc.Assignments,
		Clients:     svc.Clients,
		Campaigns:   svc.Campaigns,
		Forms:       svc.Forms,
		Rights:      svc.Rights,
		Data:        svc.Data,
	})
	return srv, nil
}
