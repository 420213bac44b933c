package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// StorageConfig describes the S3-compatible bucket for photo uploads.
// Uploads are disabled when Bucket or the keys are empty.
type StorageConfig struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	UsePathStyle    bool
}

// AdminSeed is the first admin account created by cmd/seed.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                 string
	MongoURI             string
	MongoDatabase        string
	ClientCollection     string
	CampaignCollection   string
	FormCollection       string
	RightsCollection     string
	UserCollection       string
	AssignmentCollection string
	Timeout              time.Duration
	RequestTimeout       time.Duration
	Logger               *zap.Logger
	LogLevel             string
	JWTConfigs           []JWTConfig
	JWTAudience          string
	JWTTTL               time.Duration
	AllowedOrigins       []string
	MaxUploadBytes       int64
	Storage              StorageConfig
	Admin                AdminSeed
}

// source resolves a key from the environment first, then the optional YAML
// file named by CAMPAIGN_CONFIG_FILE. The file uses the same keys as the environment.
type source struct {
	file map[string]string
}

func (s source) get(key string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(s.file[key])
}

func (s source) orDefault(key, fallback string) string {
	if v := s.get(key); v != "" {
		return v
	}
	return fallback
}

func (s source) duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := s.get(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func (s source) list(key string, fallback []string) []string {
	raw := s.get(key)
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}

func (s source) flag(key string) bool {
	return strings.EqualFold(s.get(key), "true")
}

// Load reads environment variables (and the optional YAML overlay) and
// returns a fully populated Config.
func Load() (Config, error) {
	src, err := loadSource(os.Getenv("CAMPAIGN_CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}

	timeout, err := src.duration("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	requestTimeout, err := src.duration("REQUEST_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	jwtTTL, err := src.duration("AUTH_JWT_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	var jwtConfigs []JWTConfig
	issuer := src.orDefault("AUTH_JWT_ISSUER", "campaign-api")
	if secret := src.get("AUTH_JWT_SECRET"); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{Issuer: issuer, Secret: []byte(secret)})
	}
	// 旧シークレットはローテーション期間中の検証専用。
	if secret := src.get("AUTH_JWT_PREVIOUS_SECRET"); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{Issuer: issuer, Secret: []byte(secret)})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, fmt.Errorf("JWT secret not configured. Set AUTH_JWT_SECRET")
	}

	logLevel := src.orDefault("LOG_LEVEL", "info")
	logger, err := newLogger(logLevel, src.get("LOG_FORMAT"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:                 src.orDefault("HTTP_ADDR", ":8080"),
		MongoURI:             src.orDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:        src.orDefault("MONGO_DB", "campaigns"),
		ClientCollection:     src.orDefault("CLIENT_COLLECTION", "clients"),
		CampaignCollection:   src.orDefault("CAMPAIGN_COLLECTION", "campaigns"),
		FormCollection:       src.orDefault("FORM_COLLECTION", "forms"),
		RightsCollection:     src.orDefault("RIGHTS_COLLECTION", "rights"),
		UserCollection:       src.orDefault("USER_COLLECTION", "users"),
		AssignmentCollection: src.orDefault("ASSIGNMENT_COLLECTION", "assignments"),
		Timeout:              timeout,
		RequestTimeout:       requestTimeout,
		Logger:               logger,
		LogLevel:             logLevel,
		JWTConfigs:           jwtConfigs,
		JWTAudience:          src.get("AUTH_JWT_AUDIENCE"),
		JWTTTL:               jwtTTL,
		AllowedOrigins:       src.list("API_ALLOWED_ORIGINS", []string{"*"}),
		MaxUploadBytes:       10 << 20,
		Storage: StorageConfig{
			Bucket:          src.get("STORAGE_BUCKET"),
			Endpoint:        src.get("STORAGE_ENDPOINT_URL"),
			Region:          src.orDefault("STORAGE_REGION", "auto"),
			AccessKeyID:     src.get("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: src.get("STORAGE_SECRET_ACCESS_KEY"),
			PublicBaseURL:   src.get("STORAGE_PUBLIC_BASE_URL"),
			UsePathStyle:    src.flag("STORAGE_USE_PATH_STYLE"),
		},
		Admin: AdminSeed{
			Name:     src.orDefault("ADMIN_NAME", "Administrator"),
			Email:    src.get("ADMIN_EMAIL"),
			Password: src.get("ADMIN_PASSWORD"),
		},
	}

	cfg.Logger.Info("loaded config",
		zap.String("addr", cfg.Addr),
		zap.String("database", cfg.MongoDatabase),
		zap.Int("jwtKeys", len(cfg.JWTConfigs)),
		zap.Bool("uploads", cfg.Storage.Bucket != ""),
	)

	return cfg, nil
}

func loadSource(path string) (source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return source{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return source{}, fmt.Errorf("read config file: %w", err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return source{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return source{file: values}, nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zc := zap.NewProductionConfig()
	if strings.EqualFold(format, "console") {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(parsed)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("service", "campaign-api")), nil
}
