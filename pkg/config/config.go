package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Archive Archive
	Redis   RedisConfig
	JWT     JWTConfig
	CORS    CORSConfig
	Log     LogConfig
	Backup  BackupConfig
	Seed    SeedConfig
}

// Archive configures the optional Postgres snapshot archive.
type Archive struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// BackupConfig governs on-disk snapshot backups and their retention.
type BackupConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	AutoInterval    time.Duration
	Retention       time.Duration
	WorkerRetries   int
}

// SeedConfig controls demo-data seeding at startup.
type SeedConfig struct {
	DemoData bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Archive = Archive{
		Enabled:      v.GetBool("ARCHIVE_ENABLED"),
		Host:         v.GetString("ARCHIVE_DB_HOST"),
		Port:         v.GetInt("ARCHIVE_DB_PORT"),
		User:         v.GetString("ARCHIVE_DB_USER"),
		Password:     v.GetString("ARCHIVE_DB_PASSWORD"),
		Name:         v.GetString("ARCHIVE_DB_NAME"),
		SSLMode:      v.GetString("ARCHIVE_DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("ARCHIVE_DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("ARCHIVE_DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Backup = BackupConfig{
		StorageDir:      v.GetString("BACKUP_STORAGE_DIR"),
		SignedURLSecret: v.GetString("BACKUP_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("BACKUP_SIGNED_URL_TTL"), 24*time.Hour),
		AutoInterval:    parseDuration(v.GetString("BACKUP_AUTO_INTERVAL"), 0),
		Retention:       parseDuration(v.GetString("BACKUP_RETENTION"), 30*24*time.Hour),
		WorkerRetries:   v.GetInt("BACKUP_WORKER_RETRIES"),
	}

	cfg.Seed = SeedConfig{
		DemoData: v.GetBool("SEED_DEMO_DATA"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ARCHIVE_ENABLED", false)
	v.SetDefault("ARCHIVE_DB_HOST", "localhost")
	v.SetDefault("ARCHIVE_DB_PORT", 5432)
	v.SetDefault("ARCHIVE_DB_USER", "postgres")
	v.SetDefault("ARCHIVE_DB_PASSWORD", "postgres")
	v.SetDefault("ARCHIVE_DB_NAME", "shikkha_archive")
	v.SetDefault("ARCHIVE_DB_SSL_MODE", "disable")
	v.SetDefault("ARCHIVE_DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("ARCHIVE_DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("BACKUP_STORAGE_DIR", "./backups")
	v.SetDefault("BACKUP_SIGNED_URL_SECRET", "dev_backup_secret")
	v.SetDefault("BACKUP_SIGNED_URL_TTL", "24h")
	v.SetDefault("BACKUP_AUTO_INTERVAL", "0")
	v.SetDefault("BACKUP_RETENTION", "720h")
	v.SetDefault("BACKUP_WORKER_RETRIES", 3)

	v.SetDefault("SEED_DEMO_DATA", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
