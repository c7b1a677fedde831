package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorageDriverLocal = "local"
	StorageDriverMinIO = "minio"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StorageConfig selects where uploaded materials live.
// WebRoot is the directory served as "wwwroot" when the local driver is used.
type StorageConfig struct {
	Driver  string
	WebRoot string
	WorkDir string
}

// ConverterConfig controls document-to-PDF conversion.
type ConverterConfig struct {
	SofficePath    string
	TimeoutSec     int
	ValidateOutput bool
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env         string
	AppHost     string
	Port        string
	PathBase    string
	MaxUploadMB int
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Storage     StorageConfig
	Converter   ConverterConfig
	Log         LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Env:         getEnv("APP_ENV", EnvDevelopment),
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		PathBase:    normalizePathBase(getEnv("APP_PATH_BASE", "")),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 200),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Storage: StorageConfig{
			Driver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal)),
			WebRoot: getEnv("WEB_ROOT", "./wwwroot"),
			WorkDir: getEnv("CONVERT_WORK_DIR", os.TempDir()),
		},
		Converter: ConverterConfig{
			SofficePath:    getEnv("SOFFICE_PATH", "soffice"),
			TimeoutSec:     getEnvInt("CONVERT_TIMEOUT_SEC", 120),
			ValidateOutput: getEnvBool("CONVERT_VALIDATE_PDF", true),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// MaxUploadBytes converts MaxUploadMB into a Fiber body limit.
func (c *AppConfig) MaxUploadBytes() int {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return c.MaxUploadMB * 1024 * 1024
}

// normalizePathBase turns "app/", "/app/" or "/app" into "/app"; "/" becomes "".
func normalizePathBase(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
