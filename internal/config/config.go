package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

type Config struct {
	Env     string
	Port    string
	GinMode string

	DB         DBConfig
	Upload     UploadConfig
	Cloudinary CloudinaryConfig
	OTel       OTelConfig

	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

type DBConfig struct {
	Dialect      string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	Path         string
	LogLevel     string
	MaxOpenConns int
	MaxIdleConns int
}

type UploadConfig struct {
	Dir          string
	URLPrefix    string
	MaxLogoBytes int64
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

// Load reads configuration from the environment. In development a .env file
// in the working directory is loaded first; variables already set win.
func Load() (*Config, error) {
	if getEnv("APP_ENV", "development") == "development" {
		_ = godotenv.Load()
	}

	env := getEnv("APP_ENV", "development")

	dialect := strings.ToLower(getEnv("DB_DIALECT", DialectMySQL))
	var defaultPort string
	switch dialect {
	case DialectMySQL:
		defaultPort = "3306"
	case DialectPostgres:
		defaultPort = "5432"
	case DialectSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DIALECT %q", dialect)
	}

	defaultSSLMode := "disable"
	if env == "production" {
		defaultSSLMode = "require"
	}

	maxOpen, err := getEnvInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}
	maxIdle, err := getEnvInt("DB_MAX_IDLE_CONNS", 2)
	if err != nil {
		return nil, err
	}
	maxLogo, err := getEnvInt("LOGO_MAX_BYTES", 5*1024*1024)
	if err != nil {
		return nil, err
	}
	metrics, err := getEnvBool("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:     env,
		Port:    getEnv("PORT", "5000"),
		GinMode: getEnv("GIN_MODE", "debug"),
		DB: DBConfig{
			Dialect:      dialect,
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", defaultPort),
			User:         getEnv("DB_USER", "root"),
			Password:     getEnv("DB_PASS", ""),
			Name:         getEnv("DB_NAME", "org_admin"),
			SSLMode:      getEnv("DB_SSLMODE", defaultSSLMode),
			Path:         getEnv("DB_PATH", "org_admin.db"),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
			MaxOpenConns: maxOpen,
			MaxIdleConns: maxIdle,
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "uploads"),
			URLPrefix:    getEnv("UPLOAD_URL_PREFIX", "/uploads"),
			MaxLogoBytes: int64(maxLogo),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "org-logos"),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "org-admin-api"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MetricsEnabled:     metrics,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
