package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	LinkedIn LinkedInConfig
	App      AppConfig
	Storage  StorageConfig
	Logging  LoggingConfig

	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	SessionTTL    time.Duration
	RefreshWithin time.Duration
}

type LinkedInConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

// AppConfig holds routing constants shared by the gate and the auth callback.
type AppConfig struct {
	BaseURL        string
	LoginPath      string
	WebRoot        string
	BypassPrefixes []string
	SecureCookies  bool
}

type StorageConfig struct {
	Type          string
	Path          string
	PublicBaseURL string
	AvatarHosts   []string
	S3Bucket      string
	S3Region      string
	AWSAccessKey  string
	AWSSecretKey  string
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	setDefaults()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	env := viper.GetString("ENV")
	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          env,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:         viper.GetString("REDIS_HOST"),
			Port:         viper.GetInt("REDIS_PORT"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           viper.GetInt("REDIS_DB"),
			PoolSize:     viper.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: viper.GetInt("REDIS_MIN_IDLE_CONNS"),
			DialTimeout:  viper.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  viper.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("REDIS_WRITE_TIMEOUT"),
		},
		JWT: JWTConfig{
			AccessSecret:  viper.GetString("JWT_ACCESS_SECRET"),
			SessionTTL:    time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			RefreshWithin: time.Duration(viper.GetInt("SESSION_REFRESH_WITHIN_HOURS")) * time.Hour,
		},
		LinkedIn: LinkedInConfig{
			ClientID:     viper.GetString("LINKEDIN_CLIENT_ID"),
			ClientSecret: viper.GetString("LINKEDIN_CLIENT_SECRET"),
			RedirectURL:  viper.GetString("LINKEDIN_REDIRECT_URL"),
			AuthURL:      viper.GetString("LINKEDIN_AUTH_URL"),
			TokenURL:     viper.GetString("LINKEDIN_TOKEN_URL"),
			UserInfoURL:  viper.GetString("LINKEDIN_USERINFO_URL"),
		},
		App: AppConfig{
			BaseURL:        strings.TrimRight(viper.GetString("APP_BASE_URL"), "/"),
			LoginPath:      viper.GetString("LOGIN_PATH"),
			WebRoot:        viper.GetString("WEB_ROOT"),
			BypassPrefixes: splitList(viper.GetString("GATE_BYPASS_PREFIXES")),
			SecureCookies:  env == "production",
		},
		Storage: StorageConfig{
			Type:          viper.GetString("STORAGE_TYPE"),
			Path:          viper.GetString("STORAGE_PATH"),
			PublicBaseURL: strings.TrimRight(viper.GetString("STORAGE_PUBLIC_BASE_URL"), "/"),
			AvatarHosts:   splitList(viper.GetString("AVATAR_ALLOWED_HOSTS")),
			S3Bucket:      viper.GetString("AWS_S3_BUCKET"),
			S3Region:      viper.GetString("AWS_REGION"),
			AWSAccessKey:  viper.GetString("AWS_ACCESS_KEY_ID"),
			AWSSecretKey:  viper.GetString("AWS_SECRET_ACCESS_KEY"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	viper.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	viper.SetDefault("REDIS_READ_TIMEOUT", "3s")
	viper.SetDefault("REDIS_WRITE_TIMEOUT", "3s")
	viper.SetDefault("SESSION_TTL_HOURS", 24*7)
	viper.SetDefault("SESSION_REFRESH_WITHIN_HOURS", 24)
	viper.SetDefault("LINKEDIN_AUTH_URL", "https://www.linkedin.com/oauth/v2/authorization")
	viper.SetDefault("LINKEDIN_TOKEN_URL", "https://www.linkedin.com/oauth/v2/accessToken")
	viper.SetDefault("LINKEDIN_USERINFO_URL", "https://api.linkedin.com/v2/userinfo")
	viper.SetDefault("APP_BASE_URL", "http://localhost:8080")
	viper.SetDefault("LOGIN_PATH", "/signin")
	viper.SetDefault("GATE_BYPASS_PREFIXES", "/api/,/static/")
	viper.SetDefault("STORAGE_TYPE", "none")
	viper.SetDefault("STORAGE_PATH", "./storage/uploads")
	viper.SetDefault("STORAGE_PUBLIC_BASE_URL", "/static/uploads")
	viper.SetDefault("AVATAR_ALLOWED_HOSTS", "licdn.com")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("LOG_LEVEL", "info")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.JWT.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}
	if c.LinkedIn.ClientID == "" || c.LinkedIn.ClientSecret == "" {
		return fmt.Errorf("LinkedIn client id and secret are required")
	}
	if c.LinkedIn.RedirectURL == "" {
		return fmt.Errorf("LinkedIn redirect URL is required")
	}
	if !strings.HasPrefix(c.App.LoginPath, "/") {
		return fmt.Errorf("login path must start with /")
	}
	switch c.App.LoginPath {
	case "/onboarding", "/dashboard":
		return fmt.Errorf("login path %s collides with a gated page", c.App.LoginPath)
	}
	if c.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis pool size must be positive")
	}
	switch c.Storage.Type {
	case "none", "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
