package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Admin     *AdminConfig     `mapstructure:"admin"`
	Mailgun   *MailgunConfig   `mapstructure:"mailgun"`
	Gateway   *GatewayConfig   `mapstructure:"gateway"`
	RateLimit *RateLimitConfig `mapstructure:"rate_limit"`
	Stream    *StreamConfig    `mapstructure:"stream"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AdminConfig holds the single administrator account. PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type MailgunConfig struct {
	Domain        string `mapstructure:"domain"`
	APIKey        string `mapstructure:"api_key"`
	Sender        string `mapstructure:"sender"`
	DefaultDomain string `mapstructure:"default_domain"`
}

type GatewayConfig struct {
	Port       string        `mapstructure:"port"`
	LedgerURL  string        `mapstructure:"ledger_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries uint64        `mapstructure:"max_retries"`
}

// RateLimitConfig configures the per-caller token bucket. A zero RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type StreamConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

var defaults = map[string]any{
	"api.environment":          "development",
	"api.port":                 "8080",
	"api.base_url":             "localhost:8080",
	"api.allowed_cors_domains": []string{"http://localhost:3000"},
	"api.jwt_signing_key":      "",
	"api.token_ttl":            time.Hour,
	"gin.mode":                 "debug",
	"postgres.host":            "localhost",
	"postgres.port":            "5432",
	"postgres.user":            "postgres",
	"postgres.password":        "",
	"postgres.db":              "care2share",
	"postgres.sslmode":         "disable",
	"admin.username":           "admin",
	"admin.password_hash":      "",
	"mailgun.domain":           "",
	"mailgun.api_key":          "",
	"mailgun.sender":           "Care2Share <no-reply@care2share.app>",
	"mailgun.default_domain":   "columbia.edu",
	"gateway.port":             "8000",
	"gateway.ledger_url":       "http://localhost:8080",
	"gateway.timeout":          10 * time.Second,
	"gateway.max_retries":      3,
	"rate_limit.rps":           0,
	"rate_limit.burst":         20,
	"stream.interval":          time.Second,
}

// Load reads the YAML file at path and overlays environment variables,
// e.g. API_JWT_SIGNING_KEY overrides api.jwt_signing_key.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		// Running servers keep their config, a restart is needed to apply it.
		zap.L().Info("config file changed, restart to apply", zap.String("file", e.Name), zap.String("op", e.Op.String()))
	})
	v.WatchConfig()

	return conf, nil
}

func (c *AppConfig) validate() error {
	if c.API.JWTSigningKey == "" {
		return fmt.Errorf("api.jwt_signing_key is required")
	}
	if c.API.TokenTTL <= 0 {
		return fmt.Errorf("api.token_ttl must be positive")
	}

	return nil
}
