package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Database DatabaseConfig `env:",prefix=DATABASE_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	Google   GoogleConfig   `env:",prefix=GOOGLE_"`
	Session  SessionConfig  `env:",prefix=SESSION_"`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Alert    AlertConfig    `env:",prefix=ALERT_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port      string `env:"PORT,default=3001"`
	Host      string `env:"HOST,default=0.0.0.0"`
	ClientURL string `env:"CLIENT_URL,default=http://localhost:3000"`
}

type DatabaseConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=donelist"`
	Password string `env:"PASSWORD,default=donelist"`
	DBName   string `env:"DB,default=donelist_db"`
	SSLMode  string `env:"SSLMODE,default=disable"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	CallbackURL  string `env:"CALLBACK_URL,default=http://localhost:3001/api/auth/google/callback"`
}

type SessionConfig struct {
	Secret string   `env:"SECRET,required"`
	TTL    Duration `env:"TTL,default=7d"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000,http://localhost:5173"`
}

type AlertConfig struct {
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`
	EmailAddress    string `env:"EMAIL_ADDRESS"`
	SMTPAddr        string `env:"SMTP_ADDR"`
	SMTPFrom        string `env:"SMTP_FROM"`
}

// DSN returns the PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Address returns the Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, error detail suppressed, alerting enabled).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(config.Session.Secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	return &config, nil
}
