package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig carries two credential pairs: a read-only account used by
// lookup paths and a service account used by writes and migrations.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	ReadUsername    string `mapstructure:"read_username"`
	ReadPassword    string `mapstructure:"read_password"`
	ServiceUsername string `mapstructure:"service_username"`
	ServicePassword string `mapstructure:"service_password"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) dsn(username, password string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		username, password, d.Host, d.Port, d.Database)
}

func (d *DatabaseConfig) GetReadDSN() string {
	return d.dsn(d.ReadUsername, d.ReadPassword)
}

func (d *DatabaseConfig) GetServiceDSN() string {
	return d.dsn(d.ServiceUsername, d.ServicePassword)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BillingConfig configures the payment provider integration.
// PriceToTier maps provider price IDs to subscription tier slugs and is
// validated at startup so a misconfigured mapping fails fast.
type BillingConfig struct {
	WebhookSecret    string            `mapstructure:"webhook_secret"`
	ToleranceSeconds int               `mapstructure:"tolerance_seconds"`
	SuccessURL       string            `mapstructure:"success_url"`
	CancelURL        string            `mapstructure:"cancel_url"`
	PriceToTier      map[string]string `mapstructure:"price_to_tier"`
}

type RateLimitConfig struct {
	SearchPerMinute  int `mapstructure:"search_per_minute"`
	WebhookPerMinute int `mapstructure:"webhook_per_minute"`
}

// AggregatorConfig tunes the company view fan-out.
type AggregatorConfig struct {
	FacetTimeoutMS int `mapstructure:"facet_timeout_ms"`
}
