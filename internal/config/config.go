package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port     string `mapstructure:"port"`
	DBDriver string `mapstructure:"db_driver"`
	DBConn   string `mapstructure:"db_conn"`
	LogLevel string `mapstructure:"log_level"`

	JWTSecret         string `mapstructure:"jwt_secret"`
	AdminEmail        string `mapstructure:"admin_email"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`

	RateFeedURL     string  `mapstructure:"rate_feed_url"`
	RateFeedPath    string  `mapstructure:"rate_feed_path"`
	RateFeedSOAP    bool    `mapstructure:"rate_feed_soap"`
	LenderMargin    float64 `mapstructure:"lender_margin"`
	RateRefreshSpec string  `mapstructure:"rate_refresh_spec"`

	RedisAddr string `mapstructure:"redis_addr"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     string `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SenderEmail  string `mapstructure:"sender_email"`
	AgentEmail   string `mapstructure:"agent_email"`

	LeadsRateLimit int `mapstructure:"leads_rate_limit"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_conn", "host=localhost port=5436 user=test password=test dbname=mortgage sslmode=disable")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("jwt_secret", "secret")
	v.SetDefault("admin_email", "admin@example.com")
	v.SetDefault("admin_password_hash", "")
	v.SetDefault("rate_feed_url", "")
	v.SetDefault("rate_feed_path", "//Rate")
	v.SetDefault("rate_feed_soap", false)
	v.SetDefault("lender_margin", 0.0)
	v.SetDefault("rate_refresh_spec", "@every 6h")
	v.SetDefault("redis_addr", "")
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", "587")
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("sender_email", "noreply@example.com")
	v.SetDefault("agent_email", "agents@example.com")
	v.SetDefault("leads_rate_limit", 5)
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	return load("")
}

// LoadFromFile loads configuration from a YAML file; environment variables
// still take precedence over file values.
func LoadFromFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBConn == "" {
		return fmt.Errorf("DB_CONN is required")
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.LeadsRateLimit <= 0 {
		return fmt.Errorf("LEADS_RATE_LIMIT must be positive")
	}
	return nil
}
