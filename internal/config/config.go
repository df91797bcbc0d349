package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	ierr "github.com/nkripta/nkripta/internal/errors"
)

// Configuration is the single configuration surface for the whole service.
// Values come from config.yaml plus NKRIPTA_* environment overrides.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Stripe     StripeConfig     `mapstructure:"stripe"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

type DeploymentConfig struct {
	Mode string `mapstructure:"mode"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type PostgresConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// StripeConfig configures the payment-processor gateway. MockMode enables
// the deterministic mock-data fallback on degraded or unreachable gateways;
// BaseURL points the client at a local sandbox double when set.
type StripeConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
	BaseURL       string        `mapstructure:"base_url"`
	MockMode      bool          `mapstructure:"mock_mode"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// AuthConfig selects the authentication provider strategy. The static
// provider exists for dev/test wiring and is chosen here, never by inline
// environment checks in the auth path.
type AuthConfig struct {
	Provider string           `mapstructure:"provider"`
	Secret   string           `mapstructure:"secret"`
	Static   StaticAuthConfig `mapstructure:"static"`
}

type StaticAuthConfig struct {
	ProfileID      string   `mapstructure:"profile_id"`
	OrganizationID string   `mapstructure:"organization_id"`
	Email          string   `mapstructure:"email"`
	Roles          []string `mapstructure:"roles"`
}

type CacheConfig struct {
	Type string        `mapstructure:"type"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

const (
	AuthProviderJWT    = "jwt"
	AuthProviderStatic = "static"
)

// NewConfig loads configuration from config.yaml (if present), a .env file
// (if present), and NKRIPTA_* environment variables, in increasing priority.
func NewConfig() (*Configuration, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("NKRIPTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", "development")
	v.SetDefault("server.address", ":3000")
	v.SetDefault("logging.level", "info")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "nkripta")
	v.SetDefault("postgres.dbname", "nkripta")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.auto_migrate", true)
	v.SetDefault("stripe.timeout", 10*time.Second)
	v.SetDefault("stripe.mock_mode", false)
	v.SetDefault("auth.provider", AuthProviderJWT)
	v.SetDefault("cache.type", "inmemory")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func (c *Configuration) Validate() error {
	if c.Stripe.APIKey == "" && !c.Stripe.MockMode {
		return ierr.NewError("stripe api key is required").
			WithHint("Set NKRIPTA_STRIPE_API_KEY or enable stripe.mock_mode").
			Mark(ierr.ErrValidation)
	}
	switch c.Auth.Provider {
	case AuthProviderJWT:
		if c.Auth.Secret == "" {
			return ierr.NewError("auth secret is required for the jwt provider").
				WithHint("Set NKRIPTA_AUTH_SECRET").
				Mark(ierr.ErrValidation)
		}
	case AuthProviderStatic:
		if c.Deployment.Mode == "production" {
			return ierr.NewError("static auth provider is not allowed in production").
				WithHint("Use the jwt auth provider in production").
				Mark(ierr.ErrValidation)
		}
	default:
		return ierr.NewErrorf("unknown auth provider: %s", c.Auth.Provider).
			WithHint("auth.provider must be jwt or static").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a configuration suitable for tests and early
// bootstrap (before the real configuration is loaded).
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: "development"},
		Server:     ServerConfig{Address: ":3000"},
		Logging:    LoggingConfig{Level: "info"},
		Stripe:     StripeConfig{MockMode: true, Timeout: 10 * time.Second},
		Auth: AuthConfig{
			Provider: AuthProviderStatic,
			Static: StaticAuthConfig{
				ProfileID:      "00000000-0000-0000-0000-000000000000",
				OrganizationID: "",
				Email:          "admin@example.com",
				Roles:          []string{"ADMIN", "USER"},
			},
		},
		Cache: CacheConfig{Type: "inmemory", TTL: 5 * time.Minute},
	}
}
