package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway keys) and security settings
// - default: Values common across all environments (timeouts, plan catalog)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Stripe  StripeConfig
	Billing BillingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type StripeConfig struct {
	SecretKey      string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	PublishableKey string `envconfig:"STRIPE_PUBLISHABLE_KEY" required:"true"`
}

// BillingConfig is the plan/price catalog. Prices are integer cents keyed by
// plan ID; roles restrict who may purchase a plan (empty value = anyone).
type BillingConfig struct {
	Currency        string            `envconfig:"BILLING_CURRENCY" default:"usd"`
	PeriodDays      int               `envconfig:"BILLING_PERIOD_DAYS" default:"30"`
	PlanPricesCents map[string]int64  `envconfig:"BILLING_PLAN_PRICES" default:"ngo-pro:2999,agent-pro:1499"`
	PlanNames       map[string]string `envconfig:"BILLING_PLAN_NAMES" default:"ngo-pro:NGO Pro,agent-pro:Impact Agent Pro"`
	PlanRoles       map[string]string `envconfig:"BILLING_PLAN_ROLES" default:"ngo-pro:ngo,agent-pro:agent"`
	IntentTTL       time.Duration     `envconfig:"BILLING_INTENT_TTL" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level: "error",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		Stripe: StripeConfig{
			SecretKey:      "sk_test_dummy",
			PublishableKey: "pk_test_dummy",
		},
		Billing: BillingConfig{
			Currency:        "usd",
			PeriodDays:      30,
			PlanPricesCents: map[string]int64{"ngo-pro": 2999, "agent-pro": 1499},
			PlanNames:       map[string]string{"ngo-pro": "NGO Pro", "agent-pro": "Impact Agent Pro"},
			PlanRoles:       map[string]string{"ngo-pro": "ngo", "agent-pro": "agent"},
			IntentTTL:       24 * time.Hour,
		},
	}
}
