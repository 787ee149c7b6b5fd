package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Payment processor
	StripeSecretKey string
	StripeAPIBase   string

	// Shared secret guarding the ops endpoints (reconcile etc.)
	ReconcileSharedSecret string

	// Sync worker
	SyncBatchSize    int
	SyncPollInterval time.Duration
	SyncRunningLease time.Duration

	// Event stream (optional; disabled when no brokers are configured)
	KafkaBrokers []string
	KafkaTopic   string

	// HTTP surface
	CORSAllowedOrigins []string
	WebhookRateLimit   string // ulule/limiter formatted rate, e.g. "60-M"
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_API_BASE", "https://api.stripe.com/v1")
	viper.SetDefault("RECONCILE_SHARED_SECRET", "")
	viper.SetDefault("SYNC_BATCH_SIZE", 10)
	viper.SetDefault("SYNC_POLL_INTERVAL", "15s")
	viper.SetDefault("SYNC_RUNNING_LEASE", "10m")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "ledger.sync-events")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("WEBHOOK_RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StripeSecretKey = viper.GetString("STRIPE_SECRET_KEY")
	if cfg.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set. Processor calls will fail.")
	}
	cfg.StripeAPIBase = viper.GetString("STRIPE_API_BASE")

	cfg.ReconcileSharedSecret = viper.GetString("RECONCILE_SHARED_SECRET")
	if cfg.ReconcileSharedSecret == "" {
		log.Println("Warning: RECONCILE_SHARED_SECRET not set. Reconcile endpoint will reject all callers.")
	}

	cfg.SyncBatchSize = viper.GetInt("SYNC_BATCH_SIZE")
	if cfg.SyncBatchSize <= 0 {
		cfg.SyncBatchSize = 10
		log.Printf("Warning: Invalid SYNC_BATCH_SIZE. Defaulting to %d.\n", cfg.SyncBatchSize)
	}

	pollStr := viper.GetString("SYNC_POLL_INTERVAL")
	poll, err := time.ParseDuration(pollStr)
	if err != nil {
		poll = 15 * time.Second
		log.Printf("Warning: Invalid SYNC_POLL_INTERVAL ('%s'). Defaulting to %s.\n", pollStr, poll)
	}
	cfg.SyncPollInterval = poll

	leaseStr := viper.GetString("SYNC_RUNNING_LEASE")
	lease, err := time.ParseDuration(leaseStr)
	if err != nil {
		lease = 10 * time.Minute
		log.Printf("Warning: Invalid SYNC_RUNNING_LEASE ('%s'). Defaulting to %s.\n", leaseStr, lease)
	}
	cfg.SyncRunningLease = lease

	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")

	cfg.CORSAllowedOrigins = strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",")
	cfg.WebhookRateLimit = viper.GetString("WEBHOOK_RATE_LIMIT")

	return cfg, nil
}
