package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Deployment environments. Only production selects the live gateway.
const (
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	Environment string
	LogLevel    string

	ECPayMerchantID    string
	ECPayHashKey       string
	ECPayHashIV        string
	ECPayStagingURL    string
	ECPayProductionURL string
	ECPayReturnURL     string
	ECPayTradeDesc     string
	ECPayItemName      string

	RabbitMQURL string

	SessionTTL         time.Duration
	NotifyPollInterval time.Duration
	NotifyBatchSize    int
	NotifyWorkers      int
	ShutdownTimeout    time.Duration

	// TableSeeds are provisioned at startup so QR codes can be printed
	// without touching the database by hand.
	TableSeeds []TableSeed
}

// TableSeed is one table given as id:name:qr_token.
type TableSeed struct {
	ID      string
	Name    string
	QRToken string
}

const (
	defaultRunAddress         = ":8080"
	defaultEnvironment        = EnvStaging
	defaultLogLevel           = "info"
	defaultECPayStagingURL    = "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5"
	defaultECPayProductionURL = "https://payment.ecpay.com.tw/Cashier/AioCheckOut/V5"
	defaultTradeDesc          = "QR table order"
	defaultItemName           = "Meal"
	defaultSessionTTL         = 2 * time.Hour
	defaultNotifyPollInterval = 2 * time.Second
	defaultNotifyBatchSize    = 32
	defaultNotifyWorkers      = 2
	defaultShutdownTimeout    = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		Environment:        getString(lookup, "APP_ENV", defaultEnvironment),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
		ECPayMerchantID:    getString(lookup, "ECPAY_MERCHANT_ID", ""),
		ECPayHashKey:       getString(lookup, "ECPAY_HASH_KEY", ""),
		ECPayHashIV:        getString(lookup, "ECPAY_HASH_IV", ""),
		ECPayStagingURL:    getString(lookup, "ECPAY_STAGING_URL", defaultECPayStagingURL),
		ECPayProductionURL: getString(lookup, "ECPAY_PRODUCTION_URL", defaultECPayProductionURL),
		ECPayReturnURL:     getString(lookup, "ECPAY_RETURN_URL", ""),
		ECPayTradeDesc:     getString(lookup, "ECPAY_TRADE_DESC", defaultTradeDesc),
		ECPayItemName:      getString(lookup, "ECPAY_ITEM_NAME", defaultItemName),
		RabbitMQURL:        getString(lookup, "RABBITMQ_URL", ""),
		SessionTTL:         getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		NotifyPollInterval: getDuration(lookup, "NOTIFY_POLL_INTERVAL", defaultNotifyPollInterval),
		NotifyBatchSize:    getInt(lookup, "NOTIFY_BATCH_SIZE", defaultNotifyBatchSize),
		NotifyWorkers:      getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("qrorder", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.NotifyPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		sessionTTLStr      = cfg.SessionTTL.String()
		seedTablesStr      = getString(lookup, "SEED_TABLES", "")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.Environment, "env", cfg.Environment, "Deployment environment (staging or production)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (debug, info, warn, error)")
	fs.StringVar(&cfg.ECPayMerchantID, "merchant-id", cfg.ECPayMerchantID, "ECPay merchant id")
	fs.StringVar(&cfg.RabbitMQURL, "amqp", cfg.RabbitMQURL, "RabbitMQ URL for notifications")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Lifetime of a table session")
	fs.StringVar(&pollIntervalStr, "notify-interval", pollIntervalStr, "Interval between outbox polls")
	fs.IntVar(&cfg.NotifyBatchSize, "notify-batch", cfg.NotifyBatchSize, "Maximum notifications per poll")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of concurrent notification publishers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&seedTablesStr, "seed-tables", seedTablesStr, "Comma separated id:name:qr_token tables to provision at startup")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.NotifyPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid notify interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TableSeeds, err = parseTableSeeds(seedTablesStr); err != nil {
		return nil, err
	}

	if cfg.ECPayHashKey, err = readSecretFile(lookup, "ECPAY_HASH_KEY_FILE", cfg.ECPayHashKey); err != nil {
		return nil, err
	}

	if cfg.ECPayHashIV, err = readSecretFile(lookup, "ECPAY_HASH_IV_FILE", cfg.ECPayHashIV); err != nil {
		return nil, err
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.Environment != EnvProduction {
		cfg.Environment = EnvStaging
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyBatchSize <= 0 {
		cfg.NotifyBatchSize = defaultNotifyBatchSize
	}

	if cfg.NotifyPollInterval <= 0 {
		cfg.NotifyPollInterval = defaultNotifyPollInterval
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

// ECPayEndpoint returns the checkout URL of the configured environment.
func (c *Config) ECPayEndpoint() string {
	if c.Environment == EnvProduction {
		return c.ECPayProductionURL
	}
	return c.ECPayStagingURL
}

// LogValue hides credentials when the config is logged.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_address", c.RunAddress),
		slog.String("environment", c.Environment),
		slog.String("ecpay_merchant_id", c.ECPayMerchantID),
		slog.String("ecpay_endpoint", c.ECPayEndpoint()),
		slog.String("ecpay_hash_key", redact(c.ECPayHashKey)),
		slog.String("ecpay_hash_iv", redact(c.ECPayHashIV)),
		slog.Bool("rabbitmq", c.RabbitMQURL != ""),
		slog.Duration("session_ttl", c.SessionTTL),
		slog.Duration("notify_interval", c.NotifyPollInterval),
		slog.Int("notify_workers", c.NotifyWorkers),
		slog.Int("seed_tables", len(c.TableSeeds)),
	)
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "[redacted]"
}

// parseTableSeeds splits "id:name:token,..." entries. The token keeps any
// further colons.
func parseTableSeeds(raw string) ([]TableSeed, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var seeds []TableSeed
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("invalid table seed %q: want id:name:qr_token", parts[0])
		}
		seeds = append(seeds, TableSeed{ID: parts[0], Name: parts[1], QRToken: parts[2]})
	}
	return seeds, nil
}

func readSecretFile(lookup envLookup, key, current string) (string, error) {
	path, ok := lookup(key)
	if !ok || path == "" {
		return current, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(key), err)
	}
	return strings.TrimSpace(string(content)), nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
