package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"slotdesk/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	SheetBaseURL  string
	SheetID       string
	SheetAPIToken string
	SlotsSheet    string
	SignupsSheet  string
	StoreTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitSweep    time.Duration

	ConcurrencyLimit int
	CacheTTL         time.Duration
	IdempotencyTTL   time.Duration

	MaxSlotsPerBooking int
	MaxNameLength      int
	MaxPhoneLength     int
	MaxCategoryLength  int
	MaxNotesLength     int

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	RedisAddr string

	Log *logger.Logger
}

// Load reads configuration from the environment (a local .env file is
// honored when present), validates it and exits the process on any
// violation. Missing store identifiers are a fatal startup condition.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := &Config{
		SheetBaseURL:  getEnvStr(EnvSheetBaseURL, ""),
		SheetID:       getEnvStr(EnvSheetID, ""),
		SheetAPIToken: getEnvStr(EnvSheetAPIToken, ""),
		SlotsSheet:    getEnvStr(EnvSlotsSheet, DefaultSlotsSheet),
		SignupsSheet:  getEnvStr(EnvSignupsSheet, DefaultSignupsSheet),
		StoreTimeout:  getEnvDuration(EnvStoreTimeout, DefaultStoreTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		RateLimitSweep:    getEnvDuration(EnvRateLimitSweep, DefaultRateLimitSweep),

		ConcurrencyLimit: getEnvNum(EnvConcurrencyLimit, DefaultConcurrencyLimit),
		CacheTTL:         getEnvDuration(EnvCacheTTL, DefaultCacheTTL),
		IdempotencyTTL:   getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),

		MaxSlotsPerBooking: getEnvNum(EnvMaxSlotsPerBooking, DefaultMaxSlotsPerBooking),
		MaxNameLength:      getEnvNum(EnvMaxNameLength, DefaultMaxNameLength),
		MaxPhoneLength:     getEnvNum(EnvMaxPhoneLength, DefaultMaxPhoneLength),
		MaxCategoryLength:  getEnvNum(EnvMaxCategoryLength, DefaultMaxCategoryLength),
		MaxNotesLength:     getEnvNum(EnvMaxNotesLength, DefaultMaxNotesLength),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		KafkaBrokers: getEnvList(EnvKafkaBrokers),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		RedisAddr: getEnvStr(EnvRedisAddr, ""),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.LevelInfo),
			Format:    logger.FormatJSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errs []string

	if cfg.SheetBaseURL == "" {
		errs = append(errs, fmt.Sprintf("%s is required", EnvSheetBaseURL))
	} else if !strings.HasPrefix(cfg.SheetBaseURL, "http://") && !strings.HasPrefix(cfg.SheetBaseURL, "https://") {
		errs = append(errs, fmt.Sprintf("%s must be an http(s) URL, got: %s", EnvSheetBaseURL, cfg.SheetBaseURL))
	}
	if cfg.SheetID == "" {
		errs = append(errs, fmt.Sprintf("%s is required", EnvSheetID))
	}
	if cfg.SheetAPIToken == "" {
		errs = append(errs, fmt.Sprintf("%s is required", EnvSheetAPIToken))
	}
	if cfg.SlotsSheet == "" {
		errs = append(errs, fmt.Sprintf("%s cannot be empty", EnvSlotsSheet))
	}
	if cfg.SignupsSheet == "" {
		errs = append(errs, fmt.Sprintf("%s cannot be empty", EnvSignupsSheet))
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RateLimitSweep <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitSweep must be positive, got: %s", cfg.RateLimitSweep))
	}
	if cfg.ConcurrencyLimit <= 0 {
		errs = append(errs, fmt.Sprintf("ConcurrencyLimit must be positive, got: %d", cfg.ConcurrencyLimit))
	}
	if cfg.CacheTTL <= 0 {
		errs = append(errs, fmt.Sprintf("CacheTTL must be positive, got: %s", cfg.CacheTTL))
	}
	if cfg.IdempotencyTTL <= 0 {
		errs = append(errs, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.StoreTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("StoreTimeout must be positive, got: %s", cfg.StoreTimeout))
	}

	if cfg.MaxSlotsPerBooking <= 0 {
		errs = append(errs, fmt.Sprintf("MaxSlotsPerBooking must be positive, got: %d", cfg.MaxSlotsPerBooking))
	}
	if cfg.MaxNameLength <= 0 {
		errs = append(errs, fmt.Sprintf("MaxNameLength must be positive, got: %d", cfg.MaxNameLength))
	}
	if cfg.MaxPhoneLength <= 0 {
		errs = append(errs, fmt.Sprintf("MaxPhoneLength must be positive, got: %d", cfg.MaxPhoneLength))
	}
	if cfg.MaxCategoryLength <= 0 {
		errs = append(errs, fmt.Sprintf("MaxCategoryLength must be positive, got: %d", cfg.MaxCategoryLength))
	}
	if cfg.MaxNotesLength <= 0 {
		errs = append(errs, fmt.Sprintf("MaxNotesLength must be positive, got: %d", cfg.MaxNotesLength))
	}

	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"sheet_base_url", cfg.SheetBaseURL,
		"sheet_id", cfg.SheetID,
		"sheet_token_set", cfg.SheetAPIToken != "",
		"slots_sheet", cfg.SlotsSheet,
		"signups_sheet", cfg.SignupsSheet,
		"store_timeout", cfg.StoreTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"rate_limit_sweep", cfg.RateLimitSweep,
		"concurrency_limit", cfg.ConcurrencyLimit,
		"cache_ttl", cfg.CacheTTL,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_slots_per_booking", cfg.MaxSlotsPerBooking,
		"max_name_length", cfg.MaxNameLength,
		"max_phone_length", cfg.MaxPhoneLength,
		"max_category_length", cfg.MaxCategoryLength,
		"max_notes_length", cfg.MaxNotesLength,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"redis_addr", cfg.RedisAddr,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
