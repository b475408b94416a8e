package config

const (
	EnvSheetBaseURL   = "SHEET_API_BASE_URL"
	EnvSheetID        = "SHEET_ID"
	EnvSheetAPIToken  = "SHEET_API_TOKEN"
	EnvSlotsSheet     = "SLOTS_SHEET"
	EnvSignupsSheet   = "SIGNUPS_SHEET"
	EnvStoreTimeout   = "STORE_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvRateLimitSweep    = "RATE_LIMIT_SWEEP"

	EnvConcurrencyLimit = "CONCURRENCY_LIMIT"
	EnvCacheTTL         = "CACHE_TTL"
	EnvIdempotencyTTL   = "IDEMPOTENCY_TTL"

	EnvMaxSlotsPerBooking = "MAX_SLOTS_PER_BOOKING"
	EnvMaxNameLength      = "MAX_NAME_LENGTH"
	EnvMaxPhoneLength     = "MAX_PHONE_LENGTH"
	EnvMaxCategoryLength  = "MAX_CATEGORY_LENGTH"
	EnvMaxNotesLength     = "MAX_NOTES_LENGTH"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"

	EnvRedisAddr = "REDIS_ADDR"
)
