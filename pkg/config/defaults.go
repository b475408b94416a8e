package config

import "time"

const (
	DefaultSlotsSheet   = "Slots"
	DefaultSignupsSheet = "Signups"
	DefaultStoreTimeout = 10 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 50
	DefaultRateLimitWindow   = 1 * time.Minute
	DefaultRateLimitSweep    = 5 * time.Minute

	DefaultConcurrencyLimit = 3
	DefaultCacheTTL         = 30 * time.Second
	DefaultIdempotencyTTL   = 10 * time.Minute

	DefaultMaxSlotsPerBooking = 4
	DefaultMaxNameLength      = 80
	DefaultMaxPhoneLength     = 20
	DefaultMaxCategoryLength  = 40
	DefaultMaxNotesLength     = 500

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 64 * 1024

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaTopic = "slotdesk.bookings"
)
