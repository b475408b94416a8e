package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"slotdesk/pkg/logger"
	"slotdesk/pkg/sanitizer"
)

// IdentityExtractor derives the rate-limit identity from a request.
type IdentityExtractor func(r *http.Request) string

// RateLimiter keeps a sliding window of request timestamps per client
// identity. Checks are check-then-act: a lost update under concurrency
// only loosens the limit marginally, it never corrupts state.
type RateLimiter struct {
	mu       sync.RWMutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	sweep    time.Duration
	log      *logger.Logger
	stopCh   chan struct{}
	now      func() time.Time
}

func NewRateLimiter(limit int, window, sweep time.Duration, log *logger.Logger) *RateLimiter {
	limiter := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		sweep:    sweep,
		log:      log,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}

	go limiter.cleanup()

	return limiter
}

// Allow prunes entries older than the window and admits the request if
// the remaining count is below the limit. Denials record nothing.
func (rl *RateLimiter) Allow(identity string) bool {
	if identity == "" {
		return true
	}

	now := rl.now()

	rl.mu.RLock()
	timestamps := rl.requests[identity]
	rl.mu.RUnlock()

	valid := make([]time.Time, 0, len(timestamps)+1)
	for _, ts := range timestamps {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		return false
	}

	valid = append(valid, now)

	rl.mu.Lock()
	rl.requests[identity] = valid
	rl.mu.Unlock()

	return true
}

// cleanup periodically purges identities with no activity inside the
// window to bound memory.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for identity, timestamps := range rl.requests {
				if len(timestamps) == 0 || rl.now().Sub(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, identity)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// RateLimit gates every request through the limiter. Decisions are
// reported to the optional stats recorder without blocking the request.
func RateLimit(limiter *RateLimiter, extractor IdentityExtractor, stats StatsRecorder, log *logger.Logger) func(http.Handler) http.Handler {
	if extractor == nil {
		extractor = DefaultIdentityExtractor
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := extractor(r)
			allowed := limiter.Allow(identity)

			recordStats(stats, identity, allowed, log)

			if !allowed {
				rejectRateLimited(w, log, r, identity)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func recordStats(stats StatsRecorder, identity string, allowed bool, log *logger.Logger) {
	if stats == nil {
		return
	}
	// detached from the request context so recording outlives the response
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := stats.Record(ctx, identity, allowed); err != nil {
			log.Debug("Failed to record rate-limit stats", "error", err)
		}
	}()
}

func rejectRateLimited(w http.ResponseWriter, log *logger.Logger, r *http.Request, identity string) {
	requestID := ""
	if rid := r.Context().Value(RequestIDKey); rid != nil {
		if id, ok := rid.(string); ok {
			requestID = id
		}
	}

	log.Warn("Rate limit exceeded",
		"request_id", requestID,
		"identity", identity,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"ok":false,"error":"Rate limit exceeded"}`))
}

// DefaultIdentityExtractor prefers the sanitized phone the request
// carries, in the JSON body for mutating methods or on the query
// string, and falls back to the client IP.
func DefaultIdentityExtractor(r *http.Request) string {
	if phone := bodyPhone(r); phone != "" {
		if normalized := sanitizer.NormalizePhone(phone); normalized != "" {
			return normalized
		}
	}
	if phone := r.URL.Query().Get("phone"); phone != "" {
		if normalized := sanitizer.NormalizePhone(phone); normalized != "" {
			return normalized
		}
	}
	return clientIP(r)
}

// bodyPhone peeks the phone field of a mutating request's JSON body.
// The body is restored so the handler's decode still sees it.
func bodyPhone(r *http.Request) string {
	if r.Method != http.MethodPost && r.Method != http.MethodPatch {
		return ""
	}
	if r.Body == nil {
		return ""
	}

	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Phone
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
