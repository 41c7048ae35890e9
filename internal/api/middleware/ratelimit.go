package middleware

import (
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/phrazzld/wordsplit/internal/api/shared"
	"github.com/phrazzld/wordsplit/internal/config"
	"golang.org/x/time/rate"
)

// ErrRateLimited is logged when a client exceeds its request budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// DefaultMaxClients bounds the number of per-client limiters kept in memory.
const DefaultMaxClients = 10000

// RateLimiter applies a token bucket per client IP. The least recently seen
// clients are forgotten once maxClients is reached.
type RateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewRateLimiter creates a RateLimiter from cfg.
func NewRateLimiter(cfg config.RateLimitConfig, maxClients int) (*RateLimiter, error) {
	if cfg.RequestsPerSecond <= 0 || cfg.Burst <= 0 {
		return nil, fmt.Errorf("rate limit must be positive: %v requests/s, burst %d",
			cfg.RequestsPerSecond, cfg.Burst)
	}
	if maxClients <= 0 {
		maxClients = DefaultMaxClients
	}

	limiters, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		return nil, fmt.Errorf("failed to create limiter cache: %w", err)
	}

	return &RateLimiter{
		limiters: limiters,
		limit:    rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
	}, nil
}

// Limit rejects requests over the client's budget with 429 Too Many Requests.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiterFor(clientKey(r)).Allow() {
			w.Header().Set("Retry-After", rl.retryAfter())
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "Too many requests", ErrRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Get(key); ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	if prev, found, _ := rl.limiters.PeekOrAdd(key, limiter); found {
		return prev
	}
	return limiter
}

// retryAfter is the whole number of seconds until one token is refilled.
func (rl *RateLimiter) retryAfter() string {
	seconds := math.Ceil(1 / float64(rl.limit))
	return strconv.Itoa(int(math.Max(seconds, 1)))
}

// clientKey identifies the caller by IP. RemoteAddr is expected to have been
// rewritten by a real-IP middleware when running behind a proxy.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
