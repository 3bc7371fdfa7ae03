package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/secmon-lab/brolife/pkg/utils/logging"
	"github.com/secmon-lab/brolife/pkg/utils/safe"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 1024
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet keeps one token bucket per client address
type limiterSet struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
}

func newLimiterSet(limit float64, burst int) *limiterSet {
	if burst < 1 {
		burst = 1
	}
	return &limiterSet{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(limit),
		burst:   burst,
	}
}

func (s *limiterSet) allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.clients) >= limiterSweepSize {
		for k, c := range s.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(s.clients, k)
			}
		}
	}

	c, ok := s.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// rateLimiter rejects requests with 429 once a client exhausts its bucket
func rateLimiter(limit float64, burst int) func(http.Handler) http.Handler {
	set := newLimiterSet(limit, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			if !set.allow(key, time.Now()) {
				logging.From(r.Context()).Warn("rate limit exceeded", "client", key, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				safe.Encode(r.Context(), w, map[string]string{"error": http.StatusText(http.StatusTooManyRequests)})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
