// Package ratelimit throttles abusable endpoints per client IP.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var rejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "devfolio_ratelimit_rejections_total",
	Help: "Requests rejected by a rate limiter",
}, []string{"limiter"})

// Config holds one limiter's settings.
type Config struct {
	Name  string
	Rate  rate.Limit // sustained requests per second
	Burst int
	// IdleTTL drops per-IP state not used for this long.
	IdleTTL time.Duration
}

// ContactConfig sustains five submissions per ten minutes with a burst of
// three.
func ContactConfig() Config {
	return Config{
		Name:    "contact",
		Rate:    rate.Every(2 * time.Minute),
		Burst:   3,
		IdleTTL: 30 * time.Minute,
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter tracks a token bucket per client IP.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu          sync.Mutex
	clients     map[string]*client
	lastCleanup time.Time
}

// New creates a limiter.
func New(cfg Config) *Limiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	return &Limiter{
		cfg:         cfg,
		now:         time.Now,
		clients:     make(map[string]*client),
		lastCleanup: time.Now(),
	}
}

// Allow consumes a token for ip.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.cleanupLocked(now)

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.cfg.Rate, l.cfg.Burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	if !c.limiter.AllowN(now, 1) {
		rejections.WithLabelValues(l.cfg.Name).Inc()
		return false
	}
	return true
}

// size is the number of tracked clients.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *Limiter) cleanupLocked(now time.Time) {
	if now.Sub(l.lastCleanup) < l.cfg.IdleTTL {
		return
	}
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.cfg.IdleTTL {
			delete(l.clients, ip)
		}
	}
	l.lastCleanup = now
}

// retryAfter is the Retry-After hint in seconds for a rejected request.
func (l *Limiter) retryAfter() int {
	if l.cfg.Rate <= 0 {
		return 60
	}
	return max(1, int(time.Duration(float64(time.Second)/float64(l.cfg.Rate)).Seconds()))
}

// Middleware rejects over-limit requests with 429 and a JSON {message}.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", strconv.Itoa(l.retryAfter()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}
		c.Next()
	}
}
