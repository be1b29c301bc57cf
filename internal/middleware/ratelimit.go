package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"go-order-console/internal/model"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimitMiddleware struct {
	rpm     int
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func NewRateLimitMiddleware(rpm int) *RateLimitMiddleware {
	if rpm <= 0 {
		rpm = 300
	}

	return &RateLimitMiddleware{
		rpm:     rpm,
		clients: map[string]*clientLimiter{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The websocket endpoint is long-lived and polled views are chatty;
		// only writes and reads share one per-client budget.
		if r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}

		limiter := m.getLimiter(ClientIP(r))

		if !limiter.Allow() {
			w.Header().Set("Retry-After", "60")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(model.APIResponse{
				Success: false,
				Error: &model.APIError{
					Code:    "RATE_LIMITED",
					Message: "Too many requests",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) getLimiter(clientIP string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, exists := m.clients[clientIP]; exists {
		entry.lastSeen = time.Now()
		m.gcLocked()
		return entry.limiter
	}

	created := &clientLimiter{
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.rpm)), m.rpm),
		lastSeen: time.Now(),
	}
	m.clients[clientIP] = created
	m.gcLocked()

	return created.limiter
}

func (m *RateLimitMiddleware) gcLocked() {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, entry := range m.clients {
		if entry.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}
