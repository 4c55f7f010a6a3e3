package observability

import (
	"strconv"
	"sync"
	"time"
)

// RouteStats accumulates per-route request counters.
type RouteStats struct {
	Count         int64
	TotalDuration time.Duration
}

// Metrics provides basic in-memory counters, keyed by path|method|status for
// requests and path|method|code for errors.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]RouteStats
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]RouteStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest accumulates count and latency for a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.requests[key]
	stats.Count++
	stats.TotalDuration += duration
	m.requests[key] = stats
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key]++
}

// RequestStats copies the request counters.
func (m *Metrics) RequestStats() map[string]RouteStats {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]RouteStats, len(m.requests))
	for k, v := range m.requests {
		out[k] = v
	}
	return out
}

// ErrorCounts copies the error counters.
func (m *Metrics) ErrorCounts() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
