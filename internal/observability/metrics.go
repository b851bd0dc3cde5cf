package observability

import (
	"strings"
	"sync"
	"time"
)

// RouteStats accumulates counters for one route and method.
type RouteStats struct {
	Requests      int64
	Errors        int64
	Status2xx     int64
	Status4xx     int64
	Status5xx     int64
	TotalDuration time.Duration
	MaxDuration   time.Duration
}

// Metrics keeps in-memory per-route request counters. Appointment,
// notification, resource and event-image routes carry record IDs in the
// path, so those segments are collapsed before counting.
type Metrics struct {
	mu     sync.Mutex
	routes map[string]*RouteStats
	errors map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		routes: make(map[string]*RouteStats),
		errors: make(map[string]int64),
	}
}

// RecordRequest increments counters for a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := method + " " + normalizeRoute(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	stats, ok := m.routes[key]
	if !ok {
		stats = &RouteStats{}
		m.routes[key] = stats
	}
	stats.Requests++
	stats.TotalDuration += duration
	if duration > stats.MaxDuration {
		stats.MaxDuration = duration
	}
	switch {
	case status >= 500:
		stats.Status5xx++
	case status >= 400:
		stats.Status4xx++
	case status >= 200:
		stats.Status2xx++
	}
}

// RecordError increments the counter for a domain error code on a route.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := method + " " + normalizeRoute(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	if stats, ok := m.routes[key]; ok {
		stats.Errors++
	} else {
		m.routes[key] = &RouteStats{Errors: 1}
	}
	m.errors[key+" "+code]++
}

// Snapshot returns a copy of the per-route counters.
func (m *Metrics) Snapshot() map[string]RouteStats {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]RouteStats, len(m.routes))
	for key, stats := range m.routes {
		out[key] = *stats
	}
	return out
}

// ErrorCodes returns a copy of the per-route error code counters.
func (m *Metrics) ErrorCodes() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int64, len(m.errors))
	for key, count := range m.errors {
		out[key] = count
	}
	return out
}

// normalizeRoute collapses record ID path segments so the counter set
// stays bounded. IDs are UUIDs here, long hex-and-dash strings.
func normalizeRoute(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if looksLikeID(segment) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func looksLikeID(segment string) bool {
	if len(segment) < 16 {
		return false
	}
	for _, r := range segment {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		case r == '-':
		default:
			return false
		}
	}
	return true
}
