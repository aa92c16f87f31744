package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/medroster"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the per-host request rate when none is
// configured. Directory sites throttle aggressive clients.
const DefaultRequestsPerSecond = 2.0

var _ medroster.HostLimiter = (*HostLimiter)(nil)

// HostLimiter spaces requests to each directory host with its own token
// bucket. Hosts listed with WithHostRate get that rate; every other host
// gets the base rate. Burst is always 1: listing and profile pages arrive
// one at a time.
type HostLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	base     rate.Limit
	override map[string]rate.Limit
}

// LimiterOption configures a HostLimiter.
type LimiterOption func(*HostLimiter)

// WithHostRate sets the rate for one host. Host matching ignores case and
// a leading "www.". Non-positive rates are ignored.
func WithHostRate(host string, rps float64) LimiterOption {
	return func(l *HostLimiter) {
		if rps > 0 {
			l.override[hostKey(host)] = rate.Limit(rps)
		}
	}
}

// NewHostLimiter allows rps requests per second to each host. A
// non-positive rps means DefaultRequestsPerSecond.
func NewHostLimiter(rps float64, opts ...LimiterOption) *HostLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	l := &HostLimiter{
		buckets:  make(map[string]*rate.Limiter),
		base:     rate.Limit(rps),
		override: make(map[string]rate.Limit),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until a request to host is allowed or ctx is done.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.bucket(host).Wait(ctx)
}

// Rate reports the requests per second applied to host.
func (l *HostLimiter) Rate(host string) float64 {
	return float64(l.bucket(host).Limit())
}

func (l *HostLimiter) bucket(host string) *rate.Limiter {
	key := hostKey(host)

	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		limit, ok := l.override[key]
		if !ok {
			limit = l.base
		}
		b = rate.NewLimiter(limit, 1)
		l.buckets[key] = b
	}
	return b
}

// hostKey folds "WWW.Example.com" and "example.com" into one bucket: the
// same directory often links both.
func hostKey(host string) string {
	host = strings.ToLower(host)
	return strings.TrimPrefix(host, "www.")
}
