package worker

import (
	"context"
	"slices"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/ppiankov/chemscreen/internal/formula"
)

// Limiter throttles job dispatch per key. The batch processor keys jobs by
// chemical system so a file dominated by one system cannot starve the rest.
// A nil *Limiter never waits.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter; requestsPerSecond <= 0 returns nil, which
// disables throttling
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until key may proceed or ctx is done
func (l *Limiter) Wait(ctx context.Context, key string) error {
	if l == nil {
		return ctx.Err()
	}
	return l.getLimiter(key).Wait(ctx)
}

func (l *Limiter) getLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[key] = limiter

	return limiter
}

// SystemKey returns the chemical system of a formula, e.g. "Fe-O" for
// Fe3O4. Unparseable formulas key on their trimmed text.
func SystemKey(f string) string {
	comp, err := formula.Parse(f)
	if err != nil {
		return strings.TrimSpace(f)
	}
	symbols := comp.Symbols()
	slices.Sort(symbols)
	return strings.Join(symbols, "-")
}
