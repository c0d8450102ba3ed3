package worker

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter paces document reads per source directory. Exports often live on
// network mounts where bursts of opens are expensive.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter allowing readsPerSecond per directory.
// A non-positive rate disables limiting.
func NewLimiter(readsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	limit := rate.Inf
	if readsPerSecond > 0 {
		limit = rate.Limit(readsPerSecond)
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until a read of path is allowed or ctx is done
func (l *Limiter) Wait(ctx context.Context, path string) error {
	return l.getLimiter(filepath.Dir(path)).Wait(ctx)
}

// Allow reports whether a read of path may happen now
func (l *Limiter) Allow(path string) bool {
	return l.getLimiter(filepath.Dir(path)).Allow()
}

func (l *Limiter) getLimiter(dir string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[dir]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[dir]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[dir] = limiter

	return limiter
}
