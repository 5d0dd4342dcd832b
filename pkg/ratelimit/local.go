package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	sweepInterval = time.Minute
	idleAfter     = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Local is an in-process limiter used when no shared Redis is configured.
// Each scope gets a token bucket that refills limit tokens per window.
type Local struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func NewLocal() *Local {
	return &Local{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// FixedWindowAllow spends one token from the scope's bucket. The returned
// count is the number of tokens currently spent, including this request.
func (l *Local) FixedWindowAllow(_ context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	if limit <= 0 || window <= 0 {
		return true, 0, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	v, ok := l.visitors[scope]
	if !ok {
		every := window / time.Duration(limit)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), int(limit))}
		l.visitors[scope] = v
	}
	v.lastSeen = now

	allowed := v.limiter.AllowN(now, 1)
	spent := limit - int64(v.limiter.TokensAt(now))
	if !allowed {
		spent = limit + 1
	}
	return allowed, spent, nil
}

// Len reports the number of tracked scopes.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *Local) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for scope, v := range l.visitors {
		if now.Sub(v.lastSeen) > idleAfter {
			delete(l.visitors, scope)
		}
	}
}
