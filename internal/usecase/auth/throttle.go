package auth

import (
	"context"
	"log"
	"time"
)

// AttemptStore counts failed logins with expiry.
type AttemptStore interface {
	GetInt(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, key string) error
}

// Throttle blocks logins for an email once max failures were recorded inside
// window. Store errors never block a login.
type Throttle struct {
	store  AttemptStore
	max    int
	window time.Duration
	logger *log.Logger
}

// NewThrottle returns nil (throttling disabled) when store is nil or max is
// not positive. A nil *Throttle allows every attempt.
func NewThrottle(store AttemptStore, max int, window time.Duration, logger *log.Logger) *Throttle {
	if store == nil || max <= 0 || window <= 0 {
		return nil
	}
	return &Throttle{store: store, max: max, window: window, logger: logger}
}

func attemptsKey(email string) string {
	return "login:attempts:" + email
}

func (t *Throttle) Allow(ctx context.Context, email string) bool {
	if t == nil {
		return true
	}
	n, err := t.store.GetInt(ctx, attemptsKey(email))
	if err != nil {
		t.logf("Auth | throttle read failed, allowing email=%s err=%v", email, err)
		return true
	}
	return n < int64(t.max)
}

func (t *Throttle) Fail(ctx context.Context, email string) {
	if t == nil {
		return
	}
	if _, err := t.store.Incr(ctx, attemptsKey(email), t.window); err != nil {
		t.logf("Auth | throttle incr failed email=%s err=%v", email, err)
	}
}

func (t *Throttle) Reset(ctx context.Context, email string) {
	if t == nil {
		return
	}
	if err := t.store.Delete(ctx, attemptsKey(email)); err != nil {
		t.logf("Auth | throttle reset failed email=%s err=%v", email, err)
	}
}

func (t *Throttle) logf(format string, args ...any) {
	if t.logger != nil {
		t.logger.Printf(format, args...)
	}
}
