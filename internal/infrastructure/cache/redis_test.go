package cache

import (
	"context"
	"testing"
	"time"

	"thinkabout/internal/config"
)

func TestRedis_DisabledFailsOpen(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, nil)
	ctx := context.Background()

	if r.Available() {
		t.Fatalf("expected unavailable client without addr")
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error when unavailable")
	}

	n, err := r.Incr(ctx, "k", time.Minute)
	if err != nil || n != 0 {
		t.Fatalf("expected no-op incr, got n=%d err=%v", n, err)
	}
	n, err = r.GetInt(ctx, "k")
	if err != nil || n != 0 {
		t.Fatalf("expected no-op get, got n=%d err=%v", n, err)
	}
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("expected no-op close, got %v", err)
	}
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	if r.Available() {
		t.Fatalf("nil receiver must be unavailable")
	}
	if _, err := r.GetInt(context.Background(), "k"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
