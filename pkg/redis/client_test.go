package redis

import (
	"context"
	"strings"
	"testing"

	"github.com/parisy/pasarsayur-backend/pkg/config"
	"github.com/parisy/pasarsayur-backend/pkg/logger"
)

func TestNewRequiresURLOrAddress(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "redis-test"})

	if _, err := New(context.Background(), config.RedisConfig{}, logg); err == nil {
		t.Fatal("expected error without url or address")
	}
	// a nil logger must not be dereferenced on the error path either
	if _, err := New(context.Background(), config.RedisConfig{URL: "://bad"}, nil); err == nil {
		t.Fatal("expected error for malformed url")
	}
}

func TestKeyNamespacing(t *testing.T) {
	c := &Client{}
	if got := c.IdempotencyKey("checkout", "abc"); !strings.HasPrefix(got, keyNamespace+":"+idempotencyPrefix+":") {
		t.Fatalf("unexpected idempotency key %q", got)
	}
	if got := c.RateLimitKey("login"); !strings.HasPrefix(got, keyNamespace+":"+rateLimitPrefix+":") {
		t.Fatalf("unexpected rate limit key %q", got)
	}
	if got := c.AccessSessionKey("jti"); !strings.HasPrefix(got, keyNamespace+":"+sessionPrefix+":") {
		t.Fatalf("unexpected session key %q", got)
	}
}
