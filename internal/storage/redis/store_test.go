package redis

import (
	"context"
	"os"
	"testing"

	"github.com/julianstephens/waketrack/internal/storage/storagetest"
)

func TestEscapeGlob(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"wt:u1:", "wt:u1:"},
		{"a*b", `a\*b`},
		{"q?[x]", `q\?\[x\]`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeGlob(tt.in); got != tt.want {
			t.Errorf("escapeGlob(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNotLoaded(t *testing.T) {
	store := New(Options{Addr: "127.0.0.1:0"})
	if _, _, err := store.Get(context.Background(), "k"); err == nil {
		t.Error("Get() before Init expected error")
	}
}

// TestStore_Integration runs the shared KV contract against a real Redis.
// Set REDIS_TEST_ADDR (e.g. "localhost:6379") to run it.
func TestStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set, skipping Redis integration test")
	}

	store := New(Options{Addr: addr, DB: 15, KeyPrefix: "waketrack-test:"})
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	keys, err := store.Keys(ctx, "")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	for _, k := range keys {
		if err := store.Delete(ctx, k); err != nil {
			t.Fatalf("cleanup Delete(%s) error = %v", k, err)
		}
	}

	storagetest.Run(t, store)
}
