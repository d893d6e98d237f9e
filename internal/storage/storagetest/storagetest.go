// Package storagetest holds the behaviour every storage.KV backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/julianstephens/waketrack/internal/storage"
)

// Run exercises a freshly initialized, empty backend.
func Run(t *testing.T, kv storage.KV) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := kv.Get(ctx, "absent")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok || v != "" {
			t.Errorf("Get(absent) = %q, %v; want empty, false", v, ok)
		}
	})

	t.Run("set get overwrite", func(t *testing.T) {
		if err := kv.Set(ctx, "wt:u1:2024-01-01", `{"a":1}`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := kv.Set(ctx, "wt:u1:2024-01-01", `{"a":2}`); err != nil {
			t.Fatalf("Set() overwrite error = %v", err)
		}
		v, ok, err := kv.Get(ctx, "wt:u1:2024-01-01")
		if err != nil || !ok {
			t.Fatalf("Get() = %q, %v, %v", v, ok, err)
		}
		if v != `{"a":2}` {
			t.Errorf("Get() = %q, want last write", v)
		}
	})

	t.Run("keys by prefix", func(t *testing.T) {
		for _, k := range []string{"wt:u1:2024-01-03", "wt:u1:2024-01-02", "wt:u2:2024-01-01", "goals_u1", "WT:u1:upper"} {
			if err := kv.Set(ctx, k, "x"); err != nil {
				t.Fatalf("Set(%s) error = %v", k, err)
			}
		}
		keys, err := kv.Keys(ctx, "wt:u1:")
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		want := []string{"wt:u1:2024-01-01", "wt:u1:2024-01-02", "wt:u1:2024-01-03"}
		if len(keys) != len(want) {
			t.Fatalf("Keys() = %v, want %v", keys, want)
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Errorf("Keys()[%d] = %s, want %s", i, keys[i], want[i])
			}
		}
	})

	t.Run("prefix with wildcard characters", func(t *testing.T) {
		if err := kv.Set(ctx, "pct_%_key", "x"); err != nil {
			t.Fatal(err)
		}
		if err := kv.Set(ctx, "pctAbkey", "x"); err != nil {
			t.Fatal(err)
		}
		keys, err := kv.Keys(ctx, "pct_%")
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		if len(keys) != 1 || keys[0] != "pct_%_key" {
			t.Errorf("Keys(pct_%%) = %v, want only the literal match", keys)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := kv.Delete(ctx, "goals_u1"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok, _ := kv.Get(ctx, "goals_u1"); ok {
			t.Error("key still present after Delete()")
		}
		if err := kv.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("Delete() of missing key error = %v", err)
		}
	})
}
