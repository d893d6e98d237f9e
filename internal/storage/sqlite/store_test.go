package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/waketrack/internal/storage/storagetest"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, setupTestStore(t))
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil {
		t.Fatal("Load() expected error for missing database")
	}
	if !strings.Contains(err.Error(), "init") {
		t.Errorf("Load() error = %v, want hint to run init", err)
	}
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Set(ctx, "goals_u1", "[]"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()
	if v, ok, err := reopened.Get(ctx, "goals_u1"); err != nil || !ok || v != "[]" {
		t.Errorf("Get() after reopen = %q, %v, %v", v, ok, err)
	}

	// Running Init again on an existing database is a no-op for data.
	again := NewStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	defer again.Close()
	if _, ok, _ := again.Get(ctx, "goals_u1"); !ok {
		t.Error("second Init() lost data")
	}
}
