package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/storage/sqlite"
)

const user = "local_abc"

func seed(t *testing.T, dbPath, text string) {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer store.Close()

	day := models.EmptyDay()
	day["09:00"] = models.ActivitySlot{Text: text, Category: models.CategoryProductive}
	if err := repository.New(store).PutDay(context.Background(), user, "2024-01-08", day); err != nil {
		t.Fatalf("PutDay: %v", err)
	}
}

func readSlot(t *testing.T, dbPath string) string {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer store.Close()

	day, ok, err := repository.New(store).GetDay(context.Background(), user, "2024-01-08")
	if err != nil || !ok {
		t.Fatalf("GetDay = %v, %v", ok, err)
	}
	return day["09:00"].Text
}

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func TestCreateAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), constants.DefaultDBName)
	seed(t, dbPath, "writing")

	clock := &stepClock{t: time.Date(2024, 1, 8, 9, 0, 0, 0, time.Local)}
	mgr := NewManager(dbPath, WithClock(clock.now))

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if filepath.Dir(first.Path) != mgr.Dir() {
		t.Errorf("backup written to %s, want %s", first.Path, mgr.Dir())
	}
	if first.Name() != "waketrack-20240108-0901.db" {
		t.Errorf("Name() = %s", first.Name())
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Path != second.Path || list[1].Path != first.Path {
		t.Fatalf("List() = %+v, want newest first", list)
	}
	if list[0].Size == 0 {
		t.Error("backup is empty")
	}
}

func TestCreateSameMinuteGetsUniqueName(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), constants.DefaultDBName)
	seed(t, dbPath, "writing")

	fixed := time.Date(2024, 1, 8, 9, 30, 15, 0, time.Local)
	mgr := NewManager(dbPath, WithClock(func() time.Time { return fixed }))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		if seen[info.Path] {
			t.Fatalf("duplicate backup path %s", info.Path)
		}
		seen[info.Path] = true
	}
	list, _ := mgr.List()
	if len(list) != 3 {
		t.Errorf("List() len = %d, want 3", len(list))
	}
}

func TestRetention(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), constants.DefaultDBName)
	seed(t, dbPath, "writing")

	clock := &stepClock{t: time.Date(2024, 1, 8, 9, 0, 0, 0, time.Local)}
	mgr := NewManager(dbPath, WithClock(clock.now), WithRetention(3))
	var last Info
	for i := 0; i < 5; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		last = info
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("kept %d backups, want 3", len(list))
	}
	if list[0].Path != last.Path {
		t.Errorf("newest backup pruned")
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), constants.DefaultDBName)
	seed(t, dbPath, "original")

	clock := &stepClock{t: time.Date(2024, 1, 8, 9, 0, 0, 0, time.Local)}
	mgr := NewManager(dbPath, WithClock(clock.now))
	snap, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	seed(t, dbPath, "changed")
	if got := readSlot(t, dbPath); got != "changed" {
		t.Fatalf("slot before restore = %q", got)
	}

	safety, err := mgr.Restore(mgr.Resolve(snap.Name()))
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if safety == nil {
		t.Fatal("expected a safety backup of the current database")
	}
	if got := readSlot(t, dbPath); got != "original" {
		t.Errorf("slot after restore = %q, want original", got)
	}
	if got := readSlot(t, safety.Path); got != "changed" {
		t.Errorf("safety backup slot = %q, want changed", got)
	}
}

func TestRestoreRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, constants.DefaultDBName)
	seed(t, dbPath, "original")
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(dir, "nope.db")); err == nil {
		t.Error("expected error for missing backup")
	}

	bogus := filepath.Join(dir, "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database at all, just text"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected error for corrupt backup")
	}
	if got := readSlot(t, dbPath); got != "original" {
		t.Errorf("database changed after failed restore: %q", got)
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		want string
	}{
		{"waketrack-20240108-0930.db", true, "2024-01-08 09:30:00"},
		{"waketrack-20240108-093015.db", true, "2024-01-08 09:30:15"},
		{"waketrack-20240108-093015-2.db", true, "2024-01-08 09:30:15"},
		{"daylit-20240108-0930.db", false, ""},
		{"waketrack-garbage.db", false, ""},
		{"waketrack-20240108-0930.json", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := parseStamp(tt.name)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && ts.Format("2006-01-02 15:04:05") != tt.want {
				t.Errorf("ts = %v, want %s", ts, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	mgr := NewManager("/data/waketrack.db")
	if got := mgr.Resolve("waketrack-20240108-0930.db"); got != filepath.Join("/data", constants.BackupDirName, "waketrack-20240108-0930.db") {
		t.Errorf("Resolve(name) = %s", got)
	}
	if got := mgr.Resolve("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("Resolve(path) = %s", got)
	}
}
