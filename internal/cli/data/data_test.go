package data

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/waketrack/internal/activity"
	"github.com/julianstephens/waketrack/internal/cli/clitest"
	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, out := clitest.New(t)
	store := activity.New(src.Repo)
	if _, err := store.SetSlot(src.Ctx, clitest.User, "2026-03-10", 9, "coding", models.CategoryProductive); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SetSlot(src.Ctx, clitest.User, "2026-03-11", 22, "netflix", models.CategoryUnproductive); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "export.json")
	if err := (&ExportCmd{Output: path}).Run(src); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Exported 2 days") {
		t.Errorf("export output:\n%s", out)
	}

	dst, out := clitest.New(t)
	if err := (&ImportCmd{File: path, Yes: true}).Run(dst); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Imported 2 days") {
		t.Errorf("import output:\n%s", out)
	}
	day, err := activity.New(dst.Repo).LoadDay(dst.Ctx, clitest.User, "2026-03-11")
	if err != nil {
		t.Fatal(err)
	}
	if got := day["22:00"]; got.Text != "netflix" || got.Category != models.CategoryUnproductive {
		t.Errorf("imported slot = %+v", got)
	}
}

func TestExportToStdout(t *testing.T) {
	ctx, out := clitest.New(t)
	if err := (&ExportCmd{Output: "-"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	var doc activity.ExportDocument
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("stdout is not an export document: %v", err)
	}
	if len(doc.Activities) != 0 || doc.Gamification != nil {
		t.Errorf("empty export = %+v", doc)
	}
}

func TestImportRejectsBadFile(t *testing.T) {
	ctx, _ := clitest.New(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"version":"1.0","activities":{"03/11/2026":{}}}`), 0600); err != nil {
		t.Fatal(err)
	}
	err := (&ImportCmd{File: path, Yes: true}).Run(ctx)
	var fe *wterrors.FormatError
	if !errors.As(err, &fe) {
		t.Errorf("got %v, want a format error", err)
	}
}
