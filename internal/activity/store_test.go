package activity

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/storage"
)

func newStore(t *testing.T) (*Store, repository.Repository) {
	t.Helper()
	repo := repository.New(storage.NewMemoryStore())
	return New(repo), repo
}

func TestLoadDayDefaults(t *testing.T) {
	s, _ := newStore(t)
	day, err := s.LoadDay(context.Background(), "u", "2024-02-01")
	if err != nil {
		t.Fatalf("LoadDay() error = %v", err)
	}
	if len(day) != 24 || day.HasActivity() {
		t.Errorf("LoadDay() = %v", day)
	}

	_, err = s.LoadDay(context.Background(), "u", "02/01/2024")
	var ve *wterrors.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("LoadDay(bad date) error = %v, want ValidationError", err)
	}
}

func TestSetSlot(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	if _, err := s.SetSlot(ctx, "u", "2024-02-01", 9, "  write report ", models.CategoryProductive); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetSlot(ctx, "u", "2024-02-01", 10, "lunch", models.CategoryNeutral); err != nil {
		t.Fatal(err)
	}
	day, _ := s.LoadDay(ctx, "u", "2024-02-01")
	if got := day.Slot(9); got.Text != "write report" || got.Category != models.CategoryProductive {
		t.Errorf("slot 9 = %+v", got)
	}
	if day.Slot(10).Text != "lunch" {
		t.Errorf("slot 10 = %+v", day.Slot(10))
	}

	if _, err := s.SetSlot(ctx, "u", "2024-02-01", 24, "x", models.CategoryNeutral); err == nil {
		t.Error("SetSlot(24) accepted")
	}
}

func TestCopyDay(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	_, err := s.CopyDay(ctx, "u", "2024-02-01", "2024-02-02")
	var ve *wterrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("CopyDay(empty) error = %v", err)
	}

	_, _ = s.SetSlot(ctx, "u", "2024-02-01", 9, "code", models.CategoryProductive)
	_, _ = s.SetSlot(ctx, "u", "2024-02-02", 15, "old", models.CategoryNeutral)
	n, err := s.CopyDay(ctx, "u", "2024-02-01", "2024-02-02")
	if err != nil || n != 1 {
		t.Fatalf("CopyDay() = %d, %v", n, err)
	}
	dst, _ := s.LoadDay(ctx, "u", "2024-02-02")
	if dst.Slot(9).Text != "code" || dst.Slot(15).Text != "" {
		t.Errorf("destination not overwritten: %+v", dst)
	}
}

func TestDuplicateWeek(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	for _, date := range []string{"2024-01-01", "2024-01-03", "2024-01-07", "2024-01-08"} {
		_, _ = s.SetSlot(ctx, "u", date, 9, "code "+date, models.CategoryProductive)
	}
	n, err := s.DuplicateWeek(ctx, "u", "2024-01-01", "2024-01-15")
	if err != nil || n != 3 {
		t.Fatalf("DuplicateWeek() = %d, %v", n, err)
	}
	day, _ := s.LoadDay(ctx, "u", "2024-01-17")
	if day.Slot(9).Text != "code 2024-01-03" {
		t.Errorf("2024-01-17 = %+v", day.Slot(9))
	}
	if day, _ := s.LoadDay(ctx, "u", "2024-01-22"); day.HasActivity() {
		t.Error("copied past the seventh day")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, srcRepo := newStore(t)
	_, _ = src.SetSlot(ctx, "u", "2024-01-01", 9, "code", models.CategoryProductive)
	_, _ = src.SetSlot(ctx, "u", "2024-01-02", 22, "tv", models.CategoryUnproductive)
	g := models.GamificationData{TotalPoints: 120, Level: 2, PointsToNextLevel: 80, LongestStreak: 4, CurrentStreak: 2}
	_ = srcRepo.PutGamification(ctx, "u", g)

	doc, err := src.ExportAll(ctx, "u", time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteExport(&buf, doc); err != nil {
		t.Fatal(err)
	}
	read, err := ReadImport(&buf)
	if err != nil {
		t.Fatalf("ReadImport() error = %v", err)
	}

	dst, dstRepo := newStore(t)
	n, err := dst.ImportAll(ctx, "u", read)
	if err != nil || n != 2 {
		t.Fatalf("ImportAll() = %d, %v", n, err)
	}
	for _, date := range []string{"2024-01-01", "2024-01-02"} {
		want, _, _ := srcRepo.GetDay(ctx, "u", date)
		got, _, _ := dstRepo.GetDay(ctx, "u", date)
		if !reflect.DeepEqual(want, got) {
			t.Errorf("%s: got %v, want %v", date, got, want)
		}
	}
	gotG, ok, _ := dstRepo.GetGamification(ctx, "u")
	if !ok || !reflect.DeepEqual(gotG, g) {
		t.Errorf("gamification = %+v", gotG)
	}
}

func TestReadImportRejectsMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"missing version":    `{"activities": {}}`,
		"missing activities": `{"version": "1.0"}`,
		"not json":           `hello`,
		"bad date":           `{"version":"1.0","activities":{"yesterday":{}}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadImport(strings.NewReader(body))
			var fe *wterrors.FormatError
			if !errors.As(err, &fe) {
				t.Errorf("ReadImport() error = %v, want FormatError", err)
			}
		})
	}
}

func TestImportAllWritesNothingOnFormatError(t *testing.T) {
	ctx := context.Background()
	s, repo := newStore(t)
	doc := ExportDocument{Activities: map[string]models.DayRecord{"2024-01-01": models.EmptyDay()}}
	if _, err := s.ImportAll(ctx, "u", doc); err == nil {
		t.Fatal("ImportAll() accepted a document without version")
	}
	if dates, _ := repo.DayDates(ctx, "u"); len(dates) != 0 {
		t.Errorf("wrote %v", dates)
	}
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	s, repo := newStore(t)
	_, _ = s.SetSlot(ctx, "u", "2024-01-01", 9, "code", models.CategoryProductive)
	_, _ = s.SetSlot(ctx, "other", "2024-01-01", 9, "code", models.CategoryProductive)
	_ = repo.PutGamification(ctx, "u", models.GamificationData{TotalPoints: 10})

	n, err := s.ClearAll(ctx, "u")
	if err != nil || n != 1 {
		t.Fatalf("ClearAll() = %d, %v", n, err)
	}
	if _, ok, _ := repo.GetGamification(ctx, "u"); ok {
		t.Error("gamification survived")
	}
	if dates, _ := repo.DayDates(ctx, "other"); len(dates) != 1 {
		t.Error("ClearAll touched another user")
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	_, _ = s.SetSlot(ctx, "u", "2024-01-01", 9, "Write code", models.CategoryProductive)
	_, _ = s.SetSlot(ctx, "u", "2024-01-01", 14, "write docs", models.CategoryProductive)
	_, _ = s.SetSlot(ctx, "u", "2024-01-02", 8, "write code", models.CategoryProductive)
	_, _ = s.SetSlot(ctx, "u", "2024-01-02", 20, "netflix", models.CategoryUnproductive)

	res, err := s.Search(ctx, "u", Filter{Term: "WRITE", HourFrom: -1, HourTo: -1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Scanned != 4 || res.Stats.Total != 3 || res.Stats.ProductivityRate != 100 {
		t.Errorf("stats = %+v scanned %d", res.Stats, res.Scanned)
	}
	order := []string{"2024-01-02 08:00", "2024-01-01 14:00", "2024-01-01 09:00"}
	for i, e := range res.Entries {
		if got := e.Date + " " + e.Hour; got != order[i] {
			t.Errorf("entry %d = %s, want %s", i, got, order[i])
		}
	}
	if res.Common[0] != (CommonActivity{Text: "write code", Count: 2}) {
		t.Errorf("common = %+v", res.Common)
	}

	f := AnyHour()
	f.Category = models.CategoryUnproductive
	f.From = "2024-01-02"
	res, _ = s.Search(ctx, "u", f)
	if len(res.Entries) != 1 || res.Entries[0].Text != "netflix" || res.Stats.ProductivityRate != 0 {
		t.Errorf("category search = %+v", res)
	}

	res, _ = s.Search(ctx, "u", Filter{HourFrom: 9, HourTo: 14})
	if len(res.Entries) != 2 {
		t.Errorf("hour search = %+v", res.Entries)
	}
}
