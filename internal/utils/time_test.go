package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"monday", "2024-01-08", "2024-01-08"},
		{"wednesday", "2024-01-10", "2024-01-08"},
		{"sunday", "2024-01-14", "2024-01-08"},
		{"across month", "2024-03-02", "2024-02-26"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.in, time.UTC)
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if got := FormatDate(WeekStart(d)); got != tt.want {
				t.Errorf("WeekStart(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}

	d, _ := ParseDate("2024-01-10", time.UTC)
	if got := FormatDate(WeekEnd(d)); got != "2024-01-14" {
		t.Errorf("WeekEnd() = %s, want 2024-01-14", got)
	}
}

func TestDateRange(t *testing.T) {
	start, _ := ParseDate("2024-02-27", time.UTC)
	end, _ := ParseDate("2024-03-02", time.UTC)

	got := DateRange(start, end)
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("DateRange() returned %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DateRange()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if DateRange(end, start) != nil {
		t.Error("DateRange() with reversed bounds should be empty")
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-12-31", 1)
	if err != nil || got != "2025-01-01" {
		t.Errorf("AddDays() = %s, %v", got, err)
	}
	if _, err := AddDays("31/12/2024", 1); err == nil {
		t.Error("AddDays() expected error for malformed date")
	}
}

func TestFormatHour(t *testing.T) {
	tests := map[int]string{0: "12:00 AM", 9: "9:00 AM", 12: "12:00 PM", 23: "11:00 PM"}
	for in, want := range tests {
		if got := FormatHour(in); got != want {
			t.Errorf("FormatHour(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadLocation(t *testing.T) {
	if loc, err := LoadLocation(""); err != nil || loc != time.Local {
		t.Errorf("LoadLocation(\"\") = %v, %v", loc, err)
	}
	if ValidateTimezone("Not/AZone") {
		t.Error("ValidateTimezone() accepted an invalid zone")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.config/waketrack")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if want := filepath.Join(home, ".config/waketrack"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}
	if got, _ := ExpandPath("/tmp/x"); got != "/tmp/x" {
		t.Errorf("ExpandPath() changed an absolute path: %q", got)
	}
}
