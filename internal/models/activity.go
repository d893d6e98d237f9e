package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Category string

const (
	CategoryProductive   Category = "productive"
	CategoryUnproductive Category = "unproductive"
	CategoryNeutral      Category = "neutral"
)

// ParseCategory reads a category leniently. Unknown values read as neutral.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryProductive:
		return CategoryProductive
	case CategoryUnproductive:
		return CategoryUnproductive
	default:
		return CategoryNeutral
	}
}

// ParseCategoryStrict rejects anything that is not one of the three categories.
func ParseCategoryStrict(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryProductive, CategoryUnproductive, CategoryNeutral:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q (want productive, unproductive or neutral)", s)
}

// ActivitySlot is one hour of a day.
type ActivitySlot struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// IsEmpty reports whether nothing was logged in the slot.
func (s ActivitySlot) IsEmpty() bool {
	return strings.TrimSpace(s.Text) == ""
}

// DayRecord maps hour keys ("00:00".."23:00") to slots.
type DayRecord map[string]ActivitySlot

// HourKey returns the slot key for an hour of the day.
func HourKey(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ParseHourKey returns the hour for a key such as "07:00" or "7:00". Plain
// integers are accepted too. Anything else, including trailing text, is an error.
func ParseHourKey(key string) (int, error) {
	key = strings.TrimSpace(key)
	if !strings.Contains(key, ":") {
		h, err := strconv.Atoi(key)
		if err != nil {
			return 0, fmt.Errorf("invalid hour key %q", key)
		}
		if h < 0 || h > 23 {
			return 0, fmt.Errorf("invalid hour key %q: hour out of range", key)
		}
		return h, nil
	}
	t, err := time.Parse("15:04", key)
	if err != nil {
		return 0, fmt.Errorf("invalid hour key %q: %w", key, err)
	}
	if t.Minute() != 0 {
		return 0, fmt.Errorf("invalid hour key %q: slots start on the hour", key)
	}
	return t.Hour(), nil
}

// EmptyDay returns a record with all 24 slots empty and neutral.
func EmptyDay() DayRecord {
	day := make(DayRecord, 24)
	for h := 0; h < 24; h++ {
		day[HourKey(h)] = ActivitySlot{Category: CategoryNeutral}
	}
	return day
}

// Slot returns the slot for an hour, or an empty neutral slot if the hour is missing.
func (d DayRecord) Slot(hour int) ActivitySlot {
	if s, ok := d[HourKey(hour)]; ok {
		return s
	}
	return ActivitySlot{Category: CategoryNeutral}
}

// HasActivity reports whether any slot in the day has text.
func (d DayRecord) HasActivity() bool {
	for _, s := range d {
		if !s.IsEmpty() {
			return true
		}
	}
	return false
}

// Clone returns a copy that can be modified independently.
func (d DayRecord) Clone() DayRecord {
	out := make(DayRecord, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ActivityEntry is a single non-empty slot together with where it was logged.
type ActivityEntry struct {
	Date     string   `json:"date"`
	Hour     string   `json:"hour"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// DaySummary is the aggregation input for one day. Counts only include slots with text.
type DaySummary struct {
	Date         string          `json:"date"`
	Productive   int             `json:"productive"`
	Unproductive int             `json:"unproductive"`
	Neutral      int             `json:"neutral"`
	Activities   []ActivityEntry `json:"activities"`
}

// Total returns the number of logged slots.
func (s DaySummary) Total() int {
	return s.Productive + s.Unproductive + s.Neutral
}
