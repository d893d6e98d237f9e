// Package metrics derives statistics from stored day records. Everything
// here is a pure function of its inputs apart from the range loaders.
package metrics

import (
	"context"
	"time"

	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

// DayReader is the slice of the repository the metrics need.
type DayReader interface {
	GetDay(ctx context.Context, user, date string) (models.DayRecord, bool, error)
}

// Counts splits the 24 hours of a day by category.
type Counts struct {
	Productive   int `json:"productive"`
	Unproductive int `json:"unproductive"`
	Neutral      int `json:"neutral"`
}

// DayCounts counts productive and unproductive hours; every other hour is
// neutral, so the three always sum to 24.
func DayCounts(day models.DayRecord) Counts {
	var c Counts
	for h := 0; h < 24; h++ {
		switch day.Slot(h).Category {
		case models.CategoryProductive:
			c.Productive++
		case models.CategoryUnproductive:
			c.Unproductive++
		}
	}
	c.Neutral = 24 - c.Productive - c.Unproductive
	return c
}

// HasProductive reports whether any hour of the day is productive.
func HasProductive(day models.DayRecord) bool {
	for h := 0; h < 24; h++ {
		if day.Slot(h).Category == models.CategoryProductive {
			return true
		}
	}
	return false
}

// Summarize builds the aggregation view of a day. Unlike DayCounts, only
// slots with text are counted.
func Summarize(date string, day models.DayRecord) models.DaySummary {
	s := models.DaySummary{Date: date, Activities: []models.ActivityEntry{}}
	for h := 0; h < 24; h++ {
		slot, ok := day[models.HourKey(h)]
		if !ok || slot.IsEmpty() {
			continue
		}
		switch slot.Category {
		case models.CategoryProductive:
			s.Productive++
		case models.CategoryUnproductive:
			s.Unproductive++
		default:
			s.Neutral++
		}
		s.Activities = append(s.Activities, models.ActivityEntry{
			Date:     date,
			Hour:     models.HourKey(h),
			Text:     slot.Text,
			Category: slot.Category,
		})
	}
	return s
}

// LoadRange summarizes every date from start to end inclusive. Dates with no
// stored record yield an empty summary.
func LoadRange(ctx context.Context, r DayReader, user string, start, end time.Time) ([]models.DaySummary, error) {
	dates := utils.DateRange(start, end)
	out := make([]models.DaySummary, 0, len(dates))
	for _, date := range dates {
		day, ok, err := r.GetDay(ctx, user, date)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, models.DaySummary{Date: date, Activities: []models.ActivityEntry{}})
			continue
		}
		out = append(out, Summarize(date, day))
	}
	return out, nil
}

// Totals sums a range of summaries.
type Totals struct {
	Productive   int `json:"productive"`
	Unproductive int `json:"unproductive"`
	Neutral      int `json:"neutral"`
	Total        int `json:"total"`
}

func Sum(days []models.DaySummary) Totals {
	var t Totals
	for _, d := range days {
		t.Productive += d.Productive
		t.Unproductive += d.Unproductive
		t.Neutral += d.Neutral
	}
	t.Total = t.Productive + t.Unproductive + t.Neutral
	return t
}

// AverageProductivity is the share of logged hours that were productive, in percent.
func AverageProductivity(days []models.DaySummary) float64 {
	t := Sum(days)
	if t.Total == 0 {
		return 0
	}
	return float64(t.Productive) / float64(t.Total) * 100
}
