package metrics

import (
	"fmt"
	"time"

	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

type Granularity string

const (
	ByWeek  Granularity = "week"
	ByMonth Granularity = "month"
)

// ParseGranularity accepts "week" or "month".
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case ByWeek, ByMonth:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown period %q (want week or month)", s)
}

// GenerateTrendData buckets days into Monday-start weeks or calendar months,
// in order of first appearance. Days with unparseable dates are skipped.
func GenerateTrendData(days []models.DaySummary, g Granularity) []models.TrendPeriod {
	var order []string
	buckets := make(map[string]*models.TrendPeriod)

	for _, d := range days {
		date, err := time.Parse(constants.DateFormat, d.Date)
		if err != nil {
			continue
		}
		var start time.Time
		var label string
		if g == ByMonth {
			start = utils.MonthStart(date)
			label = start.Format("Jan 2006")
		} else {
			start = utils.WeekStart(date)
			label = "Week of " + start.Format("Jan 2")
		}
		key := utils.FormatDate(start)

		b, ok := buckets[key]
		if !ok {
			b = &models.TrendPeriod{Period: label, Start: key}
			buckets[key] = b
			order = append(order, key)
		}
		b.Productive += d.Productive
		b.Unproductive += d.Unproductive
		b.Neutral += d.Neutral
	}

	out := make([]models.TrendPeriod, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		b.TotalLogged = b.Productive + b.Unproductive + b.Neutral
		if b.TotalLogged > 0 {
			b.ProductivityScore = float64(b.Productive) / float64(b.TotalLogged) * 100
		}
		out = append(out, *b)
	}
	return out
}
