package insights

import (
	"context"
	"time"

	"github.com/julianstephens/waketrack/internal/metrics"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

// Report bundles everything the insight screens show for one window.
type Report struct {
	From            string               `json:"from"`
	To              string               `json:"to"`
	Recommendations []models.Insight     `json:"recommendations"`
	Advanced        []models.Insight     `json:"advanced"`
	Patterns        []models.HourPattern `json:"patterns"`
	Schedule        []string             `json:"schedule"`
}

// Build loads the window days ending at now, plus the window before it for
// period-over-period comparison.
func Build(ctx context.Context, r metrics.DayReader, user string, now time.Time, window int, dailyGoal float64) (Report, error) {
	if window < 1 {
		window = 1
	}
	end := utils.StartOfDay(now)
	start := end.AddDate(0, 0, -(window - 1))

	current, err := metrics.LoadRange(ctx, r, user, start, end)
	if err != nil {
		return Report{}, err
	}
	previous, err := metrics.LoadRange(ctx, r, user, start.AddDate(0, 0, -window), start.AddDate(0, 0, -1))
	if err != nil {
		return Report{}, err
	}

	patterns := metrics.AnalyzeProductivityPatterns(current)
	return Report{
		From:            utils.FormatDate(start),
		To:              utils.FormatDate(end),
		Recommendations: GenerateAIRecommendations(current, dailyGoal),
		Advanced:        GenerateAdvancedInsights(current, previous, patterns),
		Patterns:        patterns,
		Schedule:        SuggestOptimalSchedule(current),
	}, nil
}
