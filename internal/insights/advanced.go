package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/metrics"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

// GenerateAdvancedInsights compares the current period with the previous
// one and reads the hourly patterns of the current period. Insights come
// back in rule order and are not capped.
func GenerateAdvancedInsights(current, previous []models.DaySummary, patterns []models.HourPattern) []models.Insight {
	var out []models.Insight

	change := metrics.AverageProductivity(current) - metrics.AverageProductivity(previous)
	if change > constants.PeriodChangeThreshold || change < -constants.PeriodChangeThreshold {
		in := models.Insight{
			Type:        models.InsightPositive,
			Title:       "Productivity Improved!",
			Description: fmt.Sprintf("Your productivity increased by %.1f%% compared to the previous period.", change),
			Metric:      fmt.Sprintf("+%.1f%%", change),
			Change:      change,
		}
		if change < 0 {
			in.Type = models.InsightWarning
			in.Title = "Productivity Declined"
			in.Description = fmt.Sprintf("Your productivity decreased by %.1f%% compared to the previous period.", -change)
			in.Metric = fmt.Sprintf("%.1f%%", change)
		}
		out = append(out, in)
	}

	if best, ok := bestPeakHour(patterns); ok {
		out = append(out, models.Insight{
			Type:        models.InsightPositive,
			Title:       "Peak Productivity Hours",
			Description: fmt.Sprintf("You're most productive around %s with %.1f%% productivity rate.", utils.FormatHour(best.Hour), best.AverageProductivity),
			Metric:      utils.FormatHour(best.Hour),
		})
	}

	if worst, ok := worstLowHour(patterns); ok {
		out = append(out, models.Insight{
			Type:        models.InsightWarning,
			Title:       "Improvement Opportunity",
			Description: fmt.Sprintf("Consider optimizing your schedule around %s when productivity tends to be lower.", utils.FormatHour(worst.Hour)),
			Metric:      utils.FormatHour(worst.Hour),
		})
	}

	switch metrics.ClassifyConsistency(metrics.ProductivityVariance(current)) {
	case metrics.ConsistencyStable:
		out = append(out, models.Insight{
			Type:        models.InsightPositive,
			Title:       "Consistent Performance",
			Description: "Your productivity levels are consistently stable across different days.",
			Metric:      "Stable",
		})
	case metrics.ConsistencyInconsistent:
		out = append(out, models.Insight{
			Type:        models.InsightWarning,
			Title:       "Inconsistent Patterns",
			Description: "Your productivity varies significantly. Consider establishing more regular routines.",
			Metric:      "Variable",
		})
	}

	if len(current) > 0 {
		perDay := float64(metrics.Sum(current).Total) / float64(len(current))
		switch {
		case perDay < constants.LowLoggingPerDay:
			out = append(out, models.Insight{
				Type:        models.InsightNeutral,
				Title:       "Low Activity Logging",
				Description: "Consider logging more activities throughout the day for better insights.",
				Metric:      fmt.Sprintf("%.1f/day", perDay),
			})
		case perDay > constants.HighLoggingPerDay:
			out = append(out, models.Insight{
				Type:        models.InsightPositive,
				Title:       "Comprehensive Tracking",
				Description: "Great job maintaining detailed activity logs!",
				Metric:      fmt.Sprintf("%.1f/day", perDay),
			})
		}
	}
	return out
}

func bestPeakHour(patterns []models.HourPattern) (models.HourPattern, bool) {
	var best models.HourPattern
	found := false
	for _, p := range patterns {
		if p.Category != models.PatternPeak || p.TotalSessions == 0 {
			continue
		}
		if !found || p.AverageProductivity > best.AverageProductivity {
			best, found = p, true
		}
	}
	return best, found
}

func worstLowHour(patterns []models.HourPattern) (models.HourPattern, bool) {
	var worst models.HourPattern
	found := false
	for _, p := range patterns {
		if p.Category != models.PatternLow || p.TotalSessions <= 2 {
			continue
		}
		if !found || p.AverageProductivity < worst.AverageProductivity {
			worst, found = p, true
		}
	}
	return worst, found
}

var scheduleAdvice = []string{
	"Block your most productive hours for deep work",
	"Schedule breaks between high-intensity activities",
	"Reserve low-energy times for administrative tasks",
	"Use the 2-hour rule: maximum focus time before breaks",
}

// SuggestOptimalSchedule names up to four hours with the most productive
// entries, followed by general scheduling advice.
func SuggestOptimalSchedule(days []models.DaySummary) []string {
	var counts [24]int
	for _, d := range days {
		for _, a := range d.Activities {
			if a.Category != models.CategoryProductive {
				continue
			}
			if h, err := models.ParseHourKey(a.Hour); err == nil {
				counts[h]++
			}
		}
	}

	var hours []int
	for h, n := range counts {
		if n > 0 {
			hours = append(hours, h)
		}
	}
	sort.SliceStable(hours, func(i, j int) bool { return counts[hours[i]] > counts[hours[j]] })
	if len(hours) > 4 {
		hours = hours[:4]
	}

	out := make([]string, 0, len(scheduleAdvice)+1)
	if len(hours) > 0 {
		names := make([]string, len(hours))
		for i, h := range hours {
			names[i] = utils.FormatHour(h)
		}
		out = append(out, "Your peak hours are: "+strings.Join(names, ", "))
	}
	return append(out, scheduleAdvice...)
}
