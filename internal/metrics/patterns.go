package metrics

import (
	"math"
	"sort"

	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/models"
)

// AnalyzeProductivityPatterns rates each hour of the day across the range.
// Hours are graded against cut points taken from the sorted distribution of
// the 24 hourly averages, so the grading is relative to the data given.
func AnalyzeProductivityPatterns(days []models.DaySummary) []models.HourPattern {
	var productive, total [24]int
	for _, d := range days {
		for _, a := range d.Activities {
			h, err := models.ParseHourKey(a.Hour)
			if err != nil {
				continue
			}
			total[h]++
			if a.Category == models.CategoryProductive {
				productive[h]++
			}
		}
	}

	patterns := make([]models.HourPattern, 24)
	scores := make([]float64, 24)
	for h := 0; h < 24; h++ {
		avg := 0.0
		if total[h] > 0 {
			avg = float64(productive[h]) / float64(total[h]) * 100
		}
		scores[h] = avg
		patterns[h] = models.HourPattern{Hour: h, AverageProductivity: avg, TotalSessions: total[h]}
	}

	peak, good, average := CutPoints(scores)
	for i := range patterns {
		patterns[i].Category = classify(patterns[i].AverageProductivity, peak, good, average)
	}
	return patterns
}

// CutPoints returns the peak, good and average thresholds for a set of
// hourly scores. A cut point of zero falls back to a fixed threshold.
func CutPoints(scores []float64) (peak, good, average float64) {
	if len(scores) == 0 {
		return constants.FallbackPeakThreshold, constants.FallbackGoodThreshold, constants.FallbackAverageThreshold
	}
	sorted := append([]float64(nil), scores...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	at := func(p, fallback float64) float64 {
		v := sorted[int(math.Floor(float64(len(sorted))*p))]
		if v == 0 {
			return fallback
		}
		return v
	}
	return at(constants.PeakPercentile, constants.FallbackPeakThreshold),
		at(constants.GoodPercentile, constants.FallbackGoodThreshold),
		at(constants.AveragePercentile, constants.FallbackAverageThreshold)
}

func classify(v, peak, good, average float64) models.PatternCategory {
	switch {
	case v >= peak:
		return models.PatternPeak
	case v >= good:
		return models.PatternGood
	case v >= average:
		return models.PatternAverage
	default:
		return models.PatternLow
	}
}

// ProductivityVariance is the population standard deviation of the daily
// productivity rate (percent) over days that have anything logged.
func ProductivityVariance(days []models.DaySummary) float64 {
	var rates []float64
	for _, d := range days {
		if d.Total() > 0 {
			rates = append(rates, float64(d.Productive)/float64(d.Total())*100)
		}
	}
	if len(rates) < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range rates {
		mean += r
	}
	mean /= float64(len(rates))
	sq := 0.0
	for _, r := range rates {
		sq += (r - mean) * (r - mean)
	}
	return math.Sqrt(sq / float64(len(rates)))
}

type Consistency string

const (
	ConsistencyStable       Consistency = "stable"
	ConsistencyModerate     Consistency = "moderate"
	ConsistencyInconsistent Consistency = "inconsistent"
)

// ClassifyConsistency grades a ProductivityVariance value.
func ClassifyConsistency(stddev float64) Consistency {
	switch {
	case stddev < constants.StableVarianceMax:
		return ConsistencyStable
	case stddev > constants.InconsistentVariance:
		return ConsistencyInconsistent
	default:
		return ConsistencyModerate
	}
}
