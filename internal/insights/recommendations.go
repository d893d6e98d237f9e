// Package insights turns summarized history into short, ranked suggestions.
package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/models"
)

var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

// GenerateAIRecommendations applies the recommendation rules to recent days.
// dailyGoal is the target productive hours per day; zero disables the goal
// rule. The result is ordered high to medium to low priority, rule order
// kept within a priority, and holds at most constants.MaxInsights entries.
func GenerateAIRecommendations(days []models.DaySummary, dailyGoal float64) []models.Insight {
	var all []models.ActivityEntry
	var logged []models.DaySummary
	for _, d := range days {
		all = append(all, d.Activities...)
		if d.Total() > 0 {
			logged = append(logged, d)
		}
	}

	if len(all) == 0 {
		return []models.Insight{{
			Type:        models.InsightTip,
			Title:       "Start Tracking Your Activities",
			Description: "Begin by logging your daily activities to receive personalized AI insights and productivity recommendations.",
			Priority:    models.PriorityHigh,
		}}
	}

	var productive, unproductive int
	for _, a := range all {
		switch a.Category {
		case models.CategoryProductive:
			productive++
		case models.CategoryUnproductive:
			unproductive++
		}
	}
	ratio := float64(productive) / float64(len(all))

	var out []models.Insight
	add := func(t models.InsightType, p models.Priority, title, desc string) {
		out = append(out, models.Insight{Type: t, Title: title, Description: desc, Priority: p})
	}

	switch {
	case ratio > constants.StrengthRatio:
		add(models.InsightStrength, models.PriorityLow, "Excellent Productivity Level!",
			fmt.Sprintf("You're maintaining %.0f%% productive activities. Keep up the great work!", ratio*100))
	case ratio < constants.ImprovementRatio:
		add(models.InsightImprovement, models.PriorityHigh, "Boost Your Productivity",
			fmt.Sprintf("Your current productivity rate is %.0f%%. Try scheduling more focused work blocks.", ratio*100))
	}

	if unproductive > productive {
		add(models.InsightWarning, models.PriorityHigh, "Reduce Distracting Activities",
			"You have more unproductive than productive activities. Consider using app blockers or setting specific times for leisure.")
	}

	morning := windowRatio(all, constants.MorningStartHour, constants.MorningEndHour)
	afternoon := windowRatio(all, constants.AfternoonStartHour, constants.AfternoonEndHour)
	switch {
	case morning > afternoon+constants.TimeOfDayRatioGap:
		add(models.InsightPattern, models.PriorityMedium, "You're a Morning Person!",
			"Your productivity peaks in the morning. Schedule your most important tasks between 6-11 AM.")
	case afternoon > morning+constants.TimeOfDayRatioGap:
		add(models.InsightPattern, models.PriorityMedium, "Afternoon Productivity Peak",
			"You work best in the afternoon. Consider blocking afternoon time for your most challenging tasks.")
	}

	if dailyGoal > 0 && len(logged) > 0 {
		avg := float64(productive) / float64(len(logged))
		if avg < dailyGoal {
			add(models.InsightGoal, models.PriorityHigh, "Daily Goal Gap",
				fmt.Sprintf("You need %.1f more productive hours daily to reach your goal. Try time-blocking techniques.", dailyGoal-avg))
		}
	}

	distinct := make(map[string]struct{})
	for _, a := range all {
		distinct[strings.ToLower(strings.TrimSpace(a.Text))] = struct{}{}
	}
	if len(distinct) < constants.MinDistinctActivities {
		add(models.InsightTip, models.PriorityMedium, "Diversify Your Activities",
			"Consider adding variety to your routine. Different types of productive activities can prevent burnout.")
	}

	if len(logged) >= 3 && dailyProductiveVariance(logged) > constants.ConsistencyVarianceCap {
		add(models.InsightTip, models.PriorityMedium, "Build Consistency",
			"Your productivity varies significantly day-to-day. Try establishing a routine for more consistent results.")
	}

	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank[out[i].Priority] > priorityRank[out[j].Priority]
	})
	if len(out) > constants.MaxInsights {
		out = out[:constants.MaxInsights]
	}
	return out
}

// windowRatio is the productive share of activities logged between the
// from and to hours inclusive. An empty window scores 0.
func windowRatio(all []models.ActivityEntry, from, to int) float64 {
	var n, productive int
	for _, a := range all {
		h, err := models.ParseHourKey(a.Hour)
		if err != nil || h < from || h > to {
			continue
		}
		n++
		if a.Category == models.CategoryProductive {
			productive++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(productive) / float64(n)
}

// dailyProductiveVariance is the population variance of productive hours per day.
func dailyProductiveVariance(days []models.DaySummary) float64 {
	mean := 0.0
	for _, d := range days {
		mean += float64(d.Productive)
	}
	mean /= float64(len(days))
	v := 0.0
	for _, d := range days {
		diff := float64(d.Productive) - mean
		v += diff * diff
	}
	return v / float64(len(days))
}
