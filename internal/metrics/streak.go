package metrics

import (
	"context"
	"time"

	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

// Streak walks back from anchor over lookback days. A day qualifies when it
// has at least one productive hour. Current is the unbroken run that starts
// at the anchor itself, so an anchor without productive hours gives 0.
// Longest is the longest run anywhere in the window.
func Streak(ctx context.Context, r DayReader, user string, anchor time.Time, lookback int) (models.Streak, error) {
	var st models.Streak
	run := 0
	open := true
	for i := 0; i < lookback; i++ {
		date := utils.FormatDate(anchor.AddDate(0, 0, -i))
		day, ok, err := r.GetDay(ctx, user, date)
		if err != nil {
			return models.Streak{}, err
		}
		if ok && HasProductive(day) {
			run++
			if open {
				st.Current = run
			}
			if run > st.Longest {
				st.Longest = run
			}
			continue
		}
		open = false
		run = 0
	}
	return st, nil
}

// ConsecutiveLoggedDays counts days back from anchor, within limit, that
// each have at least one slot with text. It stops at the first gap.
func ConsecutiveLoggedDays(ctx context.Context, r DayReader, user string, anchor time.Time, limit int) (int, error) {
	n := 0
	for i := 0; i < limit; i++ {
		day, ok, err := r.GetDay(ctx, user, utils.FormatDate(anchor.AddDate(0, 0, -i)))
		if err != nil {
			return 0, err
		}
		if !ok || !day.HasActivity() {
			break
		}
		n++
	}
	return n, nil
}
