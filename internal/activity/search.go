package activity

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/julianstephens/waketrack/internal/models"
)

// Filter narrows a search. Zero values match everything. Hour bounds are
// inclusive; use -1 to leave one open.
type Filter struct {
	Term     string
	Category models.Category
	From     string
	To       string
	HourFrom int
	HourTo   int
}

// AnyHour returns a filter with both hour bounds open.
func AnyHour() Filter {
	return Filter{HourFrom: -1, HourTo: -1}
}

type SearchStats struct {
	Total            int `json:"total"`
	Productive       int `json:"productive"`
	Unproductive     int `json:"unproductive"`
	Neutral          int `json:"neutral"`
	ProductivityRate int `json:"productivityRate"`
}

type CommonActivity struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type SearchResult struct {
	Entries []models.ActivityEntry `json:"entries"`
	Stats   SearchStats            `json:"stats"`
	Common  []CommonActivity       `json:"common"`
	// Scanned is the number of entries before filtering.
	Scanned int `json:"scanned"`
}

func (f Filter) match(e models.ActivityEntry, hour int) bool {
	if f.Term != "" && !strings.Contains(strings.ToLower(e.Text), strings.ToLower(f.Term)) {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	if f.HourFrom >= 0 && hour < f.HourFrom {
		return false
	}
	if f.HourTo >= 0 && hour > f.HourTo {
		return false
	}
	return true
}

// Search scans every stored day of user. Entries come back newest date
// first and latest hour first within a day.
func (s *Store) Search(ctx context.Context, user string, f Filter) (SearchResult, error) {
	dates, err := s.repo.DayDates(ctx, user)
	if err != nil {
		return SearchResult{}, err
	}

	type hit struct {
		entry models.ActivityEntry
		hour  int
	}
	var hits []hit
	res := SearchResult{Entries: []models.ActivityEntry{}}
	for _, date := range dates {
		day, ok, err := s.repo.GetDay(ctx, user, date)
		if err != nil {
			return SearchResult{}, err
		}
		if !ok {
			continue
		}
		for key, slot := range day {
			if slot.IsEmpty() {
				continue
			}
			hour, err := models.ParseHourKey(key)
			if err != nil {
				continue
			}
			res.Scanned++
			e := models.ActivityEntry{Date: date, Hour: models.HourKey(hour), Text: slot.Text, Category: slot.Category}
			if f.match(e, hour) {
				hits = append(hits, hit{entry: e, hour: hour})
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].entry.Date != hits[j].entry.Date {
			return hits[i].entry.Date > hits[j].entry.Date
		}
		return hits[i].hour > hits[j].hour
	})

	counts := make(map[string]int)
	for _, h := range hits {
		res.Entries = append(res.Entries, h.entry)
		switch h.entry.Category {
		case models.CategoryProductive:
			res.Stats.Productive++
		case models.CategoryUnproductive:
			res.Stats.Unproductive++
		default:
			res.Stats.Neutral++
		}
		counts[strings.ToLower(strings.TrimSpace(h.entry.Text))]++
	}
	res.Stats.Total = len(hits)
	if res.Stats.Total > 0 {
		res.Stats.ProductivityRate = int(math.Round(float64(res.Stats.Productive) / float64(res.Stats.Total) * 100))
	}
	res.Common = topActivities(counts, 10)
	return res, nil
}

// topActivities orders by count, then text, and keeps the first n.
func topActivities(counts map[string]int, n int) []CommonActivity {
	out := make([]CommonActivity, 0, len(counts))
	for text, c := range counts {
		out = append(out, CommonActivity{Text: text, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
