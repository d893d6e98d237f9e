// Package classifier guesses an activity's category from its text.
package classifier

import (
	"strings"

	"github.com/julianstephens/waketrack/internal/models"
)

var productiveKeywords = []string{
	"work", "coding", "programming", "meeting", "study", "learning", "reading",
	"writing", "exercise", "workout", "gym", "planning", "project", "research",
	"analysis", "design", "development", "training", "course", "practice",
	"skill", "productive", "focus", "meditation", "mindfulness", "goal",
	"organize", "clean", "prepare", "review",
}

var unproductiveKeywords = []string{
	"social media", "instagram", "tiktok", "facebook", "twitter", "youtube",
	"netflix", "tv", "gaming", "procrastinate", "procrastination", "scrolling",
	"browse", "waste", "distraction", "gossip", "argue", "complain", "worry",
	"overthink", "binge", "phone", "mobile", "distracted", "aimless",
	"mindless", "lazy", "idle",
}

var neutralKeywords = []string{
	"eat", "lunch", "dinner", "breakfast", "meal", "commute", "travel", "sleep",
	"rest", "break", "walk", "shower", "personal", "chores", "shopping",
	"errands", "family", "friends", "social", "relax", "leisure", "hobby",
	"maintenance",
}

// Scores counts keyword hits per category.
type Scores struct {
	Productive   int `json:"productive"`
	Unproductive int `json:"unproductive"`
	Neutral      int `json:"neutral"`
}

// Score counts how many keywords of each list appear in text as substrings.
func Score(text string) Scores {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return Scores{}
	}
	return Scores{
		Productive:   countHits(lower, productiveKeywords),
		Unproductive: countHits(lower, unproductiveKeywords),
		Neutral:      countHits(lower, neutralKeywords),
	}
}

// Categorize returns the category with the strictly highest score. Ties and
// text with no hits are neutral.
func Categorize(text string) models.Category {
	s := Score(text)
	switch {
	case s.Productive > s.Unproductive && s.Productive > s.Neutral:
		return models.CategoryProductive
	case s.Unproductive > s.Productive && s.Unproductive > s.Neutral:
		return models.CategoryUnproductive
	default:
		return models.CategoryNeutral
	}
}

func countHits(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
