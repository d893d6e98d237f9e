package classifier

import (
	"testing"

	"github.com/julianstephens/waketrack/internal/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		text string
		want models.Category
	}{
		{"", models.CategoryNeutral},
		{"   ", models.CategoryNeutral},
		{"team meeting", models.CategoryProductive},
		{"watching netflix", models.CategoryUnproductive},
		{"lunch break", models.CategoryNeutral},
		{"Coding the API", models.CategoryProductive},
		{"SCROLLING instagram", models.CategoryUnproductive},
		{"dentist", models.CategoryNeutral},
		// one productive hit vs one neutral hit is a tie
		{"walk to the gym", models.CategoryNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Categorize(tt.text); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q (scores %+v)", tt.text, got, tt.want, Score(tt.text))
			}
		})
	}
}

func TestScoreCountsEachKeywordOnce(t *testing.T) {
	s := Score("work work work")
	if s.Productive != 1 {
		t.Errorf("Score().Productive = %d, want 1", s.Productive)
	}
}
