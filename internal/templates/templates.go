// Package templates saves a day's activities under a name and stamps them
// onto other days.
package templates

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/utils"
)

var ErrNotFound = errors.New("template not found")

type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, user string) ([]models.ActivityTemplate, error) {
	return s.repo.GetTemplates(ctx, user)
}

// Save stores the non-empty slots of day as a new template.
func (s *Service) Save(ctx context.Context, user, name string, day models.DayRecord, now time.Time) (models.ActivityTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ActivityTemplate{}, wterrors.Validation("name", "must not be empty")
	}

	var acts []models.TemplateActivity
	for key, slot := range day {
		if slot.IsEmpty() {
			continue
		}
		if _, err := models.ParseHourKey(key); err != nil {
			continue
		}
		acts = append(acts, models.TemplateActivity{Hour: key, Text: slot.Text, Category: slot.Category})
	}
	if len(acts) == 0 {
		return models.ActivityTemplate{}, wterrors.Validation("day", "no activities found to save as template")
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i].Hour < acts[j].Hour })

	existing, err := s.repo.GetTemplates(ctx, user)
	if err != nil {
		return models.ActivityTemplate{}, err
	}
	tpl := models.ActivityTemplate{ID: uuid.New().String(), Name: name, Activities: acts, CreatedAt: now.UTC()}
	if err := s.repo.PutTemplates(ctx, user, append(existing, tpl)); err != nil {
		return models.ActivityTemplate{}, err
	}
	return tpl, nil
}

// Find looks a template up by id, or by name when no id matches.
func (s *Service) Find(ctx context.Context, user, ref string) (models.ActivityTemplate, error) {
	all, err := s.repo.GetTemplates(ctx, user)
	if err != nil {
		return models.ActivityTemplate{}, err
	}
	for _, t := range all {
		if t.ID == ref {
			return t, nil
		}
	}
	for _, t := range all {
		if strings.EqualFold(t.Name, ref) {
			return t, nil
		}
	}
	return models.ActivityTemplate{}, ErrNotFound
}

// Apply overwrites date with the template's activities.
func (s *Service) Apply(ctx context.Context, user, ref, date string) (models.ActivityTemplate, error) {
	if !utils.ValidateDate(date) {
		return models.ActivityTemplate{}, wterrors.Validation("date", "invalid date %q", date)
	}
	tpl, err := s.Find(ctx, user, ref)
	if err != nil {
		return models.ActivityTemplate{}, err
	}
	day := models.EmptyDay()
	for _, a := range tpl.Activities {
		h, err := models.ParseHourKey(a.Hour)
		if err != nil {
			continue
		}
		day[models.HourKey(h)] = models.ActivitySlot{Text: a.Text, Category: a.Category}
	}
	if err := s.repo.PutDay(ctx, user, date, day); err != nil {
		return models.ActivityTemplate{}, err
	}
	return tpl, nil
}

func (s *Service) Delete(ctx context.Context, user, ref string) error {
	tpl, err := s.Find(ctx, user, ref)
	if err != nil {
		return err
	}
	all, err := s.repo.GetTemplates(ctx, user)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, t := range all {
		if t.ID != tpl.ID {
			kept = append(kept, t)
		}
	}
	return s.repo.PutTemplates(ctx, user, kept)
}
