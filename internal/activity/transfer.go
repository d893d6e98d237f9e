package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/julianstephens/waketrack/internal/constants"
	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

// ExportDocument is the portable form of one user's data.
type ExportDocument struct {
	Activities   map[string]models.DayRecord `json:"activities"`
	Gamification *models.GamificationData    `json:"gamification"`
	Version      string                      `json:"version"`
	ExportDate   time.Time                   `json:"exportDate"`
}

// ExportAll collects every day record and the gamification record of user.
func (s *Store) ExportAll(ctx context.Context, user string, now time.Time) (ExportDocument, error) {
	doc := ExportDocument{
		Activities: make(map[string]models.DayRecord),
		Version:    constants.ExportVersion,
		ExportDate: now.UTC(),
	}
	dates, err := s.repo.DayDates(ctx, user)
	if err != nil {
		return ExportDocument{}, err
	}
	for _, date := range dates {
		day, ok, err := s.repo.GetDay(ctx, user, date)
		if err != nil {
			return ExportDocument{}, err
		}
		if ok {
			doc.Activities[date] = day
		}
	}
	g, ok, err := s.repo.GetGamification(ctx, user)
	if err != nil {
		return ExportDocument{}, err
	}
	if ok {
		doc.Gamification = &g
	}
	return doc, nil
}

// ExportFileName is the default file name for an export written on now.
func ExportFileName(user string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s.json", constants.AppName, user, utils.FormatDate(now))
}

// WriteExport encodes doc as indented JSON.
func WriteExport(w io.Writer, doc ExportDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadImport decodes and checks an export document. Anything that is not a
// document with activities and a version is a *errors.FormatError.
func ReadImport(r io.Reader) (ExportDocument, error) {
	var doc ExportDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ExportDocument{}, &wterrors.FormatError{Reason: err.Error()}
	}
	if err := checkImport(doc); err != nil {
		return ExportDocument{}, err
	}
	return doc, nil
}

func checkImport(doc ExportDocument) error {
	if doc.Activities == nil {
		return &wterrors.FormatError{Reason: "missing activities"}
	}
	if doc.Version == "" {
		return &wterrors.FormatError{Reason: "missing version"}
	}
	for date := range doc.Activities {
		if !utils.ValidateDate(date) {
			return &wterrors.FormatError{Reason: fmt.Sprintf("invalid activity date %q", date)}
		}
	}
	return nil
}

// ImportAll writes every day of doc, and its gamification record when
// present, over the existing data of user. The document is checked in full
// before the first write. It returns the number of days written.
func (s *Store) ImportAll(ctx context.Context, user string, doc ExportDocument) (int, error) {
	if err := checkImport(doc); err != nil {
		return 0, err
	}
	dates := make([]string, 0, len(doc.Activities))
	for date := range doc.Activities {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for i, date := range dates {
		if err := s.repo.PutDay(ctx, user, date, doc.Activities[date]); err != nil {
			return i, err
		}
	}
	if doc.Gamification != nil {
		if err := s.repo.PutGamification(ctx, user, *doc.Gamification); err != nil {
			return len(dates), err
		}
	}
	logger.Info("Imported data", "user", user, "days", len(dates), "version", doc.Version)
	return len(dates), nil
}
