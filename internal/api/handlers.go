package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/julianstephens/waketrack/internal/activity"
	"github.com/julianstephens/waketrack/internal/classifier"
	"github.com/julianstephens/waketrack/internal/constants"
	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/gamification"
	"github.com/julianstephens/waketrack/internal/goals"
	"github.com/julianstephens/waketrack/internal/insights"
	"github.com/julianstephens/waketrack/internal/metrics"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/utils"
)

type dayResponse struct {
	Date   string           `json:"date"`
	Slots  models.DayRecord `json:"slots"`
	Counts metrics.Counts   `json:"counts"`
}

type slotRequest struct {
	Text string `json:"text"`
	// Category is optional; the classifier picks one when it is empty.
	Category string `json:"category"`
}

type slotResponse struct {
	dayResponse
	Award *gamification.AwardResult `json:"award,omitempty"`
}

type statsResponse struct {
	From                string              `json:"from"`
	To                  string              `json:"to"`
	Totals              metrics.Totals      `json:"totals"`
	AverageProductivity float64             `json:"averageProductivity"`
	Days                []models.DaySummary `json:"days"`
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	day, err := s.store.LoadDay(r.Context(), vars["user"], vars["date"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dayResponse{Date: vars["date"], Slots: day, Counts: metrics.DayCounts(day)})
}

func (s *Server) handlePutDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var in models.DayRecord
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, wterrors.Validation("body", "invalid day record: %v", err))
		return
	}
	day, err := normalizeDay(in)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.SaveDay(r.Context(), vars["user"], vars["date"], day); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dayResponse{Date: vars["date"], Slots: day, Counts: metrics.DayCounts(day)})
}

// normalizeDay rewrites hour keys to "HH:00" and rejects unknown categories.
func normalizeDay(in models.DayRecord) (models.DayRecord, error) {
	day := models.EmptyDay()
	for key, slot := range in {
		h, err := models.ParseHourKey(key)
		if err != nil {
			return nil, wterrors.Validation("hour", "%v", err)
		}
		cat, err := models.ParseCategoryStrict(string(slot.Category))
		if err != nil {
			return nil, wterrors.Validation("category", "%v", err)
		}
		day[models.HourKey(h)] = models.ActivitySlot{Text: slot.Text, Category: cat}
	}
	return day, nil
}

func (s *Server) handleDeleteDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.store.ClearDay(r.Context(), vars["user"], vars["date"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePutSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx := r.Context()
	user, date := vars["user"], vars["date"]

	hour, err := models.ParseHourKey(vars["hour"])
	if err != nil {
		writeError(w, wterrors.Validation("hour", "%v", err))
		return
	}
	var in slotRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, wterrors.Validation("body", "invalid slot: %v", err))
		return
	}
	cat := classifier.Categorize(in.Text)
	if in.Category != "" {
		if cat, err = models.ParseCategoryStrict(in.Category); err != nil {
			writeError(w, wterrors.Validation("category", "%v", err))
			return
		}
	}

	before, err := s.store.LoadDay(ctx, user, date)
	if err != nil {
		writeError(w, err)
		return
	}
	day, err := s.store.SetSlot(ctx, user, date, hour, in.Text, cat)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := slotResponse{dayResponse: dayResponse{Date: date, Slots: day, Counts: metrics.DayCounts(day)}}
	key := models.HourKey(hour)
	award, ok, err := s.game.AwardForSlot(ctx, user, key, before[key], day[key], s.opts.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	if ok {
		resp.Award = &award
	}
	writeJSON(w, http.StatusOK, resp)
}

// dateRange reads from/to query parameters, defaulting to the last seven days.
func (s *Server) dateRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	loc := s.opts.Now().Location()
	to := utils.StartOfDay(s.opts.Now())
	if v := q.Get("to"); v != "" {
		t, err := utils.ParseDate(v, loc)
		if err != nil {
			return time.Time{}, time.Time{}, wterrors.Validation("to", "%v", err)
		}
		to = t
	}
	from := to.AddDate(0, 0, -(constants.DefaultInsightDays - 1))
	if v := q.Get("from"); v != "" {
		t, err := utils.ParseDate(v, loc)
		if err != nil {
			return time.Time{}, time.Time{}, wterrors.Validation("from", "%v", err)
		}
		from = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, wterrors.Validation("to", "must not precede from")
	}
	return from, to, nil
}

func (s *Server) loadRange(r *http.Request) ([]models.DaySummary, time.Time, time.Time, error) {
	from, to, err := s.dateRange(r)
	if err != nil {
		return nil, from, to, err
	}
	days, err := metrics.LoadRange(r.Context(), s.repo, mux.Vars(r)["user"], from, to)
	return days, from, to, err
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	days, from, to, err := s.loadRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		From:                utils.FormatDate(from),
		To:                  utils.FormatDate(to),
		Totals:              metrics.Sum(days),
		AverageProductivity: metrics.AverageProductivity(days),
		Days:                days,
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(metrics.ByWeek)
	}
	g, err := metrics.ParseGranularity(period)
	if err != nil {
		writeError(w, wterrors.Validation("period", "%v", err))
		return
	}
	days, _, _, err := s.loadRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics.GenerateTrendData(days, g))
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	days, _, _, err := s.loadRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics.AnalyzeProductivityPatterns(days))
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := metrics.Streak(r.Context(), s.repo, mux.Vars(r)["user"], s.opts.Now(), constants.StreakLookbackDays)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := activity.AnyHour()
	f.Term = q.Get("q")
	f.From = q.Get("from")
	f.To = q.Get("to")
	if v := q.Get("category"); v != "" {
		cat, err := models.ParseCategoryStrict(v)
		if err != nil {
			writeError(w, wterrors.Validation("category", "%v", err))
			return
		}
		f.Category = cat
	}
	for name, dst := range map[string]*int{"hourFrom": &f.HourFrom, "hourTo": &f.HourTo} {
		if v := q.Get(name); v != "" {
			h, err := models.ParseHourKey(v)
			if err != nil {
				writeError(w, wterrors.Validation(name, "%v", err))
				return
			}
			*dst = h
		}
	}
	res, err := s.store.Search(r.Context(), mux.Vars(r)["user"], f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGamification(w http.ResponseWriter, r *http.Request) {
	res, err := s.game.Refresh(r.Context(), mux.Vars(r)["user"], s.opts.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Data)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := mux.Vars(r)["user"]

	window := s.opts.InsightDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, wterrors.Validation("days", "must be a positive integer"))
			return
		}
		window = n
	}
	gs, err := s.repo.GetGoals(ctx, user)
	if err != nil {
		writeError(w, err)
		return
	}
	rep, err := insights.Build(ctx, s.repo, user, s.opts.Now(), window, goals.DailyProductiveTarget(gs, s.opts.DailyGoal))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Category models.Category   `json:"category"`
	Scores   classifier.Scores `json:"scores"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var in classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, wterrors.Validation("body", "invalid request: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, classifyResponse{
		Category: classifier.Categorize(in.Text),
		Scores:   classifier.Score(in.Text),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	now := s.opts.Now()
	doc, err := s.store.ExportAll(r.Context(), user, now)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+activity.ExportFileName(user, now)+`"`)
	if err := activity.WriteExport(w, doc); err != nil {
		writeError(w, err)
	}
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	doc, err := activity.ReadImport(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := s.store.ImportAll(r.Context(), mux.Vars(r)["user"], doc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Imported: n})
}
