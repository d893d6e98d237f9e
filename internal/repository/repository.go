package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/waketrack/internal/constants"
	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/models"
	"github.com/julianstephens/waketrack/internal/storage"
)

// Repository is the typed view over the key namespace. Reads never surface
// malformed data: a value that fails to parse is logged and read as absent.
// Backend failures come back as *errors.StorageError.
type Repository interface {
	GetDay(ctx context.Context, user, date string) (models.DayRecord, bool, error)
	PutDay(ctx context.Context, user, date string, day models.DayRecord) error
	DeleteDay(ctx context.Context, user, date string) error
	// DayDates lists every date with a stored record for user, ascending.
	DayDates(ctx context.Context, user string) ([]string, error)

	GetGoals(ctx context.Context, user string) ([]models.Goal, error)
	PutGoals(ctx context.Context, user string, goals []models.Goal) error

	GetGamification(ctx context.Context, user string) (models.GamificationData, bool, error)
	PutGamification(ctx context.Context, user string, data models.GamificationData) error
	DeleteGamification(ctx context.Context, user string) error
	GetChallengesCompleted(ctx context.Context, user string) (int, error)
	PutChallengesCompleted(ctx context.Context, user string, n int) error

	GetTemplates(ctx context.Context, user string) ([]models.ActivityTemplate, error)
	PutTemplates(ctx context.Context, user string, templates []models.ActivityTemplate) error

	GetTimeLog(ctx context.Context, user string) (models.TimeLog, error)
	PutTimeLog(ctx context.Context, user string, log models.TimeLog) error

	GetBreakReminders(ctx context.Context, user string) ([]models.BreakReminder, bool, error)
	PutBreakReminders(ctx context.Context, user string, reminders []models.BreakReminder) error
	GetRemindersActive(ctx context.Context, user string) (bool, error)
	PutRemindersActive(ctx context.Context, user string, active bool) error

	GetPomodoroSettings(ctx context.Context, user string) (models.PomodoroSettings, error)
	PutPomodoroSettings(ctx context.Context, user string, s models.PomodoroSettings) error
	GetPomodoroSession(ctx context.Context, user string) (models.PomodoroSession, bool, error)
	PutPomodoroSession(ctx context.Context, user string, s models.PomodoroSession) error

	GetNotificationSettings(ctx context.Context, user string) (models.NotificationSettings, error)
	PutNotificationSettings(ctx context.Context, user string, s models.NotificationSettings) error

	GetCurrentUser(ctx context.Context) (string, error)
	PutCurrentUser(ctx context.Context, user string) error
	DeleteCurrentUser(ctx context.Context) error
}

// KVRepository implements Repository on any storage.KV backend.
type KVRepository struct {
	kv storage.KV
}

func New(kv storage.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

// read loads and decodes key into out. It reports false when the key is
// missing or its value is malformed.
func (r *KVRepository) read(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return false, &wterrors.StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return false, nil
	}
	if err := decode(raw, out); err != nil {
		logger.Warn("Ignoring malformed stored value", "error", &wterrors.ParseError{Key: key, Err: err})
		return false, nil
	}
	return true, nil
}

func (r *KVRepository) write(ctx context.Context, key string, payload interface{}) error {
	value, err := encode(payload)
	if err != nil {
		return &wterrors.StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := r.kv.Set(ctx, key, value); err != nil {
		return &wterrors.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (r *KVRepository) remove(ctx context.Context, key string) error {
	if err := r.kv.Delete(ctx, key); err != nil {
		return &wterrors.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (r *KVRepository) GetDay(ctx context.Context, user, date string) (models.DayRecord, bool, error) {
	var day models.DayRecord
	ok, err := r.read(ctx, DayKey(user, date), &day)
	if err != nil || !ok {
		return nil, false, err
	}
	return sanitizeDay(day), true, nil
}

func (r *KVRepository) PutDay(ctx context.Context, user, date string, day models.DayRecord) error {
	return r.write(ctx, DayKey(user, date), day)
}

func (r *KVRepository) DeleteDay(ctx context.Context, user, date string) error {
	return r.remove(ctx, DayKey(user, date))
}

func (r *KVRepository) DayDates(ctx context.Context, user string) ([]string, error) {
	keys, err := r.kv.Keys(ctx, DayKeyPrefix(user))
	if err != nil {
		return nil, &wterrors.StorageError{Op: "list", Key: DayKeyPrefix(user), Err: err}
	}
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		date, ok := DateFromDayKey(user, k)
		// A user id containing ':' can make another user's keys share the prefix.
		if !ok || strings.Contains(date, ":") {
			continue
		}
		dates = append(dates, date)
	}
	return dates, nil
}

func (r *KVRepository) GetGoals(ctx context.Context, user string) ([]models.Goal, error) {
	var goals []models.Goal
	ok, err := r.read(ctx, userKey(constants.GoalsKeyPrefix, user), &goals)
	if err != nil || !ok {
		return []models.Goal{}, err
	}
	return sanitizeGoals(goals), nil
}

func (r *KVRepository) PutGoals(ctx context.Context, user string, goals []models.Goal) error {
	return r.write(ctx, userKey(constants.GoalsKeyPrefix, user), goals)
}

func (r *KVRepository) GetGamification(ctx context.Context, user string) (models.GamificationData, bool, error) {
	var data models.GamificationData
	ok, err := r.read(ctx, userKey(constants.GamificationKeyPrefix, user), &data)
	if err != nil || !ok {
		return models.GamificationData{}, false, err
	}
	return sanitizeGamification(data), true, nil
}

func (r *KVRepository) PutGamification(ctx context.Context, user string, data models.GamificationData) error {
	return r.write(ctx, userKey(constants.GamificationKeyPrefix, user), data)
}

func (r *KVRepository) DeleteGamification(ctx context.Context, user string) error {
	return r.remove(ctx, userKey(constants.GamificationKeyPrefix, user))
}

// The completed-challenge counter is a bare integer string.
func (r *KVRepository) GetChallengesCompleted(ctx context.Context, user string) (int, error) {
	key := userKey(constants.ChallengesCompletedKeyPrefix, user)
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return 0, &wterrors.StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		logger.Warn("Ignoring malformed stored value", "error", &wterrors.ParseError{Key: key, Err: fmt.Errorf("not a count: %q", raw)})
		return 0, nil
	}
	return n, nil
}

func (r *KVRepository) PutChallengesCompleted(ctx context.Context, user string, n int) error {
	key := userKey(constants.ChallengesCompletedKeyPrefix, user)
	if err := r.kv.Set(ctx, key, strconv.Itoa(n)); err != nil {
		return &wterrors.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (r *KVRepository) GetTemplates(ctx context.Context, user string) ([]models.ActivityTemplate, error) {
	var templates []models.ActivityTemplate
	ok, err := r.read(ctx, userKey(constants.TemplatesKeyPrefix, user), &templates)
	if err != nil || !ok {
		return []models.ActivityTemplate{}, err
	}
	return sanitizeTemplates(templates), nil
}

func (r *KVRepository) PutTemplates(ctx context.Context, user string, templates []models.ActivityTemplate) error {
	return r.write(ctx, userKey(constants.TemplatesKeyPrefix, user), templates)
}

func (r *KVRepository) GetTimeLog(ctx context.Context, user string) (models.TimeLog, error) {
	log := models.TimeLog{}
	ok, err := r.read(ctx, userKey(constants.TimeTrackingKeyPrefix, user), &log)
	if err != nil || !ok || log == nil {
		return models.TimeLog{}, err
	}
	return log, nil
}

func (r *KVRepository) PutTimeLog(ctx context.Context, user string, log models.TimeLog) error {
	return r.write(ctx, userKey(constants.TimeTrackingKeyPrefix, user), log)
}

func (r *KVRepository) GetBreakReminders(ctx context.Context, user string) ([]models.BreakReminder, bool, error) {
	var reminders []models.BreakReminder
	ok, err := r.read(ctx, userKey(constants.BreakRemindersKeyPrefix, user), &reminders)
	if err != nil || !ok {
		return nil, false, err
	}
	return sanitizeReminders(reminders), true, nil
}

func (r *KVRepository) PutBreakReminders(ctx context.Context, user string, reminders []models.BreakReminder) error {
	return r.write(ctx, userKey(constants.BreakRemindersKeyPrefix, user), reminders)
}

func (r *KVRepository) GetRemindersActive(ctx context.Context, user string) (bool, error) {
	var active bool
	_, err := r.read(ctx, userKey(constants.BreakRemindersActivePrefix, user), &active)
	return active, err
}

func (r *KVRepository) PutRemindersActive(ctx context.Context, user string, active bool) error {
	return r.write(ctx, userKey(constants.BreakRemindersActivePrefix, user), active)
}

func (r *KVRepository) GetPomodoroSettings(ctx context.Context, user string) (models.PomodoroSettings, error) {
	def := models.DefaultPomodoroSettings()
	var s models.PomodoroSettings
	ok, err := r.read(ctx, userKey(constants.PomodoroSettingsKeyPrefix, user), &s)
	if err != nil || !ok {
		return def, err
	}
	return sanitizePomodoroSettings(s, def), nil
}

func (r *KVRepository) PutPomodoroSettings(ctx context.Context, user string, s models.PomodoroSettings) error {
	return r.write(ctx, userKey(constants.PomodoroSettingsKeyPrefix, user), s)
}

func (r *KVRepository) GetPomodoroSession(ctx context.Context, user string) (models.PomodoroSession, bool, error) {
	var s models.PomodoroSession
	ok, err := r.read(ctx, userKey(constants.PomodoroSessionKeyPrefix, user), &s)
	if err != nil || !ok {
		return models.PomodoroSession{}, false, err
	}
	return s, true, nil
}

func (r *KVRepository) PutPomodoroSession(ctx context.Context, user string, s models.PomodoroSession) error {
	return r.write(ctx, userKey(constants.PomodoroSessionKeyPrefix, user), s)
}

func (r *KVRepository) GetNotificationSettings(ctx context.Context, user string) (models.NotificationSettings, error) {
	s := models.DefaultNotificationSettings()
	ok, err := r.read(ctx, userKey(constants.NotificationSettingsPrefix, user), &s)
	if err != nil || !ok {
		return models.DefaultNotificationSettings(), err
	}
	if s.BreakInterval <= 0 {
		s.BreakInterval = models.DefaultNotificationSettings().BreakInterval
	}
	return s, nil
}

func (r *KVRepository) PutNotificationSettings(ctx context.Context, user string, s models.NotificationSettings) error {
	return r.write(ctx, userKey(constants.NotificationSettingsPrefix, user), s)
}

// The current user id is stored as a bare string.
func (r *KVRepository) GetCurrentUser(ctx context.Context) (string, error) {
	raw, ok, err := r.kv.Get(ctx, constants.CurrentUserKey)
	if err != nil {
		return "", &wterrors.StorageError{Op: "get", Key: constants.CurrentUserKey, Err: err}
	}
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(raw), nil
}

func (r *KVRepository) PutCurrentUser(ctx context.Context, user string) error {
	if err := r.kv.Set(ctx, constants.CurrentUserKey, user); err != nil {
		return &wterrors.StorageError{Op: "set", Key: constants.CurrentUserKey, Err: err}
	}
	return nil
}

func (r *KVRepository) DeleteCurrentUser(ctx context.Context) error {
	return r.remove(ctx, constants.CurrentUserKey)
}
