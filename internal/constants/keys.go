package constants

// Key namespace layout. Every value is scoped by the opaque user id.
const (
	ActivityKeyPrefix            = "wt:"
	CurrentUserKey               = "wt:userId"
	GoalsKeyPrefix               = "goals_"
	GamificationKeyPrefix        = "gamification_"
	ChallengesCompletedKeyPrefix = "challenges_completed_"
	TemplatesKeyPrefix           = "templates_"
	TimeTrackingKeyPrefix        = "time_tracking_"
	BreakRemindersKeyPrefix      = "break_reminders_"
	BreakRemindersActivePrefix   = "break_reminders_active_"
	PomodoroSettingsKeyPrefix    = "pomodoro_settings_"
	PomodoroSessionKeyPrefix     = "pomodoro_session_"
	NotificationSettingsPrefix   = "notification_settings_"
)
