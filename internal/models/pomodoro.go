package models

type SessionType string

const (
	SessionWork       SessionType = "work"
	SessionShortBreak SessionType = "shortBreak"
	SessionLongBreak  SessionType = "longBreak"
)

// PomodoroSettings durations are in minutes.
type PomodoroSettings struct {
	WorkDuration      int `json:"workDuration"`
	ShortBreak        int `json:"shortBreak"`
	LongBreak         int `json:"longBreak"`
	LongBreakInterval int `json:"longBreakInterval"`
}

// PomodoroSession durations are in seconds.
type PomodoroSession struct {
	Type              SessionType `json:"type"`
	Duration          int         `json:"duration"`
	Remaining         int         `json:"remaining"`
	IsActive          bool        `json:"isActive"`
	CompletedSessions int         `json:"completedSessions"`
}

// DefaultPomodoroSettings returns the classic 25/5/15 cycle with a long break every fourth session.
func DefaultPomodoroSettings() PomodoroSettings {
	return PomodoroSettings{WorkDuration: 25, ShortBreak: 5, LongBreak: 15, LongBreakInterval: 4}
}
