package repository

import (
	"strings"

	"github.com/julianstephens/waketrack/internal/constants"
)

// DayKey returns the activity key for a user and date: wt:{user}:{YYYY-MM-DD}.
func DayKey(user, date string) string {
	return constants.ActivityKeyPrefix + user + ":" + date
}

// DayKeyPrefix returns the prefix shared by every activity key of a user.
func DayKeyPrefix(user string) string {
	return constants.ActivityKeyPrefix + user + ":"
}

// DateFromDayKey extracts the date part of an activity key.
func DateFromDayKey(user, key string) (string, bool) {
	prefix := DayKeyPrefix(user)
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	return strings.TrimPrefix(key, prefix), true
}

func userKey(prefix, user string) string {
	return prefix + user
}
