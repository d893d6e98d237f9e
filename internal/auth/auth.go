// Package auth maps an email address to a stable local user id and
// remembers which user is signed in.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/julianstephens/waketrack/internal/keyring"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/repository"
)

const idPrefix = "local_"

// ErrNoUser is returned by Resolve when no user can be determined.
var ErrNoUser = errors.New("no user signed in, run 'waketrack login <email>' or pass --user")

// UserID derives the opaque id for an email: a 32-bit rolling hash over the
// UTF-16 code units, printed in base 36.
func UserID(email string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(email)) {
		h = h*31 + int32(c)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return idPrefix + strconv.FormatInt(n, 36)
}

// Credentials is the slice of the OS keyring this package needs.
type Credentials interface {
	GetCurrentUser() (string, error)
	SetCurrentUser(id string) error
	DeleteCurrentUser() error
}

type osKeyring struct{}

func (osKeyring) GetCurrentUser() (string, error) { return keyring.GetCurrentUser() }
func (osKeyring) SetCurrentUser(id string) error  { return keyring.SetCurrentUser(id) }
func (osKeyring) DeleteCurrentUser() error        { return keyring.DeleteCurrentUser() }

// Keyring returns the OS keyring backed Credentials.
func Keyring() Credentials { return osKeyring{} }

// Session stores the signed-in user in the keyring when it is available and
// always in the repository, so a machine without a keyring still works.
type Session struct {
	creds Credentials
	repo  repository.Repository
}

func NewSession(creds Credentials, repo repository.Repository) *Session {
	return &Session{creds: creds, repo: repo}
}

// Login validates email, derives its id and records it as the current user.
func (s *Session) Login(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("invalid email %q", email)
	}
	id := UserID(email)

	if s.creds != nil {
		if err := s.creds.SetCurrentUser(id); err != nil {
			logger.Warn("Keyring unavailable, storing user in database only", "error", err)
		}
	}
	if err := s.repo.PutCurrentUser(ctx, id); err != nil {
		return "", err
	}
	logger.Info("User signed in", "user", id)
	return id, nil
}

// Logout forgets the current user everywhere it was recorded.
func (s *Session) Logout(ctx context.Context) error {
	if s.creds != nil {
		if err := s.creds.DeleteCurrentUser(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("Failed to remove user from keyring", "error", err)
		}
	}
	return s.repo.DeleteCurrentUser(ctx)
}

// Resolve picks the user for a command: the explicit flag, then the keyring,
// then the repository, then the configured default.
func (s *Session) Resolve(ctx context.Context, flag, configured string) (string, error) {
	if flag = strings.TrimSpace(flag); flag != "" {
		return flag, nil
	}
	if s.creds != nil {
		id, err := s.creds.GetCurrentUser()
		if err == nil && id != "" {
			return id, nil
		}
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}
	id, err := s.repo.GetCurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	if configured = strings.TrimSpace(configured); configured != "" {
		return configured, nil
	}
	return "", ErrNoUser
}
