package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/waketrack/internal/keyring"
	"github.com/julianstephens/waketrack/internal/repository"
	"github.com/julianstephens/waketrack/internal/storage"
)

type fakeCreds struct {
	id     string
	setErr error
	getErr error
}

func (f *fakeCreds) GetCurrentUser() (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	if f.id == "" {
		return "", keyring.ErrNotFound
	}
	return f.id, nil
}

func (f *fakeCreds) SetCurrentUser(id string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.id = id
	return nil
}

func (f *fakeCreds) DeleteCurrentUser() error {
	if f.id == "" {
		return keyring.ErrNotFound
	}
	f.id = ""
	return nil
}

func TestUserID(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"", "local_0"},
		{"a", "local_2p"},
		{"ab", "local_2e9"},
	}
	for _, tt := range tests {
		if got := UserID(tt.email); got != tt.want {
			t.Errorf("UserID(%q) = %s, want %s", tt.email, got, tt.want)
		}
	}

	a := UserID("someone.with.a.long.address@example.com")
	if a != UserID("someone.with.a.long.address@example.com") {
		t.Error("UserID is not stable")
	}
	if !strings.HasPrefix(a, "local_") || strings.Contains(a, "-") {
		t.Errorf("UserID = %s, want local_ prefix and no sign", a)
	}
	if a == UserID("someone.else@example.com") {
		t.Error("different emails produced the same id")
	}
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(storage.NewMemoryStore())
	creds := &fakeCreds{}
	s := NewSession(creds, repo)

	if _, err := s.Login(ctx, "not-an-email"); err == nil {
		t.Error("expected error for invalid email")
	}

	id, err := s.Login(ctx, "  ab@example.com ")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if id != UserID("ab@example.com") || creds.id != id {
		t.Errorf("Login id = %s, keyring = %s", id, creds.id)
	}
	if stored, _ := repo.GetCurrentUser(ctx); stored != id {
		t.Errorf("repository user = %q, want %q", stored, id)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if creds.id != "" {
		t.Error("keyring still holds the user")
	}
	if stored, _ := repo.GetCurrentUser(ctx); stored != "" {
		t.Errorf("repository still holds %q", stored)
	}
	if err := s.Logout(ctx); err != nil {
		t.Errorf("second Logout: %v", err)
	}
}

func TestLoginWithoutKeyring(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(storage.NewMemoryStore())
	creds := &fakeCreds{setErr: keyring.ErrKeyringUnavailable, getErr: keyring.ErrKeyringUnavailable}
	s := NewSession(creds, repo)

	id, err := s.Login(ctx, "ab@example.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	got, err := s.Resolve(ctx, "", "")
	if err != nil || got != id {
		t.Errorf("Resolve() = %q, %v; want %q", got, err, id)
	}
}

func TestResolveOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		flag       string
		keyring    string
		stored     string
		configured string
		want       string
		wantErr    error
	}{
		{"flag wins", "local_flag", "local_key", "local_db", "local_cfg", "local_flag", nil},
		{"keyring next", "", "local_key", "local_db", "local_cfg", "local_key", nil},
		{"repository next", "", "", "local_db", "local_cfg", "local_db", nil},
		{"config last", "", "", "", "local_cfg", "local_cfg", nil},
		{"nothing", "", "", "", "", "", ErrNoUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.New(storage.NewMemoryStore())
			if tt.stored != "" {
				if err := repo.PutCurrentUser(ctx, tt.stored); err != nil {
					t.Fatal(err)
				}
			}
			s := NewSession(&fakeCreds{id: tt.keyring}, repo)
			got, err := s.Resolve(ctx, tt.flag, tt.configured)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveNilCredentials(t *testing.T) {
	s := NewSession(nil, repository.New(storage.NewMemoryStore()))
	got, err := s.Resolve(context.Background(), "", "local_cfg")
	if err != nil || got != "local_cfg" {
		t.Errorf("Resolve() = %q, %v", got, err)
	}
}
