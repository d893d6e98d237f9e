package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/keyring"
	"github.com/julianstephens/waketrack/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string."`
}

func (c *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(c.ConnectionString) && !strings.Contains(c.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if err := postgres.ValidateConnString(c.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.Println("⚠️  Connection string contains a password; it is kept in the encrypted OS keyring.")
	}
	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored in OS keyring")
	return nil
}

type KeyringGetCmd struct{}

func (c *KeyringGetCmd) Run(ctx *cli.Context) error {
	dsn, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring; use 'waketrack keyring set' to store one")
	}
	if err != nil {
		return err
	}
	ctx.Println(maskPassword(dsn))
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring")
	}
	if err != nil {
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")
	if _, err := keyring.GetConnectionString(); err == nil {
		ctx.Println("✓ Connection string is stored")
	} else if errors.Is(err, keyring.ErrNotFound) {
		ctx.Println("ℹ No connection string stored")
	}
	if _, err := keyring.GetCurrentUser(); err == nil {
		ctx.Println("✓ Signed-in user is stored")
	}
	return nil
}

// maskPassword hides the password of URL-style connection strings. Key/value
// strings are returned with any password=... value replaced.
func maskPassword(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
		}
		return u.String()
	}
	return maskKeyValue(dsn)
}

func maskKeyValue(dsn string) string {
	parts := strings.Fields(dsn)
	for i, p := range parts {
		if k, _, ok := strings.Cut(p, "="); ok && strings.EqualFold(k, "password") {
			parts[i] = k + "=****"
		}
	}
	return strings.Join(parts, " ")
}
