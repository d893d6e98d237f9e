// Package clitest builds command contexts backed by an in-memory store.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/waketrack/internal/cli"
	"github.com/julianstephens/waketrack/internal/config"
	"github.com/julianstephens/waketrack/internal/storage"
)

// User is the id every context acts as.
const User = "u1"

// Now is 2026-03-11 10:30 UTC, a Wednesday.
var Now = time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC)

// Notifier records every notification.
type Notifier struct {
	mu   sync.Mutex
	Sent []string
}

func (n *Notifier) Notify(title, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, title+": "+text)
	return nil
}

// New returns a context with a fixed clock, no keyring and output captured
// in the returned buffer.
func New(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.Storage.Backend = "memory"

	out := &bytes.Buffer{}
	ctx := cli.NewContext(context.Background(), &cfg, filepath.Join(t.TempDir(), "config.yaml"), storage.NewMemoryStore())
	ctx.Creds = nil
	ctx.UserFlag = User
	ctx.Out = out
	ctx.Notifier = &Notifier{}
	ctx.Clock = func() time.Time { return Now }
	return ctx, out
}
