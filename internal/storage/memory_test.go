package storage_test

import (
	"testing"

	"github.com/julianstephens/waketrack/internal/storage"
	"github.com/julianstephens/waketrack/internal/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	storagetest.Run(t, storage.NewMemoryStore())
}
