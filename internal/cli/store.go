package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/waketrack/internal/config"
	"github.com/julianstephens/waketrack/internal/constants"
	"github.com/julianstephens/waketrack/internal/keyring"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/storage"
	"github.com/julianstephens/waketrack/internal/storage/postgres"
	redisstore "github.com/julianstephens/waketrack/internal/storage/redis"
	"github.com/julianstephens/waketrack/internal/storage/sqlite"
)

// OpenStore builds the configured backend. The returned store is neither
// initialized nor loaded.
func OpenStore(cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.Backend {
	case constants.BackendSQLite, "":
		path, err := cfg.StoragePath()
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil

	case constants.BackendJSON:
		path, err := cfg.StoragePath()
		if err != nil {
			return nil, err
		}
		if filepath.Ext(path) == constants.BackupFileSuffix {
			path = strings.TrimSuffix(path, constants.BackupFileSuffix) + ".json"
		}
		return storage.NewJSONStore(path), nil

	case constants.BackendPostgres:
		dsn, err := postgresDSN(cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.New(dsn), nil

	case constants.BackendRedis:
		r := cfg.Storage.Redis
		return redisstore.New(redisstore.Options{
			Addr:      r.Addr,
			Password:  r.Password,
			DB:        r.DB,
			KeyPrefix: r.KeyPrefix,
		}), nil

	case constants.BackendMemory:
		return storage.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// postgresDSN takes the configured connection string, falling back to the
// keyring. Only the keyring may hold a password.
func postgresDSN(configured string) (string, error) {
	if configured != "" {
		if err := postgres.ValidateConnString(configured); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return "", fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed in the config file; "+
					"store it with '%s keyring set' or use .pgpass", constants.AppName)
			}
			return "", err
		}
		return configured, nil
	}

	dsn, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("no PostgreSQL connection string configured; set storage.dsn or run '%s keyring set'", constants.AppName)
		}
		return "", err
	}
	if err := postgres.ValidateConnString(dsn); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return "", err
	}
	logger.Debug("Using PostgreSQL connection string from keyring")
	return dsn, nil
}
