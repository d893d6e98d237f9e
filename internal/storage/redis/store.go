package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/waketrack/internal/storage"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces every key so one Redis database can hold other data too.
	KeyPrefix string
}

type Store struct {
	opts   Options
	client *goredis.Client
}

func New(opts Options) *Store {
	return &Store{opts: opts}
}

// NewWithClient wraps an existing client.
func NewWithClient(client *goredis.Client, keyPrefix string) *Store {
	return &Store{opts: Options{KeyPrefix: keyPrefix}, client: client}
}

func (s *Store) connect() error {
	if s.client == nil {
		s.client = goredis.NewClient(&goredis.Options{
			Addr:         s.opts.Addr,
			Password:     s.opts.Password,
			DB:           s.opts.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", s.opts.Addr, err)
	}
	return nil
}

// Init and Load both just verify the connection; Redis needs no schema.
func (s *Store) Init() error { return s.connect() }
func (s *Store) Load() error { return s.connect() }

func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *Store) Describe() string {
	return fmt.Sprintf("redis://%s/%d (prefix %q)", s.opts.Addr, s.opts.DB, s.opts.KeyPrefix)
}

func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return storage.ErrNotLoaded
	}
	return s.client.Ping(ctx).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.client == nil {
		return "", false, storage.ErrNotLoaded
	}
	v, err := s.client.Get(ctx, s.opts.KeyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.client == nil {
		return storage.ErrNotLoaded
	}
	if err := s.client.Set(ctx, s.opts.KeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return storage.ErrNotLoaded
	}
	if err := s.client.Del(ctx, s.opts.KeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	if s.client == nil {
		return nil, storage.ErrNotLoaded
	}
	full := s.opts.KeyPrefix + prefix
	keys := make([]string, 0)
	iter := s.client.Scan(ctx, 0, escapeGlob(full)+"*", 200).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if strings.HasPrefix(k, full) {
			keys = append(keys, strings.TrimPrefix(k, s.opts.KeyPrefix))
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// escapeGlob quotes the characters SCAN MATCH treats as patterns.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
