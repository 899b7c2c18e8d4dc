package credstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Fixed keys of the persisted credential record.
const (
	KeyAccountID   = "hedera_account_id"
	KeyPrivateKey  = "hedera_private_key"
	KeyTokenID     = "hedera_token_id"
	KeyOperatorID  = "hedera_operator_id"
	KeyOperatorKey = "hedera_operator_key"
)

// Store is a string key-value store. Values never expire and are stored as
// given.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

const (
	KindMemory = "memory"
	KindBadger = "badger"
	KindRedis  = "redis"
)

type Config struct {
	Kind          string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	Logger        *zerolog.Logger
}

// Open builds the store selected by config.Kind. Empty Kind selects memory.
func Open(ctx context.Context, config Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(config.Kind)) {
	case "", KindMemory:
		return NewMemoryStore(), nil
	case KindBadger:
		store, err := OpenBadgerStore(BadgerConfig{Path: config.Path, Logger: config.Logger})
		if err != nil {
			return nil, err
		}
		return store, nil
	case KindRedis:
		store, err := OpenRedisStore(ctx, RedisConfig{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
			Prefix:   config.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported credential store %q", config.Kind)
	}
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
