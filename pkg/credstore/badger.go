package credstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/rs/zerolog"
)

type BadgerConfig struct {
	// Path is the database directory. Empty Path with InMemory unset is an
	// error.
	Path     string
	InMemory bool
	Logger   *zerolog.Logger
}

// BadgerStore keeps credentials in an embedded badger database on disk.
type BadgerStore struct {
	db *badgerdb.DB
}

func OpenBadgerStore(config BadgerConfig) (*BadgerStore, error) {
	path := strings.TrimSpace(config.Path)
	if path == "" && !config.InMemory {
		return nil, fmt.Errorf("badger store path is required")
	}

	options := badgerdb.DefaultOptions(path)
	if config.InMemory {
		options = badgerdb.DefaultOptions("").WithInMemory(true)
	}
	if config.Logger != nil {
		options = options.WithLogger(badgerLogger{log: config.Logger.With().Str("component", "badger").Logger()})
	} else {
		options = options.WithLogger(nil)
	}

	db, err := badgerdb.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(_ context.Context, key string) (string, bool, error) {
	var value []byte
	found := false
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(value), found, nil
}

func (s *BadgerStore) Set(_ context.Context, key string, value string) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Remove(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's internal logging through zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(strings.TrimSpace(format), args...)
}
