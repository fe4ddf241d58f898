package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"go.etcd.io/bbolt"
)

var bucketSessions = []byte(constants.SessionBucket)

// BoltStore keeps the session in a bbolt database. The database is opened
// for each operation so that concurrent CLI invocations only contend for
// the file lock briefly.
type BoltStore struct {
	path string
	key  []byte
}

// NewBoltStore creates a bbolt store. An empty path selects
// fortiflex_session.db in the working directory.
func NewBoltStore(path string) *BoltStore {
	if path == "" {
		path = constants.DefaultSessionDB
	}

	return &BoltStore{path: path, key: []byte(constants.SessionKey)}
}

func (s *BoltStore) open() (*bbolt.DB, error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, constants.ConfigDirPerm); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	db, err := bbolt.Open(s.path, constants.ConfigFilePerm, &bbolt.Options{Timeout: constants.SessionOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	return db, nil
}

func (s *BoltStore) Load(_ context.Context) (*Session, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var data []byte

	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		if b == nil {
			return nil
		}

		if v := b.Get(s.key); v != nil {
			data = append([]byte(nil), v...)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	return decode(data), nil
}

func (s *BoltStore) Save(_ context.Context, session *Session) error {
	data, err := encode(session)
	if err != nil {
		return err
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketSessions)
		if err != nil {
			return err
		}

		return b.Put(s.key, data)
	})
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

func (s *BoltStore) Remove(_ context.Context) error {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		if b == nil {
			return nil
		}

		return b.Delete(s.key)
	})
	if err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	return nil
}
