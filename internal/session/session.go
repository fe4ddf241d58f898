// Package session persists the access token between runs so that a fresh
// process can skip the login round trip.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/flexvm/internal/constants"
)

// Session is the persisted login state. ValidationHash ties the token to the
// credentials it was issued for.
type Session struct {
	AccessToken    string `json:"access_token"`
	ValidationHash string `json:"validation_hash"`
}

// Store loads, saves and removes a single session.
type Store interface {
	// Load returns nil without error when no usable session is stored.
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session *Session) error
	// Remove succeeds when nothing is stored.
	Remove(ctx context.Context) error
}

// decode returns nil for malformed or incomplete data.
func decode(data []byte) *Session {
	if len(data) == 0 {
		return nil
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}

	if s.AccessToken == "" {
		return nil
	}

	return &s
}

func encode(s *Session) ([]byte, error) {
	if s == nil {
		return nil, constants.ErrNilSession
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	return data, nil
}

// FileStore keeps the session as a JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a file store. An empty path selects
// fortiflex_session.json in the working directory.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = constants.DefaultSessionFile
	}

	return &FileStore{path: path}
}

// Path returns the session file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(_ context.Context) (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	return decode(data), nil
}

func (s *FileStore) Save(_ context.Context, session *Session) error {
	data, err := encode(session)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, constants.ConfigDirPerm); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

func (s *FileStore) Remove(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// New builds the store for backend. path is the file or database location
// for the file and bolt backends; natsURL is used by the nats backend.
func New(backend, path, natsURL string) (Store, error) {
	switch backend {
	case "", "file":
		return NewFileStore(path), nil
	case "bolt":
		return NewBoltStore(path), nil
	case "nats":
		if natsURL == "" {
			return nil, constants.ErrNATSURLRequired
		}

		return NewNATSStore(natsURL, constants.SessionBucket), nil
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownSessionBackend, backend)
	}
}
