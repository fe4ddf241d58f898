package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSStore keeps the session in a JetStream key-value bucket, which lets
// several hosts share one login.
type NATSStore struct {
	url    string
	bucket string
	key    string
}

// NewNATSStore creates a store on the given server and bucket.
func NewNATSStore(url, bucket string) *NATSStore {
	if bucket == "" {
		bucket = constants.SessionBucket
	}

	return &NATSStore{url: url, bucket: bucket, key: constants.SessionKey}
}

func (s *NATSStore) keyValue(ctx context.Context) (jetstream.KeyValue, func(), error) {
	nc, err := nats.Connect(s.url, nats.Name("flexvm-session"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()

		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: s.bucket})
	if err != nil {
		nc.Close()

		return nil, nil, fmt.Errorf("failed to open key-value bucket %s: %w", s.bucket, err)
	}

	return kv, nc.Close, nil
}

func (s *NATSStore) Load(ctx context.Context) (*Session, error) {
	kv, closeConn, err := s.keyValue(ctx)
	if err != nil {
		return nil, err
	}
	defer closeConn()

	entry, err := kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	return decode(entry.Value()), nil
}

func (s *NATSStore) Save(ctx context.Context, session *Session) error {
	data, err := encode(session)
	if err != nil {
		return err
	}

	kv, closeConn, err := s.keyValue(ctx)
	if err != nil {
		return err
	}
	defer closeConn()

	if _, err := kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

func (s *NATSStore) Remove(ctx context.Context) error {
	kv, closeConn, err := s.keyValue(ctx)
	if err != nil {
		return err
	}
	defer closeConn()

	err = kv.Delete(ctx, s.key)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	return nil
}
