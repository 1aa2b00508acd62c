package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	credentialBucket = "credentials"
	tokenKey         = "token"
	expiryValueBytes = 8
)

// boltStore implements a Store backed by BoltDB. The token value is stored as
// an 8-byte big-endian unix expiry followed by the token bytes.
type boltStore struct {
	db       *bolt.DB
	tokenTTL time.Duration
	now      func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(credentialBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{
		db:       db,
		tokenTTL: opts.TokenTTL,
		now:      opts.Now,
	}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Token returns the stored token, deleting it when it has expired.
func (b *boltStore) Token() (string, bool, error) {
	if b == nil || b.db == nil {
		return "", false, nil
	}

	var token string
	var ok bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket missing")
		}

		value := bucket.Get([]byte(tokenKey))
		if value == nil {
			return nil
		}

		tok, expiry, valid := decodeEntry(value)
		if !valid || !expiry.After(b.now()) {
			return bucket.Delete([]byte(tokenKey))
		}

		token, ok = tok, true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	return token, ok, nil
}

// SaveToken stores token with a fresh expiry.
func (b *boltStore) SaveToken(token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	if b == nil || b.db == nil {
		return fmt.Errorf("token store is not initialized")
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket missing")
		}
		return bucket.Put([]byte(tokenKey), encodeEntry(token, b.now().Add(b.tokenTTL)))
	})
}

// ClearToken removes any stored token.
func (b *boltStore) ClearToken() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(tokenKey))
	})
}

func encodeEntry(token string, expiry time.Time) []byte {
	buf := make([]byte, expiryValueBytes+len(token))
	binary.BigEndian.PutUint64(buf, uint64(expiry.Unix()))
	copy(buf[expiryValueBytes:], token)
	return buf
}

// decodeEntry decodes the token and expiry time from the stored byte slice.
func decodeEntry(value []byte) (string, time.Time, bool) {
	if len(value) <= expiryValueBytes {
		return "", time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	if unix <= 0 {
		return "", time.Time{}, false
	}
	return string(value[expiryValueBytes:]), time.Unix(unix, 0), true
}
