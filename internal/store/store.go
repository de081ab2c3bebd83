package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"RentMarket/internal/model"
)

var (
	stateBucket  = []byte("rent.state")
	ordersBucket = []byte("rent.orders")
	stateKey     = []byte("market")
)

// lockTimeout bounds the wait for another process holding the file.
const lockTimeout = 5 * time.Second

// Store persists the market record and the rental order table in a single
// bbolt file. Every action runs inside one read-write transaction, so a
// failed action leaves both tables as they were.
//
// The file is opened for each transaction and closed right after, so the
// flock is only held while one runs. A long running serve process and one
// off commands can share the same file.
type Store struct {
	path    string
	timeout time.Duration
}

// Open creates the database at path if needed and makes sure both buckets exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	s := &Store{path: path, timeout: lockTimeout}
	err := s.with(false, func(db *bbolt.DB) error {
		return db.Update(func(tx *bbolt.Tx) error {
			for _, name := range [][]byte{stateBucket, ordersBucket} {
				if _, err := tx.CreateBucketIfNotExists(name); err != nil {
					return fmt.Errorf("create bucket %s: %w", name, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

func (s *Store) with(readOnly bool, fn func(db *bbolt.DB) error) (err error) {
	db, err := bbolt.Open(s.path, 0600, &bbolt.Options{Timeout: s.timeout, ReadOnly: readOnly})
	if err != nil {
		return fmt.Errorf("open bolt db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close bolt db: %w", cerr)
		}
	}()
	return fn(db)
}

// Update runs fn in a read-write transaction. Returning an error from fn
// rolls back every write it made.
func (s *Store) Update(fn func(tx *Tx) error) error {
	return s.with(false, func(db *bbolt.DB) error {
		return db.Update(func(btx *bbolt.Tx) error {
			return fn(&Tx{tx: btx})
		})
	})
}

// View runs fn in a read-only transaction. The file is opened read-only,
// which takes a shared lock.
func (s *Store) View(fn func(tx *Tx) error) error {
	return s.with(true, func(db *bbolt.DB) error {
		return db.View(func(btx *bbolt.Tx) error {
			return fn(&Tx{tx: btx})
		})
	})
}

// Tx is a transaction over both tables.
type Tx struct {
	tx *bbolt.Tx
}

// State returns the market record, or nil if the market was never configured.
func (t *Tx) State() (*model.MarketState, error) {
	data := t.tx.Bucket(stateBucket).Get(stateKey)
	if data == nil {
		return nil, nil
	}
	var s model.MarketState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode market state: %w", err)
	}
	if s.Version != model.StateVersion {
		return nil, fmt.Errorf("market state version %d not supported", s.Version)
	}
	return &s, nil
}

// PutState replaces the market record.
func (t *Tx) PutState(s model.MarketState) error {
	if !t.tx.Writable() {
		return errors.New("put state: read-only transaction")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode market state: %w", err)
	}
	return t.tx.Bucket(stateBucket).Put(stateKey, data)
}

// Orders returns the rental order table bound to this transaction.
func (t *Tx) Orders() *OrderBook {
	return &OrderBook{b: t.tx.Bucket(ordersBucket)}
}
