package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/huimingz/commitbuddy/internal/log"
)

const (
	// MaxHistory is how many accepted messages the recency list keeps
	MaxHistory = 20

	bucketName   = "commitbuddy"
	historyKey   = "history"
	favoritesKey = "favorites"

	// DefaultFileName is the store file created under the user's config directory
	DefaultFileName = "history.db"
)

// ErrEmptyMessage is returned when an empty message is stored
var ErrEmptyMessage = errors.New("message is empty")

// Entry is one stored commit message
type Entry struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Provider  string    `json:"provider,omitempty"`
	Model     string    `json:"model,omitempty"`
}

// Store persists the recency list and favorites in a bbolt file. Every
// mutation is a single read-modify-write transaction.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// DefaultPath returns ~/.commitbuddy/history.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".commitbuddy", DefaultFileName), nil
}

// Open opens or creates the store at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}

	log.Debug("History store opened: %s", path)
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the underlying file
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records an accepted message at the front of the recency list.
// A message already in the list is left where it is. The list is
// truncated to MaxHistory entries.
func (s *Store) Append(entry Entry) error {
	entry, err := s.normalize(entry)
	if err != nil {
		return err
	}

	return s.update(historyKey, func(entries []Entry) ([]Entry, bool) {
		if indexOf(entries, entry.Message) >= 0 {
			return entries, false
		}
		entries = append([]Entry{entry}, entries...)
		if len(entries) > MaxHistory {
			entries = entries[:MaxHistory]
		}
		return entries, true
	})
}

// History returns the recency list, newest first
func (s *Store) History() ([]Entry, error) {
	return s.list(historyKey)
}

// ClearHistory removes every history entry
func (s *Store) ClearHistory() error {
	return s.clear(historyKey)
}

// AddFavorite stores message as a favorite. It reports false when the
// message is already a favorite.
func (s *Store) AddFavorite(entry Entry) (bool, error) {
	entry, err := s.normalize(entry)
	if err != nil {
		return false, err
	}

	var added bool
	err = s.update(favoritesKey, func(entries []Entry) ([]Entry, bool) {
		if indexOf(entries, entry.Message) >= 0 {
			return entries, false
		}
		added = true
		return append([]Entry{entry}, entries...), true
	})
	return added, err
}

// RemoveFavorite deletes every favorite equal to message and returns how many were removed
func (s *Store) RemoveFavorite(message string) (int, error) {
	var removed int
	err := s.update(favoritesKey, func(entries []Entry) ([]Entry, bool) {
		kept := entries[:0]
		for _, e := range entries {
			if e.Message == message {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		return kept, removed > 0
	})
	return removed, err
}

// Favorites returns the favorites, newest first
func (s *Store) Favorites() ([]Entry, error) {
	return s.list(favoritesKey)
}

// ClearFavorites removes every favorite
func (s *Store) ClearFavorites() error {
	return s.clear(favoritesKey)
}

func (s *Store) normalize(entry Entry) (Entry, error) {
	entry.Message = strings.TrimSpace(entry.Message)
	if entry.Message == "" {
		return entry, ErrEmptyMessage
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	return entry, nil
}

// update runs fn over the stored list inside one write transaction; the
// list is written back only when fn reports a change
func (s *Store) update(key string, fn func([]Entry) ([]Entry, bool)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return bolt.ErrBucketNotFound
		}

		entries, err := decode(bucket.Get([]byte(key)))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}

		entries, changed := fn(entries)
		if !changed {
			return nil
		}

		data, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		return bucket.Put([]byte(key), data)
	})
}

func (s *Store) list(key string) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return bolt.ErrBucketNotFound
		}
		var err error
		entries, err = decode(bucket.Get([]byte(key)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	// stable, so equal timestamps keep storage order
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

func (s *Store) clear(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return bolt.ErrBucketNotFound
		}
		return bucket.Delete([]byte(key))
	})
}

// decode copies out of bbolt-owned memory before the transaction ends
func decode(data []byte) ([]Entry, error) {
	if data == nil {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func indexOf(entries []Entry, message string) int {
	for i, e := range entries {
		if e.Message == message {
			return i
		}
	}
	return -1
}
