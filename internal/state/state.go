// Package state persists session preferences and the last-known folder
// tree between runs, backed by a bbolt database file.
package state

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/MadMax2121/dataroom-client/internal/document"
)

const (
	// stateDirPerm is the permission mode for the state directory.
	stateDirPerm = fs.FileMode(0o700)

	// stateFilePerm is the permission mode for the state database file.
	stateFilePerm = fs.FileMode(0o600)

	// stateOpenTimeout is the maximum time to wait for the bolt database lock.
	stateOpenTimeout = 5 * time.Second
)

var (
	sessionBucket  = []byte("session")
	snapshotBucket = []byte("snapshot")

	sessionKey = []byte("current")
	foldersKey = []byte("folders")
	savedAtKey = []byte("saved_at")
)

// Session is the persisted slice of session state: the folder operations
// target and the sort preference. The search query is deliberately not
// persisted; a stale query restored into a fresh run is more confusing
// than an empty one.
type Session struct {
	ActiveFolderID string `json:"activeFolderId"`
	SortKey        string `json:"sortKey"`
	SortDir        string `json:"sortDir"`
}

// Snapshot is the last-known folder tree plus when it was captured.
type Snapshot struct {
	Folders []*document.Folder
	SavedAt time.Time
}

// State wraps a bbolt database for all persistent application state.
type State struct {
	db *bolt.DB
}

// Load opens the state database at the given path, creating it and its
// parent directory if they do not exist.
func Load(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), stateDirPerm); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := bolt.Open(path, stateFilePerm, &bolt.Options{Timeout: stateOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(sessionBucket); err != nil {
			return err
		}

		_, err := tx.CreateBucketIfNotExists(snapshotBucket)

		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing state db: %w", err)
	}

	return &State{db: db}, nil
}

// Close closes the database.
func (s *State) Close() error {
	return s.db.Close()
}

// Session returns the persisted session, or the zero value when none has
// been saved yet.
func (s *State) Session() (Session, error) {
	var sess Session

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(sessionBucket).Get(sessionKey)
		if v == nil {
			return nil
		}

		return json.Unmarshal(v, &sess)
	})

	return sess, err
}

// SetSession persists the session.
func (s *State) SetSession(sess Session) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}

		return tx.Bucket(sessionBucket).Put(sessionKey, data)
	})
}

// Snapshot returns the last saved folder tree, or nil when none exists.
func (s *State) Snapshot() (*Snapshot, error) {
	var snap *Snapshot

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotBucket)

		v := b.Get(foldersKey)
		if v == nil {
			return nil
		}

		snap = &Snapshot{}
		if err := json.Unmarshal(v, &snap.Folders); err != nil {
			return err
		}

		if at := b.Get(savedAtKey); at != nil {
			return snap.SavedAt.UnmarshalText(at)
		}

		return nil
	})

	return snap, err
}

// SetSnapshot persists the folder tree with the current time.
func (s *State) SetSnapshot(folders []*document.Folder) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotBucket)

		data, err := json.Marshal(folders)
		if err != nil {
			return err
		}

		if err := b.Put(foldersKey, data); err != nil {
			return err
		}

		at, err := time.Now().UTC().MarshalText()
		if err != nil {
			return err
		}

		return b.Put(savedAtKey, at)
	})
}
