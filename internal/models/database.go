package models

import (
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Session is a persisted sign-in: the cookie value maps to the identity the
// provider resolved. Domain state (ratings, watchlist) is never stored here;
// the backend stays the source of truth for it.
type Session struct {
	ID         string `boltholdKey:"ID"`
	UserID     string `boltholdIndex:"UserID"`
	User       User
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// Database wraps the bolthold store holding session records
type Database struct {
	store *bolthold.Store
}

// NewDatabase opens the session store at the given path
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// CreateSession stores a new session record
func (db *Database) CreateSession(session *Session) error {
	session.CreatedAt = time.Now()
	session.LastSeenAt = time.Now()
	return db.store.Insert(session.ID, session)
}

// GetSession retrieves a session by its cookie value
func (db *Database) GetSession(id string) (*Session, error) {
	var session Session
	err := db.store.Get(id, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// TouchSession updates the session's last-seen timestamp
func (db *Database) TouchSession(id string) error {
	session, err := db.GetSession(id)
	if err != nil {
		return err
	}
	session.LastSeenAt = time.Now()
	return db.store.Update(id, session)
}

// DeleteSession removes a session record
func (db *Database) DeleteSession(id string) error {
	return db.store.Delete(id, &Session{})
}

// DeleteExpiredSessions removes sessions idle for longer than maxIdle
func (db *Database) DeleteExpiredSessions(maxIdle time.Duration) error {
	cutoff := time.Now().Add(-maxIdle)
	return db.store.DeleteMatching(&Session{}, bolthold.Where("LastSeenAt").Lt(cutoff))
}

// IsNotFound reports whether err means the record does not exist
func IsNotFound(err error) bool {
	return err == bolthold.ErrNotFound
}
