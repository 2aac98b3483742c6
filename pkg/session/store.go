package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/pkg/util"
)

// ErrInvalidLifetime is returned when a session would expire before it starts
var ErrInvalidLifetime = errors.New("session must expire after it is created")

// Lifetime says how long a new session lives - either a TTL or a fixed instant
type Lifetime struct {
	ttl   time.Duration
	until time.Time
}

// TTL makes a session that expires exactly d after creation
func TTL(d time.Duration) Lifetime {
	return Lifetime{ttl: d}
}

// Until makes a session that expires at t
func Until(t time.Time) Lifetime {
	return Lifetime{until: t}
}

func (l Lifetime) expiry(createdAt time.Time) time.Time {
	if l.until.IsZero() {
		return createdAt.Add(l.ttl)
	}
	return l.until
}

// Store keeps session records in memory and mirrors them to a flat file
type Store struct {
	path string // where the table gets written

	writeMu sync.Mutex   // serializes every mutation, including the file write
	mu      sync.RWMutex // guards records
	records map[string]models.SessionRecord

	now func() time.Time
}

// Option tweaks a Store at construction time
type Option func(*Store)

// WithClock swaps the time source - tests use this to control expiry
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store backed by the file at path and loads whatever is in it.
// A missing or unreadable file just means we start empty.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:    path,
		records: make(map[string]models.SessionRecord),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	return s
}

// load reads the table from disk, replacing anything in memory
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("No session file yet, starting empty", "path", s.path)
		} else {
			log.Warn("Could not read session file, starting empty", "path", s.path, "err", err)
		}
		return
	}

	var pairs [][2]json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		log.Warn("Session file is corrupt, starting empty", "path", s.path, "err", err)
		return
	}

	loaded := make(map[string]models.SessionRecord, len(pairs))
	for _, pair := range pairs {
		var token string
		var record models.SessionRecord
		if err := json.Unmarshal(pair[0], &token); err != nil || token == "" {
			continue // skip entries we can't key
		}
		if err := json.Unmarshal(pair[1], &record); err != nil {
			continue
		}
		record.Token = token
		loaded[token] = record
	}

	s.mu.Lock()
	s.records = loaded
	s.mu.Unlock()

	log.Info("Loaded sessions from disk", "count", len(loaded), "path", s.path)
}

// Create stores a new session for the identity and returns its token
func (s *Store) Create(user models.User, credential string, lifetime Lifetime) (string, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	createdAt := s.now()
	expiresAt := lifetime.expiry(createdAt)
	if !expiresAt.After(createdAt) {
		return "", ErrInvalidLifetime
	}

	s.mu.Lock()
	token := uuid.NewString()
	for {
		if _, taken := s.records[token]; !taken {
			break
		}
		token = uuid.NewString()
	}

	s.records[token] = models.SessionRecord{
		Token:              token,
		UserID:             user.UID,
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		PictureURL:         user.PhotoURL,
		ProviderCredential: credential,
		CreatedAt:          createdAt,
		ExpiresAt:          expiresAt,
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	return token, nil
}

// Get looks up a session by token
func (s *Store) Get(token string) (models.SessionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[token]
	return record, ok
}

// Delete removes the session if it exists. The table is written either way.
func (s *Store) Delete(token string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	delete(s.records, token)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// Sweep drops every session that expired before now and returns how many went
func (s *Store) Sweep() int {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := s.now()

	s.mu.Lock()
	removed := 0
	for token, record := range s.records {
		if record.IsExpired(now) {
			delete(s.records, token)
			removed++
		}
	}
	var snapshot []models.SessionRecord
	if removed > 0 {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	// nothing changed, nothing to write
	if removed > 0 {
		s.persist(snapshot)
	}
	return removed
}

// Len returns how many sessions are currently held
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// SweepRoutine runs Sweep on a schedule until ctx is cancelled
func (s *Store) SweepRoutine(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Info("Swept expired sessions", "removed", removed, "remaining", s.Len())
			}
		}
	}
}

// snapshotLocked copies the table in a stable order - caller holds mu
func (s *Store) snapshotLocked() []models.SessionRecord {
	snapshot := make([]models.SessionRecord, 0, len(s.records))
	for _, record := range s.records {
		snapshot = append(snapshot, record)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		if snapshot[i].CreatedAt.Equal(snapshot[j].CreatedAt) {
			return snapshot[i].Token < snapshot[j].Token
		}
		return snapshot[i].CreatedAt.Before(snapshot[j].CreatedAt)
	})
	return snapshot
}

// persist writes the snapshot as [token, record] pairs. Failures are logged
// and swallowed - the in-memory table stays authoritative.
func (s *Store) persist(snapshot []models.SessionRecord) {
	if err := s.write(snapshot); err != nil {
		log.Error("Failed to persist sessions", "path", s.path, "err", err)
	}
}

func (s *Store) write(snapshot []models.SessionRecord) error {
	pairs := make([][2]any, 0, len(snapshot))
	for _, record := range snapshot {
		pairs = append(pairs, [2]any{record.Token, record})
	}

	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sessions: %w", err)
	}

	if dir := filepath.Dir(s.path); !util.EnsureDirectoryExists(dir) {
		return fmt.Errorf("cannot create session directory %s", dir)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
