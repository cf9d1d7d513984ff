package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/afero"

	"reelstream/models"
)

var (
	ErrStorageDirRequired = errors.New("history: storage directory is required")
	ErrUserIDRequired     = errors.New("history: user id is required")
	ErrExternalIDRequired = errors.New("history: external id is required")
)

// maxRecordsPerUser bounds on-disk growth; the oldest entries fall off.
const maxRecordsPerUser = 200

// Service persists per-user watch history as a single JSON file. All
// reads and writes go through an in-memory copy guarded by a RWMutex;
// every mutation rewrites the file.
type Service struct {
	fs       afero.Fs
	filePath string

	mu      sync.RWMutex
	records map[string][]models.WatchRecord
	now     func() time.Time
}

func NewService(fs afero.Fs, storageDir string) (*Service, error) {
	if storageDir == "" {
		return nil, ErrStorageDirRequired
	}
	if err := fs.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("history: create storage dir: %w", err)
	}
	s := &Service{
		fs:       fs,
		filePath: filepath.Join(storageDir, "watch_history.json"),
		records:  make(map[string][]models.WatchRecord),
		now:      time.Now,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) load() error {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		// first run, nothing saved yet
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("history: parse %s: %w", s.filePath, err)
	}
	return nil
}

func (s *Service) saveLocked() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.filePath, data, 0o644); err != nil {
		return fmt.Errorf("history: write %s: %w", s.filePath, err)
	}
	return nil
}

// Record stores a watch event. Re-watching an item moves it to the
// front with a fresh timestamp instead of duplicating it.
func (s *Service) Record(userID string, rec models.WatchRecord) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	if rec.ExternalID == "" {
		return ErrExternalIDRequired
	}
	if rec.WatchedAt.IsZero() {
		rec.WatchedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.records[userID]
	kept := make([]models.WatchRecord, 0, len(existing)+1)
	kept = append(kept, rec)
	for _, r := range existing {
		if r.ExternalID == rec.ExternalID {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) > maxRecordsPerUser {
		kept = kept[:maxRecordsPerUser]
	}
	s.records[userID] = kept
	return s.saveLocked()
}

// List returns the user's history, most recent first. An unknown user
// gets an empty slice.
func (s *Service) List(userID string) ([]models.WatchRecord, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.WatchRecord, len(s.records[userID]))
	copy(out, s.records[userID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WatchedAt.After(out[j].WatchedAt)
	})
	return out, nil
}

// Remove deletes a single item from the user's history.
func (s *Service) Remove(userID, externalID string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	if externalID == "" {
		return ErrExternalIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.records[userID]
	kept := existing[:0]
	for _, r := range existing {
		if r.ExternalID != externalID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(existing) {
		return nil
	}
	s.records[userID] = kept
	return s.saveLocked()
}

// Clear wipes the user's entire history.
func (s *Service) Clear(userID string) error {
	if userID == "" {
		return ErrUserIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[userID]; !ok {
		return nil
	}
	delete(s.records, userID)
	return s.saveLocked()
}
