package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"reelstream/models"
)

var (
	ErrStorageDirRequired = errors.New("users: storage directory is required")
	ErrNameRequired       = errors.New("users: name is required")
	ErrUserNotFound       = errors.New("users: user not found")
)

const defaultUserName = "Default"

// Service manages profiles backed by a JSON file. Profiles only scope
// watch history and preferences; there is no authentication.
type Service struct {
	fs       afero.Fs
	filePath string

	mu    sync.RWMutex
	users map[string]models.User
	now   func() time.Time
}

func NewService(fs afero.Fs, storageDir string) (*Service, error) {
	if storageDir == "" {
		return nil, ErrStorageDirRequired
	}
	if err := fs.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("users: create storage dir: %w", err)
	}
	s := &Service{
		fs:       fs,
		filePath: filepath.Join(storageDir, "users.json"),
		users:    make(map[string]models.User),
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
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var stored []models.User
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("users: parse %s: %w", s.filePath, err)
	}
	for _, u := range stored {
		s.users[u.ID] = u
	}
	return nil
}

func (s *Service) saveLocked() error {
	stored := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		stored = append(stored, u)
	}
	sort.Slice(stored, func(i, j int) bool {
		return stored[i].CreatedAt.Before(stored[j].CreatedAt)
	})
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("users: encode: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.filePath, data, 0o644); err != nil {
		return fmt.Errorf("users: write %s: %w", s.filePath, err)
	}
	return nil
}

// EnsureDefault creates the default profile when the store is empty so
// first launch works without a setup step.
func (s *Service) EnsureDefault() (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Name == defaultUserName {
			return u, nil
		}
	}
	if len(s.users) > 0 {
		for _, u := range s.users {
			return u, nil
		}
	}
	u := models.User{
		ID:        uuid.NewString(),
		Name:      defaultUserName,
		CreatedAt: s.now(),
	}
	s.users[u.ID] = u
	if err := s.saveLocked(); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Service) Create(name string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now(),
	}
	s.users[u.ID] = u
	if err := s.saveLocked(); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Service) Get(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) List() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return s.saveLocked()
}
