package users

import (
	"testing"

	"github.com/spf13/afero"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return s
}

func TestEnsureDefaultBootstrapsOnce(t *testing.T) {
	s := newTestService(t)

	first, err := s.EnsureDefault()
	if err != nil {
		t.Fatalf("EnsureDefault: %v", err)
	}
	if first.Name != defaultUserName || first.ID == "" {
		t.Fatalf("unexpected default user: %+v", first)
	}

	second, err := s.EnsureDefault()
	if err != nil {
		t.Fatalf("EnsureDefault again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same default user, got %q and %q", first.ID, second.ID)
	}
	if len(s.List()) != 1 {
		t.Errorf("expected a single user, got %d", len(s.List()))
	}
}

func TestEnsureDefaultKeepsExistingUsers(t *testing.T) {
	s := newTestService(t)
	created, err := s.Create("Asha")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.EnsureDefault()
	if err != nil {
		t.Fatalf("EnsureDefault: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected existing user reused, got %+v", got)
	}
}

func TestCreateGetDelete(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Create("   "); err != ErrNameRequired {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}

	u, err := s.Create("Ravi")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get(u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Ravi" {
		t.Errorf("expected Ravi, got %q", got.Name)
	}

	if err := s.Delete(u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(u.ID); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := s.Delete(u.ID); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound on double delete, got %v", err)
	}
}

func TestPersistenceAcrossRestarts(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewService(fs, "/data")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	created, _ := s.Create("Maya")

	reopened, err := NewService(fs, "/data")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(created.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Name != "Maya" {
		t.Errorf("expected Maya, got %q", got.Name)
	}
}
