package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/existflow/ironplan/internal/model"
	"github.com/existflow/ironplan/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(store.DriverSQLite, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *store.Store, email string) *model.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), "Test User", email, "hash")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

func createTestProject(t *testing.T, s *store.Store, ownerID, name string) *model.Project {
	t.Helper()
	p, err := s.CreateProject(context.Background(), ownerID, name, "a description")
	if err != nil {
		t.Fatalf("CreateProject(%s): %v", name, err)
	}
	return p
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := store.Open("mysql", "dsn")
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	createTestUser(t, s, "dup@example.com")

	_, err := s.CreateUser(context.Background(), "Other", "dup@example.com", "hash2")
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	created := createTestUser(t, s, "alice@example.com")

	got, err := s.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected id %s, got %s", created.ID, got.ID)
	}

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUser(context.Background(), "no-such-id")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
