package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/dreamnotes/internal/common"
	"github.com/dmitrijs2005/dreamnotes/internal/dbx"
	"github.com/dmitrijs2005/dreamnotes/internal/server/auth"
	"github.com/dmitrijs2005/dreamnotes/internal/server/config"
	"github.com/dmitrijs2005/dreamnotes/internal/server/models"
	notesrepo "github.com/dmitrijs2005/dreamnotes/internal/server/repositories/notes"
	usersrepo "github.com/dmitrijs2005/dreamnotes/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		BcryptCost:                  bcrypt.MinCost,
		AccessTokenValidityDuration: time.Hour,
	}
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byUsernameOut *models.User
	byUsernameErr error

	byIDOut *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.byUsernameErr != nil {
		return nil, f.byUsernameErr
	}
	return f.byUsernameOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	n *fakeNotesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository      { return m.n }

// --- tests ---

func TestRegister_Success(t *testing.T) {
	db := newSQLMockDB(t)

	rm := &fakeRepoManager{u: &fakeUsersRepo{
		createOut: &models.User{ID: 1, Username: "alice", CreatedAt: time.Now()},
	}}
	s := NewUserService(db, rm, testConfig())

	u, err := s.Register(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.ID != 1 || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := newSQLMockDB(t)

	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: common.ErrConflict}}
	s := NewUserService(db, rm, testConfig())

	_, err := s.Register(context.Background(), "alice", "secret123")
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected common.ErrConflict, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	db := newSQLMockDB(t)

	hash, err := auth.HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	rm := &fakeRepoManager{u: &fakeUsersRepo{
		byUsernameOut: &models.User{ID: 7, Username: "alice", HashedPassword: hash},
	}}
	s := NewUserService(db, rm, testConfig())

	token, err := s.Login(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	userID, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID != 7 {
		t.Fatalf("token subject mismatch: got %d want 7", userID)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	db := newSQLMockDB(t)

	rm := &fakeRepoManager{u: &fakeUsersRepo{byUsernameErr: common.ErrNotFound}}
	s := NewUserService(db, rm, testConfig())

	_, err := s.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newSQLMockDB(t)

	hash, err := auth.HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	rm := &fakeRepoManager{u: &fakeUsersRepo{
		byUsernameOut: &models.User{ID: 7, Username: "alice", HashedPassword: hash},
	}}
	s := NewUserService(db, rm, testConfig())

	_, err = s.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestLogin_RepoFailureIsInternal(t *testing.T) {
	db := newSQLMockDB(t)

	rm := &fakeRepoManager{u: &fakeUsersRepo{byUsernameErr: errors.New("db down")}}
	s := NewUserService(db, rm, testConfig())

	_, err := s.Login(context.Background(), "alice", "secret123")
	if !errors.Is(err, common.ErrInternal) {
		t.Fatalf("expected common.ErrInternal, got %v", err)
	}
}

func TestGetByID_PassesThroughNotFound(t *testing.T) {
	db := newSQLMockDB(t)

	rm := &fakeRepoManager{u: &fakeUsersRepo{byIDErr: common.ErrNotFound}}
	s := NewUserService(db, rm, testConfig())

	_, err := s.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}
