package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookcatalog/internal/memstore"
	"bookcatalog/internal/platform/apperr"

	"github.com/matryer/is"
)

func newMemDBRepo(t *testing.T) *MemDBRepo {
	t.Helper()
	store, err := memstore.New()
	if err != nil {
		t.Fatalf("memstore.New: %v", err)
	}
	return NewMemDBRepo(store)
}

func TestMemDBRepo_CreateAndLookup(t *testing.T) {
	is := is.New(t)
	repo := newMemDBRepo(t)
	ctx := context.Background()

	u := User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash", CreatedAt: time.Now()}
	is.NoErr(repo.Create(ctx, &u))
	is.Equal(u.ID, int64(1))

	byID, err := repo.GetByID(ctx, 1)
	is.NoErr(err)
	is.Equal(byID.Email, "ada@example.com")

	byEmail, err := repo.GetByEmail(ctx, "ADA@example.com")
	is.NoErr(err)
	is.Equal(byEmail.ID, int64(1))

	_, err = repo.GetByID(ctx, 2)
	is.True(errors.Is(err, ErrNotFound))
}

func TestMemDBRepo_DuplicateEmail(t *testing.T) {
	is := is.New(t)
	repo := newMemDBRepo(t)
	ctx := context.Background()

	is.NoErr(repo.Create(ctx, &User{Name: "Ada", Email: "ada@example.com"}))
	err := repo.Create(ctx, &User{Name: "Other", Email: "Ada@Example.com"})
	is.True(errors.Is(err, ErrEmailTaken))
	is.True(errors.Is(err, apperr.ErrConflict))
}

func TestService_Register(t *testing.T) {
	is := is.New(t)
	svc := NewService(newMemDBRepo(t))
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Ada Lovelace ", " Ada@Example.com ", "hash")
	is.NoErr(err)
	is.Equal(u.Name, "Ada Lovelace")
	is.Equal(u.Email, "ada@example.com")
	is.Equal(u.CreatedAt, fixed)

	_, err = svc.Register(ctx, "Ada", "ada@example.com", "hash")
	is.True(errors.Is(err, ErrEmailTaken))

	got, err := svc.GetByEmail(ctx, "ADA@EXAMPLE.COM")
	is.NoErr(err)
	is.Equal(got.ID, u.ID)
}
