package user

import (
	"context"
	"fmt"

	"bookcatalog/internal/memstore"
)

// MemDBRepo keeps accounts in the shared go-memdb store.
type MemDBRepo struct {
	store *memstore.Store
}

func NewMemDBRepo(store *memstore.Store) *MemDBRepo {
	return &MemDBRepo{store: store}
}

func (r *MemDBRepo) Create(_ context.Context, u *User) error {
	txn := r.store.DB.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(memstore.TableUser, memstore.IndexEmail, u.Email)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	stored := *u
	stored.ID = r.store.NextID(memstore.TableUser)
	if err := txn.Insert(memstore.TableUser, &stored); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	txn.Commit()
	u.ID = stored.ID
	return nil
}

func (r *MemDBRepo) get(index string, arg any) (User, error) {
	txn := r.store.DB.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memstore.TableUser, index, arg)
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	if raw == nil {
		return User{}, ErrNotFound
	}
	return *raw.(*User), nil
}

func (r *MemDBRepo) GetByEmail(_ context.Context, email string) (User, error) {
	return r.get(memstore.IndexEmail, email)
}

func (r *MemDBRepo) GetByID(_ context.Context, id int64) (User, error) {
	return r.get(memstore.IndexID, id)
}
