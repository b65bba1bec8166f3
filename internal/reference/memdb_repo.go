package reference

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"bookcatalog/internal/memstore"
)

var bookIndexes = map[Kind]string{
	KindAuthor:    memstore.IndexAuthorID,
	KindGenre:     memstore.IndexGenreID,
	KindPublisher: memstore.IndexPublisherID,
}

// MemDBRepo keeps reference entities in the shared go-memdb store.
type MemDBRepo struct {
	store *memstore.Store
}

func NewMemDBRepo(store *memstore.Store) *MemDBRepo {
	return &MemDBRepo{store: store}
}

func (r *MemDBRepo) Create(_ context.Context, e *Entity) error {
	txn := r.store.DB.Txn(true)
	defer txn.Abort()

	table := string(e.Kind)
	existing, err := txn.First(table, memstore.IndexName, e.Name)
	if err != nil {
		return fmt.Errorf("create %s: %w", e.Kind, err)
	}
	if existing != nil {
		return ErrNameTaken
	}

	stored := *e
	stored.ID = r.store.NextID(table)
	if err := txn.Insert(table, &stored); err != nil {
		return fmt.Errorf("create %s: %w", e.Kind, err)
	}
	txn.Commit()
	e.ID = stored.ID
	return nil
}

func (r *MemDBRepo) GetByID(_ context.Context, kind Kind, id int64) (Entity, error) {
	txn := r.store.DB.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(string(kind), memstore.IndexID, id)
	if err != nil {
		return Entity{}, fmt.Errorf("get %s: %w", kind, err)
	}
	if raw == nil {
		return Entity{}, NotFound(kind)
	}
	return *raw.(*Entity), nil
}

func (r *MemDBRepo) GetMany(_ context.Context, kind Kind, ids []int64) ([]Entity, error) {
	txn := r.store.DB.Txn(false)
	defer txn.Abort()

	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		raw, err := txn.First(string(kind), memstore.IndexID, id)
		if err != nil {
			return nil, fmt.Errorf("get %s batch: %w", kind, err)
		}
		if raw != nil {
			out = append(out, *raw.(*Entity))
		}
	}
	return out, nil
}

func (r *MemDBRepo) List(_ context.Context, kind Kind) ([]Entity, error) {
	txn := r.store.DB.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(string(kind), memstore.IndexID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	var out []Entity
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, *raw.(*Entity))
	}
	slices.SortFunc(out, func(a, b Entity) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *MemDBRepo) Update(_ context.Context, e *Entity) error {
	txn := r.store.DB.Txn(true)
	defer txn.Abort()

	table := string(e.Kind)
	current, err := txn.First(table, memstore.IndexID, e.ID)
	if err != nil {
		return fmt.Errorf("update %s: %w", e.Kind, err)
	}
	if current == nil {
		return NotFound(e.Kind)
	}
	other, err := txn.First(table, memstore.IndexName, e.Name)
	if err != nil {
		return fmt.Errorf("update %s: %w", e.Kind, err)
	}
	if other != nil && other.(*Entity).ID != e.ID {
		return ErrNameTaken
	}

	stored := *e
	if err := txn.Insert(table, &stored); err != nil {
		return fmt.Errorf("update %s: %w", e.Kind, err)
	}
	txn.Commit()
	return nil
}

func (r *MemDBRepo) Delete(_ context.Context, kind Kind, id int64) error {
	txn := r.store.DB.Txn(true)
	defer txn.Abort()

	table := string(kind)
	current, err := txn.First(table, memstore.IndexID, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if current == nil {
		return NotFound(kind)
	}
	ref, err := txn.First(memstore.TableBook, bookIndexes[kind], id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if ref != nil {
		return ErrInUse
	}
	if err := txn.Delete(table, current); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	txn.Commit()
	return nil
}
