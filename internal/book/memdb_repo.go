package book

import (
	"context"
	"fmt"
	"slices"

	"bookcatalog/internal/memstore"

	"github.com/hashicorp/go-memdb"
)

var relationIndexes = map[Field]string{
	FieldAuthorID:    memstore.IndexAuthorID,
	FieldGenreID:     memstore.IndexGenreID,
	FieldPublisherID: memstore.IndexPublisherID,
}

// MemDBRepo keeps books in the shared go-memdb store.
type MemDBRepo struct {
	store *memstore.Store
}

func NewMemDBRepo(store *memstore.Store) *MemDBRepo {
	return &MemDBRepo{store: store}
}

// stored returns a copy of b without hydrated refs.
func stored(b *Book) *Book {
	c := *b
	c.Author, c.Genre, c.Publisher = nil, nil, nil
	return &c
}

// scan walks the rows matching f, narrowing through a relation index when
// the filter has one.
func scan(txn *memdb.Txn, f Filter) ([]Book, error) {
	index, args := memstore.IndexID, []any{}
	for _, p := range f {
		if idx, ok := relationIndexes[p.Field]; ok && p.Op == OpEq {
			index, args = idx, []any{p.Value}
			break
		}
	}
	it, err := txn.Get(memstore.TableBook, index, args...)
	if err != nil {
		return nil, err
	}
	var out []Book
	for raw := it.Next(); raw != nil; raw = it.Next() {
		b := raw.(*Book)
		if f.Matches(b) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *MemDBRepo) Count(_ context.Context, f Filter) (int, error) {
	txn := r.store.DB.Txn(false)
	defer txn.Abort()

	books, err := scan(txn, f)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return len(books), nil
}

func (r *MemDBRepo) Find(_ context.Context, plan Plan) ([]Book, error) {
	txn := r.store.DB.Txn(false)
	defer txn.Abort()

	books, err := scan(txn, plan.Filter)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	slices.SortFunc(books, func(a, b Book) int {
		return plan.Sort.Compare(&a, &b)
	})
	if plan.Window != nil {
		start := max(min(plan.Window.Offset, len(books)), 0)
		end := min(start+plan.Window.Limit, len(books))
		books = books[start:end]
	}
	return books, nil
}

func (r *MemDBRepo) GetByID(_ context.Context, id int64, includeDeleted bool) (Book, error) {
	txn := r.store.DB.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memstore.TableBook, memstore.IndexID, id)
	if err != nil {
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	if raw == nil {
		return Book{}, ErrNotFound
	}
	b := raw.(*Book)
	if b.Deleted() && !includeDeleted {
		return Book{}, ErrNotFound
	}
	return *b, nil
}

func (r *MemDBRepo) Create(_ context.Context, b *Book) error {
	txn := r.store.DB.Txn(true)
	defer txn.Abort()

	row := stored(b)
	row.ID = r.store.NextID(memstore.TableBook)
	if err := txn.Insert(memstore.TableBook, row); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	txn.Commit()
	b.ID = row.ID
	return nil
}

func (r *MemDBRepo) Update(_ context.Context, b *Book) error {
	txn := r.store.DB.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(memstore.TableBook, memstore.IndexID, b.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := txn.Insert(memstore.TableBook, stored(b)); err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	txn.Commit()
	return nil
}
