package book

import (
	"context"

	"bookcatalog/internal/reference"
)

// Plan is a compiled selection. A nil Window selects every matching row.
type Plan struct {
	Filter Filter
	Sort   Sort
	Window *Window
}

// Repository defines the contract for book data storage. Returned books are
// never hydrated.
type Repository interface {
	Find(ctx context.Context, plan Plan) ([]Book, error)
	Count(ctx context.Context, filter Filter) (int, error)
	GetByID(ctx context.Context, id int64, includeDeleted bool) (Book, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
}

// RelationResolver looks up the reference entities a book points to.
type RelationResolver interface {
	Resolve(ctx context.Context, kind reference.Kind, id int64) (reference.Entity, error)
	GetMany(ctx context.Context, kind reference.Kind, ids []int64) (map[int64]reference.Entity, error)
}
