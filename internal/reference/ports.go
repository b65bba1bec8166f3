package reference

import (
	"context"
)

// Repository defines the contract for reference entity storage. Every
// method is scoped to one kind.
type Repository interface {
	Create(ctx context.Context, e *Entity) error
	GetByID(ctx context.Context, kind Kind, id int64) (Entity, error)
	GetMany(ctx context.Context, kind Kind, ids []int64) ([]Entity, error)
	List(ctx context.Context, kind Kind) ([]Entity, error)
	Update(ctx context.Context, e *Entity) error
	Delete(ctx context.Context, kind Kind, id int64) error
}
