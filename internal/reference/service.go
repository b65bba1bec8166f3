package reference

import (
	"context"
	"strings"
	"time"
)

// Service provides reference entity lookups and CRUD.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new reference service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Resolve returns the entity of kind with id, or that kind's not-found error.
func (s *Service) Resolve(ctx context.Context, kind Kind, id int64) (Entity, error) {
	return s.repo.GetByID(ctx, kind, id)
}

// GetMany returns the entities of kind whose ids are listed, keyed by id.
// Unknown ids are absent from the map.
func (s *Service) GetMany(ctx context.Context, kind Kind, ids []int64) (map[int64]Entity, error) {
	out := make(map[int64]Entity, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	entities, err := s.repo.GetMany(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		out[e.ID] = e
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, kind Kind) ([]Entity, error) {
	return s.repo.List(ctx, kind)
}

func (s *Service) Get(ctx context.Context, kind Kind, id int64) (Entity, error) {
	return s.repo.GetByID(ctx, kind, id)
}

func (s *Service) Create(ctx context.Context, kind Kind, name string) (Entity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entity{}, ErrEmptyName
	}
	now := s.now().UTC()
	e := Entity{Kind: kind, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, &e); err != nil {
		return Entity{}, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, kind Kind, id int64, name string) (Entity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entity{}, ErrEmptyName
	}
	e, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return Entity{}, err
	}
	e.Name = name
	e.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, &e); err != nil {
		return Entity{}, err
	}
	return e, nil
}

// Delete removes the entity. It fails with ErrInUse while a book, tombstoned
// or not, still points at it.
func (s *Service) Delete(ctx context.Context, kind Kind, id int64) error {
	return s.repo.Delete(ctx, kind, id)
}
