package book

import (
	"context"
	"fmt"

	"bookcatalog/internal/reference"
)

// Compile builds the plan for p. Pagination is applied only when paginate is set.
func Compile(p ListParams, paginate bool) Plan {
	plan := Plan{
		Filter: CompileFilter(p),
		Sort:   ResolveSort(p.SortBy, p.SortDir),
	}
	if paginate {
		w := Paginate(p.Page, p.Limit)
		plan.Window = &w
	}
	return plan
}

// List returns one hydrated page and the total number of matches.
func (s *Service) List(ctx context.Context, p ListParams) (Page, error) {
	plan := Compile(p, true)

	total, err := s.repo.Count(ctx, plan.Filter)
	if err != nil {
		return Page{}, fmt.Errorf("count books: %w", err)
	}
	books, err := s.repo.Find(ctx, plan)
	if err != nil {
		return Page{}, fmt.Errorf("find books: %w", err)
	}
	if err := s.hydrate(ctx, books); err != nil {
		return Page{}, err
	}
	if books == nil {
		books = []Book{}
	}
	return Page{Data: books, Total: total, Page: plan.Window.Page, Limit: plan.Window.Limit}, nil
}

// Export returns every hydrated match in listing order, without a window.
func (s *Service) Export(ctx context.Context, p ListParams) ([]Book, error) {
	books, err := s.repo.Find(ctx, Compile(p, false))
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	if err := s.hydrate(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

// Get returns one hydrated, non-tombstoned book.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	b, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return Book{}, err
	}
	return s.hydrated(ctx, b)
}

// hydrate attaches Author, Genre and Publisher refs in place with one batch
// lookup per kind. Ids that no longer resolve leave the ref nil.
func (s *Service) hydrate(ctx context.Context, books []Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := map[reference.Kind][]int64{}
	seen := map[reference.Kind]map[int64]bool{}
	for _, kind := range reference.Kinds {
		seen[kind] = map[int64]bool{}
	}
	collect := func(kind reference.Kind, id int64) {
		if !seen[kind][id] {
			seen[kind][id] = true
			ids[kind] = append(ids[kind], id)
		}
	}
	for i := range books {
		collect(reference.KindAuthor, books[i].AuthorID)
		collect(reference.KindGenre, books[i].GenreID)
		collect(reference.KindPublisher, books[i].PublisherID)
	}

	resolved := make(map[reference.Kind]map[int64]reference.Entity, len(reference.Kinds))
	for _, kind := range reference.Kinds {
		entities, err := s.refs.GetMany(ctx, kind, ids[kind])
		if err != nil {
			return fmt.Errorf("hydrate %s: %w", kind, err)
		}
		resolved[kind] = entities
	}

	ref := func(kind reference.Kind, id int64) *Ref {
		e, ok := resolved[kind][id]
		if !ok {
			return nil
		}
		return &Ref{ID: e.ID, Name: e.Name}
	}
	for i := range books {
		books[i].Author = ref(reference.KindAuthor, books[i].AuthorID)
		books[i].Genre = ref(reference.KindGenre, books[i].GenreID)
		books[i].Publisher = ref(reference.KindPublisher, books[i].PublisherID)
	}
	return nil
}
