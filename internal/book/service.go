package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookcatalog/internal/reference"
)

// Service runs catalog queries and mutations.
type Service struct {
	repo Repository
	refs RelationResolver
	now  func() time.Time
}

// NewService creates a new book service.
func NewService(repo Repository, refs RelationResolver) *Service {
	return &Service{repo: repo, refs: refs, now: time.Now}
}

// Create resolves author, genre and publisher in that order and persists the
// book only when all three exist.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Book{}, ErrEmptyTitle
	}
	if !in.Price.Positive() {
		return Book{}, ErrInvalidPrice
	}
	if err := s.resolveAll(ctx, &in.AuthorID, &in.GenreID, &in.PublisherID); err != nil {
		return Book{}, err
	}

	now := s.now().UTC()
	b := Book{
		Title:       title,
		Price:       in.Price,
		Available:   true,
		ImageURL:    normalizeImage(in.ImageURL),
		AuthorID:    in.AuthorID,
		GenreID:     in.GenreID,
		PublisherID: in.PublisherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Available != nil {
		b.Available = *in.Available
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, fmt.Errorf("create book: %w", err)
	}
	return s.hydrated(ctx, b)
}

// Update overlays the supplied fields on the stored book and persists the
// result as a new value. Every supplied relation is resolved before anything
// is written. The read and the write are not atomic; the last write wins.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Book, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return Book{}, ErrEmptyTitle
	}
	if in.Price != nil && !in.Price.Positive() {
		return Book{}, ErrInvalidPrice
	}

	current, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return Book{}, err
	}
	if err := s.resolveAll(ctx, in.AuthorID, in.GenreID, in.PublisherID); err != nil {
		return Book{}, err
	}

	next := current
	if in.Title != nil {
		next.Title = strings.TrimSpace(*in.Title)
	}
	if in.Price != nil {
		next.Price = *in.Price
	}
	if in.Available != nil {
		next.Available = *in.Available
	}
	if in.ImageURL != nil {
		next.ImageURL = normalizeImage(in.ImageURL)
	}
	if in.AuthorID != nil {
		next.AuthorID = *in.AuthorID
	}
	if in.GenreID != nil {
		next.GenreID = *in.GenreID
	}
	if in.PublisherID != nil {
		next.PublisherID = *in.PublisherID
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, &next); err != nil {
		return Book{}, fmt.Errorf("update book %d: %w", id, err)
	}
	return s.hydrated(ctx, next)
}

// Delete tombstones the book. Related reference rows are left alone.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return err
	}
	deleted := current
	now := s.now().UTC()
	deleted.DeletedAt = &now
	if err := s.repo.Update(ctx, &deleted); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}

// resolveAll checks the non-nil ids in author, genre, publisher order and
// returns the first not-found error.
func (s *Service) resolveAll(ctx context.Context, authorID, genreID, publisherID *int64) error {
	checks := []struct {
		kind reference.Kind
		id   *int64
	}{
		{reference.KindAuthor, authorID},
		{reference.KindGenre, genreID},
		{reference.KindPublisher, publisherID},
	}
	for _, c := range checks {
		if c.id == nil {
			continue
		}
		if _, err := s.refs.Resolve(ctx, c.kind, *c.id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) hydrated(ctx context.Context, b Book) (Book, error) {
	books := []Book{b}
	if err := s.hydrate(ctx, books); err != nil {
		return Book{}, err
	}
	return books[0], nil
}

func normalizeImage(url *string) *string {
	if url == nil || *url == "" {
		return nil
	}
	v := *url
	return &v
}
