package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"bookcatalog/internal/book"
	"bookcatalog/internal/reference"

	"go.uber.org/zap"
)

var catalogNames = map[reference.Kind][]string{
	reference.KindAuthor:    {"Frank Herbert", "Ursula K. Le Guin", "Isaac Asimov", "Octavia E. Butler", "Gabriel García Márquez", "Jane Austen"},
	reference.KindGenre:     {"Fiction", "Science Fiction", "History", "Science", "Romance", "Mystery", "Biography", "Philosophy"},
	reference.KindPublisher: {"Penguin", "HarperCollins", "Oxford", "Cambridge", "Ace", "Vintage"},
}

var words = []string{
	"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
	"Love", "War", "Peace", "Science", "Nature", "History", "Future",
	"Reality", "Imagination", "Wisdom", "Light", "Darkness", "Time", "Space",
}

type seeder struct {
	refs   *reference.Service
	books  *book.Service
	logger *zap.Logger
	rng    *rand.Rand
}

func newSeeder(refs *reference.Service, books *book.Service, logger *zap.Logger, seed int64) *seeder {
	return &seeder{refs: refs, books: books, logger: logger, rng: rand.New(rand.NewSource(seed))}
}

// ensureReferences creates the missing reference entities and returns the
// ids of every entity of each kind.
func (s *seeder) ensureReferences(ctx context.Context) (map[reference.Kind][]int64, error) {
	ids := make(map[reference.Kind][]int64, len(reference.Kinds))
	for _, kind := range reference.Kinds {
		for _, name := range catalogNames[kind] {
			if _, err := s.refs.Create(ctx, kind, name); err != nil && !errors.Is(err, reference.ErrNameTaken) {
				return nil, fmt.Errorf("seed %s %q: %w", kind, name, err)
			}
		}
		all, err := s.refs.List(ctx, kind)
		if err != nil {
			return nil, err
		}
		for _, e := range all {
			ids[kind] = append(ids[kind], e.ID)
		}
	}
	return ids, nil
}

func (s *seeder) pick(ids []int64) int64 {
	return ids[s.rng.Intn(len(ids))]
}

func (s *seeder) run(ctx context.Context, count int) error {
	ids, err := s.ensureReferences(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("generating books", zap.Int("count", count))
	for i := range count {
		available := s.rng.Intn(5) != 0
		in := book.CreateInput{
			Title:       fmt.Sprintf("%s of %s %d", words[s.rng.Intn(len(words))], words[s.rng.Intn(len(words))], i+1),
			Price:       book.Price(100 + s.rng.Int63n(9900)),
			Available:   &available,
			AuthorID:    s.pick(ids[reference.KindAuthor]),
			GenreID:     s.pick(ids[reference.KindGenre]),
			PublisherID: s.pick(ids[reference.KindPublisher]),
		}
		if _, err := s.books.Create(ctx, in); err != nil {
			return fmt.Errorf("seed book %d: %w", i+1, err)
		}
		if (i+1)%100 == 0 {
			s.logger.Info("progress", zap.Int("generated", i+1), zap.Int("total", count))
		}
	}

	page, err := s.books.List(ctx, book.ListParams{Limit: 1})
	if err != nil {
		return err
	}
	s.logger.Info("seeding complete", zap.Int("inserted", count), zap.Int("total_books", page.Total))
	return nil
}
