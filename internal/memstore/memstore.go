// Package memstore holds the go-memdb schema shared by the in-memory repositories.
package memstore

import (
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"
)

const (
	TableAuthor    = "author"
	TableGenre     = "genre"
	TablePublisher = "publisher"
	TableBook      = "book"
	TableUser      = "user"

	IndexID          = "id"
	IndexName        = "name"
	IndexEmail       = "email"
	IndexAuthorID    = "author_id"
	IndexGenreID     = "genre_id"
	IndexPublisherID = "publisher_id"
)

// Store is an in-memory database plus one id sequence per table.
type Store struct {
	DB   *memdb.MemDB
	seqs map[string]*atomic.Int64
}

func referenceTable(name string) *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: name,
		Indexes: map[string]*memdb.IndexSchema{
			IndexID: {
				Name:    IndexID,
				Unique:  true,
				Indexer: &memdb.IntFieldIndex{Field: "ID"},
			},
			IndexName: {
				Name:    IndexName,
				Unique:  true,
				Indexer: &memdb.StringFieldIndex{Field: "Name"},
			},
		},
	}
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			TableAuthor:    referenceTable(TableAuthor),
			TableGenre:     referenceTable(TableGenre),
			TablePublisher: referenceTable(TablePublisher),
			TableBook: {
				Name: TableBook,
				Indexes: map[string]*memdb.IndexSchema{
					IndexID: {
						Name:    IndexID,
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					IndexAuthorID: {
						Name:    IndexAuthorID,
						Indexer: &memdb.IntFieldIndex{Field: "AuthorID"},
					},
					IndexGenreID: {
						Name:    IndexGenreID,
						Indexer: &memdb.IntFieldIndex{Field: "GenreID"},
					},
					IndexPublisherID: {
						Name:    IndexPublisherID,
						Indexer: &memdb.IntFieldIndex{Field: "PublisherID"},
					},
				},
			},
			TableUser: {
				Name: TableUser,
				Indexes: map[string]*memdb.IndexSchema{
					IndexID: {
						Name:    IndexID,
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					IndexEmail: {
						Name:    IndexEmail,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Email", Lowercase: true},
					},
				},
			},
		},
	}
}

// New creates an empty store.
func New() (*Store, error) {
	s := schema()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("memstore schema: %w", err)
	}
	db, err := memdb.NewMemDB(s)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	seqs := make(map[string]*atomic.Int64, len(s.Tables))
	for name := range s.Tables {
		seqs[name] = new(atomic.Int64)
	}
	return &Store{DB: db, seqs: seqs}, nil
}

// NextID returns the next identifier for table, starting at 1.
func (s *Store) NextID(table string) int64 {
	return s.seqs[table].Add(1)
}
