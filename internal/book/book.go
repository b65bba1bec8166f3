package book

import (
	"time"

	"bookcatalog/internal/platform/apperr"
)

var (
	// ErrNotFound is returned when a book is absent or tombstoned.
	ErrNotFound = apperr.New(apperr.ErrNotFound, "Book not found")

	ErrEmptyTitle   = apperr.New(apperr.ErrInvalidArgument, "title must not be empty")
	ErrInvalidPrice = apperr.New(apperr.ErrInvalidArgument, "price must be a positive amount with at most 2 decimals")

	// ErrDanglingRelation is returned when a referenced entity vanished
	// between resolution and the write.
	ErrDanglingRelation = apperr.New(apperr.ErrNotFound, "referenced author, genre or publisher not found")
)

// Ref is the hydrated view of a related author, genre or publisher.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book is a catalog record. Author, Genre and Publisher are only set on
// values returned by the query engine.
type Book struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Price       Price      `json:"price"`
	Available   bool       `json:"available"`
	ImageURL    *string    `json:"imageUrl"`
	AuthorID    int64      `json:"authorId"`
	GenreID     int64      `json:"genreId"`
	PublisherID int64      `json:"publisherId"`
	Author      *Ref       `json:"author"`
	Genre       *Ref       `json:"genre"`
	Publisher   *Ref       `json:"publisher"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// Deleted reports whether the book carries a tombstone.
func (b *Book) Deleted() bool {
	return b.DeletedAt != nil
}

// ListParams holds the recognized list and export parameters. Unset
// pointers mean no constraint.
type ListParams struct {
	AuthorID    *int64
	PublisherID *int64
	GenreID     *int64
	Available   *bool
	Search      string

	SortBy  string
	SortDir string

	Page  int
	Limit int

	IncludeDeleted bool
}

// Page is one window of a listing.
type Page struct {
	Data  []Book
	Total int
	Page  int
	Limit int
}

// TotalPages is computed from the effective limit.
func (p Page) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// CreateInput carries the fields of a new book. Nil optionals take defaults.
type CreateInput struct {
	Title       string
	Price       Price
	Available   *bool
	ImageURL    *string
	AuthorID    int64
	GenreID     int64
	PublisherID int64
}

// UpdateInput carries the fields to overwrite. Nil fields stay as stored;
// an empty ImageURL clears the image.
type UpdateInput struct {
	Title       *string
	Price       *Price
	Available   *bool
	ImageURL    *string
	AuthorID    *int64
	GenreID     *int64
	PublisherID *int64
}
