// Package reference manages the authors, genres and publishers a book points to.
package reference

import (
	"time"

	"bookcatalog/internal/platform/apperr"
)

// Kind names one of the three reference collections.
type Kind string

const (
	KindAuthor    Kind = "author"
	KindGenre     Kind = "genre"
	KindPublisher Kind = "publisher"
)

// Kinds lists every reference kind in resolution order.
var Kinds = []Kind{KindAuthor, KindGenre, KindPublisher}

var (
	ErrAuthorNotFound    = apperr.New(apperr.ErrNotFound, "Author not found")
	ErrGenreNotFound     = apperr.New(apperr.ErrNotFound, "Genre not found")
	ErrPublisherNotFound = apperr.New(apperr.ErrNotFound, "Publisher not found")

	ErrNameTaken = apperr.New(apperr.ErrConflict, "name already exists")
	ErrInUse     = apperr.New(apperr.ErrConflict, "still referenced by one or more books")
	ErrEmptyName = apperr.New(apperr.ErrInvalidArgument, "name must not be empty")
)

// NotFound returns the not-found error for kind.
func NotFound(kind Kind) error {
	switch kind {
	case KindAuthor:
		return ErrAuthorNotFound
	case KindGenre:
		return ErrGenreNotFound
	default:
		return ErrPublisherNotFound
	}
}

// Entity is an author, genre or publisher.
type Entity struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
