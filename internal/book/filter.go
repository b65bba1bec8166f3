package book

import (
	"strings"
)

// Field is a filterable book column.
type Field string

const (
	FieldDeletedAt   Field = "deleted_at"
	FieldAuthorID    Field = "author_id"
	FieldPublisherID Field = "publisher_id"
	FieldGenreID     Field = "genre_id"
	FieldAvailable   Field = "available"
	FieldTitle       Field = "title"
)

// Op is a predicate operator.
type Op int

const (
	OpIsNull Op = iota
	OpEq
	// OpContainsFold is a case-insensitive substring match. Value is already lowercased.
	OpContainsFold
)

// Predicate is one condition of a conjunctive filter.
type Predicate struct {
	Field Field
	Op    Op
	Value any
}

// Filter is a conjunction of predicates.
type Filter []Predicate

// CompileFilter turns the recognized parameters into a Filter. The tombstone
// predicate comes first unless p.IncludeDeleted is set.
func CompileFilter(p ListParams) Filter {
	var f Filter
	if !p.IncludeDeleted {
		f = append(f, Predicate{Field: FieldDeletedAt, Op: OpIsNull})
	}
	if p.AuthorID != nil {
		f = append(f, Predicate{Field: FieldAuthorID, Op: OpEq, Value: *p.AuthorID})
	}
	if p.PublisherID != nil {
		f = append(f, Predicate{Field: FieldPublisherID, Op: OpEq, Value: *p.PublisherID})
	}
	if p.GenreID != nil {
		f = append(f, Predicate{Field: FieldGenreID, Op: OpEq, Value: *p.GenreID})
	}
	if p.Available != nil {
		f = append(f, Predicate{Field: FieldAvailable, Op: OpEq, Value: *p.Available})
	}
	if p.Search != "" {
		f = append(f, Predicate{Field: FieldTitle, Op: OpContainsFold, Value: strings.ToLower(p.Search)})
	}
	return f
}

// Matches evaluates the filter against b.
func (f Filter) Matches(b *Book) bool {
	for _, p := range f {
		if !p.matches(b) {
			return false
		}
	}
	return true
}

func (p Predicate) matches(b *Book) bool {
	switch p.Op {
	case OpIsNull:
		return p.Field == FieldDeletedAt && b.DeletedAt == nil
	case OpEq:
		switch p.Field {
		case FieldAuthorID:
			return b.AuthorID == p.Value.(int64)
		case FieldPublisherID:
			return b.PublisherID == p.Value.(int64)
		case FieldGenreID:
			return b.GenreID == p.Value.(int64)
		case FieldAvailable:
			return b.Available == p.Value.(bool)
		}
	case OpContainsFold:
		if p.Field == FieldTitle {
			return strings.Contains(strings.ToLower(b.Title), p.Value.(string))
		}
	}
	return false
}
