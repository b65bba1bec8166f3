package book

import (
	"cmp"
	"strings"
)

// SortKey is an allow-listed sort target.
type SortKey string

const (
	SortTitle     SortKey = "title"
	SortPrice     SortKey = "price"
	SortCreatedAt SortKey = "createdAt"
)

// Direction is ASC or DESC.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// SortKeys lists the accepted sortBy values.
var SortKeys = []string{string(SortTitle), string(SortPrice), string(SortCreatedAt)}

var sortKeys = map[string]SortKey{
	string(SortTitle):     SortTitle,
	string(SortPrice):     SortPrice,
	string(SortCreatedAt): SortCreatedAt,
}

// Sort is a resolved ordering. Ties are broken by id in the same direction.
type Sort struct {
	Key SortKey
	Dir Direction
}

// ResolveSort maps the requested key onto the allow-list, falling back to
// title, and treats anything but DESC as ascending.
func ResolveSort(key, dir string) Sort {
	s := Sort{Key: SortTitle, Dir: Asc}
	if k, ok := sortKeys[key]; ok {
		s.Key = k
	}
	if strings.EqualFold(dir, string(Desc)) {
		s.Dir = Desc
	}
	return s
}

// Compare orders a and b the way the Postgres repository does.
func (s Sort) Compare(a, b *Book) int {
	var c int
	switch s.Key {
	case SortPrice:
		c = cmp.Compare(a.Price, b.Price)
	case SortCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	default:
		c = cmp.Compare(a.Title, b.Title)
	}
	c = cmp.Or(c, cmp.Compare(a.ID, b.ID))
	if s.Dir == Desc {
		return -c
	}
	return c
}
