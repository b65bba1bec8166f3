package book

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// Window is a bounded slice of an ordered result.
type Window struct {
	Page   int
	Limit  int
	Offset int
}

// Paginate applies the defaults and silently caps the limit at MaxLimit. An
// offset that would overflow saturates at math.MaxInt.
func Paginate(page, limit int) Window {
	if page < 1 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}
	return Window{Page: page, Limit: limit, Offset: offset}
}
