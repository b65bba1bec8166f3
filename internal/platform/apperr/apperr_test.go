package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_MatchesKind(t *testing.T) {
	err := New(ErrNotFound, "book not found")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "book not found", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", New(ErrNotFound, "x"), ErrNotFound},
		{"wrapped conflict", fmt.Errorf("create author: %w", New(ErrConflict, "x")), ErrConflict},
		{"invalid argument", New(ErrInvalidArgument, "x"), ErrInvalidArgument},
		{"unauthorized", New(ErrUnauthorized, "x"), ErrUnauthorized},
		{"opaque", errors.New("connection refused"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
