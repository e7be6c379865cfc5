package book

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	b := Build(Fields{Title: "Dune", Author: "Frank Herbert", Genre: "SF", Year: "1965"})

	assert.True(t, b.IsNew())
	assert.Equal(t, "Dune", b.Title)
	require.NotNil(t, b.Year)
	assert.Equal(t, "1965", b.YearText())

	b = Build(Fields{Title: "Dune", Year: "sixties"})
	assert.Nil(t, b.Year)
	assert.Empty(t, b.YearText())

	b = Build(Fields{Title: "  Dune ", Author: " Frank Herbert", Year: " 1965 "})
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Frank Herbert", b.Author)
	require.NotNil(t, b.Year)
	assert.Equal(t, 1965, *b.Year)
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1965", 1965, true},
		{"2147483647", 2147483647, true},
		{"3000000000", 0, false},
		{"99999999999999999999", 0, false},
		{"19x5", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			y, err := parseYear(tt.in)
			assert.Equal(t, tt.ok, err == nil)
			assert.Equal(t, tt.want, y)
		})
	}
}

func TestFieldsFromForm(t *testing.T) {
	form := map[string]string{"title": "  Dune ", "author": "Herbert", "id": "12"}

	f := FieldsFromForm(func(k string) string { return form[k] })

	assert.Equal(t, Fields{Title: "  Dune ", Author: "Herbert"}, f)
}

func TestFieldsOf(t *testing.T) {
	year := 1815
	f := FieldsOf(Book{ID: 2, Title: "Emma", Author: "Jane Austen", Year: &year})

	assert.Equal(t, Fields{Title: "Emma", Author: "Jane Austen", Year: "1815"}, f)
	assert.Empty(t, FieldsOf(Book{Title: "Emma"}).Year)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in string
		id int64
		ok bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, ok := ParseID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"validation", &ValidationError{}, KindValidation},
		{"wrapped validation", fmt.Errorf("create: %w", &ValidationError{}), KindValidation},
		{"not found", ErrNotFound, KindNotFound},
		{"wrapped server", fmt.Errorf("delete book 1: %w", ErrServer), KindServer},
		{"other", fmt.Errorf("dial tcp: refused"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "title", Message: "title missing"},
		{Field: "author", Message: "author missing"},
	}}

	assert.Equal(t, "validation failed: title missing; author missing", err.Error())
}
