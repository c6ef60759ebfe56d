package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBook(t *testing.T) {
	tests := []struct {
		name    string
		book    *Book
		wantErr error
	}{
		{
			name:    "valid book",
			book:    &Book{Title: "1984", Author: "조지 오웰"},
			wantErr: nil,
		},
		{
			name:    "nil book",
			book:    nil,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing title",
			book:    &Book{Author: "조지 오웰"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "whitespace author",
			book:    &Book{Title: "1984", Author: "   "},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "id with separator",
			book:    &Book{ID: "a\x00b", Title: "1984", Author: "조지 오웰"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBook(tt.book)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBook() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBook() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBook_Details(t *testing.T) {
	err := ValidateBook(&Book{})

	var derr *Error
	require.ErrorAs(t, err, &derr)
	details, ok := derr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "author")
}

func TestNormalizeBookID(t *testing.T) {
	id, err := NormalizeBookID("  9788932917245\t")
	require.NoError(t, err)
	assert.Equal(t, "9788932917245", id)

	_, err = NormalizeBookID("   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NormalizeBookID("a\x00b")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
