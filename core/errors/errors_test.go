package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantBase error
	}{
		{
			name:     "invalid format",
			err:      NewInvalidFormat("3:16", ""),
			wantMsg:  `invalid citation "3:16"`,
			wantBase: ErrInvalidFormat,
		},
		{
			name:     "invalid format with reason",
			err:      NewInvalidFormat("", "empty"),
			wantMsg:  `invalid citation "": empty`,
			wantBase: ErrInvalidFormat,
		},
		{
			name:     "unresolved book",
			err:      NewUnresolvedBook("xyz", "xyz3:16", "english"),
			wantMsg:  `unknown book "xyz" in english citation "xyz3:16"`,
			wantBase: ErrUnresolvedBook,
		},
		{
			name:     "not found with ID",
			err:      NewNotFound("chapter", "창세기 51"),
			wantMsg:  "chapter not found: 창세기 51",
			wantBase: ErrNotFound,
		},
		{
			name:     "not found without ID",
			err:      &NotFoundError{Resource: "song"},
			wantMsg:  "song not found",
			wantBase: ErrNotFound,
		},
		{
			name:     "validation",
			err:      NewValidation("id", "0", "must be between 1 and 645"),
			wantMsg:  "validation failed for id: must be between 1 and 645",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.wantBase)
		})
	}
}

func TestStorageError(t *testing.T) {
	cause := fs.ErrPermission
	err := NewStorage("read", "/corpus/01_창세기/창 1.md", cause)

	assert.Equal(t, "failed to read /corpus/01_창세기/창 1.md: permission denied", err.Error())
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNotFoundWithCause(t *testing.T) {
	err := &NotFoundError{Resource: "chapter", ID: "요한복음 30", Err: fs.ErrNotExist}
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{NewInvalidFormat("x", ""), KindInvalidFormat},
		{fmt.Errorf("wrapped: %w", NewUnresolvedBook("x", "x1", "korean")), KindUnresolvedBook},
		{NewNotFound("song", "9999"), KindNotFound},
		{NewStorage("open", "", errors.New("boom")), KindStorage},
		{NewValidation("", "", "bad"), KindInvalidInput},
		{errors.New("other"), KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.err), "Kind(%v)", tt.err)
	}
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ctx"))

	err := Wrap(NewNotFound("chapter", "x"), "fetch verses")
	assert.Equal(t, "fetch verses: chapter not found: x", err.Error())

	var nf *NotFoundError
	assert.True(t, As(err, &nf))
	assert.Equal(t, "chapter", nf.Resource)
	assert.True(t, Is(err, ErrNotFound))
}
