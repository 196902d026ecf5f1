package errors

import (
	"fmt"
	"io/fs"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  &Error{Kind: KindStructuralParse, Message: "marker not found"},
			want: "marker not found",
		},
		{
			name: "with source",
			err:  Structural("SITE_base.xlsx[Profiles]", "found %d markers, need 2", 1),
			want: "SITE_base.xlsx[Profiles]: found 1 markers, need 2",
		},
		{
			name: "with wrapped cause",
			err:  NotFoundWrap("SITE_boot.xlsx", fs.ErrNotExist),
			want: "SITE_boot.xlsx: source not found: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindClassification(t *testing.T) {
	nf := NotFound("t", "gone")
	st := Structural("t", "bad shape")

	assert.True(t, IsNotFound(nf))
	assert.False(t, IsNotFound(st))
	assert.True(t, IsStructural(st))
	assert.False(t, IsStructural(nf))

	// classification survives wrapping
	wrapped := fmt.Errorf("read base profiles: %w", nf)
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(fs.ErrPermission))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("t", "gone").StatusCode())
	assert.Equal(t, http.StatusUnprocessableEntity, Structural("t", "bad").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Internal("t", fs.ErrPermission).StatusCode())
}

func TestUnwrap(t *testing.T) {
	cause := fs.ErrNotExist
	err := NotFoundWrap("file", cause)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
