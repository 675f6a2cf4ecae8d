package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_Status(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Status())
		})
	}
}

func TestConflict_NamesField(t *testing.T) {
	cause := errors.New("duplicated key")
	err := Conflict("email", cause)

	resp := err.ToErrorResponse()
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "Validation Error", resp.Message)
	if assert.Len(t, resp.Errors, 1) {
		assert.Equal(t, "email", resp.Errors[0].Field)
		assert.Equal(t, LocationBody, resp.Errors[0].Location)
		assert.Equal(t, []string{`"email" already exists`}, resp.Errors[0].Messages)
	}
	assert.ErrorIs(t, err, cause)
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("load order: %w", NotFound("order does not exist"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(nil, KindNotFound))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestMapErrorToHTTP(t *testing.T) {
	t.Run("domain error keeps message", func(t *testing.T) {
		resp := MapErrorToHTTP(Forbidden("forbidden"))
		assert.Equal(t, http.StatusForbidden, resp.Status)
		assert.Equal(t, "forbidden", resp.Message)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		resp := MapErrorToHTTP(errors.New("dial tcp 10.0.0.1:3306: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, resp.Status)
		assert.Equal(t, "internal server error", resp.Message)
		assert.Empty(t, resp.Errors)
	})
}
