package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	notFound := New(http.StatusNotFound, "item not found")

	assert.Equal(t, http.StatusNotFound, StatusOf(notFound))
	assert.Equal(t, http.StatusNotFound, StatusOf(fmt.Errorf("lookup: %w", notFound)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestWrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(cause, http.StatusConflict, "email already used")

	assert.Equal(t, "email already used", err.Error())
	assert.ErrorIs(t, err, cause)
}
