package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOfFollowsWrapChain(t *testing.T) {
	base := Conflict("category_name_taken", "category %q already exists", "Tech")
	wrapped := fmt.Errorf("create category: %w", base)

	assert.Equal(t, http.StatusConflict, StatusOf(wrapped))
	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))

	ae, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "category_name_taken", ae.Code)
	assert.Equal(t, `category "Tech" already exists`, ae.Error())
}

func TestStatusOfUnclassified(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.Equal(t, http.StatusOK, StatusOf(nil))
}

func TestErrorFallbacks(t *testing.T) {
	assert.Equal(t, "bad_thing", New(http.StatusBadRequest, "bad_thing", nil).Error())
	assert.Equal(t, "api error (418)", New(http.StatusTeapot, "", nil).Error())
	var nilErr *Error
	assert.Equal(t, "", nilErr.Error())
}
