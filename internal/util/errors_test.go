package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFoundError("gone")))
	assert.Equal(t, KindUnauthorized, KindOf(UnauthorizedError("no")))
	assert.Equal(t, KindValidation, KindOf(ValidationError("bad")))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnexpected, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading project: %w", NotFoundError("project not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUnexpectedErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := UnexpectedError(cause)
	assert.ErrorIs(t, err, cause)
}
