package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("bad json")
	err := Wrap(cause, ErrValidation.Code, ErrValidation.Status, "invalid payload")

	assert.Equal(t, "invalid payload: bad json", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFromErrorNormalises(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(stderrors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)

	typed := Clone(ErrFeatureDisabled, "exports disabled")
	assert.Same(t, typed, FromError(typed))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "too many subjects")
	assert.Equal(t, "too many subjects", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, ErrValidation.Message, Clone(ErrValidation, "").Message)
	assert.Nil(t, Clone(nil, "x"))
}

func TestNilErrorString(t *testing.T) {
	var e *Error
	assert.Equal(t, "<nil>", e.Error())
	assert.Nil(t, e.Unwrap())
}
