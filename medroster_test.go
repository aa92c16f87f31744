package medroster_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/medroster"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := medroster.Errorf(medroster.ENOTFOUND, "record %q not found", "https://example.com/doctors/a")

	assert.Equal(t, medroster.ENOTFOUND, medroster.ErrorCode(err))
	assert.Equal(t, "record \"https://example.com/doctors/a\" not found", medroster.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading: %w", medroster.Errorf(medroster.EINVALID, "bad row"))

	assert.Equal(t, medroster.EINVALID, medroster.ErrorCode(err))
	assert.Equal(t, "bad row", medroster.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, medroster.EINTERNAL, medroster.ErrorCode(err))
	assert.Equal(t, "Internal error", medroster.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, medroster.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, medroster.ErrorMessage(nil))
}
