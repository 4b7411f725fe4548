package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerLoadError(t *testing.T) {
	cause := stderrors.New("zip: not a valid zip file")
	err := NewContainerLoadError("/books/broken.epub", cause)

	assert.ErrorIs(t, err, ErrContainerLoad)
	assert.ErrorIs(t, err, cause, "the cause stays reachable through Unwrap")
	assert.Contains(t, err.Error(), "/books/broken.epub")
}

func TestWordNotFoundError(t *testing.T) {
	err := NewWordNotFoundError("inexistente")

	assert.ErrorIs(t, err, ErrWordNotFound)
	assert.NotErrorIs(t, err, ErrContainerLoad)
	assert.Contains(t, err.Error(), "inexistente")
}

func TestNavigationError(t *testing.T) {
	err := NewNavigationError("toc.ncx", "NCX parse failed")
	assert.ErrorIs(t, err, ErrNavigationUnavailable)
	assert.Contains(t, err.Error(), "toc.ncx")
	assert.Contains(t, err.Error(), "NCX parse failed")

	unnamed := NewNavigationError("", "no nav container found")
	assert.Contains(t, unnamed.Error(), "no nav container found")
}
