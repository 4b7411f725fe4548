package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrContainerLoad is returned when the book container cannot be opened
	// or decoded at all. There is no recovery from this; the run aborts
	// before producing any output.
	ErrContainerLoad = errors.New("container load failed")

	// ErrNoRootfile is returned when an EPUB archive carries no rootfile.
	ErrNoRootfile = errors.New("no rootfile found in container")

	// ErrNavigationUnavailable is returned when the container exposes no
	// parseable navigation document. Callers recover by switching to the
	// spine-order extraction path.
	ErrNavigationUnavailable = errors.New("navigation document unavailable")

	// ErrWordNotFound is returned when a word has no entry in the indices.
	ErrWordNotFound = errors.New("word not found")
)

// ContainerLoadError wraps the underlying cause of a failed container load
// with the path that was being opened.
type ContainerLoadError struct {
	Path string
	Err  error
}

func (e *ContainerLoadError) Error() string {
	return fmt.Sprintf("failed to load container %q: %v", e.Path, e.Err)
}

func (e *ContainerLoadError) Is(target error) bool {
	return target == ErrContainerLoad
}

func (e *ContainerLoadError) Unwrap() error {
	return e.Err
}

// NewContainerLoadError creates a new ContainerLoadError
func NewContainerLoadError(path string, err error) *ContainerLoadError {
	return &ContainerLoadError{Path: path, Err: err}
}

// WordNotFoundError represents a lookup for a word that was never indexed
type WordNotFoundError struct {
	Word string
}

func (e *WordNotFoundError) Error() string {
	return fmt.Sprintf("word '%s' not found in the index", e.Word)
}

func (e *WordNotFoundError) Is(target error) bool {
	return target == ErrWordNotFound
}

// NewWordNotFoundError creates a new WordNotFoundError
func NewWordNotFoundError(word string) *WordNotFoundError {
	return &WordNotFoundError{Word: word}
}

// NavigationError represents a navigation document that exists but could
// not be parsed, with the reason the parse failed.
type NavigationError struct {
	Name   string
	Reason string
}

func (e *NavigationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("navigation document '%s' unusable: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("navigation document unusable: %s", e.Reason)
}

func (e *NavigationError) Is(target error) bool {
	return target == ErrNavigationUnavailable
}

// NewNavigationError creates a new NavigationError
func NewNavigationError(name, reason string) *NavigationError {
	return &NavigationError{Name: name, Reason: reason}
}
