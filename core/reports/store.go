package reports

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrNotFound is returned when a requested artifact does not exist.
	ErrNotFound = errors.New("artifact not found")
	// ErrInvalidPath is returned for names that are empty, absolute or escape the store root.
	ErrInvalidPath = errors.New("invalid artifact path")
)

// Store is the repository of generated artifacts.
// Names are slash-separated paths relative to the store root.
type Store interface {
	// Save writes an artifact, replacing any existing one with the same name.
	Save(ctx context.Context, name string, r io.Reader, size int64) error
	// Open returns the artifact content. The caller closes the reader.
	Open(ctx context.Context, name string) (*Artifact, error)
	// List returns all artifacts grouped into sections.
	List(ctx context.Context) ([]Section, error)
	// Clear removes every artifact.
	Clear(ctx context.Context) error
}

// Artifact is an opened artifact.
type Artifact struct {
	io.ReadCloser
	Name    string
	Size    int64
	ModTime time.Time
}
