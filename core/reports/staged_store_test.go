package reports

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagedStore_CommitReplacesSet(t *testing.T) {
	base := newTestFileStore(t)
	ctx := context.Background()
	save(t, base, "placards/2024-07-01.pdf", "old")

	s := NewStagedStore(base)
	s.Begin()
	save(t, s, "summary.pdf", "new summary")
	save(t, s, "placards/2024-07-10.pdf", "first")
	save(t, s, "placards/2024-07-10.pdf", "second")

	// Nothing is visible until the batch is committed.
	sections, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Section{{Name: "placards", Files: []File{{Name: "2024-07-01.pdf", Path: "placards/2024-07-01.pdf"}}}}, sections)

	require.NoError(t, s.Commit(ctx))

	sections, err = base.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, Count(sections))

	art, err := base.Open(ctx, "placards/2024-07-10.pdf")
	require.NoError(t, err)
	defer art.Close()
	data, err := io.ReadAll(art)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	assert.ErrorIs(t, s.Commit(ctx), ErrNoBatch)
}

func TestStagedStore_DiscardKeepsSet(t *testing.T) {
	base := newTestFileStore(t)
	ctx := context.Background()
	save(t, base, "summary.pdf", "previous")

	s := NewStagedStore(base)
	s.Begin()
	save(t, s, "summary.pdf", "half done")
	s.Discard()

	art, err := base.Open(ctx, "summary.pdf")
	require.NoError(t, err)
	defer art.Close()
	data, err := io.ReadAll(art)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	// Without a batch, saves go straight through.
	save(t, s, "notes.pdf", "direct")
	_, err = base.Open(ctx, "notes.pdf")
	require.NoError(t, err)
}

func TestStagedStore_RejectsUnsafeNames(t *testing.T) {
	s := NewStagedStore(newTestFileStore(t))
	s.Begin()
	err := s.Save(context.Background(), "../escape.pdf", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, ErrInvalidPath)
}
