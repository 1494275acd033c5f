package session

import (
	"testing"
	"time"

	"reservation-portal/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *GormStorage {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	s, err := NewGormStorage(db)
	require.NoError(t, err)
	return s
}

func TestGormStorage_SetGet(t *testing.T) {
	s := newTestStorage(t)

	val, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set("a", []byte("one"), 0))
	require.NoError(t, s.Set("a", []byte("two"), time.Hour))
	require.NoError(t, s.Set("", []byte("ignored"), 0))
	require.NoError(t, s.Set("empty", nil, 0))

	val, err = s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), val)

	val, err = s.Get("empty")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestGormStorage_Expiry(t *testing.T) {
	s := newTestStorage(t)
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set("short", []byte("x"), time.Minute))
	require.NoError(t, s.Set("forever", []byte("y"), 0))

	now = now.Add(2 * time.Minute)

	val, err := s.Get("short")
	require.NoError(t, err)
	assert.Nil(t, val)

	n, err := s.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	val, err = s.Get("forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), val)
}

func TestGormStorage_DeleteReset(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("2"), 0))

	require.NoError(t, s.Delete("a"))
	val, err := s.Get("a")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Reset())
	val, err = s.Get("b")
	require.NoError(t, err)
	assert.Nil(t, val)

	assert.NoError(t, s.Close())
}
