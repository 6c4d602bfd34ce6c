package cache

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	c.Set("k", []byte("body"), time.Minute)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()
	m.Set("k", []byte("body"), time.Minute)

	got, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("body"), got)
}

func TestMemory_MissingKey(t *testing.T) {
	m := NewMemory()
	_, ok := m.Get("absent")
	assert.False(t, ok)
}

func TestMemory_Expiry(t *testing.T) {
	current := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return current }

	m.Set("k", []byte("body"), 30*time.Second)

	_, ok := m.Get("k")
	assert.True(t, ok)

	current = current.Add(31 * time.Second)
	_, ok = m.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len(), "stale entry should be dropped on lookup")
}

func TestMemory_NonPositiveTTLStoresNothing(t *testing.T) {
	m := NewMemory()
	m.Set("k", []byte("body"), 0)
	m.Set("k2", []byte("body"), -time.Second)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_Overwrite(t *testing.T) {
	m := NewMemory()
	m.Set("k", []byte("v1"), time.Minute)
	m.Set("k", []byte("v2"), time.Minute)

	got, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got)
}

func newTestFileCache(t *testing.T) *File {
	t.Helper()
	c, err := NewFile(FileConfig{
		Fs:  afero.NewMemMapFs(),
		Dir: "/cache",
	})
	require.NoError(t, err)
	return c
}

func TestFile_SetGet(t *testing.T) {
	c := newTestFileCache(t)
	c.Set("GET::https://repo.example.com/api/documents/search?page=1", []byte(`{"page":1}`), time.Minute)

	got, ok := c.Get("GET::https://repo.example.com/api/documents/search?page=1")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"page":1}`), got)
}

func TestFile_Expiry(t *testing.T) {
	c := newTestFileCache(t)
	current := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("k", []byte("body"), 30*time.Second)

	_, ok := c.Get("k")
	assert.True(t, ok)

	current = current.Add(time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestFile_CorruptEntryDropped(t *testing.T) {
	fs := afero.NewMemMapFs()
	c, err := NewFile(FileConfig{Fs: fs, Dir: "/cache"})
	require.NoError(t, err)

	c.Set("k", []byte("body"), time.Minute)
	require.NoError(t, afero.WriteFile(fs, c.path("k"), []byte("not json"), 0o644))

	_, ok := c.Get("k")
	assert.False(t, ok)

	exists, err := afero.Exists(fs, c.path("k"))
	require.NoError(t, err)
	assert.False(t, exists, "corrupt entry file should be removed")
}

func TestFile_RequiresDir(t *testing.T) {
	_, err := NewFile(FileConfig{Fs: afero.NewMemMapFs()})
	assert.Error(t, err)
}
