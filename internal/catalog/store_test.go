package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"file": func(t *testing.T) Store {
			s, err := NewFileStore(filepath.Join(t.TempDir(), "store"))
			require.NoError(t, err)
			return s
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)

			data, found, err := s.Get(CatalogKey)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, data)

			require.NoError(t, s.Put(CatalogKey, []byte(`[1]`)))
			require.NoError(t, s.Put(CatalogKey, []byte(`[1,2]`)))

			data, found, err = s.Get(CatalogKey)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[1,2]`, string(data))
		})
	}
}

func TestMemoryStore_CopiesData(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Put("k", buf))
	buf[0] = 'x'

	got, _, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _, _ := s.Get("k")
	assert.Equal(t, "abc", string(again))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(CategoriesKey, []byte(`["Sora2"]`)))
	raw, err := os.ReadFile(filepath.Join(dir, CategoriesKey+".json"))
	require.NoError(t, err)
	assert.Equal(t, `["Sora2"]`, string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_InvalidKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		_, _, err := s.Get(key)
		assert.Error(t, err, key)
		assert.Error(t, s.Put(key, []byte("x")), key)
	}
}
