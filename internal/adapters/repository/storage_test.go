package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/traineval/internal/adapters/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageAdapters(t *testing.T) {
	ctx := context.Background()

	adapters := []struct {
		name string
		new  func(t *testing.T) repository.Storage
	}{
		{
			name: "memory",
			new:  func(*testing.T) repository.Storage { return repository.NewMemoryStorage() },
		},
		{
			name: "file",
			new: func(t *testing.T) repository.Storage {
				fs, err := repository.NewFileStorage(filepath.Join(t.TempDir(), "state"))
				require.NoError(t, err)
				return fs
			},
		},
	}

	for _, a := range adapters {
		t.Run(a.name, func(t *testing.T) {
			s := a.new(t)

			_, err := s.Get(ctx, "ns:training")
			assert.ErrorIs(t, err, repository.ErrNotFound)

			require.NoError(t, s.Set(ctx, "ns:training", []byte(`{"a":1}`)))
			require.NoError(t, s.Set(ctx, "ns:evaluations:p/1", []byte(`{}`)))
			require.NoError(t, s.Set(ctx, "other", []byte(`"x"`)))

			got, err := s.Get(ctx, "ns:training")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":1}`, string(got))

			require.NoError(t, s.Set(ctx, "ns:training", []byte(`{"a":2}`)))
			got, err = s.Get(ctx, "ns:training")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":2}`, string(got))

			keys, err := s.Keys(ctx, "ns:")
			require.NoError(t, err)
			assert.Equal(t, []string{"ns:evaluations:p/1", "ns:training"}, keys)

			require.NoError(t, s.Delete(ctx, "ns:training"))
			require.NoError(t, s.Delete(ctx, "ns:training"))
			_, err = s.Get(ctx, "ns:training")
			assert.ErrorIs(t, err, repository.ErrNotFound)

			assert.ErrorIs(t, s.Set(ctx, "", []byte("x")), repository.ErrInvalidKey)
		})
	}
}

func TestFileStorageLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := repository.NewFileStorage(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, fs.Dir())

	require.NoError(t, fs.Set(ctx, "ns:evaluations:a/b", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ns:evaluations:a%2Fb.json", entries[0].Name())

	_, err = repository.NewFileStorage("  ")
	assert.ErrorIs(t, err, repository.ErrStorage)
}
