package service

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caverna/vbump/internal/domain"
)

func TestPlainSource(t *testing.T) {
	ctx := context.Background()
	t.Run("Should extract a version from the default file", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"/proj/version": "1.2.3\n"})
		src := NewPlainSource(fsys, "/proj", "")
		v, err := src.Extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", v.String())
	})
	t.Run("Should honor a custom filename", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/proj/version": "9.9.9\n",
			"/proj/foo":     "0.0.1\n",
		})
		src := NewPlainSource(fsys, "/proj", "foo")
		v, err := src.Extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0.0.1", v.String())
	})
	t.Run("Should fail when the file is missing", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		src := NewPlainSource(fsys, "/proj", "")
		_, err := src.Extract(ctx)
		assert.ErrorIs(t, err, domain.ErrMissingVersionFile)
	})
	t.Run("Should round-trip through write", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		src := NewPlainSource(fsys, "/proj", "")
		v, err := domain.ParseVersion("1.2.3")
		require.NoError(t, err)
		require.NoError(t, src.Write(ctx, v))
		got, err := src.Extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", got.String())
		data, err := afero.ReadFile(fsys, "/proj/version")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3\n", string(data))
	})
}
