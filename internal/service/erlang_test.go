package service

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caverna/vbump/internal/domain"
)

const appResource = `{application, myapp,
 [{description, "An example application"},
  {vsn, "0.1.0"},
  {modules, [myapp]},
  {applications, [kernel, stdlib]}
 ]}.
`

func TestErlangSource(t *testing.T) {
	ctx := context.Background()
	t.Run("Should extract the vsn value", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"/app/src/myapp.app.src": appResource})
		src := NewErlangSource(fsys, "/app/src/myapp.app.src")
		v, err := src.Extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0.1.0", v.String())
	})
	t.Run("Should fail without a vsn entry", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/app/src/myapp.app.src": `{application, myapp, []}.`,
		})
		src := NewErlangSource(fsys, "/app/src/myapp.app.src")
		_, err := src.Extract(ctx)
		assert.ErrorIs(t, err, domain.ErrMalformedResourceFile)
	})
	t.Run("Should rewrite only the vsn line", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{"/app/src/myapp.app.src": appResource})
		src := NewErlangSource(fsys, "/app/src/myapp.app.src")
		v, err := domain.ParseVersion("0.2.0")
		require.NoError(t, err)
		require.NoError(t, src.Write(ctx, v))
		data, err := afero.ReadFile(fsys, "/app/src/myapp.app.src")
		require.NoError(t, err)
		want := `{application, myapp,
 [{description, "An example application"},
  {vsn, "0.2.0"},
  {modules, [myapp]},
  {applications, [kernel, stdlib]}
 ]}.
`
		assert.Equal(t, want, string(data))
	})
	t.Run("Should refuse to write without a line to replace", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		writeFiles(t, fsys, map[string]string{
			"/app/src/myapp.app.src": `{application, myapp, []}.`,
		})
		src := NewErlangSource(fsys, "/app/src/myapp.app.src")
		v, err := domain.ParseVersion("0.2.0")
		require.NoError(t, err)
		err = src.Write(ctx, v)
		assert.ErrorIs(t, err, domain.ErrMalformedResourceFile)
	})
}
