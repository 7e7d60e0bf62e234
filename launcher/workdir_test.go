package launcher

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/project", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/work/file", nil, 0o644))

	dir, err := ProjectDir(fs, "/work/project")
	require.NoError(t, err)
	assert.Equal(t, "/work/project", dir)

	for _, bad := range []string{"", "/work/missing", "/work/file"} {
		t.Run(bad, func(t *testing.T) {
			_, err := ProjectDir(fs, bad)
			var wdErr *WorkingDirectoryError
			require.True(t, errors.As(err, &wdErr), "got %v", err)
		})
	}
}

func TestMarkRunning(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0o755))

	markRunning(fs, "/work")
	exists, err := afero.Exists(fs, "/work/.running")
	require.NoError(t, err)
	assert.False(t, exists, "only created inside a container")

	require.NoError(t, afero.WriteFile(fs, "/.dockerenv", nil, 0o644))
	markRunning(fs, "/work")
	exists, err = afero.Exists(fs, "/work/.running")
	require.NoError(t, err)
	assert.True(t, exists)
}
