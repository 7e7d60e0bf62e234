package launcher

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFinder(t *testing.T, files ...string) (*Finder, *[]string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("#!/bin/sh\n"), 0o755))
	}
	var lookups []string
	return &Finder{
		Fs: fs,
		LookPath: func(file string) (string, error) {
			lookups = append(lookups, file)
			if file == "uv-in-path" {
				return "/usr/bin/uv-in-path", nil
			}
			return "", exec.ErrNotFound
		},
	}, &lookups
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		candidates []string
		want       string
	}{
		{
			name:       "first existing wins",
			files:      []string{"/opt/a/uv", "/opt/b/uv"},
			candidates: []string{"/missing/uv", "/opt/b/uv", "/opt/a/uv"},
			want:       "/opt/b/uv",
		},
		{
			name:       "PATH lookup for bare names",
			files:      []string{"/opt/a/uv"},
			candidates: []string{"uv-in-path", "/opt/a/uv"},
			want:       "/usr/bin/uv-in-path",
		},
		{
			name:       "falls back when PATH lookup fails",
			files:      []string{"/opt/a/uv"},
			candidates: []string{"uv", "/opt/a/uv"},
			want:       "/opt/a/uv",
		},
		{
			name:       "skips blank candidates",
			files:      []string{"/opt/a/uv"},
			candidates: []string{"", "  ", "/opt/a/uv"},
			want:       "/opt/a/uv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFinder(t, tt.files...)
			got, err := f.Discover(tt.candidates)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/opt/dir/uv", 0o755))
	f := &Finder{Fs: fs, LookPath: func(string) (string, error) { return "", exec.ErrNotFound }}

	candidates := []string{"uv", "/missing/uv", "/opt/dir/uv"}
	_, err := f.Discover(candidates)
	require.Error(t, err)

	var notFound *ToolNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, candidates, notFound.Candidates)
	assert.Contains(t, err.Error(), "/missing/uv")
}

func TestResolveIsLazy(t *testing.T) {
	f, lookups := newTestFinder(t)

	for path := range f.Resolve([]string{"uv-in-path", "second", "third"}) {
		assert.Equal(t, "/usr/bin/uv-in-path", path)
		break
	}
	assert.Equal(t, []string{"uv-in-path"}, *lookups)

	var all []string
	for path := range f.Resolve([]string{"nope", "uv-in-path", "again"}) {
		all = append(all, path)
	}
	assert.Equal(t, []string{"/usr/bin/uv-in-path"}, all)
}
