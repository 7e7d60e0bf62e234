package launcher

import (
	"iter"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Finder resolves tool candidates against the filesystem and PATH.
type Finder struct {
	Fs       afero.Fs
	LookPath func(file string) (string, error)
}

// NewFinder returns a Finder backed by the host filesystem and PATH.
func NewFinder() *Finder {
	return &Finder{Fs: afero.NewOsFs(), LookPath: exec.LookPath}
}

// Resolve lazily yields every candidate that exists, in order. A candidate is
// only checked when the consumer asks for the next value.
func (f *Finder) Resolve(candidates []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, candidate := range candidates {
			path, ok := f.resolve(candidate)
			if !ok {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

// Discover returns the first existing candidate.
func (f *Finder) Discover(candidates []string) (string, error) {
	for path := range f.Resolve(candidates) {
		return path, nil
	}
	return "", &ToolNotFoundError{Candidates: candidates}
}

func (f *Finder) resolve(candidate string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", false
	}

	if isBareName(candidate) {
		if f.LookPath == nil {
			return "", false
		}
		path, err := f.LookPath(candidate)
		if err != nil {
			log.Debug().Str("candidate", candidate).Msg("Not found in PATH")
			return "", false
		}
		return path, true
	}

	path, err := homedir.Expand(candidate)
	if err != nil {
		log.Debug().Str("candidate", candidate).Msgf("Cannot expand path: %s", err.Error())
		return "", false
	}
	info, err := f.Fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		log.Debug().Str("candidate", path).Msg("No file at candidate path")
		return "", false
	}
	return path, true
}

func isBareName(candidate string) bool {
	return !strings.HasPrefix(candidate, "~") && !strings.ContainsRune(candidate, '/') &&
		!strings.ContainsRune(candidate, filepath.Separator)
}
