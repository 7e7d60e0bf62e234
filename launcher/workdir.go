package launcher

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	dockerEnvFile = "/.dockerenv"
	runningFile   = ".running"
)

// ProjectDir expands and checks dir without entering it.
func ProjectDir(fs afero.Fs, dir string) (string, error) {
	if dir == "" {
		return "", &WorkingDirectoryError{Dir: dir, Err: fmt.Errorf("no project directory configured")}
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", &WorkingDirectoryError{Dir: dir, Err: err}
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", &WorkingDirectoryError{Dir: dir, Err: err}
	}

	ok, err := afero.IsDir(fs, abs)
	if err != nil {
		return "", &WorkingDirectoryError{Dir: abs, Err: err}
	}
	if !ok {
		return "", &WorkingDirectoryError{Dir: abs, Err: fmt.Errorf("not a directory")}
	}
	return abs, nil
}

// markRunning creates a .running file in dir when inside a container, so
// health checks can tell the process got as far as the handoff. Failures
// are logged, the container is then reported unhealthy but keeps working.
func markRunning(fs afero.Fs, dir string) {
	if _, err := fs.Stat(dockerEnvFile); err != nil {
		return
	}
	runfile := filepath.Join(dir, runningFile)
	if err := afero.WriteFile(fs, runfile, nil, 0o644); err != nil {
		log.Error().Msgf("Error while creating %s file: %s\nthis means the container is unhealthy but the server will work...", runningFile, err.Error())
		return
	}
	log.Info().Msgf("Created %s file: %s", runningFile, runfile)
}
