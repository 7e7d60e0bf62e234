// Package launcher runs the preflight checks for the Jenkins MCP server and
// hands control over to it.
package launcher

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/retgits/jenkins-launcher/jenkins"
)

// Launcher represents the steps between reading the configuration and
// handing off to the downstream tool. Every field can be replaced in tests.
type Launcher struct {
	Fs      afero.Fs
	Finder  *Finder
	Chdir   func(dir string) error
	Environ func() []string
	Probe   func(ctx context.Context, url string, opts jenkins.ProbeOptions) error
	Handoff Handoff
}

// New returns a Launcher operating on the host with the given handoff.
func New(h Handoff) *Launcher {
	fs := afero.NewOsFs()
	return &Launcher{
		Fs:      fs,
		Finder:  NewFinder(),
		Chdir:   os.Chdir,
		Environ: os.Environ,
		Probe:   jenkins.Probe,
		Handoff: h,
	}
}

// Run executes the launch sequence and returns the exit code for the process.
// Any error returned is fatal and comes with exit code 1. A connectivity
// problem is logged as a warning and never stops the sequence.
func (l *Launcher) Run(ctx context.Context, cfg jenkins.RuntimeConfig, s Settings, runID string) (int, error) {
	logger := log.With().Str("run_id", runID).Logger()
	cfg = cfg.Normalize()

	toolPath, err := l.DiscoverTool(s.Tool.Candidates)
	if err != nil {
		return 1, err
	}
	logger.Info().Str("path", toolPath).Msg("Found tool")

	if err := ValidateConfig(cfg); err != nil {
		return 1, err
	}

	if warning := l.CheckConnectivity(ctx, cfg.URL, s.Probe.Options()); warning != nil {
		logWarning(logger, warning)
	}

	dir, err := l.EnterProjectDir(s.ProjectDir)
	if err != nil {
		return 1, err
	}

	logger.Info().Str("dir", dir).Msg("Project directory")
	logger.Info().Str("url", cfg.URL).Msg("Jenkins endpoint")
	logger.Info().Str("user", cfg.Username).Msg("Jenkins user")

	markRunning(l.Fs, dir)

	env := jenkins.MergeEnv(cfg.Environ(l.Environ()), map[string]string{EnvRunID: runID})
	logger.Info().Strs("args", s.Tool.Args).Msgf("Starting %s", toolPath)
	return l.Handoff.Handoff(ctx, toolPath, s.Tool.Args, env)
}

// DiscoverTool returns the first existing tool candidate.
func (l *Launcher) DiscoverTool(candidates []string) (string, error) {
	return l.Finder.Discover(candidates)
}

// ValidateConfig checks that every field is set and none holds its placeholder.
func ValidateConfig(cfg jenkins.RuntimeConfig) error {
	if missing := cfg.MissingFields(); len(missing) > 0 {
		return &MissingConfigError{Fields: missing}
	}
	if placeholders := cfg.PlaceholderFields(); len(placeholders) > 0 {
		return &PlaceholderConfigError{Fields: placeholders}
	}
	return nil
}

// CheckConnectivity probes url once. It returns nil when the endpoint answered.
func (l *Launcher) CheckConnectivity(ctx context.Context, url string, opts jenkins.ProbeOptions) *ConnectivityWarning {
	if opts.Timeout <= 0 {
		opts.Timeout = jenkins.DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	if err := l.Probe(ctx, url, opts); err != nil {
		return &ConnectivityWarning{URL: url, Err: err}
	}
	return nil
}

// EnterProjectDir changes the working directory of the process to dir.
func (l *Launcher) EnterProjectDir(dir string) (string, error) {
	abs, err := ProjectDir(l.Fs, dir)
	if err != nil {
		return "", err
	}
	if err := l.Chdir(abs); err != nil {
		return "", &WorkingDirectoryError{Dir: abs, Err: errors.Cause(err)}
	}
	return abs, nil
}

func logWarning(logger zerolog.Logger, w *ConnectivityWarning) {
	logger.Warn().Str("url", w.URL).Msgf("Cannot connect to Jenkins: %s", w.Err.Error())
	logger.Warn().Msg(w.Hint())
}
