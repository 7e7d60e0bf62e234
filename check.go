package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/retgits/jenkins-launcher/config"
	"github.com/retgits/jenkins-launcher/jenkins"
	"github.com/retgits/jenkins-launcher/launcher"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run every preflight check and test the Jenkins credentials without starting the server",
		Long: `check runs the same checks as a launch but does not stop at the first
problem and never starts the server. When the configuration is complete it
also logs in to Jenkins with the configured username and API token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), opts)
		},
	}
}

func runCheck(ctx context.Context, opts *options) error {
	c, err := config.Load(opts.viper, opts.fs, opts.configFile)
	if err != nil {
		return err
	}
	if c.File != "" {
		log.Info().Str("file", c.File).Msg("Using config file")
	}

	l := opts.newLauncher(nil)
	var result *multierror.Error
	fail := func(err error) {
		result = multierror.Append(result, err)
		log.Error().Msg(err.Error())
		var h hinter
		if errors.As(err, &h) {
			log.Error().Msg(h.Hint())
		}
	}

	if path, err := l.DiscoverTool(c.Settings.Tool.Candidates); err != nil {
		fail(err)
	} else {
		log.Info().Str("path", path).Msg("Found tool")
	}

	cfg := c.Jenkins.Normalize()
	configErr := launcher.ValidateConfig(cfg)
	if configErr != nil {
		fail(configErr)
	} else {
		log.Info().Str("url", cfg.URL).Str("user", cfg.Username).Msg("Jenkins configuration complete")
	}

	if dir, err := launcher.ProjectDir(l.Fs, c.Settings.ProjectDir); err != nil {
		fail(err)
	} else {
		log.Info().Str("dir", dir).Msg("Project directory")
	}

	if _, err := launcher.NewHandoff(c.Settings.Handoff); err != nil {
		fail(err)
	}

	if configErr == nil {
		probe := c.Settings.Probe.Options()
		if warning := l.CheckConnectivity(ctx, cfg.URL, probe); warning != nil {
			fail(warning)
		} else {
			info, err := jenkins.CheckConnection(ctx, cfg, probe)
			if err != nil {
				fail(errors.Wrap(err, "cannot log in to Jenkins"))
			} else {
				log.Info().
					Str("version", valueOr(info.Version, "N/A")).
					Str("mode", valueOr(info.Mode, "N/A")).
					Int64("executors", info.NumExecutors).
					Msg("Connected to Jenkins")
			}
		}
	}

	if result != nil {
		result.ErrorFormat = func(errs []error) string {
			msgs := make([]string, len(errs))
			for i, err := range errs {
				msgs[i] = err.Error()
			}
			return fmt.Sprintf("%d check(s) failed: %s", len(errs), strings.Join(msgs, "; "))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	log.Info().Msg("All checks passed")
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
