package main

import (
	"context"

	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retgits/jenkins-launcher/common"
	"github.com/retgits/jenkins-launcher/config"
	"github.com/retgits/jenkins-launcher/launcher"
)

// options holds what every command needs before it can run.
type options struct {
	fs          afero.Fs
	viper       *viper.Viper
	configFile  string
	logLevel    string
	newLauncher func(launcher.Handoff) *launcher.Launcher
}

func newOptions(fs afero.Fs, newLauncher func(launcher.Handoff) *launcher.Launcher) *options {
	return &options{
		fs:          fs,
		viper:       config.NewViper(fs),
		newLauncher: newLauncher,
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jenkins-launcher",
		Short: "Check the Jenkins MCP server configuration and start it",
		Long: `jenkins-launcher validates the Jenkins URL, username and API token, looks for
uv, checks that Jenkins can be reached and then starts the MCP server with
the validated configuration in its environment.

All diagnostics are written to stderr, stdout belongs to the MCP server.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return common.HandleSetup(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is launcher.{toml,yaml,json} in /etc/jenkins-launcher, $HOME/.jenkins-launcher or .)")
	flags.StringVar(&opts.logLevel, "log-level", "", "set log-level: error, warn, info, debug, trace (overrides LOGLEVEL)")
	flags.String("project-dir", "", "directory the MCP server runs in")
	flags.String("handoff", "", "how to start the server: exec or spawn")
	flags.Duration("probe-timeout", 0, "how long the connectivity probe may take")
	flags.Bool("insecure", false, "skip TLS certificate verification when probing Jenkins")
	opts.viper.BindPFlag(config.KeyProjectDir, flags.Lookup("project-dir"))
	opts.viper.BindPFlag(config.KeyHandoff, flags.Lookup("handoff"))
	opts.viper.BindPFlag(config.KeyProbeTimeout, flags.Lookup("probe-timeout"))
	opts.viper.BindPFlag(config.KeyProbeInsecure, flags.Lookup("insecure"))

	cmd.AddCommand(newCheckCmd(opts), newConfigCmd(opts))
	return cmd
}

func runLaunch(ctx context.Context, opts *options) error {
	c, err := config.Load(opts.viper, opts.fs, opts.configFile)
	if err != nil {
		return err
	}

	runID := uuid.NewV4().String()
	log.Info().Str("run_id", runID).Msg("Starting Jenkins MCP launcher")

	handoff, err := launcher.NewHandoff(c.Settings.Handoff)
	if err != nil {
		return err
	}

	code, err := opts.newLauncher(handoff).Run(ctx, c.Jenkins, c.Settings, runID)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
