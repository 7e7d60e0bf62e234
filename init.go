package main

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/retgits/jenkins-launcher/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the launcher configuration",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration template to --config or $HOME/.jenkins-launcher/launcher.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := templatePath(opts.configFile)
			if err != nil {
				return err
			}
			if err := config.WriteTemplate(opts.fs, path, force); err != nil {
				return err
			}
			log.Info().Str("file", path).Msg("Wrote configuration template, replace the placeholder values before starting the server")
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func templatePath(configFile string) (string, error) {
	if configFile != "" {
		return homedir.Expand(configFile)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".jenkins-launcher", config.DefaultConfigName+".toml"), nil
}
