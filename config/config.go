// Package config assembles the launcher configuration from a config file, an
// optional .env file, the environment and command line flags.
//
// Precedence, highest first: flags, JENKINS_* environment variables, .env
// file entries for variables not already set, the config file, defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/retgits/jenkins-launcher/jenkins"
	"github.com/retgits/jenkins-launcher/launcher"
)

// DefaultConfigName is the base name of the config file searched for in
// the config paths. Any extension viper understands is accepted.
const DefaultConfigName = "launcher"

// Config keys.
const (
	KeyJenkinsURL      = "jenkins.url"
	KeyJenkinsUsername = "jenkins.username"
	KeyJenkinsAPIToken = "jenkins.api_token"
	KeyToolCandidates  = "tool.candidates"
	KeyToolArgs        = "tool.args"
	KeyProjectDir      = "project_dir"
	KeyHandoff         = "handoff"
	KeyProbeTimeout    = "probe.timeout"
	KeyProbeInsecure   = "probe.insecure_skip_verify"
	KeyEnvFile         = "env_file"
)

// Config is the result of loading: the credentials handed to Jenkins and the
// settings of the launcher itself.
type Config struct {
	Jenkins  jenkins.RuntimeConfig
	Settings launcher.Settings
	// File is the config file that was read, empty when none was found.
	File string
}

// ConfigPaths lists the directories searched for the config file.
func ConfigPaths() []string {
	return []string{"/etc/jenkins-launcher/", "$HOME/.jenkins-launcher", "."}
}

// NewViper returns a viper instance reading from fs with every default set.
func NewViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)

	d := launcher.DefaultSettings()
	v.SetDefault(KeyToolCandidates, d.Tool.Candidates)
	v.SetDefault(KeyToolArgs, d.Tool.Args)
	v.SetDefault(KeyProjectDir, d.ProjectDir)
	v.SetDefault(KeyHandoff, d.Handoff)
	v.SetDefault(KeyProbeTimeout, d.Probe.Timeout)
	v.SetDefault(KeyProbeInsecure, d.Probe.InsecureSkipVerify)
	v.SetDefault(KeyEnvFile, d.EnvFile)
	return v
}

// Load reads the configuration. When file is empty the config paths are
// searched and a missing file is not an error.
func Load(v *viper.Viper, fs afero.Fs, file string) (*Config, error) {
	if file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return nil, errors.Wrapf(err, "fatal error reading config file %s", file)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		for _, p := range ConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "fatal error reading config file")
		}
		log.Debug().Msg("No config file found, using defaults and environment")
	}

	c := &Config{File: v.ConfigFileUsed()}
	if err == nil {
		log.Debug().Str("file", c.File).Msg("Read config file")
	}

	if envFile := v.GetString(KeyEnvFile); envFile != "" {
		if err := loadEnvFile(fs, envFile, c.File); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(&c.Settings); err != nil {
		return nil, errors.Wrap(err, "fatal error decoding config")
	}

	c.Jenkins = jenkins.RuntimeConfig{
		URL:      v.GetString(KeyJenkinsURL),
		Username: v.GetString(KeyJenkinsUsername),
		APIToken: v.GetString(KeyJenkinsAPIToken),
	}
	// Environment variables set the values the MCP server reads, so they win
	// over the file.
	if err := envconfig.Process("", &c.Jenkins); err != nil {
		return nil, errors.Wrap(err, "fatal error reading environment variables")
	}
	return c, nil
}

// loadEnvFile sets every variable from a dotenv file that is not set yet.
// Relative paths are resolved against the directory of the config file.
func loadEnvFile(fs afero.Fs, path, configFile string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return errors.Wrapf(err, "fatal error reading env file %s", path)
	}
	if !filepath.IsAbs(path) && configFile != "" {
		path = filepath.Join(filepath.Dir(configFile), path)
	}

	f, err := fs.Open(path)
	if err != nil {
		return errors.Wrapf(err, "fatal error reading env file %s", path)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return errors.Wrapf(err, "fatal error parsing env file %s", path)
	}
	for k, val := range vars {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	log.Debug().Str("file", path).Int("vars", len(vars)).Msg("Loaded env file")
	return nil
}
