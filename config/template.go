package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/retgits/jenkins-launcher/jenkins"
	"github.com/retgits/jenkins-launcher/launcher"
)

type fileTemplate struct {
	ProjectDir string          `toml:"project_dir"`
	Handoff    string          `toml:"handoff"`
	EnvFile    string          `toml:"env_file"`
	Jenkins    jenkinsTemplate `toml:"jenkins"`
	Tool       toolTemplate    `toml:"tool"`
	Probe      probeTemplate   `toml:"probe"`
}

type jenkinsTemplate struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	APIToken string `toml:"api_token"`
}

type toolTemplate struct {
	Candidates []string `toml:"candidates"`
	Args       []string `toml:"args"`
}

type probeTemplate struct {
	Timeout            string `toml:"timeout"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
}

const templateHeader = `# jenkins-launcher configuration
#
# Replace the placeholder values in [jenkins] before starting the server.
# JENKINS_URL, JENKINS_USERNAME and JENKINS_API_TOKEN in the environment
# override the values below. Keeping the token in an env_file or the
# environment keeps it out of this file.

`

// WriteTemplate writes a config file holding the default settings and the
// placeholder credentials. An existing file is only replaced when force is set.
func WriteTemplate(fs afero.Fs, path string, force bool) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists && !force {
		return errors.Errorf("%s already exists, use --force to overwrite it", path)
	}

	d := launcher.DefaultSettings()
	tpl := fileTemplate{
		ProjectDir: d.ProjectDir,
		Handoff:    d.Handoff,
		EnvFile:    d.EnvFile,
		Jenkins: jenkinsTemplate{
			URL:      jenkins.PlaceholderURL,
			Username: jenkins.PlaceholderUsername,
			APIToken: jenkins.PlaceholderAPIToken,
		},
		Tool: toolTemplate{
			Candidates: d.Tool.Candidates,
			Args:       d.Tool.Args,
		},
		Probe: probeTemplate{
			Timeout:            d.Probe.Timeout.String(),
			InsecureSkipVerify: d.Probe.InsecureSkipVerify,
		},
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create directory for %s", path)
	}
	// the file ends up holding a token, keep it private
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}
	defer f.Close()

	if _, err := f.WriteString(templateHeader); err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}
	if err := toml.NewEncoder(f).Encode(tpl); err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}
	return f.Close()
}
