package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retgits/jenkins-launcher/jenkins"
	"github.com/retgits/jenkins-launcher/launcher"
)

const sampleConfig = `
project_dir = "/srv/mcp/jenkins"
handoff = "spawn"

[jenkins]
url = "https://ci.example.com"
username = "file-user"
api_token = "file-token"

[tool]
candidates = ["/opt/uv"]
args = ["run", "server.py"]

[probe]
timeout = "2s"
insecure_skip_verify = true
`

// clearJenkinsEnv makes sure the host environment does not leak into a test.
func clearJenkinsEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{jenkins.EnvURL, jenkins.EnvUsername, jenkins.EnvAPIToken, "LAUNCHER_TEST_EXTRA"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadFile(t *testing.T) {
	clearJenkinsEnv(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/launcher.toml", []byte(sampleConfig), 0o600))

	c, err := Load(NewViper(fs), fs, "/etc/launcher.toml")
	require.NoError(t, err)

	assert.Equal(t, "/etc/launcher.toml", c.File)
	assert.Equal(t, jenkins.RuntimeConfig{
		URL:      "https://ci.example.com",
		Username: "file-user",
		APIToken: "file-token",
	}, c.Jenkins)
	assert.Equal(t, launcher.Settings{
		Tool:       launcher.ToolSettings{Candidates: []string{"/opt/uv"}, Args: []string{"run", "server.py"}},
		ProjectDir: "/srv/mcp/jenkins",
		Handoff:    launcher.HandoffSpawn,
		Probe:      launcher.ProbeSettings{Timeout: 2 * time.Second, InsecureSkipVerify: true},
	}, c.Settings)
}

func TestLoadEnvironmentWins(t *testing.T) {
	clearJenkinsEnv(t)
	t.Setenv(jenkins.EnvUsername, "env-user")
	t.Setenv(jenkins.EnvAPIToken, "")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/launcher.toml", []byte(sampleConfig), 0o600))

	c, err := Load(NewViper(fs), fs, "/etc/launcher.toml")
	require.NoError(t, err)
	assert.Equal(t, "https://ci.example.com", c.Jenkins.URL)
	assert.Equal(t, "env-user", c.Jenkins.Username)
	assert.Equal(t, "", c.Jenkins.APIToken, "a variable set to empty still overrides the file")
}

func TestLoadDefaults(t *testing.T) {
	clearJenkinsEnv(t)
	t.Setenv(jenkins.EnvURL, "https://env.example.com")
	fs := afero.NewMemMapFs()

	c, err := Load(NewViper(fs), fs, "")
	require.NoError(t, err)
	assert.Empty(t, c.File)
	assert.Equal(t, launcher.DefaultSettings(), c.Settings)
	assert.Equal(t, jenkins.RuntimeConfig{URL: "https://env.example.com"}, c.Jenkins)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Load(NewViper(fs), fs, "/etc/nope.toml")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	clearJenkinsEnv(t)
	t.Setenv(jenkins.EnvUsername, "already-set")
	t.Cleanup(func() {
		os.Unsetenv(jenkins.EnvAPIToken)
		os.Unsetenv("LAUNCHER_TEST_EXTRA")
	})

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/jl/launcher.yaml", []byte(`
env_file: jenkins.env
jenkins:
  url: https://ci.example.com
`), 0o600))
	require.NoError(t, afero.WriteFile(fs, "/etc/jl/jenkins.env", []byte(`
JENKINS_USERNAME=from-dotenv
JENKINS_API_TOKEN=dotenv-token
LAUNCHER_TEST_EXTRA="quoted value"
`), 0o600))

	c, err := Load(NewViper(fs), fs, "/etc/jl/launcher.yaml")
	require.NoError(t, err)
	assert.Equal(t, jenkins.RuntimeConfig{
		URL:      "https://ci.example.com",
		Username: "already-set",
		APIToken: "dotenv-token",
	}, c.Jenkins)
	assert.Equal(t, "quoted value", os.Getenv("LAUNCHER_TEST_EXTRA"))
}

func TestWriteTemplate(t *testing.T) {
	clearJenkinsEnv(t)
	fs := afero.NewMemMapFs()
	path := "/home/alice/.jenkins-launcher/launcher.toml"

	require.NoError(t, WriteTemplate(fs, path, false))
	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	err = WriteTemplate(fs, path, false)
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, WriteTemplate(fs, path, true))

	c, err := Load(NewViper(fs), fs, path)
	require.NoError(t, err)
	assert.Equal(t, launcher.DefaultSettings(), c.Settings)

	// an untouched template is rejected until the placeholders are replaced
	err = launcher.ValidateConfig(c.Jenkins)
	var placeholder *launcher.PlaceholderConfigError
	require.True(t, errors.As(err, &placeholder), "got %v", err)
	assert.Equal(t, []string{jenkins.EnvURL, jenkins.EnvUsername, jenkins.EnvAPIToken}, placeholder.Fields)
}
