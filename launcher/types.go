package launcher

import (
	"time"

	"github.com/retgits/jenkins-launcher/jenkins"
)

// EnvRunID is exported to the downstream process so its logs can be
// correlated with the launcher's.
const EnvRunID = "JENKINS_LAUNCHER_RUN_ID"

// Handoff modes.
const (
	HandoffExec  = "exec"
	HandoffSpawn = "spawn"
)

// Settings represents everything the launcher needs besides the Jenkins
// credentials: where to find the tool, how to call it and where to run it.
type Settings struct {
	Tool       ToolSettings  `mapstructure:"tool"`
	ProjectDir string        `mapstructure:"project_dir"`
	Handoff    string        `mapstructure:"handoff"`
	Probe      ProbeSettings `mapstructure:"probe"`
	EnvFile    string        `mapstructure:"env_file"`
}

// ToolSettings lists where the downstream tool may live and the arguments
// it is started with. Bare names are looked up in PATH; paths may start with ~.
type ToolSettings struct {
	Candidates []string `mapstructure:"candidates"`
	Args       []string `mapstructure:"args"`
}

// ProbeSettings controls the connectivity probe.
type ProbeSettings struct {
	Timeout            time.Duration `mapstructure:"timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// Options converts the settings into options for the jenkins package.
func (p ProbeSettings) Options() jenkins.ProbeOptions {
	return jenkins.ProbeOptions{Timeout: p.Timeout, InsecureSkipVerify: p.InsecureSkipVerify}
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Tool: ToolSettings{
			Candidates: []string{
				"uv",
				"~/.local/bin/uv",
				"~/.cargo/bin/uv",
				"/opt/homebrew/bin/uv",
				"/usr/local/bin/uv",
			},
			Args: []string{"run", "jenkins_mcp.py"},
		},
		ProjectDir: "~/mcp-jenkins",
		Handoff:    DefaultHandoff(),
		Probe: ProbeSettings{
			Timeout: jenkins.DefaultProbeTimeout,
		},
	}
}
