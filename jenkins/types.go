package jenkins

// Environment variables the Jenkins MCP server reads its configuration from.
const (
	EnvURL      = "JENKINS_URL"
	EnvUsername = "JENKINS_USERNAME"
	EnvAPIToken = "JENKINS_API_TOKEN"
)

// Placeholder values shipped in the configuration template. A config still
// holding any of them was never customized.
const (
	PlaceholderURL      = "https://jenkins.tu-empresa.com"
	PlaceholderUsername = "tu-usuario"
	PlaceholderAPIToken = "tu-api-token-aqui"
)

// RuntimeConfig represents how to connect to a Jenkins server using username and
// API token for authentication. Values set in the environment take precedence
// over values read from the config file.
type RuntimeConfig struct {
	URL      string `envconfig:"JENKINS_URL"`
	Username string `envconfig:"JENKINS_USERNAME"`
	APIToken string `envconfig:"JENKINS_API_TOKEN"`
}

// ServerInfo is what an authenticated request to the Jenkins root API reports.
type ServerInfo struct {
	Version      string
	Mode         string
	NumExecutors int64
}
