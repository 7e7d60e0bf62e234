package launcher

import (
	"fmt"
	"strings"

	"github.com/retgits/jenkins-launcher/jenkins"
)

// ToolNotFoundError is returned when none of the tool candidates exist.
type ToolNotFoundError struct {
	Candidates []string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool not found, tried: %s", strings.Join(e.Candidates, ", "))
}

// Hint tells the operator how to fix the problem.
func (e *ToolNotFoundError) Hint() string {
	return "install uv (https://docs.astral.sh/uv/) or list its location under tool.candidates"
}

// MissingConfigError is returned when required Jenkins settings are empty.
type MissingConfigError struct {
	Fields []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("Jenkins environment variables not configured: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingConfigError) Hint() string {
	return fmt.Sprintf("you need: %s, %s, %s", jenkins.EnvURL, jenkins.EnvUsername, jenkins.EnvAPIToken)
}

// PlaceholderConfigError is returned when settings still hold template values.
type PlaceholderConfigError struct {
	Fields []string
}

func (e *PlaceholderConfigError) Error() string {
	return fmt.Sprintf("configuration still holds placeholder values: %s", strings.Join(e.Fields, ", "))
}

func (e *PlaceholderConfigError) Hint() string {
	return "edit the configuration file or environment with your real Jenkins URL, username and API token"
}

// WorkingDirectoryError is returned when the project directory cannot be entered.
type WorkingDirectoryError struct {
	Dir string
	Err error
}

func (e *WorkingDirectoryError) Error() string {
	return fmt.Sprintf("cannot enter project directory %s: %s", e.Dir, e.Err)
}

func (e *WorkingDirectoryError) Unwrap() error { return e.Err }

func (e *WorkingDirectoryError) Hint() string {
	return "check project_dir in the configuration or pass --project-dir"
}

// HandoffError is returned when the downstream tool could not be started.
type HandoffError struct {
	Path string
	Err  error
}

func (e *HandoffError) Error() string {
	return fmt.Sprintf("cannot start %s: %s", e.Path, e.Err)
}

func (e *HandoffError) Unwrap() error { return e.Err }

// ConnectivityWarning describes a failed connectivity probe. It is advisory:
// the launcher logs it and carries on.
type ConnectivityWarning struct {
	URL string
	Err error
}

func (w *ConnectivityWarning) Error() string {
	return fmt.Sprintf("cannot reach %s: %s", w.URL, w.Err)
}

func (w *ConnectivityWarning) Unwrap() error { return w.Err }

func (w *ConnectivityWarning) Hint() string {
	return "check your network connection, are you connected to the VPN?"
}
