package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/retgits/jenkins-launcher/launcher"
)

// hinter is implemented by errors that know how the operator can fix them.
type hinter interface {
	Hint() string
}

// ExitError carries the exit code of the downstream process through cobra.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and maps the outcome to an exit code.
func run(args []string) int {
	cmd := newRootCmd(newOptions(afero.NewOsFs(), launcher.New))
	cmd.SetArgs(args)
	return exitCode(cmd.ExecuteContext(context.Background()))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// the logger may not be configured yet, stderr is always safe
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	var h hinter
	if errors.As(err, &h) {
		fmt.Fprintf(os.Stderr, "Tip: %s\n", h.Hint())
	}
	return 1
}
