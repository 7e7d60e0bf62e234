package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Handoff transfers control to the downstream tool. It returns the exit
// code the launcher should exit with.
type Handoff interface {
	Handoff(ctx context.Context, path string, args []string, env []string) (int, error)
}

// NewHandoff returns the Handoff for mode. An empty mode picks the platform default.
func NewHandoff(mode string) (Handoff, error) {
	switch mode {
	case "":
		return NewHandoff(DefaultHandoff())
	case HandoffExec:
		if !execSupported {
			return nil, fmt.Errorf("handoff mode %q is not supported on this platform, use %q", HandoffExec, HandoffSpawn)
		}
		return ExecHandoff{}, nil
	case HandoffSpawn:
		return NewSpawnHandoff(), nil
	default:
		return nil, fmt.Errorf("unknown handoff mode %q, expected %q or %q", mode, HandoffExec, HandoffSpawn)
	}
}

// DefaultHandoff is exec where the process image can be replaced and spawn elsewhere.
func DefaultHandoff() string {
	if execSupported {
		return HandoffExec
	}
	return HandoffSpawn
}

// ExecHandoff replaces the launcher's process image with the tool. It only
// returns when the replacement failed.
type ExecHandoff struct{}

func (ExecHandoff) Handoff(_ context.Context, path string, args []string, env []string) (int, error) {
	argv := append([]string{path}, args...)
	err := execve(path, argv, env)
	return 1, &HandoffError{Path: path, Err: err}
}

// SpawnHandoff starts the tool as a child sharing the launcher's stdio,
// forwards interrupt signals to it and waits for it to exit.
type SpawnHandoff struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewSpawnHandoff returns a SpawnHandoff wired to the launcher's own stdio.
func NewSpawnHandoff() *SpawnHandoff {
	return &SpawnHandoff{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (s *SpawnHandoff) Handoff(ctx context.Context, path string, args []string, env []string) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Env = env
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Start(); err != nil {
		return 1, &HandoffError{Path: path, Err: err}
	}

	// Create a channel to wait for quit signals and pass them on to the
	// child, which decides on its own how to shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-quit:
				log.Info().Msgf("Received %s signal, passing it on", sig)
				if err := cmd.Process.Signal(sig); err != nil {
					log.Debug().Msgf("Error while forwarding signal: %s", err.Error())
				}
			case <-ctx.Done():
				cmd.Process.Kill()
				return
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	signal.Stop(quit)
	close(done)

	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		// terminated by a signal
		return 1, nil
	}
	return 1, &HandoffError{Path: path, Err: err}
}
