//go:build !unix

package launcher

import "errors"

const execSupported = false

func execve(string, []string, []string) error {
	return errors.New("process image replacement is not available on this platform")
}
