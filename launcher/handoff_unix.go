//go:build unix

package launcher

import "golang.org/x/sys/unix"

const execSupported = true

func execve(path string, argv []string, env []string) error {
	return unix.Exec(path, argv, env)
}
