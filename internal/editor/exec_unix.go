//go:build unix

package editor

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Exec replaces the current process with argv. It only returns on failure.
func Exec(argv []string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("find %s: %w", argv[0], err)
	}
	if err := unix.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
