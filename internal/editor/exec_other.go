//go:build !unix

package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// Exec runs argv as a child with the terminal attached and waits for it,
// since the process cannot be replaced on this platform.
func Exec(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}
