//go:build !unix

package handoff

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
)

// Exec runs the successor as a child process with the standard streams of
// the current process, then exits with its exit code. It returns only if the
// successor could not be started.
func (s Successor) Exec() error {
	path, err := s.Resolve()
	if err != nil {
		return err
	}

	cmd := exec.Command(path, s.Args[1:]...)
	cmd.Env = s.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}

		return ErrExec.With(slog.String("path", path)).Wrap(err)
	}

	os.Exit(0)

	return nil
}
