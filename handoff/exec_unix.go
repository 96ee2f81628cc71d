//go:build unix

package handoff

import (
	"log/slog"
	"syscall"
)

// Exec replaces the current process image with the successor. It returns
// only on failure.
func (s Successor) Exec() error {
	path, err := s.Resolve()
	if err != nil {
		return err
	}

	err = syscall.Exec(path, s.Args, s.Environ())

	return ErrExec.With(slog.String("path", path)).Wrap(err)
}
