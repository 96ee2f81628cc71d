// Package handoff replaces the running process with a successor command.
package handoff

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/envlay/pkg"
)

var (
	ErrNoCommand = pkg.NewError("no successor command")
	ErrLookup    = pkg.NewError("successor command not found")
	ErrExec      = pkg.NewError("execute successor command")
)

// DefaultCommand is the successor started when none is given.
var DefaultCommand = []string{"node", "dist/src/main.js"}

// Successor describes the command that takes over the process.
type Successor struct {
	// Args is the command line. Args[0] names the program and is resolved
	// against PATH unless it contains a path separator.
	Args []string
	// Path lists directories searched before the inherited PATH.
	Path []string
}

// Environ returns the environment passed to the successor: the current
// environment, with the Path directories prepended to PATH.
func (s Successor) Environ() []string {
	env := os.Environ()
	if len(s.Path) == 0 {
		return env
	}

	path := s.searchPath()

	for i, kv := range env {
		if name, _, ok := strings.Cut(kv, "="); ok && name == "PATH" {
			env[i] = "PATH=" + path

			return env
		}
	}

	return append(env, "PATH="+path)
}

// searchPath composes the PATH seen by the successor. Duplicate directories
// keep their first position.
func (s Successor) searchPath() string {
	return mung.Make(
		mung.WithSubjectItems(os.Getenv("PATH")),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(s.Path...),
	).String()
}

// Resolve returns the absolute path of the successor program.
func (s Successor) Resolve() (string, error) {
	if len(s.Args) == 0 || s.Args[0] == "" {
		return "", ErrNoCommand
	}

	name := s.Args[0]
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return name, nil
	}

	for _, dir := range filepath.SplitList(s.searchPath()) {
		if dir == "" {
			dir = "."
		}

		path := filepath.Join(dir, name)
		if found, err := exec.LookPath(path); err == nil {
			return found, nil
		}
	}

	return "", ErrLookup.With(slog.String("command", name))
}

// LogValue implements [slog.LogValuer].
func (s Successor) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("command", strings.Join(s.Args, " ")),
		slog.Any("path", s.Path),
	)
}
