package cli

import (
	"path/filepath"

	"github.com/ardnew/envlay/pkg"
)

// baseConfig is the base name of the CLI configuration files.
const baseConfig = "config"

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}
