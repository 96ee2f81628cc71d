package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// Prefix returns the base name used to construct the path to the
// configuration directory.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		return trimExecutable(id)
	},
)

func trimExecutable(id string) string {
	ext := filepath.Ext(filepath.Base(id))
	id = strings.TrimSuffix(filepath.Base(id), ext)

	for _, sub := range []struct {
		rex *regexp.Regexp
		rep string
	}{
		{regexp.MustCompile(`^__debug_bin\d*$`), Name}, // default output from dlv
		{regexp.MustCompile(`^\.+`), ""},              // remove leading dot(s)
	} {
		id = sub.rex.ReplaceAllString(id, sub.rep)
	}

	if id == "" {
		return Name
	}

	return id
}

// ConfigDir returns the configuration directory path, rooted at
// $XDG_CONFIG_HOME.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return filepath.Join(xdg.ConfigHome, Prefix()) },
)

// CacheDir returns the cache directory path used for transient files such as
// profiles, rooted at $XDG_CACHE_HOME.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return filepath.Join(xdg.CacheHome, Prefix()) },
)
