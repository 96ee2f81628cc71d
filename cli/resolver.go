package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/ardnew/envlay/pkg"
)

// ErrConfigFile is returned when a CLI configuration file cannot be decoded.
var ErrConfigFile = pkg.NewError("decode configuration file")

// configLoader pairs a configuration file extension with its loader.
type configLoader struct {
	ext  string
	load kong.ConfigurationLoader
}

// configLoaders lists the supported CLI configuration files in the order they
// are registered with kong. Missing files are ignored by [kong.Configuration].
func configLoaders() []configLoader {
	return []configLoader{
		{".json", kong.JSON},
		{".yaml", resolve("yaml", yaml.Unmarshal)},
		{".toml", resolve("toml", toml.Unmarshal)},
	}
}

// configurations returns the kong options loading every supported CLI
// configuration file from the configuration directory.
func configurations() []kong.Option {
	loaders := configLoaders()
	opts := make([]kong.Option, 0, len(loaders))

	for _, l := range loaders {
		opts = append(opts, kong.Configuration(l.load, configPath(baseConfig+l.ext)))
	}

	return opts
}

// resolve returns a [kong.ConfigurationLoader] decoding a document with
// unmarshal.
//
// Nested tables are flattened into hyphenated flag names, so both of the
// following YAML documents set --log-level:
//
//	log:
//	  level: debug
//
//	log-level: debug
//
// Flag names may also be spelled with underscores (log_level).
// Command-line flags and environment variables override config file values.
func resolve(
	format string,
	unmarshal func([]byte, any) error,
) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, ErrConfigFile.With(slog.String("format", format)).Wrap(err)
		}

		var doc map[string]any
		if err := unmarshal(data, &doc); err != nil {
			return nil, ErrConfigFile.With(slog.String("format", format)).Wrap(err)
		}

		cfg := make(config)
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] over a flattened configuration file.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// flatten stores the leaves of m in r under hyphen-joined keys.
func (r config) flatten(prefix string, m map[string]any) {
	for key, val := range m {
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := val.(type) {
		case map[string]any:
			r.flatten(key, v)
		case map[any]any:
			r.flatten(key, stringKeys(v))
		default:
			r[key] = scalar(v)
		}
	}
}

// stringKeys converts a map with arbitrary keys to a map with string keys.
func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = v
	}

	return out
}

// scalar converts a decoded value to the form kong expects.
// Kong requires numbers as strings for parsing.
func scalar(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = scalar(e)
		}

		return out
	default:
		return v
	}
}
