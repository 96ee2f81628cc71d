// Package cli contains the command line interface for envlay.
//
// # Usage
//
//	envlay [flags] [apply] [--no-exec] [--dry-run] [successor...]
//	envlay [flags] diff
//	envlay [flags] show yaml|json
//	envlay value <literal>...
//	envlay [flags] init [--force]
//
// Without a command, envlay runs apply: it overlays CFG_* variables onto the
// YAML document and DAPP_* variables onto the JSON document, writes both, and
// replaces itself with the successor (node dist/src/main.js by default).
//
// # Configuration Files
//
// Flag defaults may be set in config.json, config.yaml, or config.toml in
// the user configuration directory ($XDG_CONFIG_HOME/envlay). Nested tables
// are flattened into hyphenated flag names:
//
//	log:
//	  level: debug   # --log-level=debug
//	yaml-policy: strict
//
// Environment variables and command-line flags override config file values.
// The init command writes the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output (default: stderr is a terminal)
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o envlay .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/envlay/pprof)
package cli
