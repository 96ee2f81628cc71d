// Package profile provides optional runtime profiling backed by
// [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag:
//
//	go build -tags pprof ./...
//	envlay --pprof-mode cpu --pprof-dir ./profiles apply --no-exec
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// stopper. Profile files are written to the configured directory with names
// matching the mode (cpu.pprof, mem.pprof, and so on) and can be inspected
// with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
