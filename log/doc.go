// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// A [Logger] is an immutable value. Options such as [WithLevel],
// [WithFormat], [WithTimeLayout], [WithCaller], and [WithPretty] are applied
// when the logger is made, and [Logger.Wrap] derives a new logger with
// additional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"))
//	logger.Info("document loaded", slog.String("path", path))
//
// Every method takes [slog.Attr] values rather than alternating key-value
// arguments.
//
// The package also keeps a default logger used by the package-level
// functions [Info], [Warn], and so on. [Config] reconfigures it.
package log
