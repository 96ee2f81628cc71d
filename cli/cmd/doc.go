// Package cmd provides the envlay subcommands: apply, diff, show, value, and
// init.
//
// Every command except value and init operates on the same pair of documents,
// selected by the flags of [Options]. Variables are read from the process
// environment unless a source is installed with [WithSource].
package cmd

// ConfigIdentifier is the kong variable identifier containing the path of
// the YAML configuration file written by init.
var ConfigIdentifier = "config"
