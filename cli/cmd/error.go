package cmd

import "github.com/ardnew/envlay/pkg"

var (
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrOutput      = pkg.NewError("write command output")
	ErrLiteral     = pkg.NewError("invalid value literal")
)
