package main

import (
	"os"

	apperrors "github.com/vango-dev/approuter/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		apperrors.PrintError(err)
		os.Exit(1)
	}
}
