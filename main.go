// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// main.go is the srs-ceremony CLI entry point: init/evolve/verify/finalize
// subcommands over the ceremony package's core.
package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// errUsage marks an error that should exit 2 (bad arguments) rather than 1
// (operation failed).
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI in-process against explicit stdout/stderr writers,
// so tests never need to shell out to a built binary.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return 2
	}

	log := newLogger(stderr)

	root := &cobra.Command{
		Use:           "srs-ceremony",
		Short:         "Powers-of-tau trusted-setup ceremony for a vector-commitment SRS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	root.AddCommand(
		newInitCmd(stdout, log),
		newEvolveCmd(stdout, log),
		newVerifyCmd(stdout, log),
		newFinalizeCmd(stdout, log),
	)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		if errors.Is(err, errUsage) || isCobraUsageError(err) {
			return 2
		}
		return 1
	}
	return 0
}

// isCobraUsageError recognizes the errors cobra itself raises before any
// subcommand's RunE runs: unknown commands and unknown/malformed flags.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown command") || strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "unknown shorthand flag") || strings.Contains(msg, "flag needs an argument")
}
