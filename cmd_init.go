// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/logical-mechanism/srs-ceremony/ceremony"
)

func newInitCmd(stdout io.Writer, log zerolog.Logger) *cobra.Command {
	var out string
	var n uint16
	var ciphersuiteName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate the starting SRS, seeding alpha publicly from the digits of pi",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" || n == 0 {
				return fmt.Errorf("%w: --out and --n are required (--n must be non-zero)", errUsage)
			}
			return runInit(stdout, log, out, n, ciphersuiteName)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output path for the generated parameters")
	cmd.Flags().Uint16Var(&n, "n", 0, "SRS size n (1-65535)")
	cmd.Flags().StringVar(&ciphersuiteName, "ciphersuite", ceremony.CiphersuitePointproofs.Name, "ciphersuite name")
	return cmd
}

func runInit(stdout io.Writer, log zerolog.Logger, out string, n uint16, ciphersuiteName string) error {
	cs, err := ceremony.CiphersuiteByName(ciphersuiteName)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	log.Info().Str("ciphersuite", cs.Name).Uint16("n", n).Msg("generating initial parameters")

	alpha := ceremony.HashToFieldPointproofs([]byte(piDigits))
	params, err := ceremony.Generate(cs, alpha, n)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := saveParams(out, &params); err != nil {
		return err
	}

	digest, err := fileDigest(out)
	if err != nil {
		return err
	}
	log.Info().Str("path", out).Str("blake3", digest).Msg("wrote parameters")
	fmt.Fprintf(stdout, "wrote %s (blake3 %s)\n", out, digest)
	return nil
}
