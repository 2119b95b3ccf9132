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

func newEvolveCmd(stdout io.Writer, log zerolog.Logger) *cobra.Command {
	var id, in, out string

	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Contribute a secret rerandomization exponent to the SRS",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" || in == "" || out == "" {
				return fmt.Errorf("%w: --id, --in and --out are all required", errUsage)
			}
			return runEvolve(stdout, log, id, in, out)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "contributor identity bound into the proof of knowledge")
	cmd.Flags().StringVar(&in, "in", "", "path to the prior parameters")
	cmd.Flags().StringVar(&out, "out", "", "output path for the rerandomized parameters and proof")
	return cmd
}

func runEvolve(stdout io.Writer, log zerolog.Logger, id, in, out string) error {
	prev, err := loadParams(in)
	if err != nil {
		return err
	}
	if !ceremony.Consistent(&prev) {
		return fmt.Errorf("%s: prior parameters failed the consistency check", in)
	}

	entropy, err := drawEntropy()
	if err != nil {
		return err
	}
	defer zeroize(entropy)

	next, pok, err := ceremony.Rerandomize(&prev, entropy, []byte(id))
	if err != nil {
		return fmt.Errorf("rerandomize: %w", err)
	}

	if err := saveParamsAndPok(out, &next, &pok); err != nil {
		return err
	}

	digest, err := fileDigest(out)
	if err != nil {
		return err
	}
	log.Info().Str("id", id).Str("path", out).Str("blake3", digest).Msg("wrote rerandomized parameters")
	fmt.Fprintf(stdout, "wrote %s (blake3 %s)\n", out, digest)
	return nil
}
