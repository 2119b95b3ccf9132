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

func newFinalizeCmd(stdout io.Writer, log zerolog.Logger) *cobra.Command {
	var beacon, in, out string

	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Apply a public randomness beacon as the last rerandomization",
		RunE: func(cmd *cobra.Command, args []string) error {
			if beacon == "" || in == "" || out == "" {
				return fmt.Errorf("%w: --beacon, --in and --out are all required", errUsage)
			}
			return runFinalize(stdout, log, beacon, in, out)
		},
	}
	cmd.Flags().StringVar(&beacon, "beacon", "", "public randomness beacon value")
	cmd.Flags().StringVar(&in, "in", "", "path to the prior parameters")
	cmd.Flags().StringVar(&out, "out", "", "output path for the finalized parameters")
	return cmd
}

// runFinalize rerandomizes by a public beacon rather than secret entropy.
// Because the beacon is public, the resulting proof of knowledge carries no
// toxic-waste-erasure guarantee worth keeping, so only the parameters are
// written. The output depends only on the input parameters and the beacon,
// so anyone can rerun finalize with the same beacon and compare the result.
func runFinalize(stdout io.Writer, log zerolog.Logger, beacon, in, out string) error {
	prev, err := loadParams(in)
	if err != nil {
		return err
	}
	if !ceremony.Consistent(&prev) {
		return fmt.Errorf("%s: prior parameters failed the consistency check", in)
	}

	final, _, err := ceremony.Rerandomize(&prev, []byte(beacon), nil)
	if err != nil {
		return fmt.Errorf("rerandomize: %w", err)
	}

	if err := saveParams(out, &final); err != nil {
		return err
	}

	digest, err := fileDigest(out)
	if err != nil {
		return err
	}
	log.Info().Str("path", out).Str("blake3", digest).Msg("wrote finalized parameters")
	fmt.Fprintf(stdout, "wrote %s (blake3 %s)\n", out, digest)
	return nil
}
