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

func newVerifyCmd(stdout io.Writer, log zerolog.Logger) *cobra.Command {
	var id, oldPath, newPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a contribution correctly rerandomizes the prior SRS",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" || oldPath == "" || newPath == "" {
				return fmt.Errorf("%w: --id, --old and --new are all required", errUsage)
			}
			return runVerify(stdout, log, id, oldPath, newPath)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "contributor identity the proof of knowledge was bound to")
	cmd.Flags().StringVar(&oldPath, "old", "", "path to the prior parameters")
	cmd.Flags().StringVar(&newPath, "new", "", "path to the candidate parameters and proof")
	return cmd
}

func runVerify(stdout io.Writer, log zerolog.Logger, id, oldPath, newPath string) error {
	old, err := loadParams(oldPath)
	if err != nil {
		return err
	}
	if len(old.A2) == 0 {
		return fmt.Errorf("%s: prior parameters have no A2 elements", oldPath)
	}

	next, pok, err := loadParamsAndPok(newPath)
	if err != nil {
		return err
	}

	ok := ceremony.CheckRerandomization(&next, old.A2[0], pok, []byte(id))
	log.Info().Str("id", id).Str("old", oldPath).Str("new", newPath).Bool("ok", ok).Msg("checked rerandomization")

	if !ok {
		fmt.Fprintf(stdout, "FAIL: %s is not a valid rerandomization of %s for id %q\n", newPath, oldPath, id)
		return fmt.Errorf("rerandomization check failed")
	}
	fmt.Fprintf(stdout, "OK: %s is a valid rerandomization of %s for id %q\n", newPath, oldPath, id)
	return nil
}
