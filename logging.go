// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// logging.go configures the CLI's structured diagnostic log. The core
// ceremony package never logs; every event here names a CLI step, not a
// cryptographic invariant.
package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

func newLogger(stderr io.Writer) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	return zerolog.New(w).With().Timestamp().Logger()
}
