// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import "errors"

// Sentinel error kinds. Every error the core returns wraps one of these so
// that callers several frames up can still errors.Is the root cause.
var (
	// ErrMalformedInput covers decompression failures, subgroup-check
	// failures, out-of-range scalars, oversized length prefixes, and
	// rejected uncompressed encodings.
	ErrMalformedInput = errors.New("malformed input")

	// ErrIO covers short reads/writes against a caller-supplied reader or
	// writer.
	ErrIO = errors.New("io failure")

	// ErrRNG covers the OS RNG refusing to produce entropy.
	ErrRNG = errors.New("rng failure")
)
