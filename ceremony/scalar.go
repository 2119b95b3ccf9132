// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import (
	"crypto/rand"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// wipe overwrites b with zeros. Callers defer wipe(buf) immediately after
// acquiring a buffer that will hold secret material, so every exit path
// (including a panic unwinding through the deferred call) leaves no trace.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// randomScalar draws 64 bytes from the OS RNG and folds them into a uniform
// Fr element through the HKDF-style hash-to-field construction, wiping the
// seed buffer before returning.
func randomScalar(cs Ciphersuite) (fr.Element, error) {
	var seed [64]byte
	defer wipe(seed[:])

	if _, err := rand.Read(seed[:]); err != nil {
		return fr.Element{}, fmt.Errorf("%w: %v", ErrRNG, err)
	}

	return hashToFieldHKDF(cs, "RandomScalar", seed[:])
}
