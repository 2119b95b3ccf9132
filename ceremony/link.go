// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// CheckRerandomization verifies that newParams is a rerandomization of a
// prior SRS whose A2[0] element was prevA2First, witnessed by pok and bound
// to id. All three checks (PoK validity, the old/new link pairing, and
// newParams's own consistency) must hold.
func CheckRerandomization(newParams *Params, prevA2First bls12381.G2Affine, pok Pok, id []byte) bool {
	if !verifyPok(newParams.Ciphersuite, pok, id) {
		return false
	}

	if newParams.N < 1 || len(newParams.A2) == 0 {
		return false
	}

	// e(P, A2_old[0]) == e(g1, A2_new[0]) says P * alpha_old == alpha_new on
	// the exponent, i.e. P == beta and alpha_new == alpha_old * beta.
	_, _, g1, _ := bls12381.Generators()
	if !pairingEqual(
		[]bls12381.G1Affine{pok.P, g1},
		[]bls12381.G2Affine{prevA2First, newParams.A2[0]},
	) {
		return false
	}

	return Consistent(newParams)
}
