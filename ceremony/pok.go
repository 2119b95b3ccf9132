// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Pok is a non-interactive Schnorr proof of knowledge of the discrete log of
// P base g1, bound to a participant identity by Fiat-Shamir.
type Pok struct {
	P bls12381.G1Affine
	A bls12381.G1Affine
	S fr.Element
}

// makePok proves knowledge of x (P = g1^x) bound to id under cs's domain
// separator. x is the secret scalar being contributed (beta during
// rerandomize); the ephemeral nonce k is zeroized before returning.
func makePok(cs Ciphersuite, x fr.Element, id []byte) (Pok, error) {
	_, _, g1, _ := bls12381.Generators()

	var p bls12381.G1Affine
	p.ScalarMultiplication(&g1, x.BigInt(new(big.Int)))

	k, err := randomScalar(cs)
	if err != nil {
		return Pok{}, err
	}
	defer k.SetZero()

	var a bls12381.G1Affine
	a.ScalarMultiplication(&g1, k.BigInt(new(big.Int)))

	e, err := pokChallenge(cs, a, p, id)
	if err != nil {
		return Pok{}, err
	}

	var s fr.Element
	s.Mul(&e, &x)
	s.Sub(&k, &s)

	return Pok{P: p, A: a, S: s}, nil
}

// verifyPok checks that pok is a valid proof of knowledge bound to id under
// cs's domain separator.
func verifyPok(cs Ciphersuite, pok Pok, id []byte) bool {
	// Subgroup membership of A and P is enforced by the decoder (serialize.go)
	// at the point they entered memory; here we only need the identity check
	// that the wire format cannot rule out on its own.
	if pok.A.IsInfinity() || pok.P.IsInfinity() {
		return false
	}

	e, err := pokChallenge(cs, pok.A, pok.P, id)
	if err != nil {
		return false
	}

	_, _, g1, _ := bls12381.Generators()

	var gs bls12381.G1Affine
	gs.ScalarMultiplication(&g1, pok.S.BigInt(new(big.Int)))

	var pe bls12381.G1Affine
	pe.ScalarMultiplication(&pok.P, e.BigInt(new(big.Int)))

	var b bls12381.G1Affine
	b.Add(&gs, &pe)

	return b.Equal(&pok.A)
}

// pokChallenge recomputes e = H(dsep ‖ enc(A) ‖ enc(P) ‖ len8(id) ‖ id)
// using the HKDF-style hash-to-field.
func pokChallenge(cs Ciphersuite, a, p bls12381.G1Affine, id []byte) (fr.Element, error) {
	aBytes := a.Bytes()
	pBytes := p.Bytes()

	preimage := make([]byte, 0, len(cs.DomainSep)+len(aBytes)+len(pBytes)+8+len(id))
	preimage = append(preimage, cs.DomainSep...)
	preimage = append(preimage, aBytes[:]...)
	preimage = append(preimage, pBytes[:]...)
	preimage = append(preimage, len8(len(id))...)
	preimage = append(preimage, id...)

	return hashToFieldHKDF(cs, "SchnorrChallenge", preimage)
}
