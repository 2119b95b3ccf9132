// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// maxN is the largest n the wire format's u64le length prefix is allowed to
// carry; readers must reject anything larger.
const maxN = 65535

// Params is a powers-of-tau structured reference string with a deliberate
// hole at index n+1: T substitutes for the never-published alpha^(n+1)
// points.
type Params struct {
	Ciphersuite Ciphersuite
	N           uint16

	A1 []bls12381.G1Affine // length n,   g1^{alpha^1 .. alpha^n}
	B1 []bls12381.G1Affine // length n-1, g1^{alpha^{n+2} .. alpha^{2n}}
	A2 []bls12381.G2Affine // length n,   g2^{alpha^1 .. alpha^n}
	B2 []bls12381.G2Affine // length n-1, present iff Ciphersuite.HasB2

	T bls12381.GT // e(g1,g2)^{alpha^{n+1}}
}

// Generate builds the initial parameter tuple from a known scalar alpha. In
// the init CLI command alpha is seeded publicly from the digits of pi, so it
// is not secret; security relies on later participants' secret
// contributions.
func Generate(cs Ciphersuite, alpha fr.Element, n uint16) (Params, error) {
	if n < 1 || n > maxN {
		return Params{}, fmt.Errorf("%w: n=%d out of range", ErrMalformedInput, n)
	}
	if alpha.IsZero() {
		return Params{}, fmt.Errorf("%w: alpha must be non-zero", ErrMalformedInput)
	}

	_, _, g1, g2 := bls12381.Generators()

	nn := int(n)
	powers := make([]fr.Element, 2*nn) // powers[i] = alpha^(i+1), i=0..2n-1
	var scalar fr.Element
	scalar.SetOne()
	for i := 0; i < 2*nn; i++ {
		scalar.Mul(&scalar, &alpha)
		powers[i] = scalar
	}
	// powers[i] now holds alpha^(i+1) for i in [0, 2n-1]; powers[nn] = alpha^(n+1).

	p := Params{Ciphersuite: cs, N: n}
	p.A1 = make([]bls12381.G1Affine, nn)
	p.A2 = make([]bls12381.G2Affine, nn)
	for i := 0; i < nn; i++ {
		e := powers[i].BigInt(new(big.Int))
		p.A1[i].ScalarMultiplication(&g1, e)
		p.A2[i].ScalarMultiplication(&g2, e)
	}

	var gAlphaNPlus1 bls12381.G1Affine
	gAlphaNPlus1.ScalarMultiplication(&g1, powers[nn].BigInt(new(big.Int)))
	t, err := bls12381.Pair([]bls12381.G1Affine{gAlphaNPlus1}, []bls12381.G2Affine{g2})
	if err != nil {
		return Params{}, fmt.Errorf("pairing for T: %w", err)
	}
	p.T = t

	if nn > 1 {
		p.B1 = make([]bls12381.G1Affine, nn-1)
		if cs.HasB2 {
			p.B2 = make([]bls12381.G2Affine, nn-1)
		}
		for i := 0; i < nn-1; i++ {
			// B1[i] = g1^{alpha^{i+n+2}} = powers[i+n+1]
			e := powers[i+nn+1].BigInt(new(big.Int))
			p.B1[i].ScalarMultiplication(&g1, e)
			if cs.HasB2 {
				p.B2[i].ScalarMultiplication(&g2, e)
			}
		}
	}

	for i := range powers {
		powers[i].SetZero()
	}
	scalar.SetZero()

	return p, nil
}

// Rerandomize mixes a freshly derived secret exponent beta into every
// element of prev, returning the new SRS together with a proof of
// knowledge of beta bound to id. prev is left unmodified.
func Rerandomize(prev *Params, entropy, id []byte) (Params, Pok, error) {
	preimage := rerandomizePreimage(id, entropy)
	defer wipe(preimage)
	beta, err := hashToFieldHKDF(prev.Ciphersuite, "Rerandomize", preimage)
	if err != nil {
		return Params{}, Pok{}, err
	}
	defer beta.SetZero()

	n := int(prev.N)
	out := Params{Ciphersuite: prev.Ciphersuite, N: prev.N}
	out.A1 = make([]bls12381.G1Affine, n)
	out.A2 = make([]bls12381.G2Affine, n)
	if len(prev.B1) > 0 {
		out.B1 = make([]bls12381.G1Affine, len(prev.B1))
	}
	if len(prev.B2) > 0 {
		out.B2 = make([]bls12381.G2Affine, len(prev.B2))
	}

	var betaPow fr.Element
	defer betaPow.SetZero()
	betaPow.Set(&beta)
	for i := 0; i < n; i++ {
		e := betaPow.BigInt(new(big.Int))
		out.A1[i].ScalarMultiplication(&prev.A1[i], e)
		out.A2[i].ScalarMultiplication(&prev.A2[i], e)
		betaPow.Mul(&betaPow, &beta)
	}
	// betaPow is now beta^{n+1}; continue through the B window (indices
	// n+2..2n correspond to prev.B1[0..n-2]).
	betaPow.Mul(&betaPow, &beta) // beta^{n+2}
	for i := 0; i < len(prev.B1); i++ {
		e := betaPow.BigInt(new(big.Int))
		out.B1[i].ScalarMultiplication(&prev.B1[i], e)
		if len(prev.B2) > 0 {
			out.B2[i].ScalarMultiplication(&prev.B2[i], e)
		}
		betaPow.Mul(&betaPow, &beta)
	}

	t, err := bls12381.Pair([]bls12381.G1Affine{out.A1[0]}, []bls12381.G2Affine{out.A2[n-1]})
	if err != nil {
		return Params{}, Pok{}, fmt.Errorf("pairing for new T: %w", err)
	}
	out.T = t

	pok, err := makePok(prev.Ciphersuite, beta, id)
	if err != nil {
		return Params{}, Pok{}, err
	}

	return out, pok, nil
}
