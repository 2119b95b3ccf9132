// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import (
	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Consistent probabilistically verifies, in O(n) group operations, that p
// encodes some single scalar alpha across every listed element, that T is
// exactly e(g1,g2)^{alpha^{n+1}}, and (when B2 is present) that it matches
// B1 under the same alpha.
func Consistent(p *Params) bool {
	if p.N < 1 || int(p.N) > maxN {
		return false
	}
	if len(p.A1) != int(p.N) || len(p.A2) != int(p.N) {
		return false
	}
	if p.Ciphersuite.HasB2 && len(p.B2) != len(p.B1) {
		return false
	}

	_, _, g1, g2 := bls12381.Generators()

	for i := range p.A1 {
		if p.A1[i].IsInfinity() || p.A1[i].Equal(&g1) {
			return false
		}
	}
	for i := range p.A2 {
		if p.A2[i].IsInfinity() || p.A2[i].Equal(&g2) {
			return false
		}
	}
	for i := range p.B1 {
		if p.B1[i].IsInfinity() || p.B1[i].Equal(&g1) {
			return false
		}
	}
	for i := range p.B2 {
		if p.B2[i].IsInfinity() || p.B2[i].Equal(&g2) {
			return false
		}
	}

	n := int(p.N)
	r := make([]fr.Element, n)
	for i := range r {
		scalar, err := randomScalar(p.Ciphersuite)
		if err != nil {
			return false
		}
		r[i] = scalar
	}

	// R1 = sum_{i=1..n} r_i A1[i-1], R2 = sum_{i=1..n} r_i A2[i-1]
	r1, err := msmG1(p.A1, r)
	if err != nil {
		return false
	}
	r2, err := msmG2(p.A2, r)
	if err != nil {
		return false
	}

	// S = sum_{i=1..n-1} r_i A1[i-1] (prefix of the same combination)
	s, err := msmG1(p.A1[:max(n-1, 0)], r[:max(n-1, 0)])
	if err != nil {
		return false
	}

	// T1 = sum_{i=1..n-1} r_i A1[i] (shifted by one)
	t1, err := msmG1(p.A1[min(1, n):n], r[:max(n-1, 0)])
	if err != nil {
		return false
	}

	// U1 = sum_{i=1..n-1} r_i B1[i-1]
	u1, err := msmG1(p.B1, r[:len(p.B1)])
	if err != nil {
		return false
	}

	// (a) e(R1, g2) = e(g1, R2)
	if !pairingEqual([]bls12381.G1Affine{r1, g1}, []bls12381.G2Affine{g2, r2}) {
		return false
	}

	// (b) e(S, A2[0]) = e(T1, g2)
	if n >= 2 {
		if !pairingEqual([]bls12381.G1Affine{s, t1}, []bls12381.G2Affine{p.A2[0], g2}) {
			return false
		}
	}

	// (c) e(A1[n-1], A2[0]) = T
	left, err := bls12381.Pair([]bls12381.G1Affine{p.A1[n-1]}, []bls12381.G2Affine{p.A2[0]})
	if err != nil {
		return false
	}
	if !left.Equal(&p.T) {
		return false
	}

	// (d) e(T1, A2[n-1]) = e(U1, g2) [and, when B2 exists, = e(g1, U2)]
	if len(p.B1) > 0 {
		if !pairingEqual([]bls12381.G1Affine{t1, u1}, []bls12381.G2Affine{p.A2[n-1], g2}) {
			return false
		}
		if p.Ciphersuite.HasB2 {
			u2, err := msmG2(p.B2, r[:len(p.B2)])
			if err != nil {
				return false
			}
			if !pairingEqual([]bls12381.G1Affine{t1, g1}, []bls12381.G2Affine{p.A2[n-1], u2}) {
				return false
			}
		}
	}

	for i := range r {
		r[i].SetZero()
	}

	return true
}

// msmG1 computes a multi-scalar multiplication in G1, returning the
// identity when either slice is empty (MultiExp is undefined on empty
// input).
func msmG1(points []bls12381.G1Affine, scalars []fr.Element) (bls12381.G1Affine, error) {
	var out bls12381.G1Affine
	if len(points) == 0 || len(scalars) == 0 {
		out.SetInfinity()
		return out, nil
	}
	if _, err := out.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return bls12381.G1Affine{}, err
	}
	return out, nil
}

// msmG2 is the G2 analog of msmG1.
func msmG2(points []bls12381.G2Affine, scalars []fr.Element) (bls12381.G2Affine, error) {
	var out bls12381.G2Affine
	if len(points) == 0 || len(scalars) == 0 {
		out.SetInfinity()
		return out, nil
	}
	if _, err := out.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return bls12381.G2Affine{}, err
	}
	return out, nil
}

// pairingEqual checks e(g1s[0], g2s[0]) == e(g1s[1], g2s[1]).
func pairingEqual(g1s []bls12381.G1Affine, g2s []bls12381.G2Affine) bool {
	left, err := bls12381.Pair([]bls12381.G1Affine{g1s[0]}, []bls12381.G2Affine{g2s[0]})
	if err != nil {
		return false
	}
	right, err := bls12381.Pair([]bls12381.G1Affine{g1s[1]}, []bls12381.G2Affine{g2s[1]})
	if err != nil {
		return false
	}
	return left.Equal(&right)
}
