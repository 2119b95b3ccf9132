// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const (
	g1Size     = 48
	g2Size     = 96
	gtSize     = 576
	scalarSize = 32
)

// EncodeParams writes p's bit-exact wire layout: u8 ciphersuite, u64le n,
// A1, B1, A2, B2 (B2 only when the ciphersuite carries it), then T. This
// layout is the Fiat-Shamir hash preimage; any alternate encoding is a
// protocol break.
func EncodeParams(w io.Writer, p *Params) error {
	if p.N < 1 || int(p.N) > maxN {
		return fmt.Errorf("%w: n=%d out of range", ErrMalformedInput, p.N)
	}

	if err := writeAll(w, []byte{p.Ciphersuite.ID}); err != nil {
		return err
	}
	var nBuf [8]byte
	binary.LittleEndian.PutUint64(nBuf[:], uint64(p.N))
	if err := writeAll(w, nBuf[:]); err != nil {
		return err
	}

	for i := range p.A1 {
		b := p.A1[i].Bytes()
		if err := writeAll(w, b[:]); err != nil {
			return err
		}
	}
	for i := range p.B1 {
		b := p.B1[i].Bytes()
		if err := writeAll(w, b[:]); err != nil {
			return err
		}
	}
	for i := range p.A2 {
		b := p.A2[i].Bytes()
		if err := writeAll(w, b[:]); err != nil {
			return err
		}
	}
	if p.Ciphersuite.HasB2 {
		for i := range p.B2 {
			b := p.B2[i].Bytes()
			if err := writeAll(w, b[:]); err != nil {
				return err
			}
		}
	}

	return writeAll(w, gtBytes(p.T))
}

// DecodeParams reads the wire layout written by EncodeParams. Every decoded
// G1 and G2 element is subgroup-checked by the underlying library as part of
// decompression. T is read as raw Fp coefficients with no subgroup check.
func DecodeParams(r io.Reader) (Params, error) {
	var csID [1]byte
	if err := readAll(r, csID[:]); err != nil {
		return Params{}, err
	}
	cs, err := LookupCiphersuite(csID[0])
	if err != nil {
		return Params{}, err
	}

	var nBuf [8]byte
	if err := readAll(r, nBuf[:]); err != nil {
		return Params{}, err
	}
	n64 := binary.LittleEndian.Uint64(nBuf[:])
	if n64 < 1 || n64 > maxN {
		return Params{}, fmt.Errorf("%w: n=%d out of range", ErrMalformedInput, n64)
	}
	n := int(n64)

	p := Params{Ciphersuite: cs, N: uint16(n64)}

	p.A1, err = readG1Slice(r, n)
	if err != nil {
		return Params{}, err
	}
	if n > 1 {
		p.B1, err = readG1Slice(r, n-1)
		if err != nil {
			return Params{}, err
		}
	}
	p.A2, err = readG2Slice(r, n)
	if err != nil {
		return Params{}, err
	}
	if cs.HasB2 && n > 1 {
		p.B2, err = readG2Slice(r, n-1)
		if err != nil {
			return Params{}, err
		}
	}

	var tBuf [gtSize]byte
	if err := readAll(r, tBuf[:]); err != nil {
		return Params{}, err
	}
	p.T = gtFromBytes(tBuf[:])

	return p, nil
}

// EncodePok writes enc(P) ‖ enc(A) ‖ enc(S): 48 + 48 + 32 bytes.
func EncodePok(w io.Writer, pok *Pok) error {
	pBytes := pok.P.Bytes()
	if err := writeAll(w, pBytes[:]); err != nil {
		return err
	}
	aBytes := pok.A.Bytes()
	if err := writeAll(w, aBytes[:]); err != nil {
		return err
	}

	sBig := pok.S.BigInt(new(big.Int))
	var sBuf [scalarSize]byte
	sBig.FillBytes(sBuf[:])
	return writeAll(w, sBuf[:])
}

// DecodePok reads the layout written by EncodePok.
func DecodePok(r io.Reader) (Pok, error) {
	var pBuf [g1Size]byte
	if err := readAll(r, pBuf[:]); err != nil {
		return Pok{}, err
	}
	var p bls12381.G1Affine
	if _, err := p.SetBytes(pBuf[:]); err != nil {
		return Pok{}, fmt.Errorf("%w: P: %v", ErrMalformedInput, err)
	}

	var aBuf [g1Size]byte
	if err := readAll(r, aBuf[:]); err != nil {
		return Pok{}, err
	}
	var a bls12381.G1Affine
	if _, err := a.SetBytes(aBuf[:]); err != nil {
		return Pok{}, fmt.Errorf("%w: A: %v", ErrMalformedInput, err)
	}

	var sBuf [scalarSize]byte
	if err := readAll(r, sBuf[:]); err != nil {
		return Pok{}, err
	}
	sBig := new(big.Int).SetBytes(sBuf[:])
	if sBig.Cmp(fr.Modulus()) >= 0 {
		return Pok{}, fmt.Errorf("%w: s not reduced", ErrMalformedInput)
	}
	var s fr.Element
	s.SetBigInt(sBig)

	return Pok{P: p, A: a, S: s}, nil
}

func writeAll(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if n != len(b) {
		return fmt.Errorf("%w: short write", ErrIO)
	}
	return nil
}

func readAll(r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func readG1Slice(r io.Reader, n int) ([]bls12381.G1Affine, error) {
	out := make([]bls12381.G1Affine, n)
	var buf [g1Size]byte
	for i := 0; i < n; i++ {
		if err := readAll(r, buf[:]); err != nil {
			return nil, err
		}
		if _, err := out[i].SetBytes(buf[:]); err != nil {
			return nil, fmt.Errorf("%w: G1 element %d: %v", ErrMalformedInput, i, err)
		}
	}
	return out, nil
}

func readG2Slice(r io.Reader, n int) ([]bls12381.G2Affine, error) {
	out := make([]bls12381.G2Affine, n)
	var buf [g2Size]byte
	for i := 0; i < n; i++ {
		if err := readAll(r, buf[:]); err != nil {
			return nil, err
		}
		if _, err := out[i].SetBytes(buf[:]); err != nil {
			return nil, fmt.Errorf("%w: G2 element %d: %v", ErrMalformedInput, i, err)
		}
	}
	return out, nil
}

// gtBytes renders a GT element as 12 48-byte big-endian Fp limbs in a fixed
// coefficient order. gnark-crypto's GT has no built-in compressed form for
// Fp12, so the 576-byte layout is this module's own canonical encoding of
// the full extension-field element.
func gtBytes(k bls12381.GT) []byte {
	out := make([]byte, 0, gtSize)
	appendLimb := func(e fp.Element) {
		var bi big.Int
		e.BigInt(&bi)
		var buf [48]byte
		bi.FillBytes(buf[:])
		out = append(out, buf[:]...)
	}
	appendLimb(k.C0.B0.A0)
	appendLimb(k.C0.B0.A1)
	appendLimb(k.C0.B1.A0)
	appendLimb(k.C0.B1.A1)
	appendLimb(k.C0.B2.A0)
	appendLimb(k.C0.B2.A1)
	appendLimb(k.C1.B0.A0)
	appendLimb(k.C1.B0.A1)
	appendLimb(k.C1.B1.A0)
	appendLimb(k.C1.B1.A1)
	appendLimb(k.C1.B2.A0)
	appendLimb(k.C1.B2.A1)
	return out
}

// gtFromBytes is the inverse of gtBytes.
func gtFromBytes(b []byte) bls12381.GT {
	var k bls12381.GT
	limbs := [...]*fp.Element{
		&k.C0.B0.A0, &k.C0.B0.A1, &k.C0.B1.A0, &k.C0.B1.A1, &k.C0.B2.A0, &k.C0.B2.A1,
		&k.C1.B0.A0, &k.C1.B0.A1, &k.C1.B1.A0, &k.C1.B1.A1, &k.C1.B2.A0, &k.C1.B2.A1,
	}
	for i, limb := range limbs {
		limb.SetBytes(b[i*48 : (i+1)*48])
	}
	return k
}
