// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/hkdf"
)

// HashToFieldPointproofs implements the direct Pointproofs-style
// hash-to-field: SHA-512(m) interpreted as a big-endian integer, reduced
// mod r, with 0 substituted by 1. fr.Element.SetBytes performs the OS2IP
// plus mod-r reduction in one step. This is the construction init uses to
// seed alpha from a public domain string (e.g. the digits of pi); it is
// exported so both the CLI and the core's own tests can reach it.
func HashToFieldPointproofs(m []byte) fr.Element {
	digest := sha512.Sum512(m)

	var x fr.Element
	x.SetBytes(digest[:])
	if x.IsZero() {
		x.SetOne()
	}
	return x
}

// hashToFieldHKDF implements the HKDF-style hash-to-field used by
// rerandomize and the Schnorr challenge: HKDF-SHA-256, salted with the
// ciphersuite identifier, keyed on preimage, expanded to 48 bytes (wide
// enough that the mod-r reduction carries negligible bias) and folded into
// Fr the same way as the direct construction.
func hashToFieldHKDF(cs Ciphersuite, label string, preimage []byte) (fr.Element, error) {
	reader := hkdf.New(sha256.New, preimage, []byte{cs.ID}, []byte(label))

	var wide [48]byte
	if _, err := io.ReadFull(reader, wide[:]); err != nil {
		return fr.Element{}, fmt.Errorf("%w: hkdf expand: %v", ErrRNG, err)
	}

	var x fr.Element
	x.SetBytes(wide[:])
	if x.IsZero() {
		x.SetOne()
	}
	return x, nil
}

// len8 renders n as an 8-byte big-endian length prefix, matching the
// len8(id) convention used throughout the Schnorr and rerandomize
// preimages.
func len8(n int) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(n))
	return b[:]
}

// rerandomizePreimage assembles the "Rerandomize" ‖ len8(id) ‖ entropy
// preimage that derives beta during rerandomize.
func rerandomizePreimage(id, entropy []byte) []byte {
	buf := make([]byte, 0, len("Rerandomize")+8+len(entropy))
	buf = append(buf, "Rerandomize"...)
	buf = append(buf, len8(len(id))...)
	buf = append(buf, entropy...)
	return buf
}
