// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import "fmt"

// Ciphersuite names a (curve, hash, encoding, SRS-shape) tuple by a single
// byte. The shape of Params (whether a B2 array is present) is derived from
// the ciphersuite rather than passed as a second parameter everywhere.
type Ciphersuite struct {
	ID   uint8
	Name string
	// HasB2 selects the Pointproofs variant (true) or the Veccom variant
	// (false) of the SRS.
	HasB2 bool
	// DomainSep is the Fiat-Shamir domain separator used by the Schnorr PoK
	// under this ciphersuite.
	DomainSep string
}

var (
	CiphersuitePointproofs = Ciphersuite{ID: 0, Name: "bls12381-pointproofs", HasB2: true, DomainSep: "DomainSep"}
	CiphersuiteVeccom      = Ciphersuite{ID: 1, Name: "bls12381-veccom", HasB2: false, DomainSep: "DomainSep"}
)

var ciphersuiteByID = map[uint8]Ciphersuite{
	CiphersuitePointproofs.ID: CiphersuitePointproofs,
	CiphersuiteVeccom.ID:      CiphersuiteVeccom,
}

// LookupCiphersuite resolves a one-byte tag to its registered Ciphersuite.
func LookupCiphersuite(id uint8) (Ciphersuite, error) {
	cs, ok := ciphersuiteByID[id]
	if !ok {
		return Ciphersuite{}, fmt.Errorf("%w: unknown ciphersuite byte %d", ErrMalformedInput, id)
	}
	return cs, nil
}

// CiphersuiteByName resolves a registered ciphersuite by its human name, for
// use by the CLI front-end.
func CiphersuiteByName(name string) (Ciphersuite, error) {
	for _, cs := range ciphersuiteByID {
		if cs.Name == name {
			return cs, nil
		}
	}
	return Ciphersuite{}, fmt.Errorf("%w: unknown ciphersuite name %q", ErrMalformedInput, name)
}
