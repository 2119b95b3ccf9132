// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package ceremony

import (
	"bytes"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/google/go-cmp/cmp"
)

func testAlpha(t *testing.T) fr.Element {
	t.Helper()
	return HashToFieldPointproofs([]byte("test-alpha-seed"))
}

func TestGenerate_RejectsBadN(t *testing.T) {
	// n is a uint16, so the wire format's larger-than-uint16 case
	// (DecodeParams rejecting an oversized length prefix) is covered
	// separately in TestDecodeParams_RejectsOversizedN; here only n=0 is
	// reachable through Generate's own signature.
	alpha := testAlpha(t)
	if _, err := Generate(CiphersuitePointproofs, alpha, 0); err == nil {
		t.Fatal("expected error for n=0")
	}
}

func TestGenerate_RejectsZeroAlpha(t *testing.T) {
	var zero fr.Element
	zero.SetZero()
	if _, err := Generate(CiphersuitePointproofs, zero, 4); err == nil {
		t.Fatal("expected error for alpha=0")
	}
}

func TestGenerate_ProducesConsistentParams(t *testing.T) {
	for _, cs := range []Ciphersuite{CiphersuitePointproofs, CiphersuiteVeccom} {
		for _, n := range []uint16{1, 2, 8} {
			alpha := testAlpha(t)
			p, err := Generate(cs, alpha, n)
			if err != nil {
				t.Fatalf("cs=%s n=%d: %v", cs.Name, n, err)
			}
			if len(p.A1) != int(n) || len(p.A2) != int(n) {
				t.Fatalf("cs=%s n=%d: A1/A2 length mismatch", cs.Name, n)
			}
			wantB := 0
			if n > 1 {
				wantB = int(n) - 1
			}
			if len(p.B1) != wantB {
				t.Fatalf("cs=%s n=%d: B1 length = %d, want %d", cs.Name, n, len(p.B1), wantB)
			}
			if cs.HasB2 && len(p.B2) != wantB {
				t.Fatalf("cs=%s n=%d: B2 length = %d, want %d", cs.Name, n, len(p.B2), wantB)
			}
			if !cs.HasB2 && len(p.B2) != 0 {
				t.Fatalf("cs=%s n=%d: expected no B2, got %d elements", cs.Name, n, len(p.B2))
			}
			if !Consistent(&p) {
				t.Fatalf("cs=%s n=%d: freshly generated params failed Consistent", cs.Name, n)
			}
		}
	}
}

func TestRerandomize_PreservesConsistency(t *testing.T) {
	alpha := testAlpha(t)
	prev, err := Generate(CiphersuitePointproofs, alpha, 6)
	if err != nil {
		t.Fatal(err)
	}

	entropy := []byte("some fresh entropy from the os rng")
	next, pok, err := Rerandomize(&prev, entropy, []byte("participant-1"))
	if err != nil {
		t.Fatal(err)
	}
	if !Consistent(&next) {
		t.Fatal("rerandomized params failed Consistent")
	}
	if !verifyPok(CiphersuitePointproofs, pok, []byte("participant-1")) {
		t.Fatal("pok did not verify against the id it was bound to")
	}
	if verifyPok(CiphersuitePointproofs, pok, []byte("someone-else")) {
		t.Fatal("pok verified against the wrong id")
	}
}

func TestRerandomize_DifferentEntropyDivergesOutput(t *testing.T) {
	alpha := testAlpha(t)
	prev, err := Generate(CiphersuitePointproofs, alpha, 4)
	if err != nil {
		t.Fatal(err)
	}

	next1, _, err := Rerandomize(&prev, []byte("entropy-one"), []byte("id"))
	if err != nil {
		t.Fatal(err)
	}
	next2, _, err := Rerandomize(&prev, []byte("entropy-two"), []byte("id"))
	if err != nil {
		t.Fatal(err)
	}
	if next1.A1[0].Equal(&next2.A1[0]) {
		t.Fatal("different entropy produced the same rerandomized output")
	}
}

func TestCheckRerandomization_AcceptsValidLink(t *testing.T) {
	alpha := testAlpha(t)
	prev, err := Generate(CiphersuitePointproofs, alpha, 5)
	if err != nil {
		t.Fatal(err)
	}

	next, pok, err := Rerandomize(&prev, []byte("entropy"), []byte("contributor"))
	if err != nil {
		t.Fatal(err)
	}

	if !CheckRerandomization(&next, prev.A2[0], pok, []byte("contributor")) {
		t.Fatal("expected a valid rerandomization to be accepted")
	}
}

func TestCheckRerandomization_RejectsWrongID(t *testing.T) {
	alpha := testAlpha(t)
	prev, err := Generate(CiphersuitePointproofs, alpha, 5)
	if err != nil {
		t.Fatal(err)
	}

	next, pok, err := Rerandomize(&prev, []byte("entropy"), []byte("contributor"))
	if err != nil {
		t.Fatal(err)
	}

	if CheckRerandomization(&next, prev.A2[0], pok, []byte("impostor")) {
		t.Fatal("expected rerandomization check to reject a mismatched id")
	}
}

func TestCheckRerandomization_RejectsWrongPriorLink(t *testing.T) {
	alpha := testAlpha(t)
	prev, err := Generate(CiphersuitePointproofs, alpha, 5)
	if err != nil {
		t.Fatal(err)
	}
	other, err := Generate(CiphersuitePointproofs, HashToFieldPointproofs([]byte("different seed")), 5)
	if err != nil {
		t.Fatal(err)
	}

	next, pok, err := Rerandomize(&prev, []byte("entropy"), []byte("contributor"))
	if err != nil {
		t.Fatal(err)
	}

	if CheckRerandomization(&next, other.A2[0], pok, []byte("contributor")) {
		t.Fatal("expected rerandomization check to reject an unrelated prior SRS")
	}
}

func TestConsistent_RejectsTamperedElement(t *testing.T) {
	alpha := testAlpha(t)
	p, err := Generate(CiphersuitePointproofs, alpha, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !Consistent(&p) {
		t.Fatal("freshly generated params should be consistent")
	}

	_, _, g1, _ := bls12381.Generators()
	p.A1[2] = g1 // replace a mid-ladder element with the generator itself
	if Consistent(&p) {
		t.Fatal("expected tampered params to fail Consistent")
	}
}

func TestConsistent_RejectsLengthMismatch(t *testing.T) {
	alpha := testAlpha(t)
	p, err := Generate(CiphersuitePointproofs, alpha, 5)
	if err != nil {
		t.Fatal(err)
	}
	p.A2 = p.A2[:len(p.A2)-1]
	if Consistent(&p) {
		t.Fatal("expected length-mismatched params to fail Consistent")
	}
}

func TestParams_RoundTripEncoding(t *testing.T) {
	for _, cs := range []Ciphersuite{CiphersuitePointproofs, CiphersuiteVeccom} {
		alpha := testAlpha(t)
		p, err := Generate(cs, alpha, 7)
		if err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := EncodeParams(&buf, &p); err != nil {
			t.Fatalf("cs=%s: encode: %v", cs.Name, err)
		}
		original := append([]byte(nil), buf.Bytes()...)

		got, err := DecodeParams(&buf)
		if err != nil {
			t.Fatalf("cs=%s: decode: %v", cs.Name, err)
		}

		var reencoded bytes.Buffer
		if err := EncodeParams(&reencoded, &got); err != nil {
			t.Fatalf("cs=%s: re-encode: %v", cs.Name, err)
		}
		if !bytes.Equal(original, reencoded.Bytes()) {
			t.Fatalf("cs=%s: re-encoding the decoded params did not reproduce the original bytes", cs.Name)
		}
		if !Consistent(&got) {
			t.Fatalf("cs=%s: decoded params failed Consistent", cs.Name)
		}
		if got.N != p.N || got.Ciphersuite.ID != p.Ciphersuite.ID {
			t.Fatalf("cs=%s: round trip changed N or ciphersuite", cs.Name)
		}
	}
}

func TestPok_RoundTripEncoding(t *testing.T) {
	alpha := testAlpha(t)
	prev, err := Generate(CiphersuitePointproofs, alpha, 4)
	if err != nil {
		t.Fatal(err)
	}
	_, pok, err := Rerandomize(&prev, []byte("entropy"), []byte("id"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodePok(&buf, &pok); err != nil {
		t.Fatal(err)
	}
	got, err := DecodePok(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !verifyPok(CiphersuitePointproofs, got, []byte("id")) {
		t.Fatal("decoded pok failed to verify")
	}
}

func TestDecodeParams_RejectsOversizedN(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(CiphersuitePointproofs.ID)
	nBuf := make([]byte, 8)
	nBuf[0] = 0xff
	nBuf[1] = 0xff
	nBuf[2] = 0xff
	buf.Write(nBuf)
	if _, err := DecodeParams(&buf); err == nil {
		t.Fatal("expected decode to reject an oversized n")
	}
}

func TestDecodeParams_RejectsUnknownCiphersuite(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0xfe)
	if _, err := DecodeParams(&buf); err == nil {
		t.Fatal("expected decode to reject an unknown ciphersuite byte")
	}
}

func TestHashToFieldPointproofs_NeverZero(t *testing.T) {
	// The zero-message digest is extremely unlikely to land on zero mod r,
	// but the substitution path must still never return a zero element for
	// any input.
	for _, m := range [][]byte{nil, []byte{}, []byte("x"), []byte("the quick brown fox")} {
		x := HashToFieldPointproofs(m)
		if x.IsZero() {
			t.Fatalf("HashToFieldPointproofs(%q) returned zero", m)
		}
	}
}

func TestLookupCiphersuite(t *testing.T) {
	cs, err := LookupCiphersuite(0)
	if err != nil || cs.Name != CiphersuitePointproofs.Name {
		t.Fatalf("expected pointproofs for id 0, got %+v err=%v", cs, err)
	}
	if _, err := LookupCiphersuite(200); err == nil {
		t.Fatal("expected error for unregistered ciphersuite byte")
	}
}

func TestCiphersuiteByName(t *testing.T) {
	if _, err := CiphersuiteByName("not-a-real-ciphersuite"); err == nil {
		t.Fatal("expected error for unknown ciphersuite name")
	}
	cs, err := CiphersuiteByName(CiphersuiteVeccom.Name)
	if err != nil || cs.ID != CiphersuiteVeccom.ID {
		t.Fatalf("expected veccom, got %+v err=%v", cs, err)
	}
}

func TestLookupCiphersuite_RoundTripsByID(t *testing.T) {
	for _, want := range []Ciphersuite{CiphersuitePointproofs, CiphersuiteVeccom} {
		got, err := LookupCiphersuite(want.ID)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("LookupCiphersuite(%d) mismatch (-want +got):\n%s", want.ID, diff)
		}
	}
}
