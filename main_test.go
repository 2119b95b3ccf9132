// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_NoArgs(t *testing.T) {
	var out, err bytes.Buffer
	code := run([]string{}, &out, &err)
	if code != 2 {
		t.Fatalf("want 2 got %d", code)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var out, err bytes.Buffer
	code := run([]string{"wat"}, &out, &err)
	if code != 2 {
		t.Fatalf("want 2 got %d", code)
	}
}

func TestRun_Init_MissingArgs(t *testing.T) {
	var out, err bytes.Buffer
	code := run([]string{"init"}, &out, &err)
	if code != 2 {
		t.Fatalf("want 2 got %d stderr=%q", code, err.String())
	}
}

func TestRun_Init_Success(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "params.bin")

	var out, errBuf bytes.Buffer
	code := run([]string{"init", "--out", outPath, "--n", "4"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("want 0 got %d stderr=%q", code, errBuf.String())
	}
	if !strings.Contains(out.String(), outPath) {
		t.Fatalf("expected stdout to mention %q, got %q", outPath, out.String())
	}
}

func TestRun_Init_UnknownCiphersuite(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "params.bin")

	var out, errBuf bytes.Buffer
	code := run([]string{"init", "--out", outPath, "--n", "4", "--ciphersuite", "nope"}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("want 2 got %d stderr=%q", code, errBuf.String())
	}
}

func TestRun_FullCeremonyFlow(t *testing.T) {
	dir := t.TempDir()
	initial := filepath.Join(dir, "0.bin")
	round1 := filepath.Join(dir, "1.bin")
	final := filepath.Join(dir, "final.bin")

	var out, errBuf bytes.Buffer

	if code := run([]string{"init", "--out", initial, "--n", "6"}, &out, &errBuf); code != 0 {
		t.Fatalf("init failed: code=%d stderr=%q", code, errBuf.String())
	}

	out.Reset()
	errBuf.Reset()
	if code := run([]string{"evolve", "--id", "alice", "--in", initial, "--out", round1}, &out, &errBuf); code != 0 {
		t.Fatalf("evolve failed: code=%d stderr=%q", code, errBuf.String())
	}

	out.Reset()
	errBuf.Reset()
	if code := run([]string{"verify", "--id", "alice", "--old", initial, "--new", round1}, &out, &errBuf); code != 0 {
		t.Fatalf("verify failed: code=%d stdout=%q stderr=%q", code, out.String(), errBuf.String())
	}
	if !strings.Contains(out.String(), "OK") {
		t.Fatalf("expected verify success banner, got %q", out.String())
	}

	out.Reset()
	errBuf.Reset()
	if code := run([]string{"verify", "--id", "bob", "--old", initial, "--new", round1}, &out, &errBuf); code != 1 {
		t.Fatalf("verify with wrong id: want 1 got %d", code)
	}
	if !strings.Contains(out.String(), "FAIL") {
		t.Fatalf("expected verify failure banner, got %q", out.String())
	}

	out.Reset()
	errBuf.Reset()
	if code := run([]string{"finalize", "--beacon", "drand-round-12345", "--in", round1, "--out", final}, &out, &errBuf); code != 0 {
		t.Fatalf("finalize failed: code=%d stderr=%q", code, errBuf.String())
	}

	finalParams, err := loadParams(final)
	if err != nil {
		t.Fatalf("loading finalized params: %v", err)
	}
	// finalize discards the pok, so the file holds only encoded Params;
	// loadParamsAndPok must fail to find a trailing pok.
	if _, _, err := loadParamsAndPok(final); err == nil {
		t.Fatal("expected finalize's output to carry no pok")
	}
	if finalParams.N != 6 {
		t.Fatalf("expected finalized N=6, got %d", finalParams.N)
	}
}

func TestRun_Evolve_RejectsMissingInput(t *testing.T) {
	dir := t.TempDir()
	var out, errBuf bytes.Buffer
	code := run([]string{"evolve", "--id", "alice", "--in", filepath.Join(dir, "does-not-exist.bin"), "--out", filepath.Join(dir, "out.bin")}, &out, &errBuf)
	if code != 1 {
		t.Fatalf("want 1 got %d", code)
	}
}

func TestRun_Verify_MissingArgs(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := run([]string{"verify", "--id", "alice"}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("want 2 got %d stderr=%q", code, errBuf.String())
	}
}
