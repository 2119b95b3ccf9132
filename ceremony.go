// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// ceremony.go wires the CLI's file-based workflow onto the ceremony
// package's pure, byte-slice-oriented core: it owns the os.Open/os.Create
// calls and the wire-format framing that the core package deliberately
// stays out of.
package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"github.com/logical-mechanism/srs-ceremony/ceremony"
)

func loadParams(path string) (ceremony.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return ceremony.Params{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := ceremony.DecodeParams(f)
	if err != nil {
		return ceremony.Params{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return p, nil
}

func loadParamsAndPok(path string) (ceremony.Params, ceremony.Pok, error) {
	f, err := os.Open(path)
	if err != nil {
		return ceremony.Params{}, ceremony.Pok{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := ceremony.DecodeParams(f)
	if err != nil {
		return ceremony.Params{}, ceremony.Pok{}, fmt.Errorf("decode %s: %w", path, err)
	}
	pok, err := ceremony.DecodePok(f)
	if err != nil {
		return ceremony.Params{}, ceremony.Pok{}, fmt.Errorf("decode pok in %s: %w", path, err)
	}
	return p, pok, nil
}

func saveParams(path string, p *ceremony.Params) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := ceremony.EncodeParams(f, p); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func saveParamsAndPok(path string, p *ceremony.Params, pok *ceremony.Pok) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := ceremony.EncodeParams(f, p); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := ceremony.EncodePok(f, pok); err != nil {
		return fmt.Errorf("encode pok in %s: %w", path, err)
	}
	return nil
}

// drawEntropy fills a 64-byte buffer from the OS RNG. Callers must zeroize
// the returned slice once they are done with it.
func drawEntropy() ([]byte, error) {
	buf := make([]byte, 64)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ceremony.ErrRNG, err)
	}
	return buf, nil
}

func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
