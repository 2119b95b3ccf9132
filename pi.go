// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package main

// piDigits are the first 100 digits of pi. init seeds alpha from them via
// the Pointproofs-style hash-to-field, which means alpha is public at
// genesis; the ceremony's security relies entirely on later participants
// contributing secret rerandomization exponents and erasing them.
const piDigits = "3141592653589793238462643383279502884197169399375105820974944592307816406286208998628034825342117067"
