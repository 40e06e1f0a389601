// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu describes the 6502 instruction set: every legal
// (mnemonic, addressing mode) encoding along with its opcode, cycle
// costs and status flag effects.
package cpu

import (
	"fmt"
	"strings"
)

// Architecture selects the CPU chip: 6502 or 65c02
type Architecture byte

const (
	// NMOS 6502 CPU
	NMOS Architecture = iota

	// CMOS 65c02 CPU
	CMOS
)

func (a Architecture) String() string {
	switch a {
	case NMOS:
		return "6502"
	case CMOS:
		return "65c02"
	default:
		return fmt.Sprintf("Architecture(%d)", byte(a))
	}
}

// ParseArchitecture converts an architecture name into an Architecture.
func ParseArchitecture(s string) (Architecture, error) {
	switch strings.ToLower(s) {
	case "6502", "nmos":
		return NMOS, nil
	case "65c02", "cmos":
		return CMOS, nil
	default:
		return NMOS, fmt.Errorf("unknown architecture '%s'", s)
	}
}
