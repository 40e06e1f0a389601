// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// Mode describes the syntactic addressing mode of an instruction's operand.
type Mode byte

// All possible addressing modes
const (
	None             Mode = iota // no operand (implied)
	Accumulator                  // A
	Address                      // $0200 (absolute, also branch targets)
	AddressIndexedX              // $0200,X
	AddressIndexedY              // $0200,Y
	Indirect                     // ($0200)
	IndirectIndexedX             // ($09,X)
	IndirectIndexedY             // ($09),Y
	Immediate                    // #$F9
	ZeroPage                     // $F9
	ZeroPageIndexedX             // $F9,X
	ZeroPageIndexedY             // $F9,Y
)

var modeName = []string{
	"None",
	"Accumulator",
	"Address",
	"AddressIndexedX",
	"AddressIndexedY",
	"Indirect",
	"IndirectIndexedX",
	"IndirectIndexedY",
	"Immediate",
	"ZeroPage",
	"ZeroPageIndexedX",
	"ZeroPageIndexedY",
}

// Short mode names commonly used in 6502 literature.
var modeAlias = map[string]Mode{
	"imp": None,
	"acc": Accumulator,
	"abs": Address,
	"abx": AddressIndexedX,
	"aby": AddressIndexedY,
	"ind": Indirect,
	"idx": IndirectIndexedX,
	"idy": IndirectIndexedY,
	"imm": Immediate,
	"zpg": ZeroPage,
	"zpx": ZeroPageIndexedX,
	"zpy": ZeroPageIndexedY,
}

var modeTree = prefixtree.New[Mode]()

func init() {
	for i, name := range modeName {
		modeTree.Add(strings.ToLower(name), Mode(i))
	}
}

func (m Mode) String() string {
	if int(m) < len(modeName) {
		return modeName[m]
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}

// ParseMode converts a mode name, an unambiguous prefix of a mode name, or
// a three-letter alias such as "zpx" into a Mode.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(s)
	if m, ok := modeAlias[key]; ok {
		return m, nil
	}

	// Some names are prefixes of others ("address", "addressindexedx"), so
	// exact names are matched before consulting the prefix tree.
	for i, name := range modeName {
		if strings.EqualFold(name, s) {
			return Mode(i), nil
		}
	}

	m, err := modeTree.FindValue(key)
	if err != nil {
		return None, fmt.Errorf("addressing mode '%s': %w", s, err)
	}
	return m, nil
}
