// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Status is a set of processor status flags. An instruction's Flags field
// holds the flags its execution may modify.
type Status byte

// Bits assigned to the processor status byte
const (
	Carry            Status = 1 << 0 // C
	Zero             Status = 1 << 1 // Z
	InterruptDisable Status = 1 << 2 // I
	Decimal          Status = 1 << 3 // D
	Break            Status = 1 << 4 // B
	Reserved         Status = 1 << 5 // unused
	Overflow         Status = 1 << 6 // V
	Negative         Status = 1 << 7 // N
)

// Frequently combined flag sets.
const (
	nz   = Negative | Zero
	nzc  = Negative | Zero | Carry
	nvzc = Negative | Overflow | Zero | Carry
	all  = Negative | Overflow | Decimal | InterruptDisable | Zero | Carry
)

// Has returns true if every flag in f is present in s.
func (s Status) Has(f Status) bool {
	return s&f == f
}
