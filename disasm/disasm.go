// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6502 instruction set
// disassembler.
//
// The text it produces uses the operand syntax accepted by the asm package,
// so a disassembled line resolves back to the variant it was decoded from.
package disasm

import (
	"errors"
	"fmt"

	"github.com/brents6502/go6502asm/cpu"
)

// Disassembly errors
var (
	ErrInvalidOpcode = errors.New("invalid opcode")
	ErrTruncated     = errors.New("truncated instruction")
)

// Disassembler formatting for addressing modes
var modeFormat = []string{
	"",          // None
	"A",         // Accumulator
	"$%04X",     // Address
	"$%04X,X",   // AddressIndexedX
	"$%04X,Y",   // AddressIndexedY
	"($%04X)",   // Indirect
	"($%02X,X)", // IndirectIndexedX
	"($%02X),Y", // IndirectIndexedY
	"#$%02X",    // Immediate
	"$%02X",     // ZeroPage
	"$%02X,X",   // ZeroPageIndexedX
	"$%02X,Y",   // ZeroPageIndexedY
}

// An Instruction is a single disassembled instruction.
type Instruction struct {
	Address uint16           // address of the opcode
	Bytes   []byte           // opcode and operand bytes
	Inst    *cpu.Instruction // decoded instruction variant
	Text    string           // assembly code for the instruction
}

// Disassemble the machine code 'code' located at address 'addr'. Return
// the instruction found at the start of the code and the offset into
// 'code' of the following instruction.
func Disassemble(set *cpu.InstructionSet, code []byte, addr uint16) (Instruction, int, error) {
	if len(code) == 0 {
		return Instruction{}, 0, ErrTruncated
	}

	inst, ok := set.Decode(code[0])
	if !ok {
		return Instruction{}, 0, fmt.Errorf("%w $%02X at $%04X", ErrInvalidOpcode, code[0], addr)
	}

	n := int(inst.Length)
	if n == 0 {
		n = 1
	}
	if n > len(code) {
		return Instruction{}, 0, fmt.Errorf("%w %s at $%04X", ErrTruncated, inst.Name, addr)
	}

	var operand int
	switch n {
	case 2:
		operand = int(code[1])
	case 3:
		operand = int(code[1]) | int(code[2])<<8
	}

	if inst.BranchCycles > 0 {
		// Convert relative offset to absolute address.
		operand = int(addr) + n + int(int8(code[1]))
		operand &= 0xffff
	}

	text := inst.Name
	if inst.Mode != cpu.None {
		format := modeFormat[inst.Mode]
		if inst.Mode == cpu.Indirect && n == 2 {
			format = "($%02X)"
		}
		if n == 3 && operand <= 0xff && inst.Mode >= cpu.Address && inst.Mode <= cpu.AddressIndexedY {
			// A small absolute operand would otherwise read as zero page.
			format = "A:" + format
		}
		if inst.Mode == cpu.Accumulator {
			text += " " + format
		} else {
			text += " " + fmt.Sprintf(format, operand)
		}
	}

	return Instruction{
		Address: addr,
		Bytes:   code[:n],
		Inst:    inst,
		Text:    text,
	}, n, nil
}

// DisassembleAll disassembles every instruction in 'code', which is
// located at address 'addr'.
func DisassembleAll(set *cpu.InstructionSet, code []byte, addr uint16) ([]Instruction, error) {
	var out []Instruction
	for off := 0; off < len(code); {
		d, n, err := Disassemble(set, code[off:], addr+uint16(off))
		if err != nil {
			return out, err
		}
		out = append(out, d)
		off += n
	}
	return out, nil
}

// String returns the instruction as a line of a listing: its address,
// code bytes and assembly text.
func (d Instruction) String() string {
	return fmt.Sprintf("%04X-  %-8s  %s", d.Address, codeString(d.Bytes), d.Text)
}

func codeString(b []byte) string {
	switch len(b) {
	case 1:
		return fmt.Sprintf("%02X", b[0])
	case 2:
		return fmt.Sprintf("%02X %02X", b[0], b[1])
	case 3:
		return fmt.Sprintf("%02X %02X %02X", b[0], b[1], b[2])
	default:
		return ""
	}
}
