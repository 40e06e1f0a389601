// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm selects 6502 instruction encodings for lines of assembly
// source code.
package asm

import (
	"errors"
	"fmt"

	"github.com/brents6502/go6502asm/cpu"
)

// Resolution errors
var (
	ErrUnknownInstruction    = errors.New("unknown instruction")
	ErrInvalidAddressingMode = errors.New("invalid addressing mode")
)

// An Argument is a single operand token whose addressing mode has been
// classified from its syntax.
type Argument interface {
	Mode() cpu.Mode
}

// A Line is a parsed line of assembly source code.
type Line struct {
	Number   int        // 1-based source line number
	Source   string     // the full line as originally read
	Mnemonic string     // instruction mnemonic, as written
	Args     []Argument // operand tokens
}

// An UnknownInstructionError is returned when no instruction variant
// matches a line's mnemonic.
type UnknownInstructionError struct {
	Line     int
	Source   string
	Mnemonic string
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("invalid opcode '%s' on line %d (%s)", e.Mnemonic, e.Line, e.Source)
}

func (e *UnknownInstructionError) Unwrap() error {
	return ErrUnknownInstruction
}

// An InvalidAddressingModeError is returned when a line's mnemonic is known
// but none of its variants accepts the operand's addressing mode.
type InvalidAddressingModeError struct {
	Line     int
	Source   string
	Mnemonic string
	Mode     cpu.Mode
}

func (e *InvalidAddressingModeError) Error() string {
	return fmt.Sprintf("invalid addressing mode %s for opcode '%s' on line %d (%s)", e.Mode, e.Mnemonic, e.Line, e.Source)
}

func (e *InvalidAddressingModeError) Unwrap() error {
	return ErrInvalidAddressingMode
}

// Mode returns the addressing mode requested by the line. Only the first
// argument is consulted, since no 6502 addressing mode takes more than one
// operand token.
func (l *Line) Mode() cpu.Mode {
	if len(l.Args) == 0 {
		return cpu.None
	}
	return l.Args[0].Mode()
}

// Resolve selects the instruction variant denoted by the line. The returned
// instruction is shared with the instruction set and must not be modified.
func Resolve(line *Line, set *cpu.InstructionSet) (*cpu.Instruction, error) {
	candidates := set.GetInstructions(line.Mnemonic)
	if len(candidates) == 0 {
		return nil, &UnknownInstructionError{
			Line:     line.Number,
			Source:   line.Source,
			Mnemonic: line.Mnemonic,
		}
	}

	mode := line.Mode()
	for _, inst := range candidates {
		if inst.Mode == mode {
			return inst, nil
		}
	}

	return nil, &InvalidAddressingModeError{
		Line:     line.Number,
		Source:   line.Source,
		Mnemonic: line.Mnemonic,
		Mode:     mode,
	}
}
