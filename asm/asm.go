// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/brents6502/go6502asm/cpu"
	"github.com/retroenv/retrogolib/log"
)

// ErrResolve is returned by the batch resolution functions when one or
// more lines of source code could not be resolved. The individual
// diagnostics are stored in the Listing.
var ErrResolve = errors.New("resolve failed")

// A Resolution pairs a line of source code with the instruction variant it
// resolved to.
type Resolution struct {
	Line        *Line
	Instruction *cpu.Instruction
}

// A Resolver selects instruction variants for every instruction line of a
// source file.
type Resolver struct {
	Set         *cpu.InstructionSet // instruction set to resolve against
	StopOnError bool                // stop at the first diagnostic

	logger *log.Logger
}

// NewResolver creates a resolver for the instruction set.
func NewResolver(set *cpu.InstructionSet, logger *log.Logger) *Resolver {
	return &Resolver{
		Set:    set,
		logger: logger,
	}
}

// ResolveLine lexes and resolves a single line of source code. A line
// containing no instruction returns a nil instruction and no error. Unlike
// Resolve, a zero page operand is accepted by an instruction having only
// the absolute form, and a missing operand by an instruction having only
// the accumulator form.
func (r *Resolver) ResolveLine(number int, text string) (*Line, *cpu.Instruction, error) {
	line, err := ParseLine(number, text)
	if err != nil {
		return nil, nil, err
	}
	if line.Mnemonic == "" {
		return line, nil, nil
	}

	inst, err := Resolve(line, r.Set)
	if errors.Is(err, ErrInvalidAddressingMode) {
		if alt, ok := fallback(line); ok {
			if altInst, altErr := Resolve(alt, r.Set); altErr == nil {
				line, inst, err = alt, altInst, nil
			}
		}
	}
	if err != nil {
		return line, nil, err
	}

	r.logger.Debug("Resolved instruction",
		log.Int("line", number),
		log.String("mnemonic", inst.Name),
		log.Stringer("mode", inst.Mode),
		log.Hex("opcode", inst.Opcode),
		log.Uint8("length", inst.Length))
	return line, inst, nil
}

// The lexer guesses zero page forms for small literal operands and the
// implied form for a missing operand. When the instruction has no such
// variant, the operand may be encoded with the wider form instead.
var fallbackMode = map[cpu.Mode]cpu.Mode{
	cpu.None:             cpu.Accumulator,
	cpu.ZeroPage:         cpu.Address,
	cpu.ZeroPageIndexedX: cpu.AddressIndexedX,
	cpu.ZeroPageIndexedY: cpu.AddressIndexedY,
}

// Return a copy of the line with its operand reclassified to the fallback
// addressing mode, if there is one.
func fallback(line *Line) (*Line, bool) {
	var o Operand
	if len(line.Args) > 0 {
		var ok bool
		if o, ok = line.Args[0].(Operand); !ok {
			return nil, false
		}
	}

	mode, ok := fallbackMode[o.mode]
	if !ok {
		return nil, false
	}
	o.mode = mode

	alt := *line
	alt.Args = []Argument{o}
	return &alt, true
}

// ResolveSource reads assembly source code from r and resolves every
// instruction line. Diagnostics are collected in the returned listing; if
// any occurred, ErrResolve is returned alongside it.
func (r *Resolver) ResolveSource(rd io.Reader) (*Listing, error) {
	listing := &Listing{Arch: r.Set.Arch}

	scanner := bufio.NewScanner(rd)
	for row := 1; scanner.Scan(); row++ {
		line, inst, err := r.ResolveLine(row, scanner.Text())
		if err != nil {
			r.logger.Debug("Line not resolved", log.Int("line", row), log.Err(err))
			listing.Errors = append(listing.Errors, err)
			if r.StopOnError {
				break
			}
			continue
		}
		if inst != nil {
			listing.Resolutions = append(listing.Resolutions, Resolution{line, inst})
		}
	}
	if err := scanner.Err(); err != nil {
		return listing, fmt.Errorf("reading source: %w", err)
	}

	if len(listing.Errors) > 0 {
		return listing, ErrResolve
	}
	return listing, nil
}

// ResolveFile resolves every instruction line of the assembly source file
// at path.
func (r *Resolver) ResolveFile(path string) (*Listing, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r.logger.Info("Resolving source file", log.String("path", path), log.Stringer("arch", r.Set.Arch))
	return r.ResolveSource(file)
}
