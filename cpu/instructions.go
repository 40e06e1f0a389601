// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// ErrDuplicateVariant is matched by every DuplicateVariantError.
var ErrDuplicateVariant = errors.New("duplicate instruction variant")

// An Instruction describes one legal encoding of a CPU instruction: its
// name, addressing mode, opcode value, operand size, status flag effects and
// CPU cycle costs.
type Instruction struct {
	Name         string // instruction name, as supplied
	Mode         Mode   // addressing mode
	Opcode       byte   // hexadecimal opcode value
	Length       byte   // combined size of opcode and operand, in bytes
	Flags        Status // status flags modified by the instruction
	Cycles       uint   // number of CPU cycles to execute the instruction
	BranchCycles uint   // additional cycles required if a branch is taken
	BPCycles     uint   // additional cycles required if boundary page crossed
}

// A Group holds every variant of a single mnemonic.
type Group struct {
	Name         string
	Instructions []*Instruction
}

// A DuplicateVariantError is returned when two instructions supplied to an
// instruction set share the same name and addressing mode.
type DuplicateVariantError struct {
	Name string
	Mode Mode
}

func (e *DuplicateVariantError) Error() string {
	return fmt.Sprintf("instruction '%s' defined more than once for addressing mode %s", e.Name, e.Mode)
}

func (e *DuplicateVariantError) Unwrap() error {
	return ErrDuplicateVariant
}

// An InstructionSet is the immutable collection of all instruction variants
// an assembler may select from. It is safe for concurrent use.
type InstructionSet struct {
	Arch         Architecture
	instructions []Instruction             // all instructions in supplied order
	variants     map[string][]*Instruction // variants of each upper-cased name
	groups       []Group                   // variants grouped by name, sorted
	opcodes      [256]*Instruction         // first variant using each opcode
}

type variantKey struct {
	name string
	mode Mode
}

// NewInstructionSet builds an instruction set from the supplied variants.
// The variants are copied. An error is returned if any (name, mode) pair
// appears more than once, names being compared case-insensitively.
func NewInstructionSet(arch Architecture, variants []Instruction) (*InstructionSet, error) {
	seen := set.New[variantKey]()
	for _, v := range variants {
		k := variantKey{strings.ToUpper(v.Name), v.Mode}
		if seen.Contains(k) {
			return nil, &DuplicateVariantError{Name: v.Name, Mode: v.Mode}
		}
		seen.Add(k)
	}

	s := &InstructionSet{
		Arch:         arch,
		instructions: make([]Instruction, len(variants)),
		variants:     make(map[string][]*Instruction),
	}
	copy(s.instructions, variants)

	byName := make(map[string]int)
	for i := range s.instructions {
		inst := &s.instructions[i]
		key := strings.ToUpper(inst.Name)
		s.variants[key] = append(s.variants[key], inst)
		if s.opcodes[inst.Opcode] == nil {
			s.opcodes[inst.Opcode] = inst
		}

		g, ok := byName[inst.Name]
		if !ok {
			g = len(s.groups)
			byName[inst.Name] = g
			s.groups = append(s.groups, Group{Name: inst.Name})
		}
		s.groups[g].Instructions = append(s.groups[g].Instructions, inst)
	}

	sort.SliceStable(s.groups, func(i, j int) bool {
		a, b := s.groups[i].Name, s.groups[j].Name
		ua, ub := strings.ToUpper(a), strings.ToUpper(b)
		if ua != ub {
			return ua < ub
		}
		return a < b
	})

	return s, nil
}

// Len returns the number of instruction variants in the set.
func (s *InstructionSet) Len() int {
	return len(s.instructions)
}

// Instructions returns every instruction variant in the order supplied to
// NewInstructionSet.
func (s *InstructionSet) Instructions() []*Instruction {
	all := make([]*Instruction, len(s.instructions))
	for i := range s.instructions {
		all[i] = &s.instructions[i]
	}
	return all
}

// Lookup retrieves the variant of the named instruction using the requested
// addressing mode.
func (s *InstructionSet) Lookup(name string, mode Mode) (*Instruction, bool) {
	for _, inst := range s.variants[strings.ToUpper(name)] {
		if inst.Mode == mode {
			return inst, true
		}
	}
	return nil, false
}

// Decode returns the variant encoded by an opcode value. If more than one
// variant shares the opcode, the first one supplied is returned.
func (s *InstructionSet) Decode(opcode byte) (*Instruction, bool) {
	inst := s.opcodes[opcode]
	return inst, inst != nil
}

// GetInstructions returns all CPU instructions whose name matches the
// provided string.
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

// Groups returns the instruction variants grouped by name. Groups are sorted
// by name without regard to case, and variants within a group keep the order
// in which they were supplied. The returned slice must not be modified.
func (s *InstructionSet) Groups() []Group {
	return s.groups
}

var instructionSets [2]*InstructionSet

func init() {
	for _, arch := range []Architecture{NMOS, CMOS} {
		s, err := NewInstructionSet(arch, tableVariants(arch))
		if err != nil {
			panic(err)
		}
		instructionSets[arch] = s
	}
}

// GetInstructionSet returns the built-in instruction set for the requested
// CPU architecture.
func GetInstructionSet(arch Architecture) *InstructionSet {
	return instructionSets[arch]
}
