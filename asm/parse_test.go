// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"testing"

	"github.com/brents6502/go6502asm/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestClassifyOperand(t *testing.T) {
	tests := []struct {
		text  string
		mode  cpu.Mode
		value int
		known bool
	}{
		{"", cpu.None, 0, false},
		{"A", cpu.Accumulator, 0, false},
		{"a", cpu.Accumulator, 0, false},
		{"#$F9", cpu.Immediate, 0xf9, true},
		{"#09", cpu.Immediate, 9, true},
		{"#%1010", cpu.Immediate, 10, true},
		{"#value", cpu.Immediate, 0, false},
		{"$F9", cpu.ZeroPage, 0xf9, true},
		{"255", cpu.ZeroPage, 255, true},
		{"256", cpu.Address, 256, true},
		{"$0200", cpu.Address, 0x200, true},
		{"$00F9", cpu.ZeroPage, 0xf9, true},
		{"label", cpu.Address, 0, false},
		{"$F9,X", cpu.ZeroPageIndexedX, 0xf9, true},
		{"$F9,y", cpu.ZeroPageIndexedY, 0xf9, true},
		{"$0200,X", cpu.AddressIndexedX, 0x200, true},
		{"table,Y", cpu.AddressIndexedY, 0, false},
		{"A:$F9", cpu.Address, 0xf9, true},
		{"abs:$F9,X", cpu.AddressIndexedX, 0xf9, true},
		{"($0200)", cpu.Indirect, 0x200, true},
		{"($09,X)", cpu.IndirectIndexedX, 9, true},
		{"($09),X", cpu.IndirectIndexedX, 9, true},
		{"($09),Y", cpu.IndirectIndexedY, 9, true},
		{"(ptr),y", cpu.IndirectIndexedY, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			o, err := ClassifyOperand(tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.mode, o.Mode())
			assert.Equal(t, tt.value, o.Value)
			assert.Equal(t, tt.known, o.Known)
			assert.Equal(t, tt.text, o.Text)
		})
	}
}

func TestClassifyOperandErrors(t *testing.T) {
	tests := []string{
		"#",
		"$",
		"$1G",
		"%102",
		"$10000",
		"($09",
		"($09,Y)",
		"($09),Z",
		"$09,Z",
		"$09 extra",
		"!bang",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, err := ClassifyOperand(text)
			assert.True(t, errors.Is(err, ErrSyntax), text)
		})
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		text     string
		mnemonic string
		mode     cpu.Mode
		args     int
	}{
		{"", "", cpu.None, 0},
		{"   ", "", cpu.None, 0},
		{"; comment", "", cpu.None, 0},
		{"* comment", "", cpu.None, 0},
		{"label:", "", cpu.None, 0},
		{"label:  ; comment", "", cpu.None, 0},
		{"\tNOP", "NOP", cpu.None, 0},
		{"NOP", "NOP", cpu.None, 0},
		{"\tlda #$10 ; load", "lda", cpu.Immediate, 1},
		{"start: LDA $10,X", "LDA", cpu.ZeroPageIndexedX, 1},
		{"@loop:\tJMP (vector)", "JMP", cpu.Indirect, 1},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			l, err := ParseLine(7, tt.text)
			assert.NoError(t, err)
			assert.Equal(t, 7, l.Number)
			assert.Equal(t, tt.text, l.Source)
			assert.Equal(t, tt.mnemonic, l.Mnemonic)
			assert.Equal(t, tt.mode, l.Mode())
			assert.Len(t, l.Args, tt.args)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		text   string
		column int
	}{
		{"1abc: NOP", 0},
		{"\tLD#A", 8},
		{"x: LDA ($10,Q)", 11},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := ParseLine(3, tt.text)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected syntax error, got %v", err)
			}
			assert.Equal(t, 3, se.Line)
			assert.Equal(t, tt.column, se.Column)
			assert.Equal(t, tt.text, se.Source)
		})
	}
}

type modeArg cpu.Mode

func (m modeArg) Mode() cpu.Mode {
	return cpu.Mode(m)
}

func TestResolveEndToEnd(t *testing.T) {
	set := cpu.GetInstructionSet(cpu.NMOS)

	line, err := ParseLine(1, "LDA #$10")
	assert.NoError(t, err)

	inst, err := Resolve(line, set)
	assert.NoError(t, err)
	assert.Equal(t, "LDA", inst.Name)
	assert.Equal(t, cpu.Immediate, inst.Mode)
	assert.Equal(t, byte(0xa9), inst.Opcode)
	assert.Equal(t, cpu.Negative|cpu.Zero, inst.Flags)
	assert.Equal(t, uint(2), inst.Cycles)
	assert.Equal(t, uint(0), inst.BranchCycles)
	assert.Equal(t, uint(0), inst.BPCycles)

	// The registry's own variant is returned, not a copy.
	want, _ := set.Lookup("LDA", cpu.Immediate)
	assert.True(t, want == inst)
}

func TestResolveEveryVariant(t *testing.T) {
	for _, arch := range []cpu.Architecture{cpu.NMOS, cpu.CMOS} {
		set := cpu.GetInstructionSet(arch)
		for _, want := range set.Instructions() {
			line := &Line{Number: 1, Mnemonic: want.Name, Args: []Argument{modeArg(want.Mode)}}
			got, err := Resolve(line, set)
			assert.NoError(t, err, want.Name)
			assert.True(t, got == want, want.Name)
		}
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	set := cpu.GetInstructionSet(cpu.NMOS)
	for _, name := range []string{"sta", "STA", "StA"} {
		line := &Line{Mnemonic: name, Args: []Argument{modeArg(cpu.ZeroPage)}}
		inst, err := Resolve(line, set)
		assert.NoError(t, err)
		assert.Equal(t, byte(0x85), inst.Opcode)
	}
}

func TestResolveUsesFirstArgument(t *testing.T) {
	set := cpu.GetInstructionSet(cpu.NMOS)
	line := &Line{
		Mnemonic: "LDA",
		Args:     []Argument{modeArg(cpu.ZeroPage), modeArg(cpu.Immediate)},
	}
	inst, err := Resolve(line, set)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xa5), inst.Opcode)
}

func TestResolveNoArgumentsMeansNone(t *testing.T) {
	set := cpu.GetInstructionSet(cpu.NMOS)

	inst, err := Resolve(&Line{Mnemonic: "RTS"}, set)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x60), inst.Opcode)

	// Resolve itself never substitutes a different mode.
	_, err = Resolve(&Line{Mnemonic: "ASL"}, set)
	assert.True(t, errors.Is(err, ErrInvalidAddressingMode))
}

func TestResolveFailures(t *testing.T) {
	set := cpu.GetInstructionSet(cpu.NMOS)

	_, err := Resolve(&Line{Number: 12, Source: "\tFOO", Mnemonic: "FOO"}, set)
	var unknown *UnknownInstructionError
	assert.True(t, errors.As(err, &unknown))
	assert.True(t, errors.Is(err, ErrUnknownInstruction))
	assert.Equal(t, 12, unknown.Line)
	assert.Equal(t, "\tFOO", unknown.Source)
	assert.Equal(t, "invalid opcode 'FOO' on line 12 (\tFOO)", err.Error())

	line := &Line{Number: 4, Source: "STA #1", Mnemonic: "STA", Args: []Argument{modeArg(cpu.Immediate)}}
	_, err = Resolve(line, set)
	var invalid *InvalidAddressingModeError
	assert.True(t, errors.As(err, &invalid))
	assert.True(t, errors.Is(err, ErrInvalidAddressingMode))
	assert.Equal(t, "STA", invalid.Mnemonic)
	assert.Equal(t, cpu.Immediate, invalid.Mode)
	assert.Equal(t, "invalid addressing mode Immediate for opcode 'STA' on line 4 (STA #1)", err.Error())
}

func TestResolveRestrictedSet(t *testing.T) {
	set, err := cpu.NewInstructionSet(cpu.NMOS, []cpu.Instruction{
		{Name: "LDA", Mode: cpu.Immediate, Opcode: 0xa9, Cycles: 2},
	})
	assert.NoError(t, err)

	inst, err := Resolve(&Line{Mnemonic: "lda", Args: []Argument{modeArg(cpu.Immediate)}}, set)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xa9), inst.Opcode)

	_, err = Resolve(&Line{Mnemonic: "LDA", Args: []Argument{modeArg(cpu.ZeroPage)}}, set)
	assert.True(t, errors.Is(err, ErrInvalidAddressingMode))
	_, err = Resolve(&Line{Mnemonic: "STA", Args: []Argument{modeArg(cpu.ZeroPage)}}, set)
	assert.True(t, errors.Is(err, ErrUnknownInstruction))
}
