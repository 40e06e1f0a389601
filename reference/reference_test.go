// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reference_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/brents6502/go6502asm/cpu"
	"github.com/brents6502/go6502asm/reference"
	"github.com/retroenv/retrogolib/assert"
)

func TestRenderSmallSet(t *testing.T) {
	set, err := cpu.NewInstructionSet(cpu.NMOS, []cpu.Instruction{
		{Name: "LDA", Mode: cpu.ZeroPage, Opcode: 0xa5, Flags: cpu.Negative | cpu.Zero, Cycles: 3},
		{Name: "BNE", Mode: cpu.Address, Opcode: 0xd0, Cycles: 2, BranchCycles: 1, BPCycles: 1},
		{Name: "LDA", Mode: cpu.Immediate, Opcode: 0xa9, Flags: cpu.Negative | cpu.Zero, Cycles: 2},
		{Name: "NOP", Mode: cpu.None, Opcode: 0xea, Cycles: 2},
	})
	assert.NoError(t, err)

	expected := "[BNE](#BNE) / [LDA](#LDA) / [NOP](#NOP)\n" +
		"\n" +
		"| Mnemonic | Argument | OpCode | Flags | Clock | SkipClock | BoundsClock |\n" +
		"| :------: | :------: | :----: | :---: | :---: | :-------: | :---------: |\n" +
		"| <a name=\"BNE\">BNE</a> | $0200 | 0xD0 |  | 2 | 1 | 1 |\n" +
		"| <a name=\"LDA\">LDA</a> | $F9 | 0xA5 | N Z | 3 | 0 | 0 |\n" +
		"| <a name=\"LDA\">LDA</a> | #09 or #$F9 | 0xA9 | N Z | 2 | 0 | 0 |\n" +
		"| <a name=\"NOP\">NOP</a> |   | 0xEA |  | 2 | 0 | 0 |\n"

	assert.Equal(t, expected, reference.Render(set))
}

func TestRenderDeterministic(t *testing.T) {
	variants := cpu.GetInstructionSet(cpu.CMOS).Instructions()

	forward := make([]cpu.Instruction, len(variants))
	for i, v := range variants {
		forward[i] = *v
	}
	a, err := cpu.NewInstructionSet(cpu.CMOS, forward)
	assert.NoError(t, err)

	// Reordering whole groups must not change the output, since groups are
	// sorted by name and variants keep their relative order.
	shuffled := make([]cpu.Instruction, 0, len(forward))
	for i := len(forward) - 1; i >= 0; i-- {
		if forward[i].Name >= "M" {
			shuffled = append(shuffled, forward[i])
		}
	}
	for _, v := range forward {
		if v.Name < "M" {
			shuffled = append(shuffled, v)
		}
	}
	// Restore the original relative order of each mnemonic's variants.
	stable := make([]cpu.Instruction, 0, len(forward))
	seen := make(map[string]bool)
	for _, v := range shuffled {
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		for _, w := range forward {
			if w.Name == v.Name {
				stable = append(stable, w)
			}
		}
	}
	b, err := cpu.NewInstructionSet(cpu.CMOS, stable)
	assert.NoError(t, err)

	assert.Equal(t, reference.Render(a), reference.Render(b))
	assert.Equal(t, reference.Render(a), reference.Render(cpu.GetInstructionSet(cpu.CMOS)))
}

func TestRenderRows(t *testing.T) {
	set := cpu.GetInstructionSet(cpu.NMOS)
	doc := reference.Render(set)
	assert.True(t, strings.HasSuffix(doc, "\n"))

	lines := strings.Split(strings.TrimSuffix(doc, "\n"), "\n")
	assert.Len(t, lines, set.Len()+4)
	assert.Equal(t, "", lines[1])

	index := strings.Split(lines[0], " / ")
	assert.Equal(t, len(set.Groups()), len(index))
	assert.Equal(t, "[ADC](#ADC)", index[0])
	assert.Equal(t, "[TYA](#TYA)", index[len(index)-1])

	// Every row's OpCode cell parses back to the variant's opcode.
	rows := lines[4:]
	i := 0
	for _, g := range set.Groups() {
		for _, inst := range g.Instructions {
			cells := strings.Split(rows[i], " | ")
			assert.Equal(t, "| <a name=\""+inst.Name+"\">"+inst.Name+"</a>", cells[0])
			assert.True(t, strings.HasPrefix(cells[2], "0x"))
			v, err := strconv.ParseUint(cells[2][2:], 16, 8)
			assert.NoError(t, err)
			assert.Equal(t, inst.Opcode, byte(v))
			i++
		}
	}
}

func TestArgumentExample(t *testing.T) {
	tests := []struct {
		mode     cpu.Mode
		expected string
	}{
		{cpu.None, " "},
		{cpu.Accumulator, "A"},
		{cpu.Address, "$0200"},
		{cpu.AddressIndexedX, "$0200,X"},
		{cpu.AddressIndexedY, "$0200,Y"},
		{cpu.Indirect, "($0200)"},
		{cpu.IndirectIndexedX, "($09),X"},
		{cpu.IndirectIndexedY, "($09),Y"},
		{cpu.Immediate, "#09 or #$F9"},
		{cpu.ZeroPage, "$F9"},
		{cpu.ZeroPageIndexedX, "$F9,X"},
		{cpu.ZeroPageIndexedY, "$F9,Y"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, reference.ArgumentExample(tt.mode))
		})
	}
}

func TestFlagString(t *testing.T) {
	tests := []struct {
		flags    cpu.Status
		expected string
	}{
		{0, ""},
		{cpu.Carry | cpu.Negative, "N C"},
		{cpu.Zero | cpu.Overflow | cpu.Carry | cpu.Negative, "N O Z C"},
		{cpu.Break | cpu.InterruptDisable, "B I"},
		{0xff, "N O - B D I Z C"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, reference.FlagString(tt.flags))
	}
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "0x00", reference.OpcodeString(0))
	assert.Equal(t, "0x0A", reference.OpcodeString(0x0a))
	assert.Equal(t, "0xFF", reference.OpcodeString(0xff))
}

func TestWriteFile(t *testing.T) {
	set := cpu.GetInstructionSet(cpu.NMOS)
	path := filepath.Join(t.TempDir(), "instructions.md")

	assert.NoError(t, reference.WriteFile(path, set))
	b, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, reference.Render(set), string(b))

	err = reference.WriteFile(filepath.Join(t.TempDir(), "missing", "x.md"), set)
	assert.Error(t, err)
}
