// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reference renders an instruction set as a Markdown reference
// table suitable for inclusion in project documentation.
package reference

import (
	"fmt"
	"os"
	"strings"

	"github.com/brents6502/go6502asm/cpu"
)

const (
	header    = "| Mnemonic | Argument | OpCode | Flags | Clock | SkipClock | BoundsClock |\n"
	alignment = "| :------: | :------: | :----: | :---: | :---: | :-------: | :---------: |\n"
)

var argumentExample = map[cpu.Mode]string{
	cpu.Accumulator:      "A",
	cpu.Address:          "$0200",
	cpu.AddressIndexedX:  "$0200,X",
	cpu.AddressIndexedY:  "$0200,Y",
	cpu.Indirect:         "($0200)",
	cpu.IndirectIndexedX: "($09),X",
	cpu.IndirectIndexedY: "($09),Y",
	cpu.Immediate:        "#09 or #$F9",
	cpu.ZeroPage:         "$F9",
	cpu.ZeroPageIndexedX: "$F9,X",
	cpu.ZeroPageIndexedY: "$F9,Y",
}

// Status flags in the order they appear in the Flags column.
var flagLetters = []struct {
	flag   cpu.Status
	letter string
}{
	{cpu.Negative, "N"},
	{cpu.Overflow, "O"},
	{cpu.Reserved, "-"},
	{cpu.Break, "B"},
	{cpu.Decimal, "D"},
	{cpu.InterruptDisable, "I"},
	{cpu.Zero, "Z"},
	{cpu.Carry, "C"},
}

// ArgumentExample returns an illustrative operand written in the
// addressing mode. Modes taking no operand return a single space.
func ArgumentExample(m cpu.Mode) string {
	if s, ok := argumentExample[m]; ok {
		return s
	}
	return " "
}

// FlagString returns the letters of the status flags present in s,
// separated by spaces.
func FlagString(s cpu.Status) string {
	letters := make([]string, 0, len(flagLetters))
	for _, f := range flagLetters {
		if s.Has(f.flag) {
			letters = append(letters, f.letter)
		}
	}
	return strings.Join(letters, " ")
}

// OpcodeString formats an opcode as 0x followed by two upper-case
// hexadecimal digits.
func OpcodeString(opcode byte) string {
	return fmt.Sprintf("0x%02X", opcode)
}

// Render produces the Markdown reference document for the instruction
// set: an index of links to every mnemonic followed by a table with one
// row per instruction variant. The output depends only on the contents of
// the set.
func Render(set *cpu.InstructionSet) string {
	var b strings.Builder
	groups := set.Groups()

	for i, g := range groups {
		if i > 0 {
			b.WriteString(" / ")
		}
		fmt.Fprintf(&b, "[%s](#%s)", g.Name, g.Name)
	}
	b.WriteString("\n\n")

	b.WriteString(header)
	b.WriteString(alignment)
	for _, g := range groups {
		for _, inst := range g.Instructions {
			fmt.Fprintf(&b, "| <a name=\"%s\">%s</a> | %s | %s | %s | %d | %d | %d |\n",
				inst.Name, inst.Name,
				ArgumentExample(inst.Mode),
				OpcodeString(inst.Opcode),
				FlagString(inst.Flags),
				inst.Cycles, inst.BranchCycles, inst.BPCycles)
		}
	}
	return b.String()
}

// WriteFile renders the instruction set and writes the document to the
// file at path, replacing any existing contents.
func WriteFile(path string, set *cpu.InstructionSet) error {
	if err := os.WriteFile(path, []byte(Render(set)), 0644); err != nil {
		return fmt.Errorf("writing reference table: %w", err)
	}
	return nil
}
