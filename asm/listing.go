// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/brents6502/go6502asm/cpu"
)

// A Listing is the result of resolving a source file: one Resolution per
// instruction line, in source order, plus the diagnostics for every line
// that could not be resolved.
type Listing struct {
	Arch        cpu.Architecture
	Resolutions []Resolution
	Errors      []error
}

// Cycles returns the number of CPU cycles needed to execute every resolved
// instruction once. The worst case assumes every branch is taken and every
// indexed access crosses a page boundary.
func (l *Listing) Cycles() (base, worst uint) {
	for _, r := range l.Resolutions {
		i := r.Instruction
		base += i.Cycles
		worst += i.Cycles + i.BranchCycles + i.BPCycles
	}
	return base, worst
}

// Size returns the combined length in bytes of every resolved instruction.
func (l *Listing) Size() int {
	n := 0
	for _, r := range l.Resolutions {
		n += int(r.Instruction.Length)
	}
	return n
}

// WriteTo writes a human-readable listing to w, one resolved instruction
// per line.
func (l *Listing) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)
	cw := &countWriter{w: bw}

	for _, r := range l.Resolutions {
		i := r.Instruction
		fmt.Fprintf(cw, "%-5d %02X  %-4s %-16s %d+%d+%d  %s\n",
			r.Line.Number, i.Opcode, i.Name, i.Mode, i.Cycles, i.BranchCycles, i.BPCycles, r.Line.Source)
	}
	for _, e := range l.Errors {
		fmt.Fprintln(cw, e)
	}

	base, worst := l.Cycles()
	fmt.Fprintf(cw, "%d instructions, %d bytes, %d-%d cycles\n", len(l.Resolutions), l.Size(), base, worst)

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, bw.Flush()
}

type listingEntry struct {
	Line         int    `json:"line"`
	Source       string `json:"source"`
	Mnemonic     string `json:"mnemonic"`
	Mode         string `json:"mode"`
	Opcode       byte   `json:"opcode"`
	Length       byte   `json:"length"`
	Cycles       uint   `json:"cycles"`
	BranchCycles uint   `json:"branchCycles"`
	BPCycles     uint   `json:"bpCycles"`
}

type listingJSON struct {
	Arch    string         `json:"arch"`
	Entries []listingEntry `json:"entries"`
	Errors  []string       `json:"errors,omitempty"`
}

// MarshalJSON encodes the listing for consumption by other tools.
func (l *Listing) MarshalJSON() ([]byte, error) {
	out := listingJSON{
		Arch:    l.Arch.String(),
		Entries: make([]listingEntry, 0, len(l.Resolutions)),
	}
	for _, r := range l.Resolutions {
		i := r.Instruction
		out.Entries = append(out.Entries, listingEntry{
			Line:         r.Line.Number,
			Source:       r.Line.Source,
			Mnemonic:     i.Name,
			Mode:         i.Mode.String(),
			Opcode:       i.Opcode,
			Length:       i.Length,
			Cycles:       i.Cycles,
			BranchCycles: i.BranchCycles,
			BPCycles:     i.BPCycles,
		})
	}
	for _, e := range l.Errors {
		out.Errors = append(out.Errors, e.Error())
	}
	return json.Marshal(out)
}

type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
