// Copyright 2018 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive command shell for exploring the
// 6502 instruction set.
//
// Within the host it is possible to resolve individual lines or whole files
// of assembly code to their instruction encodings, look up the variants of
// an instruction, and generate the Markdown instruction reference table.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/beevik/cmd"
	"github.com/brents6502/go6502asm/asm"
	"github.com/brents6502/go6502asm/cpu"
	"github.com/brents6502/go6502asm/disasm"
	"github.com/brents6502/go6502asm/reference"
	"github.com/retroenv/retrogolib/log"
)

// A Host is an interactive environment for resolving 6502 assembly code
// against an instruction set.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *cmd.Selection
	settings    *settings
	set         *cpu.InstructionSet
	logger      *log.Logger
	lineNumber  int
}

// New creates a new host that resolves against the instruction set of the
// requested architecture.
func New(logger *log.Logger, arch cpu.Architecture) *Host {
	h := &Host{
		settings: newSettings(),
		set:      cpu.GetInstructionSet(arch),
		logger:   logger,
	}
	h.settings.Arch = arch.String()
	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.printf("Instruction set: %s (%d variants). Type help for a list of commands.\n",
			h.set.Arch, h.set.Len())
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			if g := findGroup(line); g != nil {
				h.displayCommands(g)
			}
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(*command).handler
		err = handler(h, c)
		if err != nil {
			break
		}
	}
	h.flush()
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return strings.TrimSpace(h.input.Text()), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
		h.flush()
	}
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		h.displayCommands(rootCmds)
	case len(c.Args) == 1 && findGroup(c.Args[0]) != nil:
		h.displayCommands(findGroup(c.Args[0]))
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		switch {
		case err != nil:
			h.printf("%v\n", err)
		case s.Command == nil:
			h.println("Command not found.")
		default:
			cc := s.Command.Data.(*command)
			if cc.usage != "" {
				h.printf("Syntax: %s\n\n", cc.usage)
			}
			switch {
			case cc.description != "":
				h.printf("Description:\n%s\n\n", indentWrap(3, cc.description))
			case cc.brief != "":
				h.printf("Description:\n%s.\n\n", indentWrap(3, cc.brief))
			}
		}
	}
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	args := c.Args
	origin := uint16(0x1000)
	if len(args) > 0 && strings.HasSuffix(args[0], ":") {
		v, err := parseHex(strings.TrimSuffix(args[0], ":"), 16)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		origin, args = uint16(v), args[1:]
	}
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	code := make([]byte, len(args))
	for i, a := range args {
		v, err := parseHex(a, 8)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		code[i] = byte(v)
	}

	lines, err := disasm.DisassembleAll(h.set, code, origin)
	for _, l := range lines {
		h.println(l.String())
	}
	if err != nil {
		h.printf("%v\n", err)
	}
	return nil
}

func (h *Host) cmdLookup(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	name := c.Args[0]
	variants := h.set.GetInstructions(name)
	if len(variants) == 0 {
		h.printf("Instruction '%s' not found.\n", name)
		return nil
	}

	if len(c.Args) > 1 {
		mode, err := cpu.ParseMode(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		inst, ok := h.set.Lookup(name, mode)
		if !ok {
			h.printf("Instruction '%s' has no %s variant.\n", strings.ToUpper(name), mode)
			return nil
		}
		variants = []*cpu.Instruction{inst}
	}

	for _, inst := range variants {
		h.println(h.describe(inst))
	}
	return nil
}

func (h *Host) cmdModes(c cmd.Selection) error {
	for m := cpu.None; m <= cpu.ZeroPageIndexedY; m++ {
		h.printf("    %-18s %s\n", m, reference.ArgumentExample(m))
	}
	return nil
}

func (h *Host) cmdResolveLine(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	h.lineNumber++
	r := asm.NewResolver(h.set, h.logger)
	_, inst, err := r.ResolveLine(h.lineNumber, strings.Join(c.Args, " "))
	switch {
	case err != nil:
		h.printf("%v\n", err)
	case inst == nil:
		h.println("No instruction.")
	default:
		h.println(h.describe(inst))
	}
	return nil
}

func (h *Host) cmdResolveFile(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	filename := c.Args[0]
	r := asm.NewResolver(h.set, h.logger)
	r.StopOnError = h.settings.StopOnError

	listing, err := r.ResolveFile(filename)
	if err != nil && !errors.Is(err, asm.ErrResolve) {
		h.printf("%v\n", err)
		return nil
	}

	for _, res := range listing.Resolutions {
		h.printf("%-5d %s\n", res.Line.Number, h.describe(res.Instruction))
	}
	for _, e := range listing.Errors {
		h.printf("%v\n", e)
	}

	if h.settings.ShowSummary {
		base, worst := listing.Cycles()
		h.printf("Resolved '%s': %d instructions, %d bytes, %d-%d cycles, %d errors.\n",
			filepath.Base(filename), len(listing.Resolutions), listing.Size(),
			base, worst, len(listing.Errors))
	}
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errors.New("Exiting program")
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("Setting '%s' not found", key)
		case reflect.String:
			err = h.settings.Set(key, value)
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			err = h.onSettingsUpdate()
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}
	}

	return nil
}

func (h *Host) cmdTable(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.print(reference.Render(h.set))
		h.flush()
		return nil
	}

	filename := c.Args[0]
	if err := reference.WriteFile(filename, h.set); err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.printf("Reference table for %d instructions written to '%s'.\n",
		len(h.set.Groups()), filepath.Base(filename))
	return nil
}

// Apply settings that affect host state. An invalid architecture is
// rejected and the previous value restored.
func (h *Host) onSettingsUpdate() error {
	arch, err := cpu.ParseArchitecture(h.settings.Arch)
	if err != nil {
		h.settings.Arch = h.set.Arch.String()
		return err
	}
	if arch != h.set.Arch {
		h.set = cpu.GetInstructionSet(arch)
		h.logger.Debug("Instruction set changed", log.Stringer("arch", arch), log.Int("variants", h.set.Len()))
	}
	h.settings.Arch = arch.String()
	return nil
}

func (h *Host) describe(inst *cpu.Instruction) string {
	s := fmt.Sprintf("%-4s %-16s %-11s %s  %d byte(s)  %d+%d+%d cycles",
		inst.Name, inst.Mode, reference.ArgumentExample(inst.Mode),
		reference.OpcodeString(inst.Opcode), inst.Length,
		inst.Cycles, inst.BranchCycles, inst.BPCycles)
	if h.settings.ShowFlags {
		if f := reference.FlagString(inst.Flags); f != "" {
			s += "  [" + f + "]"
		}
	}
	return s
}

func (h *Host) displayUsage(c cmd.Selection) {
	if cc, ok := c.Command.Data.(*command); ok && cc.usage != "" {
		h.printf("Syntax: %s\n", cc.usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands(g *group) {
	h.printf("%s commands:\n", g.name)
	for _, c := range g.commands {
		if c.brief != "" {
			h.printf("    %-15s  %s\n", c.name, c.brief)
		}
	}
}

// Return the subcommand group whose name begins with s, if any.
func findGroup(s string) *group {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	for name, g := range subCmds {
		if strings.HasPrefix(name, s) {
			return g
		}
	}
	return nil
}
