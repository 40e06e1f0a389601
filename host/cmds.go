// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// A command is stored as the data of each command tree entry.
type command struct {
	name        string
	brief       string
	description string
	usage       string
	handler     func(*Host, cmd.Selection) error
}

// A group is a named list of commands, either the root list or the
// subcommands of a tree node.
type group struct {
	name     string
	brief    string
	commands []*command
}

var (
	cmds     *cmd.Tree
	rootCmds *group
	subCmds  = make(map[string]*group)
)

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "go6502asm"})
	rootCmds = &group{name: "go6502asm"}

	add := func(t *cmd.Tree, g *group, c *command) {
		t.AddCommand(cmd.CommandDescriptor{
			Name:        c.name,
			Brief:       c.brief,
			Description: c.description,
			Usage:       c.usage,
			Data:        c,
		})
		g.commands = append(g.commands, c)
	}

	add(root, rootCmds, &command{
		name:        "help",
		description: "Display help for a command.",
		usage:       "help [<command>]",
		handler:     (*Host).cmdHelp,
	})
	add(root, rootCmds, &command{
		name:  "disassemble",
		brief: "Disassemble machine code",
		description: "Disassemble a series of space-separated hexadecimal" +
			" byte values. The code is taken to start at address $1000" +
			" unless an origin is given with a leading address ending in" +
			" a colon, as in 0800: A9 10.",
		usage:   "disassemble [<origin>:] <byte> [<byte> ...]",
		handler: (*Host).cmdDisassemble,
	})
	add(root, rootCmds, &command{
		name:  "lookup",
		brief: "List the variants of an instruction",
		description: "List every addressing mode variant of the named" +
			" instruction along with its opcode, cycle costs and affected" +
			" status flags. If an addressing mode is given, only that variant" +
			" is shown. Modes may be given by name, by unambiguous prefix or" +
			" by alias such as zpx or idy.",
		usage:   "lookup <mnemonic> [<mode>]",
		handler: (*Host).cmdLookup,
	})
	add(root, rootCmds, &command{
		name:        "modes",
		brief:       "List addressing modes",
		description: "List every addressing mode with its alias and an example operand.",
		usage:       "modes",
		handler:     (*Host).cmdModes,
	})

	// Resolve commands
	rs := root.AddSubtree(cmd.TreeDescriptor{Name: "resolve", Brief: "Resolve commands"})
	rsCmds := &group{name: "resolve", brief: "Resolve commands"}
	rootCmds.commands = append(rootCmds.commands, &command{name: "resolve", brief: rsCmds.brief})
	subCmds["resolve"] = rsCmds
	add(rs, rsCmds, &command{
		name:  "line",
		brief: "Resolve a line of assembly code",
		description: "Select the instruction variant denoted by a single" +
			" line of assembly code and display its encoding. A label" +
			" followed by a colon may precede the instruction.",
		usage:   "resolve line <source>",
		handler: (*Host).cmdResolveLine,
	})
	add(rs, rsCmds, &command{
		name:  "file",
		brief: "Resolve every line of a source file",
		description: "Resolve every instruction line of an assembly source" +
			" file and display the resulting listing. Unresolvable lines are" +
			" reported after the listing unless the StopOnError setting is" +
			" enabled, in which case the first such line ends the run.",
		usage:   "resolve file <filename>",
		handler: (*Host).cmdResolveFile,
	})

	add(root, rootCmds, &command{
		name:        "quit",
		brief:       "Quit the program",
		description: "Quit the program.",
		usage:       "quit",
		handler:     (*Host).cmdQuit,
	})
	add(root, rootCmds, &command{
		name:  "set",
		brief: "Set a configuration variable",
		description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		usage:   "set [<var> <value>]",
		handler: (*Host).cmdSet,
	})
	add(root, rootCmds, &command{
		name:  "table",
		brief: "Generate the instruction reference table",
		description: "Render the instruction set as a Markdown reference" +
			" table. If a filename is given the table is written to the file," +
			" otherwise it is displayed.",
		usage:   "table [<filename>]",
		handler: (*Host).cmdTable,
	})

	// Add command shortcuts.
	root.AddShortcut("r", "resolve line")
	root.AddShortcut("rf", "resolve file")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("l", "lookup")
	root.AddShortcut("t", "table")
	root.AddShortcut("?", "help")

	cmds = root
}
