// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brents6502/go6502asm/cpu"
	"github.com/brents6502/go6502asm/reference"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func runScript(t *testing.T, script string) (*Host, string) {
	t.Helper()
	h := New(log.NewTestLogger(t), cpu.NMOS)
	var out bytes.Buffer
	h.RunCommands(strings.NewReader(script), &out, false)
	return h, out.String()
}

func TestResolveLine(t *testing.T) {
	_, out := runScript(t, "resolve line LDA #$10\n")
	assert.Contains(t, out, "LDA")
	assert.Contains(t, out, "Immediate")
	assert.Contains(t, out, "0xA9")
	assert.Contains(t, out, "2+0+0 cycles")
	assert.Contains(t, out, "[N Z]")

	_, out = runScript(t, "resolve line FOO $10\nresolve line STA #$10\n")
	assert.Contains(t, out, "invalid opcode 'FOO'")
	assert.Contains(t, out, "invalid addressing mode Immediate for opcode 'STA'")
}

func TestResolveLineShortcut(t *testing.T) {
	_, out := runScript(t, "r BNE loop\n")
	assert.Contains(t, out, "0xD0")
	assert.Contains(t, out, "2+1+1 cycles")
}

func TestLookup(t *testing.T) {
	_, out := runScript(t, "lookup ldx\n")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 5)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "LDX"), l)
	}

	_, out = runScript(t, "lookup lda zpx\n")
	assert.Contains(t, out, "0xB5")
	assert.False(t, strings.Contains(out, "0xA9"))

	_, out = runScript(t, "lookup sta imm\nlookup foo\n")
	assert.Contains(t, out, "Instruction 'STA' has no Immediate variant.")
	assert.Contains(t, out, "Instruction 'foo' not found.")
}

func TestSetArch(t *testing.T) {
	h, out := runScript(t, "resolve line STZ $10\nset arch 65c02\nresolve line STZ $10\n")
	assert.Contains(t, out, "invalid opcode 'STZ'")
	assert.Contains(t, out, "Setting updated.")
	assert.Contains(t, out, "0x64")
	assert.Equal(t, cpu.CMOS, h.set.Arch)

	h, out = runScript(t, "set arch z80\n")
	assert.Contains(t, out, "unknown architecture 'z80'")
	assert.Equal(t, cpu.NMOS, h.set.Arch)
	assert.Equal(t, "6502", h.settings.Arch)
}

func TestSetFlags(t *testing.T) {
	_, out := runScript(t, "set showflags false\nresolve line LDA #$10\n")
	assert.False(t, strings.Contains(out, "[N Z]"))

	_, out = runScript(t, "set\n")
	assert.Contains(t, out, "StopOnError")
	assert.Contains(t, out, "\"6502\"")
}

func TestTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instructions.md")
	_, out := runScript(t, "table "+path+"\n")
	assert.Contains(t, out, "written to 'instructions.md'")

	b, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, reference.Render(cpu.GetInstructionSet(cpu.NMOS)), string(b))
}

func TestResolveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.asm")
	src := "start:\tLDX #$00\nloop:\tINX\n\tBNE loop\n\tFOO\n\tRTS\n"
	assert.NoError(t, os.WriteFile(path, []byte(src), 0644))

	_, out := runScript(t, "resolve file "+path+"\n")
	assert.Contains(t, out, "0xA2")
	assert.Contains(t, out, "0xE8")
	assert.Contains(t, out, "invalid opcode 'FOO' on line 4")
	assert.Contains(t, out, "Resolved 'prog.asm': 4 instructions, 6 bytes, 12-14 cycles, 1 errors.")

	_, out = runScript(t, "set stoponerror true\nresolve file "+path+"\n")
	assert.Contains(t, out, "Resolved 'prog.asm': 3 instructions, 5 bytes, 6-8 cycles, 1 errors.")

	_, out = runScript(t, "resolve file "+filepath.Join(t.TempDir(), "missing.asm")+"\n")
	assert.Contains(t, out, "no such file")
}

func TestQuit(t *testing.T) {
	_, out := runScript(t, "quit\nresolve line NOP\n")
	assert.Empty(t, out)
}

func TestHelp(t *testing.T) {
	_, out := runScript(t, "help\n")
	assert.Contains(t, out, "go6502asm commands:")
	assert.Contains(t, out, "lookup")

	_, out = runScript(t, "help lookup\n")
	assert.Contains(t, out, "Syntax: lookup <mnemonic> [<mode>]")

	_, out = runScript(t, "help resolve\n")
	assert.Contains(t, out, "resolve commands:")
	assert.Contains(t, out, "file")
}

func TestDisassemble(t *testing.T) {
	_, out := runScript(t, "disassemble A9 10 8D 00 02 D0 FB\n")
	assert.Contains(t, out, "1000-  A9 10     LDA #$10")
	assert.Contains(t, out, "1002-  8D 00 02  STA $0200")
	assert.Contains(t, out, "1005-  D0 FB     BNE $1002")

	_, out = runScript(t, "d $0800: 60\n")
	assert.Contains(t, out, "0800-  60        RTS")

	_, out = runScript(t, "disassemble 8D 00\ndisassemble ZZ\n")
	assert.Contains(t, out, "truncated instruction STA at $1000")
	assert.Contains(t, out, "invalid hexadecimal value 'ZZ'")
}
