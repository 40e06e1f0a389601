// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/brents6502/go6502asm/cpu"
)

// ErrSyntax is matched by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// A SyntaxError describes a line of source code that could not be split
// into label, mnemonic and operand.
type SyntaxError struct {
	Line   int    // 1-based line number
	Column int    // 0-based column of the offending text
	Source string // the full line
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d, col %d: %s", e.Line, e.Column+1, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxError(l fstring, format string, args ...any) error {
	return &SyntaxError{
		Line:   l.row,
		Column: l.column,
		Source: l.full,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// An Operand is an instruction argument classified by its syntax alone.
type Operand struct {
	Text  string   // operand text as written
	Value int      // value of the address or immediate, if Known
	Known bool     // the operand is a number literal
	mode  cpu.Mode // addressing mode implied by the syntax
}

// Mode returns the operand's addressing mode.
func (o Operand) Mode() cpu.Mode {
	return o.mode
}

// ParseLine splits a line of assembly source code into its label, mnemonic
// and operand. Comments start with ';', and lines beginning with '*' are
// comments. A label must end with ':'. Lines without an instruction produce
// a Line with an empty Mnemonic.
func ParseLine(number int, text string) (*Line, error) {
	l := &Line{Number: number, Source: text}

	line := newFstring(number, text).stripTrailingComment()
	line = line.consumeWhitespace()
	if line.isEmpty() || line.startsWithChar('*') {
		return l, nil
	}

	word, remain := line.consumeWhile(wordChar)
	if word.str[len(word.str)-1] == ':' {
		if err := checkLabel(word.trunc(len(word.str) - 1)); err != nil {
			return nil, err
		}
		line = remain.consumeWhitespace()
		if line.isEmpty() {
			return l, nil
		}
		word, remain = line.consumeWhile(wordChar)
	}

	if !word.startsWith(alpha) || word.scanWhile(labelChar) != len(word.str) {
		return nil, syntaxError(word, "invalid opcode '%s'", word.str)
	}
	l.Mnemonic = word.str

	remain = remain.consumeWhitespace()
	if !remain.isEmpty() {
		o, err := classify(remain)
		if err != nil {
			return nil, err
		}
		l.Args = []Argument{o}
	}
	return l, nil
}

func checkLabel(label fstring) error {
	if !label.startsWith(labelStartChar) || label.scanWhile(labelChar) != len(label.str) {
		return syntaxError(label, "invalid label '%s'", label.str)
	}
	return nil
}

// ClassifyOperand determines the addressing mode implied by the syntax of
// an operand token.
func ClassifyOperand(text string) (Operand, error) {
	return classify(newFstring(0, text))
}

func classify(l fstring) (o Operand, err error) {
	o.Text = l.str

	switch {
	case l.isEmpty():
		o.mode = cpu.None

	case len(l.str) == 1 && l.startsWithString("A"):
		o.mode = cpu.Accumulator

	case l.startsWithChar('#'):
		expr := l.consume(1)
		if err = o.parseExpr(expr); err != nil {
			return
		}
		o.mode = cpu.Immediate

	case l.startsWithChar('('):
		var expr fstring
		o.mode, expr, err = l.consume(1).consumeIndirect()
		if err != nil {
			return
		}
		err = o.parseExpr(expr)

	default:
		forceAbsolute := false
		if l.startsWithString("A:") || l.startsWithString("ABS:") {
			forceAbsolute = true
			_, l = l.consumeUntil(func(c byte) bool { return c == ':' })
			l = l.consume(1)
		}

		var expr fstring
		var index byte
		expr, index, err = l.consumeAbsolute()
		if err != nil {
			return
		}
		if err = o.parseExpr(expr); err != nil {
			return
		}

		zp := !forceAbsolute && o.Known && o.Value <= 0xff
		switch {
		case index == 'X' && zp:
			o.mode = cpu.ZeroPageIndexedX
		case index == 'X':
			o.mode = cpu.AddressIndexedX
		case index == 'Y' && zp:
			o.mode = cpu.ZeroPageIndexedY
		case index == 'Y':
			o.mode = cpu.AddressIndexedY
		case zp:
			o.mode = cpu.ZeroPage
		default:
			o.mode = cpu.Address
		}
	}
	return
}

// Parse an operand expression. Number literals are evaluated; any other
// word is taken to be a symbol whose value is unknown.
func (o *Operand) parseExpr(expr fstring) error {
	switch {
	case expr.isEmpty():
		return syntaxError(expr, "missing operand expression")

	case expr.startsWithChar('$'):
		return o.parseNumber(expr, expr.consume(1), 16, hexadecimal)

	case expr.startsWithChar('%'):
		return o.parseNumber(expr, expr.consume(1), 2, binarynum)

	case expr.startsWith(decimal):
		return o.parseNumber(expr, expr, 10, decimal)

	case expr.startsWith(labelStartChar):
		if expr.scanWhile(labelChar) != len(expr.str) {
			return syntaxError(expr, "invalid symbol '%s'", expr.str)
		}
		o.Known = false
		return nil

	default:
		return syntaxError(expr, "invalid operand expression '%s'", expr.str)
	}
}

func (o *Operand) parseNumber(expr, digits fstring, base int, valid func(c byte) bool) error {
	if digits.isEmpty() || digits.scanWhile(valid) != len(digits.str) {
		return syntaxError(expr, "invalid number '%s'", expr.str)
	}
	v, err := strconv.ParseUint(digits.str, base, 32)
	if err != nil || v > 0xffff {
		return syntaxError(expr, "number '%s' out of range", expr.str)
	}
	o.Value, o.Known = int(v), true
	return nil
}

// Consume an operand expression following a '(' until an indirect
// addressing mode substring is reached. Return the addressing mode and
// expression substring. Both (zp,X) and (zp),X are accepted for the indexed
// indirect mode.
func (l fstring) consumeIndirect() (mode cpu.Mode, expr fstring, err error) {
	expr, remain := l.consumeUntil(func(c byte) bool { return c == ',' || c == ')' })

	switch {
	case remain.startsWithString(",X)"):
		mode, remain = cpu.IndirectIndexedX, remain.consume(3)
	case remain.startsWithString("),X"):
		mode, remain = cpu.IndirectIndexedX, remain.consume(3)
	case remain.startsWithString("),Y"):
		mode, remain = cpu.IndirectIndexedY, remain.consume(3)
	case remain.startsWithChar(')'):
		mode, remain = cpu.Indirect, remain.consume(1)
	default:
		return mode, expr, syntaxError(remain, "unknown addressing mode format")
	}

	remain = remain.consumeWhitespace()
	if !remain.isEmpty() {
		return mode, expr, syntaxError(remain, "unexpected '%s' after operand", remain.str)
	}
	return mode, expr, nil
}

// Consume an absolute operand expression until an index register suffix
// is reached. Return the expression substring and the index register, if
// any.
func (l fstring) consumeAbsolute() (expr fstring, index byte, err error) {
	expr, remain := l.consumeUntil(func(c byte) bool { return c == ',' || whitespace(c) })

	switch {
	case remain.startsWithString(",X"):
		index, remain = 'X', remain.consume(2)
	case remain.startsWithString(",Y"):
		index, remain = 'Y', remain.consume(2)
	case remain.startsWithChar(','):
		return expr, 0, syntaxError(remain, "unknown index register")
	}

	remain = remain.consumeWhitespace()
	if !remain.isEmpty() {
		return expr, index, syntaxError(remain, "unexpected '%s' after operand", remain.str)
	}
	return expr, index, nil
}
