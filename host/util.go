// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse a hexadecimal value, with or without a leading '$', that fits in
// the requested number of bits.
func parseHex(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "$"), 16, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid hexadecimal value '%s'", s)
	}
	return v, nil
}

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

// Word wrap text so that each line fits within 80 columns, indenting every
// line by the requested number of spaces.
func indentWrap(indent int, s string) string {
	const width = 80
	pad := strings.Repeat(" ", indent)

	var b strings.Builder
	col := 0
	for _, w := range strings.Fields(s) {
		switch {
		case col == 0:
			b.WriteString(pad)
			col = indent
		case col+1+len(w) > width:
			b.WriteString("\n")
			b.WriteString(pad)
			col = indent
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(w)
		col += len(w)
	}
	return b.String()
}
