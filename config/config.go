// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the command line options shared by the front ends
// and builds the logger they report through.
package config

import (
	"github.com/brents6502/go6502asm/cpu"
	"github.com/retroenv/retrogolib/log"
)

// Options holds the settings chosen on the command line.
type Options struct {
	Arch        cpu.Architecture // instruction set to resolve against
	Table       string           // path of the reference table to write
	Listing     bool             // print a listing for each source file
	StopOnError bool             // stop resolving a file at the first error
	Serve       string           // address of the websocket server
	Debug       bool
	Quiet       bool
}

// CreateLogger creates a logger with a level matching the debug and quiet
// options. Debug takes precedence over quiet.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Logger creates the logger selected by the options.
func (o *Options) Logger() *log.Logger {
	return CreateLogger(o.Debug, o.Quiet)
}
