// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/beevik/term"
	"github.com/brents6502/go6502asm/asm"
	"github.com/brents6502/go6502asm/config"
	"github.com/brents6502/go6502asm/cpu"
	"github.com/brents6502/go6502asm/host"
	"github.com/brents6502/go6502asm/reference"
	"github.com/brents6502/go6502asm/server"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	opts    config.Options
	arch    string
	resolve string
	asJSON  bool
)

func init() {
	flag.StringVar(&arch, "arch", "6502", "instruction set architecture (6502 or 65c02)")
	flag.StringVar(&resolve, "r", "", "resolve assembly source file and print a listing")
	flag.BoolVar(&asJSON, "json", false, "print the listing as JSON")
	flag.BoolVar(&opts.StopOnError, "stop", false, "stop resolving at the first error")
	flag.StringVar(&opts.Table, "table", "", "write the Markdown instruction reference table to file")
	flag.StringVar(&opts.Serve, "serve", "", "serve the websocket resolver at address (e.g. :8502)")
	flag.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flag.BoolVar(&opts.Quiet, "q", false, "only log errors")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: go6502asm [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	logger := opts.Logger()

	var err error
	opts.Arch, err = cpu.ParseArchitecture(arch)
	if err != nil {
		exitOnError(err)
	}
	set := cpu.GetInstructionSet(opts.Arch)

	// Write the reference table if requested.
	if opts.Table != "" {
		if err := reference.WriteFile(opts.Table, set); err != nil {
			logger.Fatal("Writing reference table failed", log.Err(err))
		}
		logger.Info("Wrote reference table",
			log.String("path", opts.Table), log.Int("variants", set.Len()))
		os.Exit(0)
	}

	// Do command-line resolve if requested.
	if resolve != "" {
		os.Exit(resolveFile(logger, set, resolve))
	}

	// Serve remote clients until interrupted.
	if opts.Serve != "" {
		srv := server.New(set, logger)
		if err := srv.ListenAndServe(app.Context(), opts.Serve); err != nil {
			logger.Fatal("Websocket server failed", log.Err(err))
		}
		return
	}

	h := host.New(logger, opts.Arch)

	// Run commands contained in command-line files.
	args := flag.Args()
	if len(args) > 0 {
		for _, filename := range args {
			file, err := os.Open(filename)
			if err != nil {
				exitOnError(err)
			}
			h.RunCommands(file, os.Stdout, false)
			file.Close()
		}
		return
	}

	// Run commands interactively, with a prompt only on a terminal.
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

func resolveFile(logger *log.Logger, set *cpu.InstructionSet, path string) int {
	r := asm.NewResolver(set, logger)
	r.StopOnError = opts.StopOnError

	listing, err := r.ResolveFile(path)
	if err != nil && !errors.Is(err, asm.ErrResolve) {
		logger.Error("Resolving failed", log.String("path", path), log.Err(err))
		return 1
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(listing); err != nil {
			logger.Error("Encoding listing failed", log.Err(err))
			return 1
		}
	} else if _, err := listing.WriteTo(os.Stdout); err != nil {
		logger.Error("Writing listing failed", log.Err(err))
		return 1
	}

	if len(listing.Errors) > 0 {
		return 1
	}
	return 0
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
