// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server resolves lines of assembly code sent by remote editors
// over a websocket connection.
//
// Each text message received is treated as one line of source code. The
// server answers every message with a JSON encoded Reply, in order. A line
// that cannot be resolved produces a Reply carrying an error message; the
// connection stays open.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brents6502/go6502asm/asm"
	"github.com/brents6502/go6502asm/cpu"
	"github.com/brents6502/go6502asm/reference"
	"github.com/gorilla/websocket"
	"github.com/retroenv/retrogolib/log"
)

// Path is the default URL path of the websocket endpoint.
const Path = "/resolve"

// A Reply describes the resolution of one line of source code.
type Reply struct {
	Line         int    `json:"line"`
	Source       string `json:"source"`
	Mnemonic     string `json:"mnemonic,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Opcode       int    `json:"opcode"`
	Length       int    `json:"length"`
	Cycles       uint   `json:"cycles"`
	BranchCycles uint   `json:"branchCycles"`
	BPCycles     uint   `json:"bpCycles"`
	Flags        string `json:"flags"`
	Error        string `json:"error,omitempty"`
}

// A Server is an http.Handler upgrading each request to a websocket
// connection and resolving the lines of code sent over it.
type Server struct {
	set      *cpu.InstructionSet
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// New creates a server resolving against the instruction set.
func New(set *cpu.InstructionSet, logger *log.Logger) *Server {
	return &Server{
		set:    set,
		logger: logger,
	}
}

// ServeHTTP serves a single websocket client until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("New client connection", log.String("remote", r.RemoteAddr))
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Websocket upgrade failed", log.Err(err))
		return
	}
	defer conn.Close()

	resolver := asm.NewResolver(s.set, s.logger)
	for row := 1; ; row++ {
		if err := s.serveNextLine(conn, resolver, row); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Info("Closing client connection", log.String("remote", r.RemoteAddr))
			} else {
				s.logger.Error("Closing client connection due to an error",
					log.String("remote", r.RemoteAddr), log.Err(err))
			}
			return
		}
	}
}

func (s *Server) serveNextLine(conn *websocket.Conn, resolver *asm.Resolver, row int) error {
	tp, msg, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	if tp != websocket.TextMessage {
		return errors.New("expected text message, got something else")
	}

	reply := s.resolve(resolver, row, string(msg))
	b, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}

func (s *Server) resolve(resolver *asm.Resolver, row int, text string) Reply {
	reply := Reply{Line: row, Source: text}

	line, inst, err := resolver.ResolveLine(row, text)
	if line != nil {
		reply.Mnemonic = line.Mnemonic
	}
	switch {
	case err != nil:
		reply.Error = err.Error()
	case inst != nil:
		reply.Mnemonic = inst.Name
		reply.Mode = inst.Mode.String()
		reply.Opcode = int(inst.Opcode)
		reply.Length = int(inst.Length)
		reply.Cycles = inst.Cycles
		reply.BranchCycles = inst.BranchCycles
		reply.BPCycles = inst.BPCycles
		reply.Flags = reference.FlagString(inst.Flags)
	}
	return reply
}

// ListenAndServe serves the websocket endpoint at addr until the context
// is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(Path, s)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	s.logger.Info("Started websocket server",
		log.String("address", addr), log.String("path", Path), log.Stringer("arch", s.set.Arch))

	select {
	case err := <-errs:
		return fmt.Errorf("serving websocket endpoint: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down websocket server: %w", err)
		}
		return nil
	}
}
