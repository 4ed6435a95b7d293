package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalHost runs the monitor on the process's stdin/stdout. On a real
// terminal it switches to raw mode and uses x/term's line editor; otherwise
// lines are scanned as they arrive (pipes, scripts, tests).
type TerminalHost struct {
	monitor      *MachineMonitor
	in           io.Reader
	out          io.Writer
	fd           int
	oldTermState *term.State
}

// NewTerminalHost creates a host adapter for stdin/stdout.
func NewTerminalHost(monitor *MachineMonitor) *TerminalHost {
	return &TerminalHost{
		monitor: monitor,
		in:      os.Stdin,
		out:     os.Stdout,
		fd:      int(os.Stdin.Fd()),
	}
}

const monitorPrompt = "ccm> "

// Run reads commands until the monitor asks to exit or input ends.
func (h *TerminalHost) Run() error {
	if f, ok := h.in.(*os.File); ok && f == os.Stdin && term.IsTerminal(h.fd) {
		return h.runRaw()
	}
	return h.runScanned()
}

func (h *TerminalHost) runRaw() error {
	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		return fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
	}
	h.oldTermState = oldState
	defer h.restore()

	rw := struct {
		io.Reader
		io.Writer
	}{h.in, h.out}
	t := term.NewTerminal(rw, monitorPrompt)
	if w, hgt, err := term.GetSize(h.fd); err == nil {
		_ = t.SetSize(w, hgt)
	}

	h.monitor.out = t
	h.monitor.SetANSI(true)
	h.monitor.Activate()
	defer h.monitor.Deactivate()

	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if h.monitor.ExecuteCommand(line) {
			return nil
		}
	}
}

func (h *TerminalHost) runScanned() error {
	h.monitor.out = h.out
	h.monitor.Activate()
	defer h.monitor.Deactivate()

	scanner := bufio.NewScanner(h.in)
	for scanner.Scan() {
		if h.monitor.ExecuteCommand(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

func (h *TerminalHost) restore() {
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
