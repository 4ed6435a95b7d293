// debug_monitor.go - Machine Monitor core state for the CCM machine

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"io"
	"sync"
)

// MonitorState represents whether the monitor is active.
type MonitorState int

const (
	MonitorInactive MonitorState = iota
	MonitorActive
)

// OutputLine holds styled text for the monitor scrollback buffer.
type OutputLine struct {
	Text  string
	Color uint32 // RGBA packed
}

// MachineMonitor is the interactive register console. Output goes to the
// scrollback buffer and, when set, to an io.Writer as it is produced.
type MachineMonitor struct {
	mu    sync.Mutex
	state MonitorState

	machine *Machine
	out     io.Writer
	ansi    bool // colour lines with 24-bit escapes

	outputLines []OutputLine
	maxOutput   int

	history []string

	prevRegs map[string]uint32 // for change highlighting

	// copyText receives the yank buffer; nil means the host clipboard.
	copyText func(text string) error
}

// NewMachineMonitor creates a new monitor instance for machine.
func NewMachineMonitor(machine *Machine, out io.Writer) *MachineMonitor {
	return &MachineMonitor{
		state:     MonitorInactive,
		machine:   machine,
		out:       out,
		maxOutput: 500,
		prevRegs:  make(map[string]uint32),
	}
}

// SetANSI enables colour escapes on the output writer.
func (m *MachineMonitor) SetANSI(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ansi = on
}

// IsActive returns whether the monitor is currently shown.
func (m *MachineMonitor) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == MonitorActive
}

// Activate enters the monitor and prints the register dump.
func (m *MachineMonitor) Activate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == MonitorActive {
		return
	}
	m.state = MonitorActive

	m.appendOutput(fmt.Sprintf("CCM MONITOR - %s at $%08X - Type ? for help",
		m.machine.CCM().TypeName(), m.machine.Base()), colorCyan)
	m.showRegisters()
	m.saveCurrentRegs()
}

// Deactivate leaves the monitor.
func (m *MachineMonitor) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = MonitorInactive
}

// OutputLines returns a copy of the scrollback buffer.
func (m *MachineMonitor) OutputLines() []OutputLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]OutputLine, len(m.outputLines))
	copy(out, m.outputLines)
	return out
}

// History returns the command history, oldest first.
func (m *MachineMonitor) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...)
}

// appendOutput adds a line to the scrollback buffer and echoes it.
func (m *MachineMonitor) appendOutput(text string, color uint32) {
	m.outputLines = append(m.outputLines, OutputLine{Text: text, Color: color})
	if len(m.outputLines) > m.maxOutput {
		m.outputLines = m.outputLines[len(m.outputLines)-m.maxOutput:]
	}
	if m.out == nil {
		return
	}
	if m.ansi {
		fmt.Fprintf(m.out, "\033[38;2;%d;%d;%dm%s\033[0m\n", color>>24, (color>>16)&0xFF, (color>>8)&0xFF, text)
		return
	}
	fmt.Fprintln(m.out, text)
}

// saveCurrentRegs snapshots the register file for change detection.
func (m *MachineMonitor) saveCurrentRegs() {
	rf := m.machine.CCM().Registers()
	m.prevRegs = make(map[string]uint32, rf.Len())
	for i := 0; i < rf.Len(); i++ {
		m.prevRegs[rf.Name(i)] = rf.Get(i)
	}
}

// Color constants (RGBA packed as 0xRRGGBBAA)
const (
	colorWhite  = 0xFFFFFFFF
	colorCyan   = 0x64C8FFFF
	colorYellow = 0xFFFF55FF
	colorRed    = 0xFF5555FF
	colorGreen  = 0x55FF55FF
	colorDim    = 0x5555FFFF
)
