// debug_commands.go - Command parser and handlers for Machine Monitor

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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MonitorCommand is a parsed command with name and arguments.
type MonitorCommand struct {
	Name string
	Args []string
}

// ParseCommand splits a raw input line into a command name and arguments.
func ParseCommand(input string) MonitorCommand {
	input = strings.TrimSpace(input)
	if input == "" {
		return MonitorCommand{}
	}
	parts := strings.Fields(input)
	return MonitorCommand{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

// ParseAddress parses a monitor number in various formats:
// $hex, 0xhex, #decimal, or bare hex.
func ParseAddress(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// #decimal
	if strings.HasPrefix(s, "#") {
		v, err := strconv.ParseUint(s[1:], 10, 64)
		return v, err == nil
	}

	// $hex
	if strings.HasPrefix(s, "$") {
		v, err := strconv.ParseUint(s[1:], 16, 64)
		return v, err == nil
	}

	// 0x or 0X hex
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		return v, err == nil
	}

	// bare hex
	v, err := strconv.ParseUint(s, 16, 64)
	return v, err == nil
}

// parseWord parses a 32-bit monitor argument.
func parseWord(s string) (uint32, bool) {
	v, ok := ParseAddress(s)
	if !ok || v > 0xFFFFFFFF {
		return 0, false
	}
	return uint32(v), true
}

const defaultSnapshotFile = "ccm.snap"

// ExecuteCommand dispatches a parsed command to the appropriate handler.
// Returns true if the monitor should exit.
func (m *MachineMonitor) ExecuteCommand(input string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := ParseCommand(input)
	if cmd.Name == "" {
		return false
	}

	// Add to history
	if len(m.history) == 0 || m.history[len(m.history)-1] != input {
		m.history = append(m.history, input)
	}

	switch cmd.Name {
	case "r":
		return m.cmdRead(cmd)
	case "w":
		return m.cmdWrite(cmd)
	case "f":
		return m.cmdFrequency(cmd)
	case "regs", "io":
		return m.cmdRegisters(cmd)
	case "clocks":
		return m.cmdClocks(cmd)
	case "reset":
		return m.cmdReset(cmd)
	case "save":
		return m.cmdSaveState(cmd)
	case "load":
		return m.cmdLoadState(cmd)
	case "devices":
		return m.cmdDevices(cmd)
	case "yank":
		return m.cmdYank(cmd)
	case "script":
		return m.cmdScript(cmd)
	case "q", "x":
		return m.cmdExit(cmd)
	case "?", "help":
		return m.cmdHelp(cmd)
	default:
		m.appendOutput(fmt.Sprintf("Unknown command: %s", cmd.Name), colorRed)
		return false
	}
}

func (m *MachineMonitor) cmdRead(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: r <offset>", colorRed)
		return false
	}
	off, ok := parseWord(cmd.Args[0])
	if !ok {
		m.appendOutput(fmt.Sprintf("Invalid offset: %s", cmd.Args[0]), colorRed)
		return false
	}
	val, ok := m.machine.ReadReg(off)
	if !ok {
		m.appendOutput(fmt.Sprintf("Bus fault reading +$%X", off), colorRed)
		return false
	}
	m.appendOutput(fmt.Sprintf("+$%03X %-8s $%08X", off, m.regName(off), val), colorWhite)
	return false
}

func (m *MachineMonitor) cmdWrite(cmd MonitorCommand) bool {
	if len(cmd.Args) < 2 {
		m.appendOutput("Usage: w <offset> <value>", colorRed)
		return false
	}
	off, ok := parseWord(cmd.Args[0])
	if !ok {
		m.appendOutput(fmt.Sprintf("Invalid offset: %s", cmd.Args[0]), colorRed)
		return false
	}
	val, ok := parseWord(cmd.Args[1])
	if !ok {
		m.appendOutput(fmt.Sprintf("Invalid value: %s", cmd.Args[1]), colorRed)
		return false
	}
	if !m.machine.WriteReg(off, val) {
		m.appendOutput(fmt.Sprintf("Bus fault writing +$%X", off), colorRed)
		return false
	}
	// Show what stuck; masked registers may differ from what was written.
	// Read the file directly so the echo raises no diagnostic of its own.
	rf := m.machine.CCM().Registers()
	if off%4 != 0 || int(off/4) >= rf.Len() {
		m.appendOutput(fmt.Sprintf("+$%03X %-8s <- $%08X (no register)", off, "???", val), colorYellow)
		return false
	}
	got := rf.Get(int(off / 4))
	m.appendOutput(fmt.Sprintf("+$%03X %-8s <- $%08X = $%08X", off, rf.Name(int(off/4)), val, got), colorCyan)
	return false
}

func (m *MachineMonitor) regName(off uint32) string {
	rf := m.machine.CCM().Registers()
	if off%4 != 0 || int(off/4) >= rf.Len() {
		return "???"
	}
	return rf.Name(int(off / 4))
}

func (m *MachineMonitor) cmdFrequency(cmd MonitorCommand) bool {
	if len(cmd.Args) == 0 {
		return m.cmdClocks(cmd)
	}
	id, ok := ParseClockID(cmd.Args[0])
	if !ok {
		m.appendOutput(fmt.Sprintf("Unknown clock: %s", cmd.Args[0]), colorRed)
		return false
	}
	m.appendOutput(fmt.Sprintf("%s = %d Hz", id, m.machine.ClockFrequency(id)), colorWhite)
	return false
}

func (m *MachineMonitor) cmdClocks(_ MonitorCommand) bool {
	for _, line := range formatClockView(m.machine) {
		m.appendOutput(line.Text, line.Color)
	}
	return false
}

func (m *MachineMonitor) cmdRegisters(_ MonitorCommand) bool {
	m.showRegisters()
	m.saveCurrentRegs()
	return false
}

func (m *MachineMonitor) showRegisters() {
	for _, line := range formatIOView(m.machine, m.prevRegs) {
		m.appendOutput(line.Text, line.Color)
	}
}

func (m *MachineMonitor) cmdReset(_ MonitorCommand) bool {
	m.machine.Reset()
	m.appendOutput(fmt.Sprintf("%s reset", m.machine.CCM().TypeName()), colorCyan)
	return false
}

func (m *MachineMonitor) cmdSaveState(cmd MonitorCommand) bool {
	filename := defaultSnapshotFile
	if len(cmd.Args) >= 1 {
		filename = cmd.Args[0]
	}
	if err := m.machine.SaveState(filename); err != nil {
		m.appendOutput(fmt.Sprintf("Error: %s", err), colorRed)
		return false
	}
	m.appendOutput(fmt.Sprintf("State saved to %s", filename), colorCyan)
	return false
}

func (m *MachineMonitor) cmdLoadState(cmd MonitorCommand) bool {
	filename := defaultSnapshotFile
	if len(cmd.Args) >= 1 {
		filename = cmd.Args[0]
	}
	if err := m.machine.LoadState(filename); err != nil {
		m.appendOutput(fmt.Sprintf("Error: %s", err), colorRed)
		return false
	}
	m.appendOutput(fmt.Sprintf("State loaded from %s", filename), colorCyan)
	m.showRegisters()
	m.saveCurrentRegs()
	return false
}

func (m *MachineMonitor) cmdDevices(_ MonitorCommand) bool {
	reg := m.machine.Registry()
	for _, name := range reg.Names() {
		info, _ := reg.Lookup(name)
		marker := " "
		color := uint32(colorWhite)
		if name == m.machine.CCM().TypeName() {
			marker = "*"
			color = colorGreen
		}
		m.appendOutput(fmt.Sprintf("%s %-12s $%08X  %s", marker, name, info.Base, info.Desc), color)
	}
	return false
}

// cmdYank copies the register dump to the host clipboard.
func (m *MachineMonitor) cmdYank(_ MonitorCommand) bool {
	var sb strings.Builder
	for _, line := range formatIOView(m.machine, nil) {
		sb.WriteString(line.Text)
		sb.WriteByte('\n')
	}
	copyText := m.copyText
	if copyText == nil {
		copyText = hostClipboardWrite
	}
	if err := copyText(sb.String()); err != nil {
		m.appendOutput(fmt.Sprintf("Error: %s", err), colorRed)
		return false
	}
	m.appendOutput(fmt.Sprintf("Copied %d registers to clipboard", m.machine.CCM().Registers().Len()), colorCyan)
	return false
}

func (m *MachineMonitor) cmdScript(cmd MonitorCommand) bool {
	if len(cmd.Args) < 1 {
		m.appendOutput("Usage: script <file.lua>", colorRed)
		return false
	}
	err := RunScriptFile(m.machine, cmd.Args[0], m.scriptPrint)
	var se *ScriptError
	switch {
	case errors.As(err, &se):
		m.appendOutput(fmt.Sprintf("Script error: %s", se.Message), colorRed)
	case err != nil:
		m.appendOutput(fmt.Sprintf("Error: %s", err), colorRed)
	default:
		m.appendOutput(fmt.Sprintf("Ran %s", cmd.Args[0]), colorCyan)
	}
	return false
}

func (m *MachineMonitor) scriptPrint(text string) {
	m.appendOutput(text, colorYellow)
}

func (m *MachineMonitor) cmdExit(_ MonitorCommand) bool {
	m.state = MonitorInactive
	return true
}

func (m *MachineMonitor) cmdHelp(_ MonitorCommand) bool {
	helpLines := []string{
		"CCM Monitor Commands:",
		"  r <off>            Read register at offset",
		"  w <off> <value>    Write register at offset",
		"  f [clock]          Clock frequency (all clocks without argument)",
		"  regs               Register view (changes highlighted)",
		"  clocks             Clock tree view",
		"  reset              Hard reset",
		"  save [file]        Save register state",
		"  load [file]        Load register state",
		"  devices            List CCM types",
		"  yank               Copy register view to clipboard",
		"  script <file>      Run Lua script",
		"  q                  Quit monitor",
		"",
		"Numbers: $hex, 0xhex, bare hex, #decimal",
		"Clocks: mpll upll mcu hsp ahb ipg per 32k",
	}
	for _, line := range helpLines {
		m.appendOutput(line, colorCyan)
	}
	return false
}
