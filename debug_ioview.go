// debug_ioview.go - Register and clock tree viewer for Machine Monitor

package main

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// IORegisterDesc describes one register row of the viewer.
type IORegisterDesc struct {
	Name   string
	Offset uint32
	Access string
}

// describeRegisters builds the viewer rows from a device's register file.
// Access is RW for plain storage, RW/M for masked registers and IG for
// registers whose writes are discarded.
func describeRegisters(dev CCMDevice) []IORegisterDesc {
	rf := dev.Registers()
	descs := make([]IORegisterDesc, rf.Len())
	for i := range descs {
		p := rf.Policy(i)
		access := "RW"
		switch {
		case p.Ignored:
			access = "IG"
		case p != regRW:
			access = "RW/M"
		}
		descs[i] = IORegisterDesc{Name: rf.Name(i), Offset: uint32(i * 4), Access: access}
	}
	return descs
}

// formatIOView renders the register view for the machine's CCM. Values are
// read through the bus so the view shows what a guest would see.
func formatIOView(machine *Machine, changed map[string]uint32) []OutputLine {
	dev := machine.CCM()
	lines := []OutputLine{{
		Text:  fmt.Sprintf("--- %s Registers ($%08X) ---", dev.Description(), machine.Base()),
		Color: colorCyan,
	}}

	for _, reg := range describeRegisters(dev) {
		val, ok := machine.ReadReg(reg.Offset)
		if !ok {
			lines = append(lines, OutputLine{
				Text:  fmt.Sprintf("  %-8s (+$%03X) = ??        %s", reg.Name, reg.Offset, reg.Access),
				Color: colorRed,
			})
			continue
		}
		color := uint32(colorWhite)
		if reg.Access == "IG" {
			color = colorDim
		}
		if prev, ok := changed[reg.Name]; ok && prev != val {
			color = colorGreen
		}
		lines = append(lines, OutputLine{
			Text:  fmt.Sprintf("  %-8s (+$%03X) = $%08X %s", reg.Name, reg.Offset, val, reg.Access),
			Color: color,
		})
	}
	return lines
}

// formatClockView renders every clock the CCM models with its frequency.
func formatClockView(machine *Machine) []OutputLine {
	dev := machine.CCM()
	clocks := ListClocks(dev)
	if len(clocks) == 0 {
		return []OutputLine{{Text: fmt.Sprintf("%s has no clock tree", dev.TypeName()), Color: colorYellow}}
	}
	lines := []OutputLine{{Text: fmt.Sprintf("--- %s Clocks ---", dev.Description()), Color: colorCyan}}
	for _, id := range clocks {
		lines = append(lines, OutputLine{
			Text:  fmt.Sprintf("  %-5s %12d Hz  %10.4f MHz", id, machine.ClockFrequency(id), float64(ClockDomainFreq(dev, id)/sim.MHz)),
			Color: colorWhite,
		})
	}
	return lines
}
