// ccm_interface.go - Common contract of the emulated Clock Control Modules

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

/*
ccm_interface.go - Clock Control Module device contract

Every CCM is an MMIO device: the bus hands it device-relative byte offsets
through HandleRead and HandleWrite, and the platform calls Reset on power-on
and on every system reset. Controllers that model a clock tree also satisfy
ClockController so that timers, UARTs and other consumers can ask for a
frequency without knowing which SoC they are attached to.

The frequency query re-derives the answer from the register file on every
call. Nothing is cached, so a guest write is visible to the very next query.
*/

package main

import "github.com/sarchlab/akita/v4/sim"

// ClockController reports the current frequency of a clock in Hz.
// NOCLK and clocks the controller does not model report 0.
type ClockController interface {
	ClockFrequency(clock ClockID) uint32
	// Clocks lists the clocks the controller models, NOCLK excluded.
	Clocks() []ClockID
}

// AccessPolicy is the access size contract a device declares to the bus.
// A zero policy accepts any size at any alignment.
type AccessPolicy struct {
	MinAccess int
	MaxAccess int
	Unaligned bool
}

func (p AccessPolicy) allows(addr uint32, size int) bool {
	if p.MinAccess == 0 && p.MaxAccess == 0 {
		return true
	}
	if size < p.MinAccess || size > p.MaxAccess {
		return false
	}
	if !p.Unaligned && addr%uint32(size) != 0 {
		return false
	}
	return true
}

// wordAccess is the policy of the i.MX CCMs: 32-bit aligned accesses only.
var wordAccess = AccessPolicy{MinAccess: 4, MaxAccess: 4, Unaligned: false}

// CCMDevice is implemented by every clock control device the machine can host.
type CCMDevice interface {
	TypeName() string
	Description() string
	MMIOSize() uint32
	AccessPolicy() AccessPolicy

	HandleRead(offset uint32) uint32
	HandleWrite(offset uint32, value uint32)
	Reset()

	// StateVersion tags the persisted register layout.
	StateVersion() int
	Registers() *RegisterFile
}

// GetClockFrequency dispatches a frequency query to whichever controller is
// installed. Devices without a clock tree answer 0.
func GetClockFrequency(dev CCMDevice, clock ClockID) uint32 {
	ctrl, ok := dev.(ClockController)
	if !ok {
		return 0
	}
	return ctrl.ClockFrequency(clock)
}

// ListClocks returns the clocks dev models, or nil for a plain register bank.
func ListClocks(dev CCMDevice) []ClockID {
	ctrl, ok := dev.(ClockController)
	if !ok {
		return nil
	}
	return ctrl.Clocks()
}

// ClockDomainFreq returns a clock as a simulation frequency domain for
// consumers that schedule ticks rather than count Hz.
func ClockDomainFreq(dev CCMDevice, clock ClockID) sim.Freq {
	return sim.Freq(GetClockFrequency(dev, clock)) * sim.Hz
}
