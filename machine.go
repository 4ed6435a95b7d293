// machine.go - A minimal emulated machine hosting one clock control device

package main

import (
	"fmt"

	"github.com/golang/glog"
)

// MachineConfig selects and places the clock control device.
type MachineConfig struct {
	SoC      string          // registry name, e.g. "imx31.ccm"
	Base     uint32          // 0 picks the device's default base
	Registry *DeviceRegistry // nil uses DefaultDeviceRegistry
	Diag     DiagSink        // nil logs through glog
}

// Machine owns the bus and the CCM mapped on it. Everything reaches the
// device through the bus, the way a CPU would.
type Machine struct {
	bus      *MachineBus
	ccm      CCMDevice
	base     uint32
	registry *DeviceRegistry
}

// NewMachine builds the device from the registry, maps it and seals the bus.
func NewMachine(cfg MachineConfig) (*Machine, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = DefaultDeviceRegistry()
	}
	info, err := registry.Lookup(cfg.SoC)
	if err != nil {
		return nil, err
	}
	base := cfg.Base
	if base == 0 {
		base = info.Base
	}

	dev := info.New(sinkOrDefault(cfg.Diag))
	bus := NewMachineBus()
	if err := bus.MapIO(base, dev); err != nil {
		return nil, fmt.Errorf("building %s machine: %w", cfg.SoC, err)
	}
	bus.SealMappings()

	glog.V(1).Infof("machine: %s (%s) at $%08X, window 0x%X", dev.TypeName(), dev.Description(), base, dev.MMIOSize())

	return &Machine{
		bus:      bus,
		ccm:      dev,
		base:     base,
		registry: registry,
	}, nil
}

func (m *Machine) Bus() *MachineBus          { return m.bus }
func (m *Machine) CCM() CCMDevice            { return m.ccm }
func (m *Machine) Base() uint32              { return m.base }
func (m *Machine) Registry() *DeviceRegistry { return m.registry }

// ReadReg reads the CCM register at a device-relative offset through the bus.
func (m *Machine) ReadReg(offset uint32) (uint32, bool) {
	return m.bus.Read(m.base+offset, 4)
}

// WriteReg writes the CCM register at a device-relative offset through the bus.
func (m *Machine) WriteReg(offset uint32, value uint32) bool {
	return m.bus.Write(m.base+offset, 4, value)
}

// ClockFrequency queries the installed controller.
func (m *Machine) ClockFrequency(clock ClockID) uint32 {
	return GetClockFrequency(m.ccm, clock)
}

// SaveState writes the CCM register file to path.
func (m *Machine) SaveState(path string) error {
	return SaveSnapshotToFile(TakeDeviceSnapshot(m.ccm), path)
}

// LoadState restores the CCM register file from path.
func (m *Machine) LoadState(path string) error {
	snap, err := LoadSnapshotFromFile(path)
	if err != nil {
		return err
	}
	return RestoreDeviceSnapshot(m.ccm, snap)
}
