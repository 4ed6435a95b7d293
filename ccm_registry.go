// ccm_registry.go - Explicit table of the clock control devices a machine can host

package main

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownDevice is returned when a registry has no entry for a name.
var ErrUnknownDevice = errors.New("unknown ccm device")

// DeviceInfo describes one constructible device type.
type DeviceInfo struct {
	Name string
	Desc string
	Base uint32 // default placement on its SoC
	New  func(diag DiagSink) CCMDevice
}

// DeviceRegistry maps type names to constructors. It is built by the caller
// and handed to the machine; there is no package level table.
type DeviceRegistry struct {
	infos map[string]DeviceInfo
}

// NewDeviceRegistry builds a registry from infos. A duplicate name is an error.
func NewDeviceRegistry(infos ...DeviceInfo) (*DeviceRegistry, error) {
	r := &DeviceRegistry{infos: make(map[string]DeviceInfo, len(infos))}
	for _, info := range infos {
		if err := r.Register(info); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds info to the registry.
func (r *DeviceRegistry) Register(info DeviceInfo) error {
	if info.Name == "" || info.New == nil {
		return fmt.Errorf("register ccm device %q: name and constructor are required", info.Name)
	}
	if _, dup := r.infos[info.Name]; dup {
		return fmt.Errorf("register ccm device %q: already registered", info.Name)
	}
	r.infos[info.Name] = info
	return nil
}

// Lookup returns the entry for name.
func (r *DeviceRegistry) Lookup(name string) (DeviceInfo, error) {
	info, ok := r.infos[name]
	if !ok {
		return DeviceInfo{}, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
	}
	return info, nil
}

// Create constructs a device by name.
func (r *DeviceRegistry) Create(name string, diag DiagSink) (CCMDevice, error) {
	info, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return info.New(diag), nil
}

// Names returns the registered type names in sorted order.
func (r *DeviceRegistry) Names() []string {
	names := make([]string, 0, len(r.infos))
	for n := range r.infos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultDeviceRegistry returns the devices shipped with the engine.
func DefaultDeviceRegistry() *DeviceRegistry {
	r, err := NewDeviceRegistry(
		DeviceInfo{
			Name: TYPE_IMX25_CCM,
			Desc: "i.MX25 Clock Control Module",
			Base: IMX25_CCM_BASE,
			New:  func(diag DiagSink) CCMDevice { return NewIMX25CCM(diag) },
		},
		DeviceInfo{
			Name: TYPE_IMX31_CCM,
			Desc: "i.MX31 Clock Control Module",
			Base: IMX31_CCM_BASE,
			New:  func(diag DiagSink) CCMDevice { return NewIMX31CCM(diag) },
		},
		DeviceInfo{
			Name: TYPE_AW_A10_CCM,
			Desc: "allwinner a10 ccm",
			Base: AW_A10_CCM_BASE,
			New:  func(DiagSink) CCMDevice { return NewAwA10CCM() },
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}
