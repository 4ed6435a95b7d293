// machine_bus.go - MMIO dispatch bus for the CCM machine

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
machine_bus.go - Machine Bus for the CCM Engine

This module routes guest accesses to the clock control devices. A device is
mapped at a base address and owns the window [base, base+MMIOSize()). Every
access is decoded into a device-relative byte offset before the device sees
it, and the device's declared access policy is enforced here so that the
devices themselves never handle a short or unaligned access.

Core Features:

    Window registration with overlap detection.
    Access-size and alignment checks per device (AccessPolicy).
    Little-endian sub-word reads and writes for devices without a policy.
    Sealing: once the machine starts no mapping may change.

Faults (unmapped address, rejected access size) are reported through glog
and surfaced to the caller as a false "ok" result. A fault never reaches the
device.
*/

package main

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/golang/glog"
)

// ErrMappingOverlap is returned by MapIO when two windows would overlap.
var ErrMappingOverlap = errors.New("mmio window overlaps an existing mapping")

// IORegion is one mapped device window.
type IORegion struct {
	start  uint32
	end    uint32 // inclusive
	device CCMDevice
	policy AccessPolicy
}

// MachineBus routes 32-bit bus accesses to a set of CCM devices.
type MachineBus struct {
	regions []IORegion // sorted by start
	sealed  atomic.Bool
}

func NewMachineBus() *MachineBus {
	return &MachineBus{}
}

// SealMappings prevents further MapIO calls.
func (bus *MachineBus) SealMappings() {
	bus.sealed.CompareAndSwap(false, true)
}

// MapIO places dev at base. Mapping after SealMappings is a programming
// error and panics.
func (bus *MachineBus) MapIO(base uint32, dev CCMDevice) error {
	if bus.sealed.Load() {
		panic(fmt.Sprintf("MapIO called after execution started (mapping %s at $%08X)", dev.TypeName(), base))
	}
	size := dev.MMIOSize()
	if size == 0 || uint64(base)+uint64(size) > 1<<32 {
		return fmt.Errorf("map %s at $%08X: bad window size 0x%X", dev.TypeName(), base, size)
	}
	region := IORegion{
		start:  base,
		end:    base + size - 1,
		device: dev,
		policy: dev.AccessPolicy(),
	}
	for _, r := range bus.regions {
		if region.start <= r.end && r.start <= region.end {
			return fmt.Errorf("map %s at $%08X: %w (%s)", dev.TypeName(), base, ErrMappingOverlap, r.device.TypeName())
		}
	}
	bus.regions = append(bus.regions, region)
	sort.Slice(bus.regions, func(i, j int) bool { return bus.regions[i].start < bus.regions[j].start })
	return nil
}

// Regions returns the mapped windows in address order.
func (bus *MachineBus) Regions() []IORegion {
	out := make([]IORegion, len(bus.regions))
	copy(out, bus.regions)
	return out
}

func (bus *MachineBus) findIORegion(addr uint32) *IORegion {
	i := sort.Search(len(bus.regions), func(i int) bool { return bus.regions[i].end >= addr })
	if i < len(bus.regions) && bus.regions[i].start <= addr {
		return &bus.regions[i]
	}
	return nil
}

func (bus *MachineBus) route(addr uint32, size int, dir AccessDir) (*IORegion, uint32, bool) {
	if size != 1 && size != 2 && size != 4 {
		glog.Warningf("bus: %s of size %d at $%08X", dir, size, addr)
		return nil, 0, false
	}
	region := bus.findIORegion(addr)
	if region == nil {
		glog.Warningf("bus: %s to unmapped address $%08X", dir, addr)
		return nil, 0, false
	}
	offset := addr - region.start
	if uint64(addr)+uint64(size)-1 > uint64(region.end) {
		glog.Warningf("bus: %d byte %s at $%08X crosses the end of %s", size, dir, addr, region.device.TypeName())
		return nil, 0, false
	}
	if !region.policy.allows(offset, size) {
		glog.Warningf("bus: %s rejects %d byte %s at offset 0x%X", region.device.TypeName(), size, dir, offset)
		return nil, 0, false
	}
	// Devices are word-organised; split accesses are not generated.
	if int(offset&3)+size > 4 {
		glog.Warningf("bus: %d byte %s at offset 0x%X straddles a word of %s", size, dir, offset, region.device.TypeName())
		return nil, 0, false
	}
	return region, offset, true
}

// Read performs a guest read of size bytes.
func (bus *MachineBus) Read(addr uint32, size int) (uint32, bool) {
	region, offset, ok := bus.route(addr, size, AccessRead)
	if !ok {
		return 0, false
	}
	if size == 4 && offset%4 == 0 {
		return region.device.HandleRead(offset), true
	}
	word := region.device.HandleRead(offset &^ 3)
	shift := (offset & 3) * 8
	return (word >> shift) & sizeMask(size), true
}

// Write performs a guest write of size bytes. Sub-word writes to devices
// without a policy merge into the containing word.
func (bus *MachineBus) Write(addr uint32, size int, value uint32) bool {
	region, offset, ok := bus.route(addr, size, AccessWrite)
	if !ok {
		return false
	}
	if size == 4 && offset%4 == 0 {
		region.device.HandleWrite(offset, value)
		return true
	}
	aligned := offset &^ 3
	shift := (offset & 3) * 8
	mask := sizeMask(size) << shift
	word := region.device.HandleRead(aligned)
	word = (word &^ mask) | ((value << shift) & mask)
	region.device.HandleWrite(aligned, word)
	return true
}

func sizeMask(size int) uint32 {
	switch size {
	case 1:
		return 0xFF
	case 2:
		return 0xFFFF
	}
	return 0xFFFFFFFF
}

func (bus *MachineBus) Read32(addr uint32) uint32 {
	v, _ := bus.Read(addr, 4)
	return v
}

func (bus *MachineBus) Write32(addr uint32, value uint32) {
	bus.Write(addr, 4, value)
}

// Reset resets every mapped device.
func (bus *MachineBus) Reset() {
	for _, r := range bus.regions {
		r.device.Reset()
	}
}
