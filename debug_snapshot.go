// debug_snapshot.go - CCM register file snapshot for save/load

package main

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

const (
	snapshotMagic   = "CCMS"
	snapshotVersion = 1
)

var (
	ErrSnapshotMagic   = errors.New("invalid snapshot magic")
	ErrSnapshotFormat  = errors.New("unsupported snapshot format version")
	ErrSnapshotDevice  = errors.New("snapshot belongs to a different device")
	ErrSnapshotVersion = errors.New("snapshot state version mismatch")
	ErrSnapshotLayout  = errors.New("snapshot register layout mismatch")
	ErrSnapshotName    = errors.New("name too long for snapshot")
)

// Names are stored with a one-byte length prefix.
const maxSnapshotName = 0xFF

// RegisterValue is one named register in a snapshot.
type RegisterValue struct {
	Name  string
	Value uint32
}

// DeviceSnapshot is the persisted state of one clock control device: its
// whole register file in index order, tagged with the device's state version.
type DeviceSnapshot struct {
	Device    string
	Version   int
	Registers []RegisterValue
}

// TakeDeviceSnapshot captures the register file of dev.
func TakeDeviceSnapshot(dev CCMDevice) *DeviceSnapshot {
	rf := dev.Registers()
	regs := make([]RegisterValue, rf.Len())
	for i := range regs {
		regs[i] = RegisterValue{Name: rf.Name(i), Value: rf.Get(i)}
	}
	return &DeviceSnapshot{
		Device:    dev.TypeName(),
		Version:   dev.StateVersion(),
		Registers: regs,
	}
}

// RestoreDeviceSnapshot loads snap into dev. Nothing is written unless the
// snapshot matches the device, its state version and its register layout.
func RestoreDeviceSnapshot(dev CCMDevice, snap *DeviceSnapshot) error {
	if snap.Device != dev.TypeName() {
		return fmt.Errorf("%w: have %q, want %q", ErrSnapshotDevice, snap.Device, dev.TypeName())
	}
	if snap.Version != dev.StateVersion() {
		return fmt.Errorf("%w: %s v%d, device is v%d", ErrSnapshotVersion, snap.Device, snap.Version, dev.StateVersion())
	}
	rf := dev.Registers()
	if len(snap.Registers) != rf.Len() {
		return fmt.Errorf("%w: %d registers, device has %d", ErrSnapshotLayout, len(snap.Registers), rf.Len())
	}
	for i, r := range snap.Registers {
		if r.Name != rf.Name(i) {
			return fmt.Errorf("%w: register %d is %q, device has %q", ErrSnapshotLayout, i, r.Name, rf.Name(i))
		}
	}
	for i, r := range snap.Registers {
		rf.Set(i, r.Value)
	}
	return nil
}

// EncodeSnapshot writes snap in the on-disk format.
func EncodeSnapshot(w io.Writer, snap *DeviceSnapshot) error {
	if len(snap.Device) > maxSnapshotName {
		return fmt.Errorf("%w: device name is %d bytes", ErrSnapshotName, len(snap.Device))
	}
	for i, r := range snap.Registers {
		if len(r.Name) > maxSnapshotName {
			return fmt.Errorf("%w: register %d is %d bytes", ErrSnapshotName, i, len(r.Name))
		}
	}

	var buf bytes.Buffer

	// Magic
	buf.WriteString(snapshotMagic)

	// Format version
	binary.Write(&buf, binary.LittleEndian, uint32(snapshotVersion))

	// Device type
	devBytes := []byte(snap.Device)
	buf.WriteByte(byte(len(devBytes)))
	buf.Write(devBytes)

	// Device state version
	binary.Write(&buf, binary.LittleEndian, uint32(snap.Version))

	// Register names
	binary.Write(&buf, binary.LittleEndian, uint32(len(snap.Registers)))
	for _, r := range snap.Registers {
		nameBytes := []byte(r.Name)
		buf.WriteByte(byte(len(nameBytes)))
		buf.Write(nameBytes)
	}

	// Register values, gzip-compressed
	words := make([]byte, 4*len(snap.Registers))
	for i, r := range snap.Registers {
		binary.LittleEndian.PutUint32(words[4*i:], r.Value)
	}
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(words); err != nil {
		return fmt.Errorf("compressing registers: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// DecodeSnapshot parses the on-disk format from data.
func DecodeSnapshot(data []byte) (*DeviceSnapshot, error) {
	r := bytes.NewReader(data)

	// Magic
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != snapshotMagic {
		return nil, fmt.Errorf("%w: %q", ErrSnapshotMagic, string(magic))
	}

	// Format version
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotFormat, version)
	}

	// Device type
	devLen, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading device name length: %w", err)
	}
	devName := make([]byte, devLen)
	if _, err := io.ReadFull(r, devName); err != nil {
		return nil, fmt.Errorf("reading device name: %w", err)
	}

	var stateVersion uint32
	if err := binary.Read(r, binary.LittleEndian, &stateVersion); err != nil {
		return nil, fmt.Errorf("reading state version: %w", err)
	}

	// Register names
	var regCount uint32
	if err := binary.Read(r, binary.LittleEndian, &regCount); err != nil {
		return nil, fmt.Errorf("reading register count: %w", err)
	}
	if regCount > 0x10000/4 {
		return nil, fmt.Errorf("%w: %d registers", ErrSnapshotLayout, regCount)
	}
	regs := make([]RegisterValue, regCount)
	for i := range regs {
		nameLen, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("reading register name length: %w", err)
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, fmt.Errorf("reading register name: %w", err)
		}
		regs[i].Name = string(name)
	}

	// Register values
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening gzip reader: %w", err)
	}
	defer gz.Close()

	words := make([]byte, 4*regCount)
	if _, err := io.ReadFull(gz, words); err != nil {
		return nil, fmt.Errorf("decompressing registers: %w", err)
	}
	for i := range regs {
		regs[i].Value = binary.LittleEndian.Uint32(words[4*i:])
	}

	return &DeviceSnapshot{
		Device:    string(devName),
		Version:   int(stateVersion),
		Registers: regs,
	}, nil
}

// SaveSnapshotToFile writes a snapshot to disk.
func SaveSnapshotToFile(snap *DeviceSnapshot, path string) error {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, snap); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// LoadSnapshotFromFile maps a snapshot file read-only and decodes it.
func LoadSnapshotFromFile(path string) (*DeviceSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("%s: %w: empty file", path, ErrSnapshotMagic)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	defer m.Unmap()

	snap, err := DecodeSnapshot(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}
