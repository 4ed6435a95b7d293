package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshot_FileRoundTrip(t *testing.T) {
	for _, name := range DefaultDeviceRegistry().Names() {
		dev, err := DefaultDeviceRegistry().Create(name, &recordingSink{})
		if err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
		dev.HandleWrite(0x0C, 0x0BADF00D)
		dev.HandleWrite(0x14, 0x13579BDF)
		want := dev.Registers().Values()

		path := filepath.Join(t.TempDir(), "state.snap")
		if err := SaveSnapshotToFile(TakeDeviceSnapshot(dev), path); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		dev.Reset()

		snap, err := LoadSnapshotFromFile(path)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if err := RestoreDeviceSnapshot(dev, snap); err != nil {
			t.Fatalf("%s: restore: %v", name, err)
		}
		for i, v := range dev.Registers().Values() {
			if v != want[i] {
				t.Fatalf("%s: %s = 0x%08X, want 0x%08X", name, dev.Registers().Name(i), v, want[i])
			}
		}
	}
}

func TestSnapshot_RestoreBypassesWriteMasks(t *testing.T) {
	dev := NewIMX31CCM(&recordingSink{})
	snap := TakeDeviceSnapshot(dev)
	snap.Registers[IMX31_CCM_LTR1].Value = 0x11111111
	snap.Registers[IMX31_CCM_CCMR].Value = 0

	if err := RestoreDeviceSnapshot(dev, snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := dev.Registers().Get(IMX31_CCM_LTR1); got != 0x11111111 {
		t.Fatalf("LTR1 = 0x%08X, want 0x11111111", got)
	}
	if got := dev.Registers().Get(IMX31_CCM_CCMR); got != 0 {
		t.Fatalf("CCMR = 0x%08X, want 0", got)
	}
}

func TestSnapshot_DeviceMismatch(t *testing.T) {
	snap := TakeDeviceSnapshot(NewIMX25CCM(nil))
	err := RestoreDeviceSnapshot(NewIMX31CCM(nil), snap)
	if !errors.Is(err, ErrSnapshotDevice) {
		t.Fatalf("err = %v, want ErrSnapshotDevice", err)
	}
}

func TestSnapshot_VersionMismatch(t *testing.T) {
	dev := NewIMX31CCM(nil)
	snap := TakeDeviceSnapshot(dev)
	snap.Version = 1
	snap.Registers[IMX31_CCM_PDR1].Value = 0
	err := RestoreDeviceSnapshot(dev, snap)
	if !errors.Is(err, ErrSnapshotVersion) {
		t.Fatalf("err = %v, want ErrSnapshotVersion", err)
	}
	if dev.Registers().Get(IMX31_CCM_PDR1) != 0x49fcfe7f {
		t.Fatal("rejected snapshot modified the device")
	}
}

func TestSnapshot_LayoutMismatch(t *testing.T) {
	dev := NewIMX25CCM(nil)
	snap := TakeDeviceSnapshot(dev)
	snap.Registers = snap.Registers[:len(snap.Registers)-1]
	if err := RestoreDeviceSnapshot(dev, snap); !errors.Is(err, ErrSnapshotLayout) {
		t.Fatalf("short snapshot err = %v, want ErrSnapshotLayout", err)
	}

	snap = TakeDeviceSnapshot(dev)
	snap.Registers[3].Name = "BOGUS"
	if err := RestoreDeviceSnapshot(dev, snap); !errors.Is(err, ErrSnapshotLayout) {
		t.Fatalf("renamed register err = %v, want ErrSnapshotLayout", err)
	}
}

func TestSnapshot_BadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.snap")
	if err := os.WriteFile(path, []byte("IEMSxxxxxxxxxxxx"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshotFromFile(path); !errors.Is(err, ErrSnapshotMagic) {
		t.Fatalf("err = %v, want ErrSnapshotMagic", err)
	}

	empty := filepath.Join(t.TempDir(), "empty.snap")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshotFromFile(empty); !errors.Is(err, ErrSnapshotMagic) {
		t.Fatalf("empty file err = %v, want ErrSnapshotMagic", err)
	}
}

func TestSnapshot_Truncated(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, TakeDeviceSnapshot(NewIMX31CCM(nil))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data := buf.Bytes()
	if _, err := DecodeSnapshot(data[:len(data)/2]); err == nil {
		t.Fatal("truncated snapshot decoded")
	}
}

func TestSnapshot_FormatVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, TakeDeviceSnapshot(NewAwA10CCM())); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data := buf.Bytes()
	data[4] = 9
	if _, err := DecodeSnapshot(data); !errors.Is(err, ErrSnapshotFormat) {
		t.Fatalf("err = %v, want ErrSnapshotFormat", err)
	}
}

func TestSnapshot_LongNamesRejected(t *testing.T) {
	long := strings.Repeat("x", 256)

	snap := TakeDeviceSnapshot(NewAwA10CCM())
	snap.Device = long
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, snap); !errors.Is(err, ErrSnapshotName) {
		t.Fatalf("long device name: err = %v, want ErrSnapshotName", err)
	}

	snap = TakeDeviceSnapshot(NewAwA10CCM())
	snap.Registers[3].Name = long
	if err := EncodeSnapshot(&buf, snap); !errors.Is(err, ErrSnapshotName) {
		t.Fatalf("long register name: err = %v, want ErrSnapshotName", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("rejected snapshot wrote %d bytes", buf.Len())
	}

	snap = TakeDeviceSnapshot(NewAwA10CCM())
	snap.Registers[3].Name = long[:255]
	if err := EncodeSnapshot(&buf, snap); err != nil {
		t.Fatalf("255-byte name: %v", err)
	}
	got, err := DecodeSnapshot(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if got.Registers[3].Name != long[:255] {
		t.Fatalf("register name round trip lost %d bytes", 255-len(got.Registers[3].Name))
	}
}
