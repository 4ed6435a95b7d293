package main

import (
	"errors"
	"testing"
)

func TestDeviceRegistry_Default(t *testing.T) {
	r := DefaultDeviceRegistry()
	names := r.Names()
	want := []string{TYPE_AW_A10_CCM, TYPE_IMX25_CCM, TYPE_IMX31_CCM}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}

	for _, name := range names {
		dev, err := r.Create(name, nil)
		if err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
		if dev.TypeName() != name {
			t.Fatalf("Create(%s) built %s", name, dev.TypeName())
		}
	}
}

func TestDeviceRegistry_Unknown(t *testing.T) {
	_, err := DefaultDeviceRegistry().Lookup("imx6.ccm")
	if !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("err = %v, want ErrUnknownDevice", err)
	}
	if _, err := DefaultDeviceRegistry().Create("", nil); !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("Create(\"\") err = %v", err)
	}
}

func TestDeviceRegistry_Duplicate(t *testing.T) {
	info := DeviceInfo{Name: "x", New: func(DiagSink) CCMDevice { return NewAwA10CCM() }}
	if _, err := NewDeviceRegistry(info, info); err == nil {
		t.Fatal("duplicate registration accepted")
	}
	r, err := NewDeviceRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Register(DeviceInfo{Name: "y"}); err == nil {
		t.Fatal("registration without constructor accepted")
	}
}

func TestDeviceRegistry_Isolated(t *testing.T) {
	a := DefaultDeviceRegistry()
	b, _ := NewDeviceRegistry()
	if len(b.Names()) != 0 {
		t.Fatal("fresh registry is not empty")
	}
	if err := b.Register(DeviceInfo{Name: "z", New: func(DiagSink) CCMDevice { return NewAwA10CCM() }}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Lookup("z"); err == nil {
		t.Fatal("registries share state")
	}
}
