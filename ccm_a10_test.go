package main

import "testing"

var awA10WantAfterReset = [AW_A10_CCM_NUM_REGS]uint32{
	/* 00 */ 0xa1005000, 0x0a101010, 0x08100010, 0x00000000,
	/* 10 */ 0x0010d063, 0x00000000, 0x21081000, 0x00000000,
	/* 20 */ 0xb1059491, 0x14888020, 0x21009911, 0x00000000,
	/* 30 */ 0x0010d063, 0x00000000, 0x00000000, 0x00000000,
	/* 40 */ 0x00000000, 0x00000000, 0x00000000, 0x00000000,
	/* 50 */ 0x00138013, 0x00020010, 0x00000000, 0x00000000,
	/* 60 */ 0x00004140, 0x00000000, 0x00000020, 0x00010001,
	/* 70 */ 0x00000000, 0x00000000, 0x00000000, 0x00000000,
	/* 80 */ 0x00000000, 0x00000000, 0x82000004, 0x00000000,
	/* 90 */ 0x00000000, 0x00000000, 0x00000000, 0x00000000,
	/* a0 */ 0x00000000, 0x00000000, 0x00000000, 0x00000000,
	/* b0 */ 0x00000000, 0x00000000, 0x00000000, 0x00030000,
	/* c0 */ 0x00010000, 0x0000001f, 0x00000000, 0x00000000,
	// 0xd0 onwards resets to zero
}

func TestAwA10CCM_ResetTable(t *testing.T) {
	s := NewAwA10CCM()
	if len(awA10CCMResetValues) != 52 {
		t.Fatalf("reset table has %d entries, want 52", len(awA10CCMResetValues))
	}
	for i, want := range awA10WantAfterReset {
		if got := s.HandleRead(uint32(i * 4)); got != want {
			t.Fatalf("R%03X = 0x%08X, want 0x%08X", i*4, got, want)
		}
	}
}

func TestAwA10CCM_TailResetsToZero(t *testing.T) {
	s := NewAwA10CCM()
	for off := uint32(0x1fc); off >= 0xd0; off -= 4 {
		s.HandleWrite(off, 0xFFFFFFFF)
	}
	s.Reset()
	for off := uint32(0xd0); off < AW_A10_CCM_MMIO_SIZE; off += 4 {
		if got := s.HandleRead(off); got != 0 {
			t.Fatalf("R%03X = 0x%08X after reset, want 0", off, got)
		}
	}
}

func TestAwA10CCM_StoresEverything(t *testing.T) {
	s := NewAwA10CCM()
	for off := uint32(0); off < AW_A10_CCM_MMIO_SIZE; off += 4 {
		s.HandleWrite(off, ^off)
		if got := s.HandleRead(off); got != ^off {
			t.Fatalf("R%03X = 0x%08X, want 0x%08X", off, got, ^off)
		}
	}
}

func TestAwA10CCM_OutOfRangeIsSilent(t *testing.T) {
	s := NewAwA10CCM()
	before := s.Registers().Values()
	if got := s.HandleRead(AW_A10_CCM_MMIO_SIZE); got != 0 {
		t.Fatalf("read past end = 0x%08X, want 0", got)
	}
	s.HandleWrite(AW_A10_CCM_MMIO_SIZE+4, 0x12345678)
	for i, v := range s.Registers().Values() {
		if v != before[i] {
			t.Fatalf("R%03X changed by out of range write", i*4)
		}
	}
}

func TestAwA10CCM_NoClockTree(t *testing.T) {
	s := NewAwA10CCM()
	if _, ok := CCMDevice(s).(ClockController); ok {
		t.Fatal("A10 bank should not be a ClockController")
	}
	if got := GetClockFrequency(s, CLK_MCU); got != 0 {
		t.Fatalf("GetClockFrequency = %d, want 0", got)
	}
	if ListClocks(s) != nil {
		t.Fatal("A10 bank lists clocks")
	}
	if s.Registers().Name(0x20/4) != "R020" {
		t.Fatalf("register name = %q, want R020", s.Registers().Name(0x20/4))
	}
}
