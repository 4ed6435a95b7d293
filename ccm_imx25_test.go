package main

import "testing"

// Register file after power-on plus the boot ROM's CCTL update.
var imx25WantAfterReset = [IMX25_CCM_NUM_REGS]uint32{
	0x800b2c01, // MPCTL
	0x84002800, // UPCTL
	0x50032000, // CCTL: 0x40030000 | ARM_SRC | AHB_CLK_DIV=1
	0x028A0100, // CGCR0
	0x04008100, // CGCR1
	0x00000438, // CGCR2
	0x01010101, // PCDR0
	0x01010101, // PCDR1
	0x01010101, // PCDR2
	0x01010101, // PCDR3
	0x00000000, // RCSR
	0x00000000, // CRDR
	0x00000000, // DCVR0
	0x00000000, // DCVR1
	0x00000000, // DCVR2
	0x00000000, // DCVR3
	0x00000000, // LTR0
	0x00000000, // LTR1
	0x00000000, // LTR2
	0x00000000, // LTR3
	0x00000000, // LTBR0
	0x00000000, // LTBR1
	0x00A00000, // PMCR0
	0x0000A030, // PMCR1
	0x0000A030, // PMCR2
	0x43000000, // MCR
	0x00000000, // LPIMR0
	0x00000000, // LPIMR1
}

func TestIMX25CCM_ResetValues(t *testing.T) {
	sink := &recordingSink{}
	s := NewIMX25CCM(sink)

	for i, want := range imx25WantAfterReset {
		if got := s.HandleRead(uint32(i * 4)); got != want {
			t.Fatalf("%s = 0x%08X, want 0x%08X", s.Registers().Name(i), got, want)
		}
	}
	sink.expect(t, 0)
}

func TestIMX25CCM_ResetRestoresAfterWrites(t *testing.T) {
	s := NewIMX25CCM(&recordingSink{})
	for off := uint32(0); off < IMX25_CCM_NUM_REGS*4; off += 4 {
		s.HandleWrite(off, 0xDEADBEEF)
	}
	s.Reset()
	for i, want := range imx25WantAfterReset {
		if got := s.Registers().Get(i); got != want {
			t.Fatalf("after reset %s = 0x%08X, want 0x%08X", s.Registers().Name(i), got, want)
		}
	}
}

func TestIMX25CCM_DefaultClocks(t *testing.T) {
	sink := &recordingSink{}
	s := NewIMX25CCM(sink)

	tests := []struct {
		clock ClockID
		want  uint32
	}{
		{NOCLK, 0},
		{CLK_MPLL, 531988480},
		{CLK_UPLL, 239994880},
		{CLK_MCU, 199495680},
		{CLK_AHB, 99747840},
		{CLK_IPG, 49873920},
		{CLK_32K, CKIL_FREQ},
	}
	for _, tt := range tests {
		if got := s.ClockFrequency(tt.clock); got != tt.want {
			t.Fatalf("%s = %d, want %d", tt.clock, got, tt.want)
		}
	}
	sink.expect(t, 0)
}

func TestIMX25CCM_ArmSourceSelect(t *testing.T) {
	s := NewIMX25CCM(&recordingSink{})

	// ARM_SRC clear: MCU runs straight off MPLL / ARM_CLK_DIV.
	cctl := s.HandleRead(IMX25_CCM_CCTL * 4)
	s.HandleWrite(IMX25_CCM_CCTL*4, cctl&^(CCTL_ARM_SRC_MASK<<CCTL_ARM_SRC_SHIFT))

	if got := s.ClockFrequency(CLK_MCU); got != 265994240 {
		t.Fatalf("MCU = %d, want 265994240", got)
	}
	if got := s.ClockFrequency(CLK_AHB); got != 132997120 {
		t.Fatalf("AHB = %d, want 132997120", got)
	}
	if got := s.ClockFrequency(CLK_IPG); got != 66498560 {
		t.Fatalf("IPG = %d, want 66498560", got)
	}
}

func TestIMX25CCM_AHBDivider(t *testing.T) {
	s := NewIMX25CCM(&recordingSink{})
	base := s.HandleRead(IMX25_CCM_CCTL*4) &^ (CCTL_AHB_CLK_DIV_MASK << CCTL_AHB_CLK_DIV_SHIFT)

	for div := uint32(0); div <= CCTL_AHB_CLK_DIV_MASK; div++ {
		s.HandleWrite(IMX25_CCM_CCTL*4, base|insertField(div, CCTL_AHB_CLK_DIV_SHIFT, CCTL_AHB_CLK_DIV_MASK))
		mcu := s.ClockFrequency(CLK_MCU)
		ahb := s.ClockFrequency(CLK_AHB)
		if ahb != mcu/(div+1) {
			t.Fatalf("AHB div %d: AHB = %d, want %d", div, ahb, mcu/(div+1))
		}
		if ipg := s.ClockFrequency(CLK_IPG); ipg != ahb/2 {
			t.Fatalf("AHB div %d: IPG = %d, want %d", div, ipg, ahb/2)
		}
	}
}

func TestIMX25CCM_MPLLBypass(t *testing.T) {
	s := NewIMX25CCM(&recordingSink{})
	cctl := s.HandleRead(IMX25_CCM_CCTL * 4)
	s.HandleWrite(IMX25_CCM_CCTL*4, cctl|insertField(1, CCTL_MPLL_BYPASS_SHIFT, CCTL_MPLL_BYPASS_MASK))

	if got := s.ClockFrequency(CLK_MPLL); got != IMX25_CKIH_FREQ {
		t.Fatalf("bypassed MPLL = %d, want %d", got, IMX25_CKIH_FREQ)
	}
	if got := s.ClockFrequency(CLK_MCU); got != 9000000 {
		t.Fatalf("MCU = %d, want 9000000", got)
	}
	if got := s.ClockFrequency(CLK_UPLL); got != 239994880 {
		t.Fatalf("UPLL = %d, want 239994880", got)
	}
}

func TestIMX25CCM_WriteVisibleToNextQuery(t *testing.T) {
	s := NewIMX25CCM(&recordingSink{})
	reg := PLL_PD(1) | PLL_MFD(0) | PLL_MFI(6) | PLL_MFN(0)
	s.HandleWrite(IMX25_CCM_UPCTL*4, reg)
	if got := s.ClockFrequency(CLK_UPLL); got != 143996928 {
		t.Fatalf("UPLL = %d, want 143996928", got)
	}
}

func TestIMX25CCM_PlainStorage(t *testing.T) {
	s := NewIMX25CCM(&recordingSink{})
	for off := uint32(0); off < IMX25_CCM_NUM_REGS*4; off += 4 {
		s.HandleWrite(off, 0xA5A5A5A5^off)
		if got := s.HandleRead(off); got != 0xA5A5A5A5^off {
			t.Fatalf("offset 0x%02X = 0x%08X, want 0x%08X", off, got, 0xA5A5A5A5^off)
		}
	}
}

func TestIMX25CCM_UnsupportedClock(t *testing.T) {
	sink := &recordingSink{}
	s := NewIMX25CCM(sink)

	for i, clock := range []ClockID{CLK_HSP, CLK_PER, ClockID(99)} {
		if got := s.ClockFrequency(clock); got != 0 {
			t.Fatalf("%s = %d, want 0", clock, got)
		}
		sink.expect(t, i+1)
		ev := sink.events[i]
		if ev.kind != "clock" || ev.device != TYPE_IMX25_CCM || ev.clock != clock {
			t.Fatalf("diagnostic = %+v", ev)
		}
	}
}

func TestIMX25CCM_OutOfRange(t *testing.T) {
	sink := &recordingSink{}
	s := NewIMX25CCM(sink)
	before := s.Registers().Values()

	if got := s.HandleRead(0x70); got != 0 {
		t.Fatalf("read past end = 0x%08X, want 0", got)
	}
	sink.expect(t, 1)
	if sink.events[0].dir != AccessRead || sink.events[0].offset != 0x70 {
		t.Fatalf("diagnostic = %+v", sink.events[0])
	}

	s.HandleWrite(0xFFC, 0xFFFFFFFF)
	sink.expect(t, 2)
	if sink.events[1].dir != AccessWrite {
		t.Fatalf("diagnostic = %+v", sink.events[1])
	}
	for i, v := range s.Registers().Values() {
		if v != before[i] {
			t.Fatalf("%s changed to 0x%08X by out of range write", s.Registers().Name(i), v)
		}
	}
}
