// ccm_imx25.go - i.MX25 Clock Control Module

package main

import "github.com/golang/glog"

var imx25RegNames = []string{
	"MPCTL", "UPCTL", "CCTL",
	"CGCR0", "CGCR1", "CGCR2",
	"PCDR0", "PCDR1", "PCDR2", "PCDR3",
	"RCSR", "CRDR",
	"DCVR0", "DCVR1", "DCVR2", "DCVR3",
	"LTR0", "LTR1", "LTR2", "LTR3",
	"LTBR0", "LTBR1",
	"PMCR0", "PMCR1", "PMCR2",
	"MCR",
	"LPIMR0", "LPIMR1",
}

// Power-on values in register index order.
var imx25ResetValues = [IMX25_CCM_NUM_REGS]uint32{
	IMX25_CCM_MPCTL:     0x800b2c01,
	IMX25_CCM_UPCTL:     0x84002800,
	IMX25_CCM_CCTL:      0x40030000,
	IMX25_CCM_CGCR0:     0x028A0100,
	IMX25_CCM_CGCR0 + 1: 0x04008100,
	IMX25_CCM_CGCR0 + 2: 0x00000438,
	IMX25_CCM_PCDR0:     0x01010101,
	IMX25_CCM_PCDR0 + 1: 0x01010101,
	IMX25_CCM_PCDR0 + 2: 0x01010101,
	IMX25_CCM_PCDR0 + 3: 0x01010101,
	IMX25_CCM_PMCR0:     0x00A00000,
	IMX25_CCM_PMCR0 + 1: 0x0000A030,
	IMX25_CCM_PMCR0 + 2: 0x0000A030,
	IMX25_CCM_MCR:       0x43000000,
}

// IMX25CCM models the i.MX25 clock tree fed by a 24 MHz crystal:
// MPLL/UPLL -> MCU -> AHB -> IPG, plus the 32 kHz oscillator.
type IMX25CCM struct {
	rf   *RegisterFile
	diag DiagSink
}

// NewIMX25CCM creates the controller in its reset state.
func NewIMX25CCM(diag DiagSink) *IMX25CCM {
	diag = sinkOrDefault(diag)
	s := &IMX25CCM{
		rf:   NewRegisterFile(TYPE_IMX25_CCM, IMX25_CCM_NUM_REGS, imx25RegNames, nil, diag),
		diag: diag,
	}
	s.Reset()
	return s
}

func (s *IMX25CCM) TypeName() string           { return TYPE_IMX25_CCM }
func (s *IMX25CCM) Description() string        { return "i.MX25 Clock Control Module" }
func (s *IMX25CCM) MMIOSize() uint32           { return IMX25_CCM_MMIO_SIZE }
func (s *IMX25CCM) AccessPolicy() AccessPolicy { return wordAccess }
func (s *IMX25CCM) StateVersion() int          { return IMX25_CCM_STATE_VERSION }
func (s *IMX25CCM) Registers() *RegisterFile   { return s.rf }

func (s *IMX25CCM) cctl() uint32 {
	return s.rf.Get(IMX25_CCM_CCTL)
}

func (s *IMX25CCM) mpllClk() uint32 {
	if field(s.cctl(), CCTL_MPLL_BYPASS_SHIFT, CCTL_MPLL_BYPASS_MASK) != 0 {
		return IMX25_CKIH_FREQ
	}
	return CalcPLL(s.rf.Get(IMX25_CCM_MPCTL), IMX25_CKIH_FREQ)
}

func (s *IMX25CCM) upllClk() uint32 {
	return CalcPLL(s.rf.Get(IMX25_CCM_UPCTL), IMX25_CKIH_FREQ)
}

func (s *IMX25CCM) mcuClk() uint32 {
	cctl := s.cctl()
	div := 1 + field(cctl, CCTL_ARM_CLK_DIV_SHIFT, CCTL_ARM_CLK_DIV_MASK)
	if field(cctl, CCTL_ARM_SRC_SHIFT, CCTL_ARM_SRC_MASK) != 0 {
		return (s.mpllClk() * 3 / 4) / div
	}
	return s.mpllClk() / div
}

func (s *IMX25CCM) ahbClk() uint32 {
	return s.mcuClk() / (1 + field(s.cctl(), CCTL_AHB_CLK_DIV_SHIFT, CCTL_AHB_CLK_DIV_MASK))
}

func (s *IMX25CCM) ipgClk() uint32 {
	return s.ahbClk() / 2
}

var imx25Clocks = []ClockID{CLK_MPLL, CLK_UPLL, CLK_MCU, CLK_AHB, CLK_IPG, CLK_32K}

func (s *IMX25CCM) Clocks() []ClockID { return imx25Clocks }

// ClockFrequency implements ClockController.
func (s *IMX25CCM) ClockFrequency(clock ClockID) uint32 {
	var freq uint32

	switch clock {
	case NOCLK:
	case CLK_MPLL:
		freq = s.mpllClk()
	case CLK_UPLL:
		freq = s.upllClk()
	case CLK_MCU:
		freq = s.mcuClk()
	case CLK_AHB:
		freq = s.ahbClk()
	case CLK_IPG:
		freq = s.ipgClk()
	case CLK_32K:
		freq = CKIL_FREQ
	default:
		s.diag.UnsupportedClock(TYPE_IMX25_CCM, clock)
	}

	glog.V(2).Infof("[%s] clock %s = %d", TYPE_IMX25_CCM, clock, freq)
	return freq
}

// Reset loads the power-on table, then applies what the boot ROM does on a
// default boot: it switches the ARM to the 3/4 MPLL source and divides AHB
// by two. The override is a second write, not part of the power-on values.
func (s *IMX25CCM) Reset() {
	for i, v := range imx25ResetValues {
		s.rf.Set(i, v)
	}

	cctl := s.cctl()
	cctl |= insertField(1, CCTL_ARM_SRC_SHIFT, CCTL_ARM_SRC_MASK)
	cctl |= insertField(1, CCTL_AHB_CLK_DIV_SHIFT, CCTL_AHB_CLK_DIV_MASK)
	s.rf.Set(IMX25_CCM_CCTL, cctl)
}

// HandleRead handles MMIO reads from the CCM window.
func (s *IMX25CCM) HandleRead(offset uint32) uint32 {
	value := s.rf.Read(offset)
	glog.V(2).Infof("[%s] reg[0x%02X] => 0x%08X", TYPE_IMX25_CCM, offset, value)
	return value
}

// HandleWrite handles MMIO writes to the CCM window. The i.MX25 register
// file is plain storage: read-only hardware bits are not modelled.
func (s *IMX25CCM) HandleWrite(offset uint32, value uint32) {
	glog.V(2).Infof("[%s] reg[0x%02X] <= 0x%08X", TYPE_IMX25_CCM, offset, value)
	s.rf.Write(offset, value)
}
