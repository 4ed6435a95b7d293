// ccm_imx31.go - i.MX31 Clock Control Module

package main

import "github.com/golang/glog"

var imx31RegNames = []string{
	IMX31_CCM_CCMR:      "CCMR",
	IMX31_CCM_PDR0:      "PDR0",
	IMX31_CCM_PDR1:      "PDR1",
	IMX31_CCM_RCSR:      "RCSR",
	IMX31_CCM_MPCTL:     "MPCTL",
	IMX31_CCM_UPCTL:     "UPCTL",
	IMX31_CCM_SPCTL:     "SPCTL",
	IMX31_CCM_COSR:      "COSR",
	IMX31_CCM_CGR0:      "CGR0",
	IMX31_CCM_CGR0 + 1:  "CGR1",
	IMX31_CCM_CGR0 + 2:  "CGR2",
	IMX31_CCM_WIMR:      "WIMR",
	IMX31_CCM_LDC:       "LDC",
	IMX31_CCM_DCVR0:     "DCVR0",
	IMX31_CCM_DCVR0 + 1: "DCVR1",
	IMX31_CCM_DCVR0 + 2: "DCVR2",
	IMX31_CCM_DCVR0 + 3: "DCVR3",
	IMX31_CCM_LTR0:      "LTR0",
	IMX31_CCM_LTR1:      "LTR1",
	IMX31_CCM_LTR0 + 2:  "LTR2",
	IMX31_CCM_LTR0 + 3:  "LTR3",
	IMX31_CCM_LTBR0:     "LTBR0",
	IMX31_CCM_LTBR0 + 1: "LTBR1",
	IMX31_CCM_PMCR0:     "PMCR0",
	IMX31_CCM_PMCR0 + 1: "PMCR1",
	IMX31_CCM_PDR2:      "PDR2",
}

// Write policies for the registers that are not plain storage.
var imx31RegPolicies = map[int]RegPolicy{
	IMX31_CCM_CCMR:  {Writable: IMX31_CCMR_WRITE_MASK, Forced: CCMR_FPMF},
	IMX31_CCM_PDR0:  {Writable: IMX31_PDR0_WRITE_MASK},
	IMX31_CCM_MPCTL: {Writable: IMX31_MPCTL_WRITE_MASK},
	IMX31_CCM_SPCTL: {Writable: IMX31_SPCTL_WRITE_MASK},
	IMX31_CCM_LTR1:  {Ignored: true},
}

// IMX31CCM models the i.MX31 clock tree fed by a 26 MHz crystal or by the
// 32 kHz oscillator multiplied by 1024: REF -> MCU -> HSP -> IPG.
type IMX31CCM struct {
	rf   *RegisterFile
	diag DiagSink
}

// NewIMX31CCM creates the controller in its reset state.
func NewIMX31CCM(diag DiagSink) *IMX31CCM {
	diag = sinkOrDefault(diag)
	s := &IMX31CCM{
		rf:   NewRegisterFile(TYPE_IMX31_CCM, IMX31_CCM_NUM_REGS, imx31RegNames, imx31RegPolicies, diag),
		diag: diag,
	}
	s.Reset()
	return s
}

func (s *IMX31CCM) TypeName() string           { return TYPE_IMX31_CCM }
func (s *IMX31CCM) Description() string        { return "i.MX31 Clock Control Module" }
func (s *IMX31CCM) MMIOSize() uint32           { return IMX31_CCM_MMIO_SIZE }
func (s *IMX31CCM) AccessPolicy() AccessPolicy { return wordAccess }
func (s *IMX31CCM) StateVersion() int          { return IMX31_CCM_STATE_VERSION }
func (s *IMX31CCM) Registers() *RegisterFile   { return s.rf }

func (s *IMX31CCM) refClk() uint32 {
	if s.rf.Get(IMX31_CCM_CCMR)&CCMR_PRCS == CCMR_PRCS_CKIL {
		return CKIL_FREQ * 1024
	}
	return IMX31_CKIH_FREQ
}

func (s *IMX31CCM) mcuClk() uint32 {
	ccmr := s.rf.Get(IMX31_CCM_CCMR)
	if ccmr&CCMR_MDS != 0 || ccmr&CCMR_MPE == 0 {
		return s.refClk()
	}
	return CalcPLL(s.rf.Get(IMX31_CCM_MPCTL), s.refClk())
}

func (s *IMX31CCM) hspClk() uint32 {
	return s.mcuClk() / (1 + field(s.rf.Get(IMX31_CCM_PDR0), PDR0_HSP_PODF_SHIFT, PDR0_HSP_PODF_MASK))
}

func (s *IMX31CCM) ipgClk() uint32 {
	return s.hspClk() / (1 + field(s.rf.Get(IMX31_CCM_PDR0), PDR0_IPG_PODF_SHIFT, PDR0_IPG_PODF_MASK))
}

var imx31Clocks = []ClockID{CLK_MCU, CLK_HSP, CLK_IPG, CLK_32K}

func (s *IMX31CCM) Clocks() []ClockID { return imx31Clocks }

// ClockFrequency implements ClockController.
func (s *IMX31CCM) ClockFrequency(clock ClockID) uint32 {
	var freq uint32

	switch clock {
	case NOCLK:
	case CLK_MCU:
		freq = s.mcuClk()
	case CLK_HSP:
		freq = s.hspClk()
	case CLK_IPG:
		freq = s.ipgClk()
	case CLK_32K:
		freq = CKIL_FREQ
	default:
		s.diag.UnsupportedClock(TYPE_IMX31_CCM, clock)
	}

	glog.V(2).Infof("[%s] clock %s = %d", TYPE_IMX31_CCM, clock, freq)
	return freq
}

// Reset clears the register file and loads the documented defaults.
func (s *IMX31CCM) Reset() {
	s.rf.Clear()
	s.rf.Set(IMX31_CCM_CCMR, 0x074b0b7b)
	s.rf.Set(IMX31_CCM_PDR0, 0xff870b48)
	s.rf.Set(IMX31_CCM_PDR1, 0x49fcfe7f)
	s.rf.Set(IMX31_CCM_RCSR, 0x007f0000)
	s.rf.Set(IMX31_CCM_MPCTL, PLL_PD(1)|PLL_MFD(0)|PLL_MFI(6)|PLL_MFN(0))
	s.rf.Set(IMX31_CCM_UPCTL, PLL_PD(1)|PLL_MFD(5)|PLL_MFI(7)|PLL_MFN(3))
	s.rf.Set(IMX31_CCM_SPCTL, PLL_PD(1)|PLL_MFD(4)|PLL_MFI(0xc)|PLL_MFN(1))
	s.rf.Set(IMX31_CCM_COSR, 0x00000280)
	for i := 0; i < 3; i++ {
		s.rf.Set(IMX31_CCM_CGR0+i, 0xffffffff)
	}
	s.rf.Set(IMX31_CCM_WIMR, 0xffffffff)
	s.rf.Set(IMX31_CCM_LDC, 0x0000000f)
	s.rf.Set(IMX31_CCM_LTR1, 0x00004040)
	s.rf.Set(IMX31_CCM_PMCR0, 0x80209828)
	s.rf.Set(IMX31_CCM_PMCR0+1, 0x00aa0000)
	s.rf.Set(IMX31_CCM_PDR2, 0x00000285)
}

// HandleRead handles MMIO reads from the CCM window.
func (s *IMX31CCM) HandleRead(offset uint32) uint32 {
	value := s.rf.Read(offset)
	glog.V(2).Infof("[%s] reg[%s] => 0x%08X", TYPE_IMX31_CCM, s.rf.Name(int(offset>>2)), value)
	return value
}

// HandleWrite handles MMIO writes. CCMR always reads back with FPMF set,
// PDR0/MPCTL/SPCTL keep their reserved bits and LTR1 cannot be changed.
func (s *IMX31CCM) HandleWrite(offset uint32, value uint32) {
	glog.V(2).Infof("[%s] reg[%s] <= 0x%08X", TYPE_IMX31_CCM, s.rf.Name(int(offset>>2)), value)
	s.rf.Write(offset, value)
}
