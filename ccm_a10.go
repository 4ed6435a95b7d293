// ccm_a10.go - Allwinner A10 Clock Controller Module register bank

package main

import "fmt"

// Power-on values for the first 0xD0 bytes; the rest of the bank resets to 0.
var awA10CCMResetValues = [...]uint32{
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
}

// The bank is undocumented here, so registers are named by offset.
func awA10RegNames() []string {
	names := make([]string, AW_A10_CCM_NUM_REGS)
	for i := range names {
		names[i] = fmt.Sprintf("R%03X", i*4)
	}
	return names
}

// AwA10CCM is an opaque register bank. It decodes nothing and has no clock
// tree; guests get back whatever they stored.
type AwA10CCM struct {
	rf *RegisterFile
}

// NewAwA10CCM creates the bank in its reset state. The bank never reports
// diagnostics, so it takes no sink.
func NewAwA10CCM() *AwA10CCM {
	s := &AwA10CCM{
		rf: NewRegisterFile(TYPE_AW_A10_CCM, AW_A10_CCM_NUM_REGS, awA10RegNames(), nil, nil),
	}
	s.Reset()
	return s
}

func (s *AwA10CCM) TypeName() string           { return TYPE_AW_A10_CCM }
func (s *AwA10CCM) Description() string        { return "allwinner a10 ccm" }
func (s *AwA10CCM) MMIOSize() uint32           { return AW_A10_CCM_MMIO_SIZE }
func (s *AwA10CCM) AccessPolicy() AccessPolicy { return AccessPolicy{} }
func (s *AwA10CCM) StateVersion() int          { return AW_A10_CCM_STATE_VERSION }
func (s *AwA10CCM) Registers() *RegisterFile   { return s.rf }

// Reset zeroes the bank and loads the power-on table.
func (s *AwA10CCM) Reset() {
	s.rf.Clear()
	for i, v := range awA10CCMResetValues {
		s.rf.Set(i, v)
	}
}

// HandleRead returns the word holding offset. The bus only routes offsets
// inside the 0x200 window; anything past it reads as 0.
func (s *AwA10CCM) HandleRead(offset uint32) uint32 {
	index := int(offset / 4)
	if index >= s.rf.Len() {
		return 0
	}
	return s.rf.Get(index)
}

// HandleWrite stores value unmasked. Writes past the window are dropped.
func (s *AwA10CCM) HandleWrite(offset uint32, value uint32) {
	index := int(offset / 4)
	if index >= s.rf.Len() {
		return
	}
	s.rf.Set(index, value)
}
