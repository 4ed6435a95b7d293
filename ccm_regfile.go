// ccm_regfile.go - Word-indexed register storage with per-register write policy

package main

// RegPolicy describes how guest writes land in one register. A zero
// RegPolicy is not valid; use regRW for plain storage.
type RegPolicy struct {
	Writable uint32 // bits the guest may change
	Forced   uint32 // bits set on every write regardless of value
	Ignored  bool   // writes are accepted and dropped
}

var regRW = RegPolicy{Writable: 0xFFFFFFFF}

// RegisterFile is the single backing store for a controller. Named
// registers are index constants into regs, never separate fields.
type RegisterFile struct {
	device   string
	regs     []uint32
	policies map[int]RegPolicy
	names    []string
	diag     DiagSink
}

// NewRegisterFile creates storage for count registers. Registers without an
// entry in policies are fully writable.
func NewRegisterFile(device string, count int, names []string, policies map[int]RegPolicy, diag DiagSink) *RegisterFile {
	return &RegisterFile{
		device:   device,
		regs:     make([]uint32, count),
		policies: policies,
		names:    names,
		diag:     sinkOrDefault(diag),
	}
}

// Len returns the number of 32-bit registers.
func (rf *RegisterFile) Len() int {
	return len(rf.regs)
}

// Size returns the register file size in bytes.
func (rf *RegisterFile) Size() uint32 {
	return uint32(len(rf.regs)) * 4
}

// Name returns the register name for a word index, or "???".
func (rf *RegisterFile) Name(index int) string {
	if index >= 0 && index < len(rf.names) && rf.names[index] != "" {
		return rf.names[index]
	}
	return "???"
}

// Policy returns the write policy of a register.
func (rf *RegisterFile) Policy(index int) RegPolicy {
	if p, ok := rf.policies[index]; ok {
		return p
	}
	return regRW
}

// Get reads a register by index without any checks beyond the slice bounds.
func (rf *RegisterFile) Get(index int) uint32 {
	return rf.regs[index]
}

// Set stores a register by index, bypassing the write policy. Used by reset
// and snapshot restore, which model hardware rather than guest writes.
func (rf *RegisterFile) Set(index int, value uint32) {
	rf.regs[index] = value
}

// Clear zeroes every register.
func (rf *RegisterFile) Clear() {
	for i := range rf.regs {
		rf.regs[i] = 0
	}
}

// Values returns a copy of the register contents in index order.
func (rf *RegisterFile) Values() []uint32 {
	out := make([]uint32, len(rf.regs))
	copy(out, rf.regs)
	return out
}

// Read returns the word at a byte offset. Offsets past the end report one
// diagnostic and read as 0.
func (rf *RegisterFile) Read(offset uint32) uint32 {
	index := offset >> 2
	if index >= uint32(len(rf.regs)) {
		rf.diag.BadRegisterAccess(rf.device, offset, AccessRead)
		return 0
	}
	return rf.regs[index]
}

// Write applies a guest write at a byte offset through the register's
// policy. Offsets past the end report one diagnostic and change nothing.
func (rf *RegisterFile) Write(offset uint32, value uint32) {
	index := offset >> 2
	if index >= uint32(len(rf.regs)) {
		rf.diag.BadRegisterAccess(rf.device, offset, AccessWrite)
		return
	}
	p := rf.Policy(int(index))
	if p.Ignored {
		return
	}
	old := rf.regs[index]
	rf.regs[index] = (old &^ p.Writable) | (value & p.Writable) | p.Forced
}
