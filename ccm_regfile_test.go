package main

import "testing"

func newTestRegisterFile(sink DiagSink) *RegisterFile {
	return NewRegisterFile("test", 4, []string{"A", "B", "", "D"}, map[int]RegPolicy{
		1: {Writable: 0x0000FFFF, Forced: 0x80000000},
		2: {Ignored: true},
	}, sink)
}

func TestRegisterFile_PlainWrite(t *testing.T) {
	rf := newTestRegisterFile(&recordingSink{})
	rf.Write(0, 0xDEADBEEF)
	if got := rf.Read(0); got != 0xDEADBEEF {
		t.Fatalf("A = 0x%08X, want 0xDEADBEEF", got)
	}
}

func TestRegisterFile_MaskedWrite(t *testing.T) {
	rf := newTestRegisterFile(&recordingSink{})
	rf.Set(1, 0x12340000)
	rf.Write(4, 0xFFFFABCD)
	if got := rf.Read(4); got != 0x9234ABCD {
		t.Fatalf("B = 0x%08X, want 0x9234ABCD", got)
	}
}

func TestRegisterFile_IgnoredWrite(t *testing.T) {
	rf := newTestRegisterFile(&recordingSink{})
	rf.Set(2, 0x4040)
	rf.Write(8, 0)
	if got := rf.Read(8); got != 0x4040 {
		t.Fatalf("ignored register = 0x%08X, want 0x4040", got)
	}
}

func TestRegisterFile_SetBypassesPolicy(t *testing.T) {
	rf := newTestRegisterFile(&recordingSink{})
	rf.Set(1, 0x00000001)
	if got := rf.Get(1); got != 0x00000001 {
		t.Fatalf("Set stored 0x%08X, want 0x00000001", got)
	}
}

func TestRegisterFile_OutOfRange(t *testing.T) {
	sink := &recordingSink{}
	rf := newTestRegisterFile(sink)
	if got := rf.Read(0x10); got != 0 {
		t.Fatalf("read past end = 0x%08X", got)
	}
	rf.Write(0x40, 1)
	sink.expect(t, 2)
	if sink.events[0].device != "test" || sink.events[0].offset != 0x10 || sink.events[1].dir != AccessWrite {
		t.Fatalf("diagnostics = %+v", sink.events)
	}
}

func TestRegisterFile_Names(t *testing.T) {
	rf := newTestRegisterFile(nil)
	if rf.Name(0) != "A" || rf.Name(2) != "???" || rf.Name(9) != "???" {
		t.Fatalf("names = %q %q %q", rf.Name(0), rf.Name(2), rf.Name(9))
	}
	if rf.Len() != 4 || rf.Size() != 16 {
		t.Fatalf("Len/Size = %d/%d", rf.Len(), rf.Size())
	}
	if rf.Policy(3) != regRW || !rf.Policy(2).Ignored {
		t.Fatal("policy lookup wrong")
	}
}

func TestRegisterFile_ClearAndValues(t *testing.T) {
	rf := newTestRegisterFile(nil)
	rf.Set(3, 7)
	vals := rf.Values()
	vals[3] = 99
	if rf.Get(3) != 7 {
		t.Fatal("Values returned an alias of the backing store")
	}
	rf.Clear()
	for i, v := range rf.Values() {
		if v != 0 {
			t.Fatalf("register %d = 0x%08X after Clear", i, v)
		}
	}
}
