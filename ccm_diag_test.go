package main

import "testing"

type diagEvent struct {
	kind   string // "access" or "clock"
	device string
	offset uint32
	dir    AccessDir
	clock  ClockID
}

// recordingSink collects diagnostics instead of logging them.
type recordingSink struct {
	events []diagEvent
}

func (r *recordingSink) BadRegisterAccess(device string, offset uint32, dir AccessDir) {
	r.events = append(r.events, diagEvent{kind: "access", device: device, offset: offset, dir: dir})
}

func (r *recordingSink) UnsupportedClock(device string, clock ClockID) {
	r.events = append(r.events, diagEvent{kind: "clock", device: device, clock: clock})
}

func (r *recordingSink) expect(t *testing.T, n int) {
	t.Helper()
	if len(r.events) != n {
		t.Fatalf("got %d diagnostics, want %d: %+v", len(r.events), n, r.events)
	}
}

func TestAccessDir_String(t *testing.T) {
	if AccessRead.String() != "read" || AccessWrite.String() != "write" {
		t.Fatalf("AccessDir strings = %q/%q", AccessRead, AccessWrite)
	}
}

func TestSinkOrDefault(t *testing.T) {
	if _, ok := sinkOrDefault(nil).(glogSink); !ok {
		t.Fatal("nil sink should fall back to glog")
	}
	rec := &recordingSink{}
	if sinkOrDefault(rec) != DiagSink(rec) {
		t.Fatal("explicit sink replaced")
	}
}

func TestClockID_Parse(t *testing.T) {
	for _, id := range []ClockID{CLK_MPLL, CLK_UPLL, CLK_MCU, CLK_HSP, CLK_AHB, CLK_IPG, CLK_PER, CLK_32K} {
		got, ok := ParseClockID(id.String())
		if !ok || got != id {
			t.Fatalf("ParseClockID(%q) = %v,%v", id.String(), got, ok)
		}
	}
	if _, ok := ParseClockID("bogus"); ok {
		t.Fatal("ParseClockID accepted bogus")
	}
}
