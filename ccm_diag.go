// ccm_diag.go - Guest error reporting for clock controllers

package main

import "github.com/golang/glog"

// AccessDir tells a diagnostic which way a bad access was going.
type AccessDir int

const (
	AccessRead AccessDir = iota
	AccessWrite
)

func (d AccessDir) String() string {
	if d == AccessWrite {
		return "write"
	}
	return "read"
}

// DiagSink receives guest-error events. Every event is non-fatal: the
// device has already picked its defined result before reporting.
type DiagSink interface {
	BadRegisterAccess(device string, offset uint32, dir AccessDir)
	UnsupportedClock(device string, clock ClockID)
}

// glogSink is the default sink; guest errors are warnings, never failures.
type glogSink struct{}

func (glogSink) BadRegisterAccess(device string, offset uint32, dir AccessDir) {
	glog.Warningf("[%s] %s: Bad register at offset 0x%X", device, dir, offset)
}

func (glogSink) UnsupportedClock(device string, clock ClockID) {
	glog.Warningf("[%s] unsupported clock %d (%s)", device, int(clock), clock)
}

// DefaultDiagSink returns the glog backed sink used when a device is built
// without one.
func DefaultDiagSink() DiagSink {
	return glogSink{}
}

func sinkOrDefault(sink DiagSink) DiagSink {
	if sink == nil {
		return DefaultDiagSink()
	}
	return sink
}
