// component_reset.go - Reset() entry points for the machine (hard reset support)

package main

import "github.com/golang/glog"

// Reset performs a hard reset: every device on the bus returns to its
// power-on register values. Mappings are untouched.
func (m *Machine) Reset() {
	glog.V(1).Infof("machine: hard reset of %s", m.ccm.TypeName())
	m.bus.Reset()
}

// ResetDevice re-runs the reset handler of the CCM only.
func (m *Machine) ResetDevice() {
	m.ccm.Reset()
}
