// Package domain contains the core entities shared by the wrtplan pipeline:
// the detected hardware profile, the declarative network plan, and the
// sentinel errors components agree on.
package domain

import "fmt"

// BridgeMode identifies which of the two switch-configuration paradigms the
// target device uses. The two are mutually exclusive; the mode is decided
// once per run by hardware detection and never changes afterwards.
type BridgeMode string

const (
	// BridgeModeDSA is the modern paradigm: one bridge device with VLAN
	// filtering, physical ports exposed as kernel interfaces.
	BridgeModeDSA BridgeMode = "dsa"

	// BridgeModeSwitchChip is the legacy paradigm: a dedicated switch
	// subsystem with explicit VLAN/port tables addressed by port number.
	BridgeModeSwitchChip BridgeMode = "swconfig"
)

// SwitchChip holds the parameters of a legacy switch chip. Present only when
// the profile mode is BridgeModeSwitchChip.
type SwitchChip struct {
	// Name is the chip identifier, e.g. "switch0".
	Name string

	// CPUPort is the port wired to the SoC. It is a tagged member of every
	// VLAN the chip participates in.
	CPUPort int

	// CPUInterface is the kernel interface behind the CPU port, without any
	// VLAN suffix, e.g. "eth0".
	CPUInterface string

	// LANPorts are the user-facing ports, ascending, excluding CPUPort and
	// WANPort.
	LANPorts []int

	// WANPort is the port wired to the upstream jack.
	WANPort int
}

// HardwareProfile is the result of hardware detection. It is immutable after
// construction; everything downstream (port allocation, bridge strategies)
// only reads it.
type HardwareProfile struct {
	Mode BridgeMode

	// WANInterface is the upstream interface name, e.g. "eth0" or "wan".
	WANInterface string

	// LANPorts lists the LAN interface names in DSA mode, ascending. Empty
	// in switch-chip mode, where ports live in Switch.
	LANPorts []string

	// Switch is populated in switch-chip mode only.
	Switch *SwitchChip
}

// LANPortCount reports how many physical LAN ports the profile carries,
// regardless of paradigm. The port allocator hands out 1-based logical
// indices up to this count.
func (p *HardwareProfile) LANPortCount() int {
	if p.Mode == BridgeModeSwitchChip && p.Switch != nil {
		return len(p.Switch.LANPorts)
	}
	return len(p.LANPorts)
}

// String implements fmt.Stringer for log output.
func (p *HardwareProfile) String() string {
	if p.Mode == BridgeModeSwitchChip && p.Switch != nil {
		return fmt.Sprintf("swconfig(%s cpu=%d wan=%d lan=%v)",
			p.Switch.Name, p.Switch.CPUPort, p.Switch.WANPort, p.Switch.LANPorts)
	}
	return fmt.Sprintf("dsa(wan=%s lan=%v)", p.WANInterface, p.LANPorts)
}
