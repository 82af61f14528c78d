package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/ports"
	"github.com/wrtplan/wrtplan/internal/uci"
)

// switchChipStrategy wires networks through a legacy switch chip's VLAN
// tables. Interfaces bind to "<cpuInterface>.<vid>" single-port bridges; the
// CPU port is a tagged member of every VLAN.
type switchChipStrategy struct {
	chip   *domain.SwitchChip
	exec   uci.Executor
	logger *zap.Logger
}

func (s *switchChipStrategy) Name() string { return "Swconfig" }

func (s *switchChipStrategy) ConfigureBase() {
	chip := s.chip
	s.logger.Info("configuring switch chip",
		zap.String("switch", chip.Name),
		zap.Int("cpu_port", chip.CPUPort),
		zap.Ints("lan_ports", chip.LANPorts),
	)

	base := "network." + chip.Name
	s.exec.Set(base, "switch")
	s.exec.Set(base+".name", chip.Name)
	s.exec.Set(base+".reset", "1")
	s.exec.Set(base+".enable_vlan", "1")

	// The reset flag clears the chip's implicit VLAN 2, which normally
	// carries WAN traffic. Re-declare it up front so the uplink survives
	// the reconfiguration.
	if chip.WANPort != chip.CPUPort {
		wanPorts := fmt.Sprintf("%d %dt", chip.WANPort, chip.CPUPort)
		s.logger.Info("preserving WAN VLAN", zap.String("ports", wanPorts))

		section := s.exec.Add("network", "switch_vlan")
		s.exec.Set(section+".device", chip.Name)
		s.exec.Set(section+".vlan", "2")
		s.exec.Set(section+".ports", wanPorts)
	}
}

func (s *switchChipStrategy) ConfigureVLAN(net domain.Network) {
	portsStr := s.vlanPorts(net)
	s.logger.Info("switch-vlan configured",
		zap.String("network", net.Name),
		zap.Int("vlan", net.VLANID),
		zap.String("ports", portsStr),
	)

	section := s.exec.Add("network", "switch_vlan")
	s.exec.Set(section+".device", s.chip.Name)
	s.exec.Set(section+".vlan", strconv.Itoa(net.VLANID))
	s.exec.Set(section+".ports", portsStr)
}

// vlanPorts composes the chip's ports string for one network. The CPU port
// is always a tagged member; LAN membership depends on the pinned ports, or
// on the VLAN 1 convention when none are pinned.
func (s *switchChipStrategy) vlanPorts(net domain.Network) string {
	chip := s.chip
	cpu := fmt.Sprintf("%dt", chip.CPUPort)

	available := make([]string, len(chip.LANPorts))
	for i, p := range chip.LANPorts {
		available[i] = strconv.Itoa(p)
	}

	var members []string
	switch {
	case len(net.Ports) > 0:
		for _, a := range ports.Resolve(net.Ports, available, s.logger) {
			if a.Tagged {
				members = append(members, a.Port+"t")
			} else {
				members = append(members, a.Port)
			}
		}
	case net.VLANID == 1:
		members = append(members, available...)
	}

	return strings.Join(append(members, cpu), " ")
}

func (s *switchChipStrategy) ConfigureInterface(net domain.Network) {
	ifname := fmt.Sprintf("%s.%d", s.chip.CPUInterface, net.VLANID)
	s.logger.Info("binding interface",
		zap.String("network", net.Name),
		zap.String("ifname", ifname),
		zap.String("addr", net.Subnet+"/"+net.Netmask),
	)

	base := "network." + net.Name
	s.exec.Set(base, "interface")
	s.exec.Set(base+".type", "bridge")
	s.exec.Set(base+".ifname", ifname)
	s.exec.Set(base+".proto", "static")
	s.exec.Set(base+".ipaddr", net.Subnet)
	s.exec.Set(base+".netmask", net.Netmask)
}
