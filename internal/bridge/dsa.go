package bridge

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/ports"
	"github.com/wrtplan/wrtplan/internal/uci"
)

// dsaStrategy wires networks through a single br-lan bridge with VLAN
// filtering. Interfaces bind to "br-lan.<vid>".
type dsaStrategy struct {
	lanPorts []string
	exec     uci.Executor
	logger   *zap.Logger
}

func (s *dsaStrategy) Name() string { return "DSA" }

func (s *dsaStrategy) ConfigureBase() {
	s.logger.Info("creating br-lan bridge", zap.Strings("ports", s.lanPorts))

	s.exec.Set("network.lan_dev", "device")
	s.exec.Set("network.lan_dev.name", "br-lan")
	s.exec.Set("network.lan_dev.type", "bridge")
	for _, port := range s.lanPorts {
		s.exec.AddList("network.lan_dev.ports", port)
	}
	s.exec.Set("network.lan_dev.vlan_filtering", "1")
}

func (s *dsaStrategy) ConfigureVLAN(net domain.Network) {
	section := s.exec.Add("network", "bridge-vlan")
	s.exec.Set(section+".device", "br-lan")
	s.exec.Set(section+".vlan", strconv.Itoa(net.VLANID))

	switch {
	case len(net.Ports) > 0:
		// Pinned ports, tagged or untagged per token.
		for _, a := range ports.Resolve(net.Ports, s.lanPorts, s.logger) {
			member := a.Port
			if a.Tagged {
				member += ":t"
			}
			s.exec.AddList(section+".ports", member)
		}
	case net.VLANID == 1:
		// Default LAN: every physical port, untagged.
		for _, port := range s.lanPorts {
			s.exec.AddList(section+".ports", port)
		}
	default:
		// No physical members; the VLAN exists for WiFi or external
		// binding only.
	}

	s.logger.Info("bridge-vlan configured",
		zap.String("network", net.Name),
		zap.Int("vlan", net.VLANID),
	)
}

func (s *dsaStrategy) ConfigureInterface(net domain.Network) {
	device := fmt.Sprintf("br-lan.%d", net.VLANID)
	s.logger.Info("binding interface",
		zap.String("network", net.Name),
		zap.String("device", device),
		zap.String("addr", net.Subnet+"/"+net.Netmask),
	)

	base := "network." + net.Name
	s.exec.Set(base, "interface")
	s.exec.Set(base+".device", device)
	s.exec.Set(base+".proto", "static")
	s.exec.Set(base+".ipaddr", net.Subnet)
	s.exec.Set(base+".netmask", net.Netmask)
}
