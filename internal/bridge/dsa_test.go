package bridge

import (
	"testing"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/uci"
)

func newDSAStrategy(t *testing.T, lanPorts ...string) (Strategy, *uci.Recorder) {
	t.Helper()
	if len(lanPorts) == 0 {
		lanPorts = []string{"eth1", "eth2", "eth3"}
	}
	profile := &domain.HardwareProfile{
		Mode:         domain.BridgeModeDSA,
		WANInterface: "eth0",
		LANPorts:     lanPorts,
	}
	rec := uci.NewRecorder(zap.NewNop())
	s := New(profile, rec, zap.NewNop())
	if s.Name() != "DSA" {
		t.Fatalf("strategy = %s, want DSA", s.Name())
	}
	return s, rec
}

func TestDSAConfigureBase(t *testing.T) {
	s, rec := newDSAStrategy(t)
	s.ConfigureBase()

	assertCommand(t, rec, "uci set network.lan_dev='device'")
	assertCommand(t, rec, "uci set network.lan_dev.name='br-lan'")
	assertCommand(t, rec, "uci set network.lan_dev.type='bridge'")
	assertCommand(t, rec, "uci add_list network.lan_dev.ports='eth1'")
	assertCommand(t, rec, "uci add_list network.lan_dev.ports='eth2'")
	assertCommand(t, rec, "uci add_list network.lan_dev.ports='eth3'")
	assertCommand(t, rec, "uci set network.lan_dev.vlan_filtering='1'")
}

func TestDSAVLAN1AllPortsUntagged(t *testing.T) {
	s, rec := newDSAStrategy(t)
	s.ConfigureVLAN(domain.Network{Name: "lan", VLANID: 1})

	assertCommand(t, rec, "uci add network bridge-vlan")
	assertCommand(t, rec, "uci set network.@bridge-vlan[-1].device='br-lan'")
	assertCommand(t, rec, "uci set network.@bridge-vlan[-1].vlan='1'")
	assertCommand(t, rec, "uci add_list network.@bridge-vlan[-1].ports='eth1'")
	assertCommand(t, rec, "uci add_list network.@bridge-vlan[-1].ports='eth2'")
	assertCommand(t, rec, "uci add_list network.@bridge-vlan[-1].ports='eth3'")
}

func TestDSAVLANOtherNoMembers(t *testing.T) {
	s, rec := newDSAStrategy(t)
	s.ConfigureVLAN(domain.Network{Name: "iot", VLANID: 3})

	assertCommand(t, rec, "uci set network.@bridge-vlan[-1].vlan='3'")
	refuteCommand(t, rec, "add_list network.@bridge-vlan[-1].ports")
}

func TestDSAVLANPinnedPortResolvesLogicalName(t *testing.T) {
	s, rec := newDSAStrategy(t)
	s.ConfigureVLAN(domain.Network{
		Name:   "lan",
		VLANID: 1,
		Ports:  []string{"lan1"},
	})

	// lan1 is the first detected port, untagged.
	assertCommand(t, rec, "uci add_list network.@bridge-vlan[-1].ports='eth1'")
	refuteCommand(t, rec, "ports='eth2'")
}

func TestDSAVLANPinnedTaggedPort(t *testing.T) {
	s, rec := newDSAStrategy(t)
	s.ConfigureVLAN(domain.Network{
		Name:   "trunk",
		VLANID: 20,
		Ports:  []string{"lan2:t", "eth1"},
	})

	assertCommand(t, rec, "uci add_list network.@bridge-vlan[-1].ports='eth2:t'")
	assertCommand(t, rec, "uci add_list network.@bridge-vlan[-1].ports='eth1'")
}

func TestDSAConfigureInterface(t *testing.T) {
	s, rec := newDSAStrategy(t)
	s.ConfigureInterface(domain.Network{
		Name:    "iot",
		VLANID:  3,
		Subnet:  "192.168.3.1",
		Netmask: "255.255.255.0",
	})

	assertCommand(t, rec, "uci set network.iot='interface'")
	assertCommand(t, rec, "uci set network.iot.device='br-lan.3'")
	assertCommand(t, rec, "uci set network.iot.proto='static'")
	assertCommand(t, rec, "uci set network.iot.ipaddr='192.168.3.1'")
	assertCommand(t, rec, "uci set network.iot.netmask='255.255.255.0'")
}

func TestDSAUnresolvableTokenDropped(t *testing.T) {
	s, rec := newDSAStrategy(t, "eth1", "eth2")
	s.ConfigureVLAN(domain.Network{
		Name:   "lan",
		VLANID: 1,
		Ports:  []string{"lan9", "lan1"},
	})

	assertCommand(t, rec, "uci add_list network.@bridge-vlan[-1].ports='eth1'")
	refuteCommand(t, rec, "lan9")
}
