package bridge

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/uci"
)

func chipProfile() *domain.HardwareProfile {
	return &domain.HardwareProfile{
		Mode:         domain.BridgeModeSwitchChip,
		WANInterface: "eth0",
		Switch: &domain.SwitchChip{
			Name:         "switch0",
			CPUPort:      5,
			CPUInterface: "eth0",
			LANPorts:     []int{1, 2, 3},
			WANPort:      0,
		},
	}
}

func newChipStrategy(t *testing.T) (Strategy, *uci.Recorder) {
	t.Helper()
	rec := uci.NewRecorder(zap.NewNop())
	s := New(chipProfile(), rec, zap.NewNop())
	if s.Name() != "Swconfig" {
		t.Fatalf("strategy = %s, want Swconfig", s.Name())
	}
	return s, rec
}

func assertCommand(t *testing.T, rec *uci.Recorder, want string) {
	t.Helper()
	for _, cmd := range rec.Commands() {
		if cmd == want {
			return
		}
	}
	t.Errorf("command %q not emitted; got:\n%s", want, strings.Join(rec.Commands(), "\n"))
}

func refuteCommand(t *testing.T, rec *uci.Recorder, fragment string) {
	t.Helper()
	for _, cmd := range rec.Commands() {
		if strings.Contains(cmd, fragment) {
			t.Errorf("unexpected command %q matching %q", cmd, fragment)
		}
	}
}

func TestSwconfigConfigureBase(t *testing.T) {
	s, rec := newChipStrategy(t)
	s.ConfigureBase()

	assertCommand(t, rec, "uci set network.switch0='switch'")
	assertCommand(t, rec, "uci set network.switch0.name='switch0'")
	assertCommand(t, rec, "uci set network.switch0.reset='1'")
	assertCommand(t, rec, "uci set network.switch0.enable_vlan='1'")

	// WAN preservation: reset clears the implicit VLAN 2, so it is
	// re-declared with the detected wan and cpu ports.
	assertCommand(t, rec, "uci set network.@switch_vlan[-1].vlan='2'")
	assertCommand(t, rec, "uci set network.@switch_vlan[-1].ports='0 5t'")
}

func TestSwconfigBaseSkipsWANVLANWhenCPUIsWAN(t *testing.T) {
	profile := chipProfile()
	profile.Switch.WANPort = 5 // same as CPU
	rec := uci.NewRecorder(zap.NewNop())
	s := New(profile, rec, zap.NewNop())

	s.ConfigureBase()

	refuteCommand(t, rec, ".vlan='2'")
}

func TestSwconfigVLAN1AllPortsPlusCPU(t *testing.T) {
	s, rec := newChipStrategy(t)
	s.ConfigureVLAN(domain.Network{Name: "lan", VLANID: 1})

	assertCommand(t, rec, "uci add network switch_vlan")
	assertCommand(t, rec, "uci set network.@switch_vlan[-1].device='switch0'")
	assertCommand(t, rec, "uci set network.@switch_vlan[-1].vlan='1'")
	assertCommand(t, rec, "uci set network.@switch_vlan[-1].ports='1 2 3 5t'")
}

func TestSwconfigVLANOtherCPUOnly(t *testing.T) {
	s, rec := newChipStrategy(t)
	s.ConfigureVLAN(domain.Network{Name: "iot", VLANID: 3})

	assertCommand(t, rec, "uci set network.@switch_vlan[-1].ports='5t'")
}

func TestSwconfigVLANPinnedPorts(t *testing.T) {
	s, rec := newChipStrategy(t)
	s.ConfigureVLAN(domain.Network{
		Name:   "lan",
		VLANID: 1,
		Ports:  []string{"lan1", "lan2:t"},
	})

	assertCommand(t, rec, "uci set network.@switch_vlan[-1].ports='1 2t 5t'")
}

func TestSwconfigConfigureInterface(t *testing.T) {
	s, rec := newChipStrategy(t)
	s.ConfigureInterface(domain.Network{
		Name:    "lan",
		VLANID:  1,
		Subnet:  "192.168.1.1",
		Netmask: "255.255.255.0",
	})

	assertCommand(t, rec, "uci set network.lan='interface'")
	assertCommand(t, rec, "uci set network.lan.type='bridge'")
	assertCommand(t, rec, "uci set network.lan.ifname='eth0.1'")
	assertCommand(t, rec, "uci set network.lan.proto='static'")
	assertCommand(t, rec, "uci set network.lan.ipaddr='192.168.1.1'")
	assertCommand(t, rec, "uci set network.lan.netmask='255.255.255.0'")
}
