package roles

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/uci"
)

func TestRegistryGetUnknownRole(t *testing.T) {
	reg := NewDefaultRegistry("6,1.1.1.1", zap.NewNop())

	_, err := reg.Get("vpn")
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
	if !strings.Contains(err.Error(), "clean") {
		t.Errorf("error %q should list available roles", err)
	}
}

func TestRegistryDefaults(t *testing.T) {
	reg := NewDefaultRegistry("6,1.1.1.1", zap.NewNop())

	want := []string{"clean", "isolate", "proxy"}
	got := reg.Available()
	if len(got) != len(want) {
		t.Fatalf("available = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("available[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestProxyRoleMainMode(t *testing.T) {
	rec := uci.NewRecorder(zap.NewNop())
	role := NewProxyRole(zap.NewNop())
	net := domain.Network{Name: "lan", VLANID: 1, Role: domain.RoleProxy}

	role.ConfigureDHCP(rec, net, &domain.ProxyConfig{
		SideRouterIP: "192.168.1.2",
		DHCPMode:     "main",
	})

	cmds := strings.Join(rec.Commands(), "\n")
	for _, want := range []string{
		"uci add_list dhcp.lan.dhcp_option='3,192.168.1.2'",
		"uci add_list dhcp.lan.dhcp_option='6,192.168.1.2'",
		"uci set dhcp.lan.force='1'",
	} {
		if !strings.Contains(cmds, want) {
			t.Errorf("missing %q in:\n%s", want, cmds)
		}
	}
}

func TestProxyRoleSideMode(t *testing.T) {
	rec := uci.NewRecorder(zap.NewNop())
	role := NewProxyRole(zap.NewNop())
	net := domain.Network{Name: "lan", VLANID: 1, Role: domain.RoleProxy}

	role.ConfigureDHCP(rec, net, &domain.ProxyConfig{
		SideRouterIP: "192.168.1.2",
		DHCPMode:     "side",
	})

	cmds := strings.Join(rec.Commands(), "\n")
	if !strings.Contains(cmds, "uci set dhcp.lan.ignore='1'") {
		t.Errorf("side mode should ignore the subnet:\n%s", cmds)
	}
	if strings.Contains(cmds, "dhcp_option") {
		t.Errorf("side mode should not emit options:\n%s", cmds)
	}
}

func TestProxyRoleWithoutSideRouter(t *testing.T) {
	rec := uci.NewRecorder(zap.NewNop())
	role := NewProxyRole(zap.NewNop())

	role.ConfigureDHCP(rec, domain.Network{Name: "lan"}, nil)

	if len(rec.Commands()) != 0 {
		t.Errorf("no proxy config: nothing should be emitted, got %v", rec.Commands())
	}
}

func TestCleanAndIsolateEmitPublicDNS(t *testing.T) {
	for _, role := range []Role{
		NewCleanRole("6,223.5.5.5,114.114.114.114", zap.NewNop()),
		NewIsolateRole("6,223.5.5.5,114.114.114.114", zap.NewNop()),
	} {
		rec := uci.NewRecorder(zap.NewNop())
		role.ConfigureDHCP(rec, domain.Network{Name: "net"}, nil)

		cmds := strings.Join(rec.Commands(), "\n")
		if !strings.Contains(cmds, "uci add_list dhcp.net.dhcp_option='6,223.5.5.5,114.114.114.114'") {
			t.Errorf("public DNS option missing:\n%s", cmds)
		}
	}
}
