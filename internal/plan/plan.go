// Package plan loads the declarative network plan from YAML and applies the
// smart defaults that keep user plans minimal: subnet and netmask derived
// from the VLAN id, alias defaulting to the network name.
package plan

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/wrtplan/wrtplan/internal/domain"
)

// rawPlan mirrors the YAML document. The legacy "global" block is accepted
// as an alias for "proxy" so old plans keep working.
type rawPlan struct {
	Proxy    *domain.ProxyConfig `yaml:"proxy"`
	Global   *legacyGlobal       `yaml:"global"`
	Networks []domain.Network    `yaml:"networks"`
}

type legacyGlobal struct {
	SideRouterIP string `yaml:"side_router_ip"`
	MainRouterIP string `yaml:"main_router_ip"`
	DHCPMode     string `yaml:"proxy_dhcp_mode"`
}

// Load reads and validates a plan file.
func Load(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlanNotFound, path)
		}
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a plan document, fills defaults and validates it. All
// structural problems are reported in one pass.
func Parse(data []byte) (*domain.Plan, error) {
	var raw rawPlan
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPlan, err)
	}

	p := &domain.Plan{
		Proxy:    raw.Proxy,
		Networks: raw.Networks,
	}
	if p.Proxy == nil && raw.Global != nil {
		p.Proxy = upgradeGlobal(raw.Global)
	}
	if p.Proxy != nil && p.Proxy.DHCPMode == "" {
		p.Proxy.DHCPMode = "main"
	}

	for i := range p.Networks {
		applyDefaults(&p.Networks[i])
	}

	if err := validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func upgradeGlobal(g *legacyGlobal) *domain.ProxyConfig {
	ip := g.SideRouterIP
	if ip == "" {
		ip = g.MainRouterIP
	}
	if ip == "" {
		ip = "192.168.1.2"
	}
	return &domain.ProxyConfig{SideRouterIP: ip, DHCPMode: g.DHCPMode}
}

func applyDefaults(n *domain.Network) {
	if n.Subnet == "" {
		n.Subnet = fmt.Sprintf("192.168.%d.1", n.VLANID)
	}
	if n.Netmask == "" {
		n.Netmask = "255.255.255.0"
	}
	if n.Alias == "" {
		n.Alias = n.Name
	}
	if n.Wifi != nil && n.Wifi.Password == "" {
		n.Wifi.Password = "auto_generate"
	}
}

// validate reports every structural problem at once instead of stopping at
// the first.
func validate(p *domain.Plan) error {
	var errs error

	if len(p.Networks) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: no networks declared", domain.ErrInvalidPlan))
	}

	seenVLAN := make(map[int]string)
	seenName := make(map[string]bool)
	for _, n := range p.Networks {
		if n.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: network with vlan_id %d has no name", domain.ErrInvalidPlan, n.VLANID))
			continue
		}
		if n.VLANID <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: network %q needs a positive vlan_id", domain.ErrInvalidPlan, n.Name))
		}
		if n.Role == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: network %q has no role", domain.ErrInvalidPlan, n.Name))
		}
		if prev, dup := seenVLAN[n.VLANID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%w: vlan_id %d used by both %q and %q", domain.ErrInvalidPlan, n.VLANID, prev, n.Name))
		}
		seenVLAN[n.VLANID] = n.Name
		if seenName[n.Name] {
			errs = multierr.Append(errs, fmt.Errorf("%w: duplicate network name %q", domain.ErrInvalidPlan, n.Name))
		}
		seenName[n.Name] = true
	}

	return errs
}
