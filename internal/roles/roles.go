// Package roles implements the per-role behavior bundles. A role decides two
// things for its network: how DHCP answers look and what the firewall allows
// beyond the shared baseline. Adding a role means implementing Role and
// registering it; nothing else changes.
package roles

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/uci"
)

// Role is the strategy interface behind a plan's role names.
type Role interface {
	// ConfigureDHCP emits the role-specific DHCP options for a network.
	// The base dhcp section already exists when this is called.
	ConfigureDHCP(exec uci.Executor, net domain.Network, proxy *domain.ProxyConfig)

	// ConfigureFirewall emits role-specific rules on top of the baseline
	// zone the firewall configurator created.
	ConfigureFirewall(exec uci.Executor, zone string, net domain.Network)
}

// ProxyRole points clients at a side router: either this router keeps
// serving DHCP with gateway/DNS options rewritten, or the side router owns
// DHCP outright and this one ignores the subnet.
type ProxyRole struct {
	logger *zap.Logger
}

func NewProxyRole(logger *zap.Logger) *ProxyRole {
	return &ProxyRole{logger: logger.Named("role.proxy")}
}

func (r *ProxyRole) ConfigureDHCP(exec uci.Executor, net domain.Network, proxy *domain.ProxyConfig) {
	if proxy == nil {
		r.logger.Warn("no side router configured, gateway options skipped",
			zap.String("network", net.Name))
		return
	}

	base := "dhcp." + net.Name
	if proxy.DHCPMode == "side" {
		r.logger.Info("side router owns DHCP, ignoring subnet",
			zap.String("network", net.Name))
		exec.Set(base+".ignore", "1")
		return
	}

	r.logger.Info("pointing gateway and DNS at side router",
		zap.String("network", net.Name),
		zap.String("side_router", proxy.SideRouterIP),
	)
	exec.AddList(base+".dhcp_option", "3,"+proxy.SideRouterIP)
	exec.AddList(base+".dhcp_option", "6,"+proxy.SideRouterIP)
	exec.Set(base+".force", "1")
}

func (r *ProxyRole) ConfigureFirewall(uci.Executor, string, domain.Network) {}

// CleanRole is a direct-to-WAN network using public DNS.
type CleanRole struct {
	dnsOption string
	logger    *zap.Logger
}

func NewCleanRole(dnsOption string, logger *zap.Logger) *CleanRole {
	return &CleanRole{dnsOption: dnsOption, logger: logger.Named("role.clean")}
}

func (r *CleanRole) ConfigureDHCP(exec uci.Executor, net domain.Network, _ *domain.ProxyConfig) {
	r.logger.Info("direct uplink with public DNS", zap.String("network", net.Name))
	exec.AddList("dhcp."+net.Name+".dhcp_option", r.dnsOption)
}

func (r *CleanRole) ConfigureFirewall(uci.Executor, string, domain.Network) {}

// IsolateRole is WAN-only: clients reach the internet but nothing internal.
// The zone baseline (forward REJECT, single forwarding to wan) already
// provides the isolation; only DHCP differs.
type IsolateRole struct {
	dnsOption string
	logger    *zap.Logger
}

func NewIsolateRole(dnsOption string, logger *zap.Logger) *IsolateRole {
	return &IsolateRole{dnsOption: dnsOption, logger: logger.Named("role.isolate")}
}

func (r *IsolateRole) ConfigureDHCP(exec uci.Executor, net domain.Network, _ *domain.ProxyConfig) {
	r.logger.Info("isolated network with public DNS", zap.String("network", net.Name))
	exec.AddList("dhcp."+net.Name+".dhcp_option", r.dnsOption)
}

func (r *IsolateRole) ConfigureFirewall(uci.Executor, string, domain.Network) {}

// Registry resolves plan role names to Role implementations.
type Registry struct {
	roles map[domain.RoleName]Role
}

func NewRegistry() *Registry {
	return &Registry{roles: make(map[domain.RoleName]Role)}
}

// NewDefaultRegistry returns a registry with the built-in roles.
func NewDefaultRegistry(dnsOption string, logger *zap.Logger) *Registry {
	r := NewRegistry()
	r.Register(domain.RoleProxy, NewProxyRole(logger))
	r.Register(domain.RoleClean, NewCleanRole(dnsOption, logger))
	r.Register(domain.RoleIsolate, NewIsolateRole(dnsOption, logger))
	return r
}

func (r *Registry) Register(name domain.RoleName, role Role) {
	r.roles[name] = role
}

// Get resolves a role name. An unregistered name is a fatal plan error.
func (r *Registry) Get(name domain.RoleName) (Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)",
			domain.ErrUnknownRole, name, r.Available())
	}
	return role, nil
}

// Available lists the registered role names, sorted.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.roles))
	for name := range r.roles {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
