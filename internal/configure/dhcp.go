// Package configure holds the per-subsystem emitters that sit outside the
// bridge paradigm: DHCP pools, WiFi APs and firewall zones. Each configurator
// owns exactly one uci subsystem; role-specific differences are delegated to
// the role strategies.
package configure

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/config"
	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/roles"
	"github.com/wrtplan/wrtplan/internal/uci"
)

// DHCP emits the dhcp section for each network and hands role-specific
// options to the role.
type DHCP struct {
	pool   config.DHCPConfig
	logger *zap.Logger
}

func NewDHCP(pool config.DHCPConfig, logger *zap.Logger) *DHCP {
	return &DHCP{pool: pool, logger: logger.Named("dhcp")}
}

func (c *DHCP) Configure(exec uci.Executor, net domain.Network, proxy *domain.ProxyConfig, role roles.Role) {
	c.logger.Info("configuring DHCP pool", zap.String("network", net.Name))

	base := "dhcp." + net.Name
	exec.Set(base, "dhcp")
	exec.Set(base+".interface", net.Name)
	exec.Set(base+".start", strconv.Itoa(c.pool.Start))
	exec.Set(base+".limit", strconv.Itoa(c.pool.Limit))
	exec.Set(base+".leasetime", c.pool.LeaseTime)

	role.ConfigureDHCP(exec, net, proxy)
}
