package configure

import (
	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/roles"
	"github.com/wrtplan/wrtplan/internal/uci"
)

// Firewall emits one zone per network. Baseline: accept traffic from the
// zone to the router, reject inter-zone forwarding, allow the zone out to
// wan. Role strategies add anything beyond that.
type Firewall struct {
	logger *zap.Logger
}

func NewFirewall(logger *zap.Logger) *Firewall {
	return &Firewall{logger: logger.Named("firewall")}
}

func (c *Firewall) Configure(exec uci.Executor, net domain.Network, role roles.Role) {
	zone := net.Name
	c.logger.Info("configuring zone",
		zap.String("zone", zone),
		zap.String("role", string(net.Role)),
	)

	base := "firewall." + zone
	exec.Set(base, "zone")
	exec.Set(base+".name", zone)
	exec.Set(base+".network", net.Name)
	exec.Set(base+".input", "ACCEPT")
	exec.Set(base+".output", "ACCEPT")
	exec.Set(base+".forward", "REJECT")
	exec.Set(base+".masq", "1")

	section := exec.Add("firewall", "forwarding")
	exec.Set(section+".src", zone)
	exec.Set(section+".dest", "wan")

	role.ConfigureFirewall(exec, zone, net)
}
