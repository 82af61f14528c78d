package ports

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
)

// Allocate assigns physical ports to networks that declared none. It returns
// a resolved copy of the network list; the input is never mutated, so
// callers can hand the result to a bridge strategy without worrying about
// shared state.
//
// Ports are handed out as 1-based logical "lan<N>" tokens, which the
// resolver maps onto whatever the hardware calls its ports. Allocation is
// strictly declaration-ordered: each portless network pops the lowest free
// index, and once the pool runs dry the remaining networks stay portless
// (WiFi-only). Whatever is left after that lands on the VLAN 1 network, the
// conventional default LAN; without one the leftovers are reported and
// discarded.
func Allocate(networks []domain.Network, profile *domain.HardwareProfile, logger *zap.Logger) []domain.Network {
	log := logger.Named("alloc")

	resolved := make([]domain.Network, len(networks))
	copy(resolved, networks)
	for i := range resolved {
		resolved[i].Ports = append([]string(nil), networks[i].Ports...)
	}

	total := profile.LANPortCount()
	if total == 0 {
		log.Info("no physical ports detected, skipping auto-allocation")
		return resolved
	}

	free := make([]int, 0, total)
	for i := 1; i <= total; i++ {
		free = append(free, i)
	}

	log.Info("auto-allocating ports",
		zap.Int("available", total),
		zap.String("profile", profile.String()),
	)

	for i := range resolved {
		net := &resolved[i]
		if len(net.Ports) > 0 {
			continue
		}
		if len(free) == 0 {
			log.Info("no free port left, network is WiFi-only",
				zap.String("network", net.Name))
			continue
		}
		token := fmt.Sprintf("lan%d", free[0])
		free = free[1:]
		net.Ports = append(net.Ports, token)
		log.Info("assigned port",
			zap.String("network", net.Name),
			zap.String("port", token),
		)
	}

	if len(free) == 0 {
		return resolved
	}

	leftovers := make([]string, 0, len(free))
	for _, idx := range free {
		leftovers = append(leftovers, fmt.Sprintf("lan%d", idx))
	}

	for i := range resolved {
		if resolved[i].VLANID == 1 {
			resolved[i].Ports = append(resolved[i].Ports, leftovers...)
			log.Info("leftover ports assigned to default LAN",
				zap.String("network", resolved[i].Name),
				zap.Strings("ports", leftovers),
			)
			return resolved
		}
	}

	log.Info("leftover ports unused, no VLAN 1 network in plan",
		zap.Strings("ports", leftovers))
	return resolved
}
