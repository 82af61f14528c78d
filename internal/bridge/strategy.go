// Package bridge renders the paradigm-specific switch wiring: one strategy
// for DSA devices (bridge device + VLAN filtering), one for legacy switch
// chips (switch + switch_vlan tables). The strategy is picked once per run
// from the detected hardware profile and drives three fixed steps: base
// infrastructure, then per network a VLAN entry and an L3 interface binding.
package bridge

import (
	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/uci"
)

// Strategy is the bridge-paradigm contract. Call order per run:
// ConfigureBase once, then ConfigureVLAN and ConfigureInterface per network.
type Strategy interface {
	// Name returns the paradigm name for log output.
	Name() string

	// ConfigureBase emits the shared bridge infrastructure.
	ConfigureBase()

	// ConfigureVLAN emits the VLAN entry for one network.
	ConfigureVLAN(net domain.Network)

	// ConfigureInterface binds the network's L3 interface to its VLAN
	// device.
	ConfigureInterface(net domain.Network)
}

// New selects the strategy matching the detected profile.
func New(profile *domain.HardwareProfile, exec uci.Executor, logger *zap.Logger) Strategy {
	if profile.Mode == domain.BridgeModeSwitchChip && profile.Switch != nil {
		return &switchChipStrategy{
			chip:   profile.Switch,
			exec:   exec,
			logger: logger.Named("bridge.swconfig"),
		}
	}
	return &dsaStrategy{
		lanPorts: profile.LANPorts,
		exec:     exec,
		logger:   logger.Named("bridge.dsa"),
	}
}
