// Package orchestrator drives the end-to-end pipeline: load plan, detect
// hardware, pick a bridge strategy, allocate ports, then configure every
// network and commit.
package orchestrator

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/bridge"
	"github.com/wrtplan/wrtplan/internal/config"
	"github.com/wrtplan/wrtplan/internal/configure"
	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/hwdetect"
	"github.com/wrtplan/wrtplan/internal/plan"
	"github.com/wrtplan/wrtplan/internal/ports"
	"github.com/wrtplan/wrtplan/internal/roles"
	"github.com/wrtplan/wrtplan/internal/uci"
)

// committedSubsystems are committed after a run, in this order. Subsystems a
// live target does not expose are skipped.
var committedSubsystems = []string{"network", "dhcp", "firewall", "wireless"}

// Orchestrator wires the pipeline components around one executor.
type Orchestrator struct {
	exec     uci.Executor
	cfg      *config.Config
	registry *roles.Registry
	logger   *zap.Logger

	dhcp     *configure.DHCP
	wifi     *configure.Wifi
	firewall *configure.Firewall
}

// New builds an orchestrator with the default role registry.
func New(exec uci.Executor, cfg *config.Config, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		exec:     exec,
		cfg:      cfg,
		registry: roles.NewDefaultRegistry(cfg.DNS.PublicDNSOption(), logger),
		logger:   logger.Named("orchestrator"),
		dhcp:     configure.NewDHCP(cfg.DHCP, logger),
		wifi:     configure.NewWifi(cfg.Wifi, logger),
		firewall: configure.NewFirewall(logger),
	}
}

// Registry exposes the role registry so callers can register custom roles
// before Run.
func (o *Orchestrator) Registry() *roles.Registry { return o.registry }

// Run executes the full pipeline for one plan file and returns the WiFi
// credentials to echo back to the user.
func (o *Orchestrator) Run(planPath string) ([]domain.WifiCredential, error) {
	runID := uuid.New().String()
	log := o.logger.With(zap.String("run_id", runID))

	p, err := plan.Load(planPath)
	if err != nil {
		return nil, err
	}
	log.Info("plan loaded",
		zap.String("path", planPath),
		zap.Int("networks", len(p.Networks)),
	)

	// Resolve every role up front: an unknown role aborts the run before
	// anything is emitted, not halfway through.
	netRoles := make([]roles.Role, len(p.Networks))
	for i, net := range p.Networks {
		role, err := o.registry.Get(net.Role)
		if err != nil {
			return nil, fmt.Errorf("network %q: %w", net.Name, err)
		}
		netRoles[i] = role
	}

	detector := hwdetect.New(o.exec, o.cfg.Detect.SwconfigBin, o.logger)
	profile := detector.Detect()

	strategy := bridge.New(profile, o.exec, o.logger)
	log.Info("bridge paradigm selected", zap.String("mode", strategy.Name()))

	networks := ports.Allocate(p.Networks, profile, o.logger)

	strategy.ConfigureBase()

	var credentials []domain.WifiCredential
	for i, net := range networks {
		log.Info("configuring network",
			zap.String("network", net.Name),
			zap.String("alias", net.Alias),
			zap.Int("vlan", net.VLANID),
			zap.String("role", string(net.Role)),
		)

		strategy.ConfigureVLAN(net)
		strategy.ConfigureInterface(net)
		o.dhcp.Configure(o.exec, net, p.Proxy, netRoles[i])
		if cred := o.wifi.Configure(o.exec, net); cred != nil {
			credentials = append(credentials, *cred)
		}
		o.firewall.Configure(o.exec, net, netRoles[i])
	}

	o.commit(log)
	log.Info("run complete", zap.Int("wifi_aps", len(credentials)))
	return credentials, nil
}

// commit persists every touched subsystem. Live targets may lack some of
// them (no wireless on x86 boxes); those are skipped. Non-live backends
// cannot probe the target, so everything is committed unconditionally.
func (o *Orchestrator) commit(log *zap.Logger) {
	for _, subsystem := range committedSubsystems {
		if o.exec.Live() {
			if _, ok := o.exec.Query("show " + subsystem); !ok {
				log.Warn("subsystem missing on target, skipping commit",
					zap.String("subsystem", subsystem))
				continue
			}
		}
		o.exec.Commit(subsystem)
	}
}
