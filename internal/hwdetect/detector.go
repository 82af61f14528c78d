// Package hwdetect discovers the network hardware of the target device: the
// bridge paradigm (DSA or legacy switch chip), the WAN interface, and which
// physical ports face the LAN.
//
// Detection is tiered and never fails. Every probe that comes back empty
// drops through to the next source of truth, ending in fixed defaults, so
// the rest of the pipeline always gets a usable profile. Users never declare
// hardware in their plans.
package hwdetect

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/uci"
)

// Offline defaults, used when no live device is reachable (dry-run and
// export modes).
var offlineDefaults = domain.HardwareProfile{
	Mode:         domain.BridgeModeDSA,
	WANInterface: "eth0",
	LANPorts:     []string{"eth1", "eth2"},
}

// Detector probes a device through the uci query surface.
type Detector struct {
	exec        uci.Executor
	swconfigBin string
	logger      *zap.Logger
}

// New returns a detector. swconfigBin is the binary used by the
// port-enumeration fallback, normally "swconfig".
func New(exec uci.Executor, swconfigBin string, logger *zap.Logger) *Detector {
	return &Detector{
		exec:        exec,
		swconfigBin: swconfigBin,
		logger:      logger.Named("hwdetect"),
	}
}

// Detect produces the hardware profile for this run. It never returns an
// error: probe failures degrade to defaults and are logged.
func (d *Detector) Detect() *domain.HardwareProfile {
	if !d.exec.Live() {
		d.logger.Info("no live device, using offline defaults",
			zap.String("profile", offlineDefaults.String()))
		p := offlineDefaults
		p.LANPorts = append([]string(nil), offlineDefaults.LANPorts...)
		return &p
	}

	if _, ok := d.exec.Query("show network | grep '=switch'"); ok {
		d.logger.Info("switch section found, switch-chip paradigm")
		return d.detectSwitchChip()
	}
	if _, ok := d.exec.Query("show network | grep '=bridge-vlan'"); ok {
		d.logger.Info("bridge-vlan section found, DSA paradigm")
		return d.detectDSA()
	}

	// Neither marker present. Modern hardware assumption: probe as DSA.
	d.logger.Info("no paradigm marker found, assuming DSA")
	return d.detectDSA()
}

// detectDSA probes a DSA device: WAN interface from the wan entry, LAN ports
// from the primary bridge device.
func (d *Detector) detectDSA() *domain.HardwareProfile {
	wan := d.firstQuery(
		"get network.wan.device",
		"get network.wan.ifname",
	)
	if wan == "" {
		wan = "eth0"
	}

	lanPorts := d.dsaLANPorts()
	sort.Strings(lanPorts)

	profile := &domain.HardwareProfile{
		Mode:         domain.BridgeModeDSA,
		WANInterface: wan,
		LANPorts:     lanPorts,
	}
	d.logger.Info("detected DSA hardware", zap.String("profile", profile.String()))
	return profile
}

func (d *Detector) dsaLANPorts() []string {
	if raw := d.firstQuery(
		"get network.@device[0].ports",
		"get network.lan_dev.ports",
	); raw != "" {
		return strings.Fields(raw)
	}

	d.logger.Info("LAN ports unqueryable, using defaults")
	return []string{"eth1", "eth2"}
}

// detectSwitchChip probes a legacy switch chip: CPU/LAN ports from the
// declared VLAN tables, WAN port from the WAN-forwarding VLAN, with a
// swconfig enumeration fallback when the declared tables are too thin to
// trust.
func (d *Detector) detectSwitchChip() *domain.HardwareProfile {
	name, ok := d.exec.Query("get network.@switch[0].name")
	if !ok {
		name = "switch0"
	}

	wan, ok := d.exec.Query("get network.wan.ifname")
	if !ok {
		wan = "eth0"
	}

	cpuPort, lanSet := d.scanVLANTables()
	wanPort := d.wanPort()
	delete(lanSet, wanPort)
	delete(lanSet, cpuPort)

	lanPorts := sortedKeys(lanSet)

	// Ghost-port guard. With two or more declared LAN ports the VLAN
	// tables are trusted as-is: chips routinely enumerate phantom ports
	// with no physical jack, and raw enumeration would surface them. Only
	// a thin table (zero or one port) justifies asking the chip directly.
	if len(lanPorts) <= 1 {
		if all := d.enumeratePorts(name); len(all) > 0 {
			d.logger.Info("thin VLAN tables, trusting chip enumeration",
				zap.Ints("ports", all))
			lanPorts = lanPorts[:0]
			for _, p := range all {
				if p != cpuPort && p != wanPort {
					lanPorts = append(lanPorts, p)
				}
			}
		}
	}

	if len(lanPorts) == 0 {
		d.logger.Info("no LAN ports found, using defaults")
		lanPorts = []int{1, 2, 3, 4}
	}
	sort.Ints(lanPorts)

	profile := &domain.HardwareProfile{
		Mode:         domain.BridgeModeSwitchChip,
		WANInterface: wan,
		Switch: &domain.SwitchChip{
			Name:         name,
			CPUPort:      cpuPort,
			CPUInterface: d.cpuInterface(wan),
			LANPorts:     lanPorts,
			WANPort:      wanPort,
		},
	}
	d.logger.Info("detected switch-chip hardware", zap.String("profile", profile.String()))
	return profile
}

// portsLine pulls the quoted value out of a "network.@switch_vlan[N].ports='...'"
// show line.
var portsLine = regexp.MustCompile(`ports='([^']*)'`)

// scanVLANTables walks every declared switch_vlan ports string. Tokens with
// the tag suffix identify the CPU port; everything else is a candidate LAN
// port. When several distinct tagged ports appear the last one wins, which
// matches how the chip config is conventionally laid out, but it is worth a
// warning because the tables are then ambiguous.
func (d *Detector) scanVLANTables() (cpuPort int, lanSet map[int]bool) {
	lanSet = make(map[int]bool)

	raw, ok := d.exec.Query("show network | grep 'switch_vlan.*ports='")
	if !ok {
		return 0, lanSet
	}

	cpuSeen := false
	for _, line := range strings.Split(raw, "\n") {
		m := portsLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, token := range strings.Fields(m[1]) {
			if tagged, p, ok := parsePortToken(token); ok {
				if tagged {
					if cpuSeen && p != cpuPort {
						d.logger.Warn("multiple tagged ports in VLAN tables, last one wins",
							zap.Int("previous", cpuPort),
							zap.Int("current", p),
						)
					}
					cpuPort = p
					cpuSeen = true
				} else {
					lanSet[p] = true
				}
			}
		}
	}
	return cpuPort, lanSet
}

// wanPort reads the sole untagged member of the WAN-forwarding VLAN,
// conventionally the second switch_vlan entry.
func (d *Detector) wanPort() int {
	wanPort := 5
	raw, ok := d.exec.Query("get network.@switch_vlan[1].ports")
	if !ok {
		return wanPort
	}
	for _, token := range strings.Fields(raw) {
		if tagged, p, ok := parsePortToken(token); ok && !tagged {
			wanPort = p
		}
	}
	return wanPort
}

// helpPorts matches the port count in swconfig's help banner, e.g.
// "switch0: eth0(AR934X built-in switch), ports: 6 (cpu @ 0), vlans: 16".
var helpPorts = regexp.MustCompile(`ports:\s*(\d+)`)

// enumeratePorts asks the chip itself how many ports it has. Returns nil on
// any failure; the caller falls back to whatever the VLAN tables declared.
func (d *Detector) enumeratePorts(switchName string) []int {
	out, ok := d.exec.RunShell(d.swconfigBin + " dev " + switchName + " help")
	if !ok {
		return nil
	}
	m := helpPorts.FindStringSubmatch(out)
	if m == nil {
		return nil
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count <= 0 {
		return nil
	}
	all := make([]int, count)
	for i := range all {
		all[i] = i
	}
	return all
}

// cpuInterface derives the interface behind the CPU port from the LAN entry,
// falling back to the WAN interface, with any VLAN suffix stripped
// ("eth0.1" -> "eth0").
func (d *Detector) cpuInterface(wan string) string {
	iface, ok := d.exec.Query("get network.lan.ifname")
	if !ok {
		iface = wan
	}
	if i := strings.IndexByte(iface, '.'); i >= 0 {
		iface = iface[:i]
	}
	return iface
}

// firstQuery returns the first query that yields data.
func (d *Detector) firstQuery(queries ...string) string {
	for _, q := range queries {
		if out, ok := d.exec.Query(q); ok {
			return out
		}
	}
	return ""
}

// parsePortToken parses one token of a switch_vlan ports string: "3" is an
// untagged port, "5t" a tagged one. Anything non-numeric is skipped.
func parsePortToken(token string) (tagged bool, port int, ok bool) {
	base := token
	if strings.HasSuffix(base, "t") {
		tagged = true
		base = strings.TrimSuffix(base, "t")
	}
	p, err := strconv.Atoi(base)
	if err != nil {
		return false, 0, false
	}
	return tagged, p, true
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
