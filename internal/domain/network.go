package domain

// RoleName selects the behavior bundle (DHCP options, firewall rules) applied
// to a network. The built-in roles are registered by the roles package; plans
// referencing an unregistered role fail the run.
type RoleName string

const (
	RoleProxy   RoleName = "proxy"
	RoleClean   RoleName = "clean"
	RoleIsolate RoleName = "isolate"
)

// WifiConfig is the desired WiFi AP for a network. Password may be the
// literal "auto_generate", in which case the WiFi configurator mints one.
type WifiConfig struct {
	SSID     string `yaml:"ssid"`
	Password string `yaml:"password"`
}

// Network is one VLAN entry of the declarative plan.
//
// Ports holds the user-supplied port tokens ("lan2", "lan2:t", or a raw
// physical id). An empty list means "auto-allocate": the port allocator
// produces a resolved copy of the plan with tokens filled in before any
// bridge strategy reads them. Network values are treated as immutable once
// allocation has run.
type Network struct {
	Name    string      `yaml:"name"`
	VLANID  int         `yaml:"vlan_id"`
	Role    RoleName    `yaml:"role"`
	Subnet  string      `yaml:"subnet"`
	Netmask string      `yaml:"netmask"`
	Alias   string      `yaml:"alias"`
	Wifi    *WifiConfig `yaml:"wifi"`
	Ports   []string    `yaml:"ports"`
}

// ProxyConfig carries the plan-global parameters of the proxy role.
type ProxyConfig struct {
	// SideRouterIP is the LAN address of the side router that proxied
	// clients use as gateway and DNS.
	SideRouterIP string `yaml:"side_router_ip"`

	// DHCPMode is "main" (this router serves DHCP, options point at the
	// side router) or "side" (the side router owns DHCP, this one ignores
	// the subnet).
	DHCPMode string `yaml:"proxy_dhcp_mode"`
}

// Plan is the parsed network plan: an optional proxy block plus the ordered
// network list. Order matters: port auto-allocation is strictly
// first-declared, first-served.
type Plan struct {
	Proxy    *ProxyConfig
	Networks []Network
}

// WifiCredential is echoed back to the user after a run so generated
// passwords are not lost.
type WifiCredential struct {
	SSID     string
	Password string
	Role     RoleName
}
