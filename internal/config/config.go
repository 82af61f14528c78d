// Package config provides configuration management for the wrtplan tool.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tool settings. These are operator knobs for the tool
// itself; the network plan lives in its own file (see the plan package).
type Config struct {
	Detect  DetectConfig  `mapstructure:"detect"`
	DHCP    DHCPConfig    `mapstructure:"dhcp"`
	Wifi    WifiConfig    `mapstructure:"wifi"`
	DNS     DNSConfig     `mapstructure:"dns"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DetectConfig holds hardware-detection settings.
type DetectConfig struct {
	// UciBin is the uci binary invoked on the live device.
	UciBin string `mapstructure:"uci_bin"`

	// SwconfigBin is the switch-enumeration binary used by the ghost-port
	// fallback probe.
	SwconfigBin string `mapstructure:"swconfig_bin"`

	// CommandTimeout bounds every probe command.
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// DHCPConfig holds the pool parameters applied to every network.
type DHCPConfig struct {
	Start     int    `mapstructure:"start"`
	Limit     int    `mapstructure:"limit"`
	LeaseTime string `mapstructure:"leasetime"`
}

// WifiConfig holds WiFi AP defaults.
type WifiConfig struct {
	// Radio is the wifi-device sections bind to, e.g. "radio0".
	Radio string `mapstructure:"radio"`

	// PasswordLength is the length of auto-generated passwords.
	PasswordLength int `mapstructure:"password_length"`
}

// DNSConfig holds the upstream resolvers handed to clean/isolated networks.
type DNSConfig struct {
	PublicServers []string `mapstructure:"public_servers"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PublicDNSOption renders the DNS list as a dnsmasq dhcp_option payload,
// "6,<ip>,<ip>".
func (c DNSConfig) PublicDNSOption() string {
	return "6," + strings.Join(c.PublicServers, ",")
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("wrtplan")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/wrtplan")
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix("WRTPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Detection
	v.SetDefault("detect.uci_bin", "uci")
	v.SetDefault("detect.swconfig_bin", "swconfig")
	v.SetDefault("detect.command_timeout", "5s")

	// DHCP pool
	v.SetDefault("dhcp.start", 100)
	v.SetDefault("dhcp.limit", 150)
	v.SetDefault("dhcp.leasetime", "12h")

	// WiFi
	v.SetDefault("wifi.radio", "radio0")
	v.SetDefault("wifi.password_length", 8)

	// DNS
	v.SetDefault("dns.public_servers", []string{"223.5.5.5", "114.114.114.114"})

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
