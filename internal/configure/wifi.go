package configure

import (
	"crypto/rand"
	"math/big"

	"go.uber.org/zap"

	"github.com/wrtplan/wrtplan/internal/config"
	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/uci"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Wifi emits wifi-iface sections for networks that request an AP, minting
// passwords where the plan says auto_generate.
type Wifi struct {
	cfg    config.WifiConfig
	logger *zap.Logger
}

func NewWifi(cfg config.WifiConfig, logger *zap.Logger) *Wifi {
	return &Wifi{cfg: cfg, logger: logger.Named("wifi")}
}

// Configure emits the AP for one network, returning the credential to echo
// back to the user, or nil when the network has no WiFi. On live targets the
// wireless subsystem is probed first; x86 boxes and containers often lack
// it, and emitting sections there would fail the commit.
func (c *Wifi) Configure(exec uci.Executor, net domain.Network) *domain.WifiCredential {
	if net.Wifi == nil {
		return nil
	}

	if exec.Live() {
		if _, ok := exec.Query("show wireless"); !ok {
			c.logger.Warn("wireless subsystem unavailable, skipping AP",
				zap.String("ssid", net.Wifi.SSID))
			return nil
		}
	}

	password := net.Wifi.Password
	if password == "auto_generate" {
		password = c.generatePassword()
	}

	c.logger.Info("configuring AP",
		zap.String("ssid", net.Wifi.SSID),
		zap.String("radio", c.cfg.Radio),
		zap.String("network", net.Name),
	)

	section := exec.Add("wireless", "wifi-iface")
	exec.Set(section+".device", c.cfg.Radio)
	exec.Set(section+".mode", "ap")
	exec.Set(section+".ssid", net.Wifi.SSID)
	exec.Set(section+".encryption", "psk2")
	exec.Set(section+".key", password)
	exec.Set(section+".network", net.Name)

	return &domain.WifiCredential{
		SSID:     net.Wifi.SSID,
		Password: password,
		Role:     net.Role,
	}
}

func (c *Wifi) generatePassword() string {
	length := c.cfg.PasswordLength
	if length < 8 {
		length = 8
	}
	buf := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; a predictable password is worse than stopping.
			panic(err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf)
}
