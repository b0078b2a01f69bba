// Package kvstore is the persistent-configuration collaborator: board
// identity, network settings, per-door names and unlock durations. Emergency
// state is deliberately never stored here — it resets to normal on reboot.
package kvstore

import (
	"fmt"

	"github.com/ironlatch/accessnode/pkg/util"
)

// BoardConfig is the full set of persisted configuration for a node.
type BoardConfig struct {
	BoardName          string            `json:"board_name"`
	WiFiSSID           string            `json:"wifi_ssid,omitempty"`
	WiFiPassword       string            `json:"wifi_password,omitempty"`
	ControllerIP       string            `json:"controller_ip,omitempty"`
	ControllerPort     int               `json:"controller_port,omitempty"`
	DoorNames          map[string]string `json:"door_names,omitempty"`          // "1"/"2" -> name
	UnlockDurationsMS  map[string]int    `json:"unlock_durations_ms,omitempty"` // "1"/"2" -> ms
	NetworkMode        string            `json:"network_mode,omitempty"`        // "dhcp" or "static"
	StaticIP           string            `json:"static_ip,omitempty"`
	StaticIPCIDR       string            `json:"static_ip_cidr,omitempty"`
	StaticGateway      string            `json:"static_gateway,omitempty"`
	MACAddress         string            `json:"mac_address,omitempty"`
}

// DefaultMomentaryUnlockMS is used for a door with no configured duration.
const DefaultMomentaryUnlockMS = 3000

// DoorName returns the configured name for a door number, falling back to
// the bare door number ("N").
func (c *BoardConfig) DoorName(door int) string {
	if c.DoorNames != nil {
		if name, ok := c.DoorNames[doorKey(door)]; ok && name != "" {
			return name
		}
	}
	return doorKey(door)
}

// MomentaryUnlockMS returns the configured momentary unlock duration for a
// door, falling back to DefaultMomentaryUnlockMS.
func (c *BoardConfig) MomentaryUnlockMS(door int) int {
	if c.UnlockDurationsMS != nil {
		if ms, ok := c.UnlockDurationsMS[doorKey(door)]; ok && ms > 0 {
			return ms
		}
	}
	return DefaultMomentaryUnlockMS
}

// ControllerBaseURL builds the controller's base URL from the configured
// IP and port, defaulting to port 8080 when unset.
func (c *BoardConfig) ControllerBaseURL() string {
	port := c.ControllerPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("http://%s:%d", c.ControllerIP, port)
}

// Validate checks the IPv4/CIDR/MAC-shaped fields of a loaded BoardConfig
// and normalizes MACAddress to colon-separated lowercase, the form the
// board-announce payload reports to the controller. Empty fields are left
// alone — a freshly provisioned board has no network identity yet. Errors
// across every field are accumulated and reported together, rather than
// stopping at the first bad field.
func (c *BoardConfig) Validate() error {
	v := &util.ValidationBuilder{}

	if c.ControllerIP != "" && !util.IsValidIPv4(c.ControllerIP) {
		v.AddErrorf("controller_ip %q is not a valid IPv4 address", c.ControllerIP)
	}
	if c.StaticIP != "" && !util.IsValidIPv4(c.StaticIP) {
		v.AddErrorf("static_ip %q is not a valid IPv4 address", c.StaticIP)
	}
	if c.StaticIPCIDR != "" && !util.IsValidIPv4CIDR(c.StaticIPCIDR) {
		v.AddErrorf("static_ip_cidr %q is not valid CIDR notation", c.StaticIPCIDR)
	}
	if c.MACAddress != "" {
		if mac, err := util.NormalizeMACAddress(c.MACAddress); err != nil {
			v.AddErrorf("mac_address %q: %v", c.MACAddress, err)
		} else {
			c.MACAddress = mac
		}
	}

	return v.Build()
}

func doorKey(door int) string {
	switch door {
	case 1:
		return "1"
	case 2:
		return "2"
	default:
		return ""
	}
}

// Store persists and retrieves BoardConfig. Two implementations are
// provided: FileStore (local JSON file, the single-node default) and
// RedisStore (shared store, for deployments managing multiple nodes from
// one key/value backend).
type Store interface {
	Load() (*BoardConfig, error)
	Save(cfg *BoardConfig) error
}
