// Package accesslog queues access decisions for delivery to the
// controller, and optionally mirrors them to a local JSON-lines file.
package accesslog

import "github.com/ironlatch/accessnode/pkg/util"

// CredentialType identifies what kind of credential produced an entry.
type CredentialType string

const (
	CredentialCard     CredentialType = "card"
	CredentialPIN      CredentialType = "pin"
	CredentialTempCode CredentialType = "temp_code"
	CredentialManual   CredentialType = "manual"
)

// Sentinel principal names used when no real user was identified.
const (
	PrincipalUnknown           = "Unknown"
	PrincipalEmergencyOverride = "N/A (Emergency Override)"
	PrincipalEmergencyEvacuate = "N/A (Emergency Evacuation)"
	PrincipalREX               = "REX"
)

// TempCodePrincipal renders the logged principal name for a temp-code grant.
func TempCodePrincipal(name string) string {
	return "🎫 " + name
}

// Entry is one access decision, ready to queue and later post to the
// controller as a JSON body.
type Entry struct {
	Timestamp      string         `json:"timestamp"`
	Door           int            `json:"door"`
	Principal      string         `json:"principal"`
	Credential     string         `json:"credential"`
	CredentialType CredentialType `json:"credential_type"`
	Granted        bool           `json:"granted"`
	Reason         util.Reason    `json:"reason"`
}
