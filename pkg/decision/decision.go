// Package decision applies the override lattice and database lookups that
// turn a presented credential into a grant/deny verdict with a reason and
// an identified principal.
package decision

import (
	"github.com/ironlatch/accessnode/pkg/accesslog"
	"github.com/ironlatch/accessnode/pkg/credential"
	"github.com/ironlatch/accessnode/pkg/door"
	"github.com/ironlatch/accessnode/pkg/schedule"
	"github.com/ironlatch/accessnode/pkg/tempcode"
	"github.com/ironlatch/accessnode/pkg/util"
)

// Attempt is a single presented credential at a door.
type Attempt struct {
	Door           int
	CredentialType credential.Type
	Credential     string // card "F N" string, PIN digits, or "" for REX
}

// Verdict is the terminal result of a decision: whether to grant, the
// principal to log, the credential_type to log, and the reason.
type Verdict struct {
	Granted        bool
	Principal      string
	CredentialType accesslog.CredentialType
	Reason         util.Reason
	Message        string
	// TempCodeUsed is set when a temp code grant occurred, so the caller
	// can increment the ledger and schedule a usage report — the decision
	// engine itself does not mutate the ledger; see Databases.Ledger.
	TempCodeUsed string
}

// Databases bundles the read-only inputs the decision engine consults.
// Mutated only by the controller client on sync, per the concurrency
// model — the engine itself treats these as read-only snapshots.
type Databases struct {
	Principals []Principal
	TempCodes  []TempCode
	Ledger     *tempcode.Ledger
}

// Decide applies the strict override lattice in order and returns the
// first terminal verdict. day/minute/wallKnown describe current local
// time for schedule evaluation.
func Decide(attempt Attempt, d *door.Door, board door.BoardEmergency, dbs Databases, day, minute int, wallKnown bool) Verdict {
	// 1: door-level emergency lock
	if d.EmergencyOverride == door.OverrideLock {
		return deny(util.ReasonEmergencyLockDoor, "Emergency lockdown (door)")
	}
	// 2: door-level emergency unlock
	if d.EmergencyOverride == door.OverrideUnlock {
		return Verdict{Granted: true, Principal: accesslog.PrincipalEmergencyOverride, Reason: util.ReasonGranted}
	}
	// 3: board-level emergency lock
	if board == door.BoardEmergencyLock {
		return deny(util.ReasonEmergencyLockBoard, "Emergency lockdown (board)")
	}
	// 4: board-level emergency unlock
	if board == door.BoardEmergencyUnlock {
		return Verdict{Granted: true, Principal: accesslog.PrincipalEmergencyEvacuate, Reason: util.ReasonGranted}
	}
	// 5: door locked by schedule
	if d.CurrentMode == schedule.ModeLocked {
		return deny(util.ReasonScheduleLocked, "Door locked by schedule")
	}
	// 6: door held open by schedule — grant, identification is best-effort
	// and never blocks the grant.
	if d.CurrentMode == schedule.ModeUnlock {
		v := resolveNormal(attempt, d.Number, dbs, day, minute, wallKnown)
		v.Granted = true
		// The grant comes from the schedule, not the credential — a temp
		// code presented here is only being identified, not consumed.
		v.TempCodeUsed = ""
		if v.Reason != util.ReasonGranted {
			// Identification failed or was denied on its own terms — the
			// grant still stands, but carry an informative principal.
			if v.Principal == "" {
				v.Principal = accesslog.PrincipalUnknown
			}
			v.Reason = util.ReasonGranted
		}
		return v
	}
	// 7: normal resolution
	return resolveNormal(attempt, d.Number, dbs, day, minute, wallKnown)
}

// resolveNormal runs the user-then-temp-code resolution chain (7a/7b/7c).
func resolveNormal(attempt Attempt, doorNum int, dbs Databases, day, minute int, wallKnown bool) Verdict {
	if attempt.CredentialType == credential.TypeManual {
		// REX: a grant with no credential check, still subject to the
		// override lattice evaluated before this point.
		return Verdict{Granted: true, Principal: accesslog.PrincipalREX, CredentialType: accesslog.CredentialManual, Reason: util.ReasonGranted}
	}

	if v, matched := resolveUser(attempt, doorNum, dbs.Principals, day, minute, wallKnown); matched {
		return v
	}

	if attempt.CredentialType == credential.TypePIN {
		if v, matched := resolveTempCode(attempt, doorNum, dbs); matched {
			return v
		}
	}

	return deny(util.ReasonUnknownCredential, "Unknown credential")
}

func resolveUser(attempt Attempt, doorNum int, principals []Principal, day, minute int, wallKnown bool) (Verdict, bool) {
	for i := range principals {
		p := &principals[i]
		if !p.Active {
			continue
		}
		matched := false
		switch attempt.CredentialType {
		case credential.TypeCard:
			for _, c := range p.Cards {
				if credential.MatchCard(attempt.Credential, c) {
					matched = true
					break
				}
			}
		case credential.TypePIN:
			for _, pin := range p.PINs {
				if credential.MatchPIN(attempt.Credential, pin) {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}
		// First match wins — stop scanning regardless of the outcome below.
		if !p.hasDoor(doorNum) {
			return deny(util.ReasonNoDoorAccess, "No access to this door"), true
		}
		if !schedule.EvalUser(p.Schedules, day, minute, wallKnown) {
			return deny(util.ReasonOutsideSchedule, "Outside allowed schedule"), true
		}
		ct := accesslog.CredentialCard
		if attempt.CredentialType == credential.TypePIN {
			ct = accesslog.CredentialPIN
		}
		return Verdict{Granted: true, Principal: p.Name, CredentialType: ct, Reason: util.ReasonGranted}, true
	}
	return Verdict{}, false
}

func resolveTempCode(attempt Attempt, doorNum int, dbs Databases) (Verdict, bool) {
	for i := range dbs.TempCodes {
		tc := &dbs.TempCodes[i]
		if tc.Code != attempt.Credential {
			continue
		}
		if !tc.Active {
			return deny(util.ReasonTempCodeDisabled, "Temp code is disabled"), true
		}
		prior := 0
		if dbs.Ledger != nil {
			prior = dbs.Ledger.Uses(tc.Code, doorNum)
		}
		if !tc.Policy.Allowed(prior) {
			return deny(util.ReasonTempCodeExhaustedDoor, "Temp code already used on this door"), true
		}
		if !tc.hasDoor(doorNum) {
			return deny(util.ReasonTempCodeNoDoorAccess, "Temp code not permitted on this door"), true
		}
		return Verdict{
			Granted:        true,
			Principal:      accesslog.TempCodePrincipal(tc.Name),
			CredentialType: accesslog.CredentialTempCode,
			Reason:         util.ReasonGranted,
			TempCodeUsed:   tc.Code,
		}, true
	}
	return Verdict{}, false
}

func deny(reason util.Reason, message string) Verdict {
	return Verdict{Granted: false, Reason: reason, Message: message}
}

// AsError returns nil for a granted Verdict and a *util.DecisionError for a
// denied one, carrying the same reason and message a caller can both log
// and match against.
func (v Verdict) AsError() error {
	if v.Granted {
		return nil
	}
	return util.NewDecisionError(v.Reason, v.Message)
}
