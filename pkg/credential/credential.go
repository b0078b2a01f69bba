// Package credential normalizes and matches card and PIN credentials
// against stored principal credentials.
package credential

import (
	"strconv"
	"strings"
)

// Type distinguishes the two credential media.
type Type string

const (
	TypeCard     Type = "card"
	TypePIN      Type = "pin"
	TypeTempCode Type = "temp_code"
	TypeManual   Type = "manual"
)

// Card is a normalized card credential: a facility code and a card number.
// Equality modulo leading zeros in the facility part is the whole point of
// normalization — "030 33993" and "30 33993" are the same card.
type Card struct {
	Facility int
	Code     int
}

// ParseCard parses a "F N" string into a Card. Returns ok=false if the
// string isn't in that form.
func ParseCard(s string) (Card, bool) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Card{}, false
	}
	facility, err1 := strconv.Atoi(parts[0])
	code, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return Card{}, false
	}
	return Card{Facility: facility, Code: code}, true
}

// String renders the card in its canonical "F N" form (no leading zeros).
func (c Card) String() string {
	return strconv.Itoa(c.Facility) + " " + strconv.Itoa(c.Code)
}

// MatchCard reports whether a presented card (as decoded off the wire)
// matches a stored card credential, per the three rules in the data model:
// exact match, leading-zero-insensitive facility match, and bare-code
// match (a stored credential containing only a code part, no facility,
// matches a presented card whose code part equals it).
func MatchCard(presented, stored string) bool {
	if presented == stored {
		return true
	}
	p, pOK := ParseCard(presented)
	s, sOK := ParseCard(stored)
	if pOK && sOK {
		return p == s
	}
	// Bare-code match: stored is just a code (one field), presented carries
	// facility+code — match on the code part.
	storedFields := strings.Fields(stored)
	if pOK && len(storedFields) == 1 {
		if code, err := strconv.Atoi(storedFields[0]); err == nil {
			return p.Code == code
		}
	}
	presentedFields := strings.Fields(presented)
	if sOK && len(presentedFields) == 1 {
		if code, err := strconv.Atoi(presentedFields[0]); err == nil {
			return s.Code == code
		}
	}
	return false
}

// MatchPIN reports whether a presented PIN digit string matches a stored
// PIN credential. PINs have no normalization beyond exact equality.
func MatchPIN(presented, stored string) bool {
	return presented == stored
}
