package credential

import "testing"

func TestMatchCardExact(t *testing.T) {
	if !MatchCard("30 33993", "30 33993") {
		t.Error("expected exact match")
	}
}

func TestMatchCardLeadingZero(t *testing.T) {
	if !MatchCard("30 33993", "030 33993") {
		t.Error("expected leading-zero-insensitive match")
	}
	if !MatchCard("030 33993", "30 33993") {
		t.Error("expected leading-zero-insensitive match, reversed")
	}
}

func TestMatchCardBareCode(t *testing.T) {
	if !MatchCard("30 33993", "33993") {
		t.Error("expected bare-code match against presented facility+code")
	}
}

func TestMatchCardMismatch(t *testing.T) {
	if MatchCard("30 33993", "30 11111") {
		t.Error("expected no match on differing code")
	}
	if MatchCard("30 33993", "40 33993") {
		t.Error("expected no match on differing facility")
	}
}

func TestMatchCardEquivalenceRelation(t *testing.T) {
	a, b, c := "30 33993", "030 33993", "0030 33993"
	if !MatchCard(a, b) {
		t.Fatal("a,b should match")
	}
	if !MatchCard(b, c) {
		t.Fatal("b,c should match")
	}
	if !MatchCard(a, c) {
		t.Error("transitivity violated: a,b and b,c match but a,c does not")
	}
}

func TestMatchPIN(t *testing.T) {
	if !MatchPIN("1234", "1234") {
		t.Error("expected PIN match")
	}
	if MatchPIN("1234", "1235") {
		t.Error("expected PIN mismatch")
	}
}
