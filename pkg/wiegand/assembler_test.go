package wiegand

import "testing"

// pushBits feeds a bit string ("0101...") to the assembler one edge per
// character, all at the same timestamp (frame reception is a few ms in
// reality but timing within the frame doesn't matter to the assembler).
func pushBits(a *Assembler, door int, bits string, atMS int64) {
	for _, b := range bits {
		if b == '0' {
			a.OnEdge(door, 0, atMS)
		} else {
			a.OnEdge(door, 1, atMS)
		}
	}
}

func TestCardFrameDecode(t *testing.T) {
	a := NewAssembler([]int{1})
	// facility=30 (00011110), card=33993 (1000010011001001), parity bits arbitrary.
	// 26 bits: p[25] + facility(8) + card(16) + p[0]
	bits := "0" + "00011110" + "1000010011001001" + "1"
	pushBits(a, 1, bits, 1000)

	if frames := a.Poll(1050); frames != nil {
		t.Fatalf("expected no frame before inter-bit timeout, got %v", frames)
	}
	frames := a.Poll(1000 + InterBitTimeoutMS + 1)
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	f := frames[0]
	if f.Kind != KindCard {
		t.Fatalf("expected KindCard, got %v", f.Kind)
	}
	if f.Facility != 30 || f.Card != 33993 {
		t.Errorf("facility=%d card=%d, want 30 33993", f.Facility, f.Card)
	}
	if f.CardString() != "30 33993" {
		t.Errorf("CardString() = %q", f.CardString())
	}
}

func TestKeypadFrameDecode(t *testing.T) {
	a := NewAssembler([]int{1})
	// 4-bit frame, key code 5 -> digit '5'.
	pushBits(a, 1, "0101", 2000)
	frames := a.Poll(2000 + InterBitTimeoutMS + 1)
	if len(frames) != 1 || frames[0].Kind != KindKeypad {
		t.Fatalf("expected 1 keypad frame, got %v", frames)
	}
	if frames[0].Key != '5' {
		t.Errorf("Key = %q, want '5'", frames[0].Key)
	}
}

func TestKeypadStarHash(t *testing.T) {
	cases := []struct {
		bits string
		want rune
	}{
		{"1010", '*'}, // 10
		{"1011", '#'}, // 11
		{"1100", 0},   // 12: invalid
	}
	for _, c := range cases {
		a := NewAssembler([]int{1})
		pushBits(a, 1, c.bits, 3000)
		frames := a.Poll(3000 + InterBitTimeoutMS + 1)
		if len(frames) != 1 {
			t.Fatalf("bits=%s: expected 1 frame", c.bits)
		}
		if frames[0].Key != c.want {
			t.Errorf("bits=%s: Key = %q, want %q", c.bits, frames[0].Key, c.want)
		}
	}
}

func TestUnknownBitCountDiscarded(t *testing.T) {
	a := NewAssembler([]int{1})
	pushBits(a, 1, "010101010", 4000) // 9 bits: neither card nor keypad length
	frames := a.Poll(4000 + InterBitTimeoutMS + 1)
	if len(frames) != 1 || frames[0].Kind != KindUnknown {
		t.Fatalf("expected 1 unknown frame, got %v", frames)
	}
}

func TestIndependentDoors(t *testing.T) {
	a := NewAssembler([]int{1, 2})
	pushBits(a, 1, "0101", 5000)
	pushBits(a, 2, "1010", 5010)

	frames := a.Poll(5010 + InterBitTimeoutMS + 1)
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
}

func TestNoPrematureCompletion(t *testing.T) {
	a := NewAssembler([]int{1})
	pushBits(a, 1, "01", 6000)
	if frames := a.Poll(6000 + InterBitTimeoutMS); frames != nil {
		t.Fatalf("frame should not complete exactly at the timeout boundary, got %v", frames)
	}
	pushBits(a, 1, "01", 6050) // more bits arrive, resetting last_edge_ms
	frames := a.Poll(6050 + InterBitTimeoutMS + 1)
	if len(frames) != 1 || frames[0].BitCount != 4 {
		t.Fatalf("expected single 4-bit frame accumulating all edges, got %v", frames)
	}
}
