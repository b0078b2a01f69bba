package kvstore

import (
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewFileStore(path)

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if cfg.BoardName != "" {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}

	cfg.BoardName = "front-lobby"
	cfg.DoorNames = map[string]string{"1": "Main Entrance", "2": "Loading Dock"}
	cfg.UnlockDurationsMS = map[string]int{"1": 5000}
	if err := store.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.BoardName != "front-lobby" {
		t.Errorf("BoardName = %q", loaded.BoardName)
	}
	if loaded.DoorName(1) != "Main Entrance" {
		t.Errorf("DoorName(1) = %q", loaded.DoorName(1))
	}
	if loaded.MomentaryUnlockMS(1) != 5000 {
		t.Errorf("MomentaryUnlockMS(1) = %d", loaded.MomentaryUnlockMS(1))
	}
	if loaded.MomentaryUnlockMS(2) != DefaultMomentaryUnlockMS {
		t.Errorf("MomentaryUnlockMS(2) fallback = %d", loaded.MomentaryUnlockMS(2))
	}
}

func TestDoorNameFallback(t *testing.T) {
	cfg := &BoardConfig{}
	if cfg.DoorName(2) != "2" {
		t.Errorf("DoorName(2) fallback = %q", cfg.DoorName(2))
	}
}
