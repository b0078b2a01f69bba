package kvstore

import "testing"

func TestValidateNormalizesMACAddress(t *testing.T) {
	cfg := &BoardConfig{MACAddress: "AA:BB:CC:DD:EE:FF"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.MACAddress != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("MACAddress = %q, want normalized lowercase", cfg.MACAddress)
	}
}

func TestValidateRejectsBadControllerIP(t *testing.T) {
	cfg := &BoardConfig{ControllerIP: "not-an-ip"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid controller_ip")
	}
}

func TestValidateRejectsBadStaticCIDR(t *testing.T) {
	cfg := &BoardConfig{StaticIPCIDR: "10.0.0.5"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for static_ip_cidr missing a prefix length")
	}
}

func TestValidateAllowsEmptyFields(t *testing.T) {
	cfg := &BoardConfig{BoardName: "lobby"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate on empty network fields: %v", err)
	}
}
