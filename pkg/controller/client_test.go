package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnnounceSendsExpectedBody(t *testing.T) {
	var got AnnouncePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Announce(context.Background(), AnnouncePayload{BoardName: "front-lobby", Door1Name: "Main"})
	if err != nil {
		t.Fatalf("Announce: %v", err)
	}
	if got.BoardName != "front-lobby" {
		t.Errorf("BoardName = %q", got.BoardName)
	}
}

func TestHeartbeatTogglesOnline(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if c.Online() {
		t.Fatal("should start offline")
	}
	if err := c.Heartbeat(context.Background(), HeartbeatPayload{}); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}
	if !c.Online() {
		t.Fatal("expected online after 200 heartbeat")
	}

	status = http.StatusInternalServerError
	if err := c.Heartbeat(context.Background(), HeartbeatPayload{}); err == nil {
		t.Fatal("expected error on 500 heartbeat")
	}
	if c.Online() {
		t.Fatal("expected offline after failed heartbeat")
	}
}

func TestPostLogFailsOnNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.PostLog(context.Background(), AccessLogPayload{Door: 1}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
