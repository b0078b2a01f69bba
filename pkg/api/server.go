// Package api implements the node's inbound HTTP surface: the controller
// sync endpoint and the emergency/override/config admin endpoints. No
// HTTP framework appears anywhere in the reference stack, so this is
// built directly on net/http.ServeMux, the same way the outbound
// controller client is built on net/http.Client.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ironlatch/accessnode/pkg/controller"
	"github.com/ironlatch/accessnode/pkg/core"
	"github.com/ironlatch/accessnode/pkg/diag"
	"github.com/ironlatch/accessnode/pkg/door"
	"github.com/ironlatch/accessnode/pkg/kvstore"
	"github.com/ironlatch/accessnode/pkg/util"
)

// Server is the inbound HTTP handler wrapping a core.State.
type Server struct {
	state *core.State
	store kvstore.Store
	mux   *http.ServeMux
}

// NewServer builds a Server. store is optional (may be nil) and is used
// only by SetController to persist controller address changes.
func NewServer(state *core.State, store kvstore.Store) *Server {
	s := &Server{state: state, store: store, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/sync", s.handleSync)
	s.mux.HandleFunc("/api/emergency-lock", s.handleEmergencyLock)
	s.mux.HandleFunc("/api/emergency-unlock", s.handleEmergencyUnlock)
	s.mux.HandleFunc("/api/emergency-reset", s.handleEmergencyReset)
	s.mux.HandleFunc("/api/door-override", s.handleDoorOverride)
	s.mux.HandleFunc("/api/set-controller", s.handleSetController)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	util.WithField("error", err).Warn("api: request failed")
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	snap, err := controller.DecodeSnapshot(body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.state.IngestSnapshot(snap)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type durationRequest struct {
	DurationSeconds int64 `json:"duration"`
}

// handleEmergencyLock engages a board-wide lockdown. Unlike unlock, lock
// is fail-safe and never auto-resets, so no duration is read from the
// request body.
func (s *Server) handleEmergencyLock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.state.EmergencyLock()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleEmergencyUnlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req durationRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body means indefinite
	}
	s.state.EmergencyUnlock(req.DurationSeconds * 1000)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleEmergencyReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.state.EmergencyReset()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type doorOverrideRequest struct {
	DoorNumber int    `json:"door_number"`
	Override   string `json:"override"`
}

func (s *Server) handleDoorOverride(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req doorOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	var override door.Override
	switch req.Override {
	case "lock":
		override = door.OverrideLock
	case "unlock":
		override = door.OverrideUnlock
	default:
		override = door.OverrideNone
	}
	if err := s.state.SetDoorOverride(req.DoorNumber, override); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleStatus reports the node's self-checks: the door relay invariant,
// log queue high-water mark, and controller reachability. Not part of the
// wire protocol any controller depends on; it exists for doorctl and any
// local operator tooling to query live state without scraping logs.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	doors := make([]*door.Door, 0, len(s.state.Doors))
	for _, d := range s.state.Doors {
		doors = append(doors, d)
	}
	checks := []diag.Check{
		&diag.DoorRelayCheck{Doors: doors, BoardEmergency: s.state.BoardEmergency, NowMS: s.state.Clock.NowMS},
		&diag.LogQueueCheck{Queue: s.state.LogQueue},
	}
	if s.state.Controller != nil {
		checks = append(checks, &diag.ControllerLinkCheck{Online: s.state.Controller.Online})
	}
	report := diag.NewChecker(checks...).Run(r.Context())
	status := http.StatusOK
	if report.Overall == diag.StatusCritical {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

type setControllerRequest struct {
	ControllerIP   string `json:"controller_ip"`
	ControllerPort int    `json:"controller_port"`
}

func (s *Server) handleSetController(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req setControllerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !util.IsValidIPv4(req.ControllerIP) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%q is not a valid IPv4 address", req.ControllerIP))
		return
	}
	if s.state.Config != nil {
		s.state.Config.ControllerIP = req.ControllerIP
		s.state.Config.ControllerPort = req.ControllerPort
		if s.store != nil {
			if err := s.store.Save(s.state.Config); err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
