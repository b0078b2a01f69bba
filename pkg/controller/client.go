// Package controller implements the node's outbound link to the central
// controller: announce, heartbeat, log delivery, temp-code usage reports,
// and inbound snapshot ingest.
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ironlatch/accessnode/pkg/util"
)

// RequestTimeout bounds every outbound HTTP call.
const RequestTimeout = 8 * time.Second

// HeartbeatInterval is how often Heartbeat should be called by the
// scheduler loop.
const HeartbeatInterval = 60 * time.Second

// Client talks to the central controller over plain JSON/HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	online     atomic.Bool
}

// NewClient creates a Client targeting the controller at baseURL (e.g.
// "http://10.0.0.5:8080").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: RequestTimeout},
	}
}

// Online reports the last-known reachability of the controller, as tracked
// by Heartbeat transitions.
func (c *Client) Online() bool {
	return c.online.Load()
}

// AnnouncePayload is posted at boot and after Wi-Fi reconnect.
type AnnouncePayload struct {
	BoardIP    string `json:"board_ip"`
	MACAddress string `json:"mac_address"`
	BoardName  string `json:"board_name"`
	Door1Name  string `json:"door1_name"`
	Door2Name  string `json:"door2_name"`
}

// Announce posts node identity to the controller.
func (c *Client) Announce(ctx context.Context, p AnnouncePayload) error {
	return c.post(ctx, "/api/board-announce", p, nil)
}

// HeartbeatPayload is posted every HeartbeatInterval.
type HeartbeatPayload struct {
	IPAddress string `json:"ip_address"`
	BoardName string `json:"board_name"`
}

// Heartbeat posts a liveness check. A 200 response toggles Online() to
// true; anything else (including transport errors) toggles it to false.
// Transitions are logged.
func (c *Client) Heartbeat(ctx context.Context, p HeartbeatPayload) error {
	err := c.post(ctx, "/api/heartbeat", p, nil)
	wasOnline := c.online.Load()
	nowOnline := err == nil
	if wasOnline != nowOnline {
		c.online.Store(nowOnline)
		if nowOnline {
			util.WithComponent("controller").Info("link up")
		} else {
			util.WithComponent("controller").WithField("error", err).Warn("link down")
		}
	}
	return err
}

// AccessLogPayload mirrors accesslog.Entry's wire shape; defined here
// rather than importing accesslog, so this package has no dependency on
// the queue implementation — it only knows how to POST one entry.
type AccessLogPayload struct {
	Timestamp      string `json:"timestamp"`
	Door           int    `json:"door"`
	Principal      string `json:"principal"`
	Credential     string `json:"credential"`
	CredentialType string `json:"credential_type"`
	Granted        bool   `json:"granted"`
	Reason         string `json:"reason"`
}

// PostLog sends one access log entry. Success iff HTTP 200.
func (c *Client) PostLog(ctx context.Context, entry AccessLogPayload) error {
	return c.post(ctx, "/api/access-log", entry, nil)
}

// TempCodeUsagePayload reports a temp code's current per-door use count.
// The field name current_uses is historical; semantics are per-door.
type TempCodeUsagePayload struct {
	Code        string `json:"code"`
	CurrentUses int    `json:"current_uses"`
}

// PostTempCodeUsage reports a temp-code use to the controller.
func (c *Client) PostTempCodeUsage(ctx context.Context, p TempCodeUsagePayload) error {
	return c.post(ctx, "/api/temp-code-usage", p, nil)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrValidationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", util.ReasonControllerUnreachable, util.ErrNotConnected)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s returned %d", util.ReasonControllerUnreachable, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
