package hub

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/soar/xgamepad/internal/session"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string                     `json:"type"`              // "full", "delta" or "error"
	Seq       int64                      `json:"seq"`               // Sequence number for ordering
	Timestamp int64                      `json:"timestamp"`         // Unix timestamp in milliseconds
	Data      *session.Snapshot          `json:"data,omitempty"`    // Full snapshot for type "full"
	Changes   map[string]json.RawMessage `json:"changes,omitempty"` // Changed top-level fields for type "delta"
	Error     string                     `json:"error,omitempty"`
}

// NewFullMessage creates a "full" type message containing the complete snapshot.
func NewFullMessage(seq int64, snap *session.Snapshot) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      snap,
	}
}

// NewDeltaMessage creates a "delta" type message containing only changed fields.
func NewDeltaMessage(seq int64, changes map[string]json.RawMessage) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

func NewErrorMessage(text string) *WSMessage {
	return &WSMessage{
		Type:      "error",
		Timestamp: time.Now().UnixMilli(),
		Error:     text,
	}
}

// ComputeDelta returns the top-level snapshot fields, by JSON name, whose
// encoding differs between prev and next.
func ComputeDelta(prev, next session.Snapshot) (map[string]json.RawMessage, error) {
	before, err := fields(prev)
	if err != nil {
		return nil, err
	}
	after, err := fields(next)
	if err != nil {
		return nil, err
	}
	delta := make(map[string]json.RawMessage)
	for k, v := range after {
		if !bytes.Equal(before[k], v) {
			delta[k] = v
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			delta[k] = json.RawMessage("null")
		}
	}
	return delta, nil
}

func fields(snap session.Snapshot) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot")
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	return m, nil
}

// Client commands.
const (
	CmdStartConfiguration = "start_configuration"
	CmdStopConfiguration  = "stop_configuration"
	CmdSetController      = "set_controller"
	CmdShowIndicators     = "show_indicators"
	CmdHideKeyboard       = "hide_keyboard"
)

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type           string `json:"type"`
	ControllerType string `json:"controllerType,omitempty"`
	Show           bool   `json:"show,omitempty"`
}
