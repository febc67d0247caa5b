package devserver

import (
	"encoding/json"

	"github.com/vango-dev/approuter/pkg/navigator"
	"github.com/vango-dev/approuter/pkg/query"
)

// MessageType identifies a protocol message.
type MessageType string

// Client to server.
const (
	MsgInit     MessageType = "init"
	MsgNavigate MessageType = "navigate"
	MsgPopState MessageType = "popstate"
	MsgClick    MessageType = "click"
)

// Server to client.
const (
	MsgMount   MessageType = "mount"
	MsgContent MessageType = "content"
	MsgPush    MessageType = "push"
	MsgReplace MessageType = "replace"
	MsgRoute   MessageType = "route"
	MsgFollow  MessageType = "follow"
	MsgReload  MessageType = "reload"
	MsgError   MessageType = "error"
)

// ClientMessage is a frame sent by the thin client.
type ClientMessage struct {
	Type MessageType `json:"type"`
	URL  string      `json:"url,omitempty"`

	// Click fields.
	Href     string `json:"href,omitempty"`
	Button   int    `json:"button,omitempty"`
	Ctrl     bool   `json:"ctrl,omitempty"`
	Meta     bool   `json:"meta,omitempty"`
	Shift    bool   `json:"shift,omitempty"`
	Alt      bool   `json:"alt,omitempty"`
	Target   string `json:"target,omitempty"`
	Download bool   `json:"download,omitempty"`
	Rel      string `json:"rel,omitempty"`
}

// Click converts a click message for Navigator.HandleClick.
func (m ClientMessage) Click() navigator.Click {
	return navigator.Click{
		Href:     m.Href,
		Button:   m.Button,
		Ctrl:     m.Ctrl,
		Meta:     m.Meta,
		Shift:    m.Shift,
		Alt:      m.Alt,
		Target:   m.Target,
		Download: m.Download,
		Rel:      m.Rel,
	}
}

// ServerMessage is a frame sent to the thin client.
type ServerMessage struct {
	Type    MessageType       `json:"type"`
	HTML    string            `json:"html,omitempty"`
	URL     string            `json:"url,omitempty"`
	Target  string            `json:"target,omitempty"`
	Path    string            `json:"path,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
	Query   *query.Map        `json:"query,omitempty"`
	Message string            `json:"message,omitempty"`
	Code    string            `json:"code,omitempty"`

	// Error is the full diagnostic of an error frame.
	Error json.RawMessage `json:"error,omitempty"`
}

// routeMessage converts a route-change event.
func routeMessage(ev navigator.Event) ServerMessage {
	q := ev.Query
	return ServerMessage{
		Type:   MsgRoute,
		URL:    ev.URL,
		Path:   ev.Path,
		Params: ev.Params,
		Query:  &q,
	}
}

// decodeClientMessage parses one inbound frame.
func decodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	err := json.Unmarshal(data, &msg)
	return msg, err
}
