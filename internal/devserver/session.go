package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	apperrors "github.com/vango-dev/approuter/internal/errors"
	"github.com/vango-dev/approuter/pkg/navigator"
	"github.com/vango-dev/approuter/pkg/router"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10
	sendBuffer     = 64
)

// contentLayout is implemented by layouts that expose their page content
// separately from the full markup.
type contentLayout interface {
	Content() string
}

// session is one connected browser tab. It is the History and Outlet of its
// navigator: both enqueue frames for the write loop.
type session struct {
	id     string
	conn   *websocket.Conn
	nav    *navigator.Navigator
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	out       chan []byte
	closeOnce sync.Once

	mu         sync.Mutex
	mounted    router.Layout
	mountedSeq uint64
	off        func()
}

func newSession(id string, conn *websocket.Conn, logger *slog.Logger) *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		id:     id,
		conn:   conn,
		logger: logger.With("session", id),
		ctx:    ctx,
		cancel: cancel,
		out:    make(chan []byte, sendBuffer),
	}
}

// attach binds the session to its navigator.
func (s *session) attach(nav *navigator.Navigator) {
	s.nav = nav
	s.off = nav.On(navigator.EventRouteChange, s.onRouteChange)
}

// PushState implements navigator.History.
func (s *session) PushState(url string) {
	s.send(ServerMessage{Type: MsgPush, URL: url})
}

// ReplaceState implements navigator.History.
func (s *session) ReplaceState(url string) {
	s.send(ServerMessage{Type: MsgReplace, URL: url})
}

// Mount implements navigator.Outlet.
func (s *session) Mount(seq uint64, layout router.Layout) {
	s.mu.Lock()
	s.mounted = layout
	s.mountedSeq = seq
	s.mu.Unlock()
	s.send(ServerMessage{Type: MsgMount, HTML: layout.Render()})
}

// onRouteChange sends the page content when the layout was reused, then the
// route itself. Events older than the mounted layout are dropped: the mount
// frame already replaced their DOM.
func (s *session) onRouteChange(ev navigator.Event) {
	s.mu.Lock()
	layout := s.mounted
	mountedSeq := s.mountedSeq
	s.mu.Unlock()

	if ev.Seq < mountedSeq {
		s.logger.Debug("stale route change dropped", "url", ev.URL, "seq", ev.Seq, "mounted", mountedSeq)
		return
	}
	if ev.Seq > mountedSeq && layout != nil {
		if cl, ok := layout.(contentLayout); ok {
			s.send(ServerMessage{Type: MsgContent, HTML: cl.Content()})
		} else {
			s.send(ServerMessage{Type: MsgMount, HTML: layout.Render()})
		}
	}
	s.send(routeMessage(ev))
}

// send enqueues msg. A client that cannot keep up is disconnected.
// send runs inside navigator callbacks, so the teardown that calls back into
// the navigator happens on another goroutine.
func (s *session) send(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("encoding message failed", "type", msg.Type, "error", err)
		return
	}
	select {
	case <-s.ctx.Done():
	case s.out <- data:
	default:
		s.logger.Warn("send buffer full, closing session")
		s.cancel()
		go s.close()
	}
}

// sendError reports d to the client.
func (s *session) sendError(d *apperrors.Diagnostic) {
	s.send(ServerMessage{
		Type:    MsgError,
		Message: d.FormatCompact(),
		Code:    d.Code,
		Error:   json.RawMessage(d.FormatJSON()),
	})
}

// readLoop handles inbound frames until the connection fails. Each frame
// runs on its own goroutine so a newer navigation can supersede one that is
// still loading.
func (s *session) readLoop() {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("read failed", "error", err)
			}
			return
		}
		go s.handle(data)
	}
}

// handle dispatches one inbound frame.
func (s *session) handle(data []byte) {
	msg, err := decodeClientMessage(data)
	if err != nil {
		s.sendError(apperrors.New("P001").WithDetail(err.Error()).Wrap(err))
		return
	}

	ctx := s.ctx
	switch msg.Type {
	case MsgInit:
		if _, err := s.nav.Init(ctx, msg.URL); err != nil {
			s.logger.Debug("init ignored", "error", err)
		}
	case MsgNavigate:
		s.report(s.nav.Navigate(ctx, msg.URL), msg.URL)
	case MsgPopState:
		s.report(s.nav.PopState(ctx, msg.URL), msg.URL)
	case MsgClick:
		intercepted, outcome := s.nav.HandleClick(ctx, msg.Click())
		if !intercepted {
			if outcome != navigator.OutcomeDisposed {
				s.send(ServerMessage{Type: MsgFollow, URL: msg.Href, Target: followTarget(msg)})
			}
			return
		}
		s.report(outcome, msg.Href)
	default:
		s.sendError(apperrors.New("P002").WithDetail(string(msg.Type)))
	}
}

// followTarget is the window a declined click opens in. Modifier clicks
// open a new one.
func followTarget(msg ClientMessage) string {
	if msg.Target == "" && (msg.Ctrl || msg.Meta || msg.Shift) {
		return "_blank"
	}
	return msg.Target
}

// report tells the client about navigations that did not mount.
func (s *session) report(outcome navigator.Outcome, url string) {
	if outcome != navigator.OutcomeFailed {
		return
	}
	err := s.nav.LastError()
	if err == nil {
		err = fmt.Errorf("%w: %s", navigator.ErrLoadFailure, url)
	}
	s.sendError(apperrors.FromNavigation(err).WithDetail(err.Error()))
}

// writeLoop writes queued frames and keeps the connection alive.
func (s *session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case data := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Debug("write failed", "error", err)
				s.close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}
		}
	}
}

// close disposes the navigator and ends both loops.
func (s *session) close() {
	s.closeOnce.Do(func() {
		s.cancel()
		if s.off != nil {
			s.off()
		}
		if s.nav != nil {
			s.nav.Dispose()
		}
	})
}
