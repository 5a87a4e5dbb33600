package navigator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

type wsInbound struct {
	Type        string             `json:"type"`
	ID          string             `json:"id,omitempty"`
	PageYOffset float64            `json:"pageYOffset,omitempty"`
	Sections    map[string]float64 `json:"sections,omitempty"`
	Entries     []VisibilityEvent  `json:"entries,omitempty"`
}

type wsOutbound struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ID        string          `json:"id,omitempty"`
	Sections  []string        `json:"sections,omitempty"`
	Observe   *ObserveOptions `json:"observe,omitempty"`
	Top       *float64        `json:"top,omitempty"`
	Behavior  ScrollBehavior  `json:"behavior,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// Session is one page view connected over a WebSocket. The page reports its
// geometry and visibility entries; the session acts as both the Observer and
// the Viewport of a Navigator.
type Session struct {
	ID string

	conn    *websocket.Conn
	writeCh chan wsOutbound
	batches chan []VisibilityEvent

	mu          sync.RWMutex
	pageYOffset float64
	tops        map[string]float64
}

func newSession(conn *websocket.Conn) *Session {
	return &Session{
		ID:      uuid.NewString(),
		conn:    conn,
		writeCh: make(chan wsOutbound, 32),
		batches: make(chan []VisibilityEvent, 16),
		tops:    make(map[string]float64),
	}
}

// Serve drives a navigator for conn until the page disconnects or ctx ends.
func Serve(ctx context.Context, conn *websocket.Conn, sections []string, opts ...Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := newSession(conn)
	nav := New(sections, s, opts...)
	logger.Info("navigation session %s started", s.ID)
	defer logger.Info("navigation session %s ended", s.ID)

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		return err
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(ctx)
	}()

	active, unsubscribe := nav.Subscribe()
	defer unsubscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case id := <-active:
				s.push(ctx, wsOutbound{Type: "active", ID: id})
			}
		}
	}()

	go s.readLoop(ctx, nav)

	err := nav.Run(ctx, s)
	cancel()
	<-writerDone
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// * Observe announces the sections and options to the page and hands back the batch stream
func (s *Session) Observe(ctx context.Context, sectionIDs []string, opts ObserveOptions) (<-chan []VisibilityEvent, error) {
	s.push(ctx, wsOutbound{
		Type:      "hello",
		SessionID: s.ID,
		Sections:  sectionIDs,
		Observe:   &opts,
	})
	return s.batches, nil
}

func (s *Session) ElementTop(sectionID string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	top, ok := s.tops[sectionID]
	return top, ok
}

func (s *Session) PageYOffset() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageYOffset
}

func (s *Session) ScrollTo(top float64, behavior ScrollBehavior) {
	s.push(context.Background(), wsOutbound{Type: "scrollTo", Top: &top, Behavior: behavior})
}

func (s *Session) readLoop(ctx context.Context, nav *Navigator) {
	defer close(s.batches)

	for {
		var in wsInbound
		if err := s.conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("navigation session %s read failed: %v", s.ID, err)
			}
			return
		}

		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "geometry":
			s.mu.Lock()
			s.pageYOffset = in.PageYOffset
			for id, top := range in.Sections {
				s.tops[id] = top
			}
			s.mu.Unlock()
		case "visibility":
			select {
			case s.batches <- in.Entries:
			case <-ctx.Done():
				return
			}
		case "scroll":
			if !nav.ScrollToSection(in.ID) {
				logger.Debug("navigation session %s: scroll to %q ignored", s.ID, in.ID)
			}
		default:
			s.push(ctx, wsOutbound{Type: "error", Message: "unknown message type " + in.Type})
		}
	}
}

func (s *Session) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(wsPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(wsWriteWait))
			return
		case out := <-s.writeCh:
			if err := s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if err := s.conn.WriteJSON(out); err != nil {
				return
			}
		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) push(ctx context.Context, out wsOutbound) {
	select {
	case s.writeCh <- out:
	case <-ctx.Done():
	default:
		logger.Warn("navigation session %s: dropping %s message, writer is behind", s.ID, out.Type)
	}
}
