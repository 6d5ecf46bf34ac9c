// Package stream broadcasts render instructions to websocket subscribers.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/render"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

const writeWait = 5 * time.Second

// Instruction ops.
const (
	OpSnapshot = "snapshot"
	OpPlace    = "place"
	OpRecolor  = "recolor"
	OpResize   = "resize"
	OpGroup    = "group"
	OpLine     = "line"
	OpUngroup  = "ungroup"
	OpClear    = "clear"
)

// Instruction is one message on the wire.
type Instruction struct {
	Op      string                    `json:"op"`
	HR      int                       `json:"hr,omitempty"`
	Star    *constellation.StarVisual `json:"star,omitempty"`
	Color   *star.RGB                 `json:"color,omitempty"`
	Size    *float64                  `json:"size,omitempty"`
	Handle  constellation.Handle      `json:"handle,omitempty"`
	Label   string                    `json:"label,omitempty"`
	Segment *astro.Segment            `json:"segment,omitempty"`
	Scene   *render.Snapshot          `json:"scene,omitempty"`
}

// Command is a control message sent by a subscriber.
type Command struct {
	Op    string  `json:"op"` // "toggle" or "sizes"
	Index int     `json:"index,omitempty"`
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
}

// CommandFunc handles a subscriber command. A returned error is sent back
// to that subscriber only.
type CommandFunc func(Command) error

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub is a constellation.Renderer that mirrors every instruction to its
// websocket subscribers. New subscribers first receive a scene snapshot.
type Hub struct {
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
	snapshot func() render.Snapshot
	onCmd    CommandFunc
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithCommandHandler accepts control messages from subscribers.
func WithCommandHandler(fn CommandFunc) HubOption {
	return func(h *Hub) {
		h.onCmd = fn
	}
}

// NewHub creates a hub. snapshot supplies the initial state for new subscribers.
func NewHub(snapshot func() render.Snapshot, logger *slog.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		subs:     make(map[*subscriber]struct{}),
		snapshot: snapshot,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request and streams instructions until the
// client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("stream: upgrade failed", slog.String("remote", r.RemoteAddr), slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	sub := &subscriber{conn: conn}
	if !h.subscribe(sub) {
		return
	}
	defer h.unsubscribe(sub)

	h.logger.Debug("stream: subscribed", slog.String("remote", r.RemoteAddr))

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.logger.Debug("stream: disconnected", slog.String("remote", r.RemoteAddr))
			return
		}
		h.handleCommand(sub, payload)
	}
}

func (h *Hub) handleCommand(sub *subscriber, payload []byte) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		h.logger.Debug("stream: discarding malformed message", slog.String("error", err.Error()))
		return
	}
	if h.onCmd == nil {
		return
	}
	if err := h.onCmd(cmd); err != nil {
		reply, _ := json.Marshal(map[string]string{"op": "error", "error": err.Error()})
		sub.write(reply)
	}
}

// subscribe registers sub and sends the snapshot while holding the lock,
// so no broadcast can interleave with it.
func (h *Hub) subscribe(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap := h.snapshot()
	data, err := json.Marshal(Instruction{Op: OpSnapshot, Scene: &snap})
	if err != nil {
		h.logger.Error("stream: marshal snapshot failed", slog.String("error", err.Error()))
		return false
	}
	if err := sub.write(data); err != nil {
		return false
	}
	h.subs[sub] = struct{}{}
	return true
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub)
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		sub.conn.Close()
		delete(h.subs, sub)
	}
}

// broadcast never fails the caller; subscribers that cannot keep up are dropped.
func (h *Hub) broadcast(in Instruction) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if err := sub.write(data); err != nil {
			h.logger.Debug("stream: dropping subscriber", slog.String("error", err.Error()))
			sub.conn.Close()
			delete(h.subs, sub)
		}
	}
	return nil
}

// PlaceStar implements constellation.Renderer.
func (h *Hub) PlaceStar(v constellation.StarVisual) error {
	return h.broadcast(Instruction{Op: OpPlace, HR: v.CatalogNumber, Star: &v})
}

// Recolor implements constellation.Renderer.
func (h *Hub) Recolor(hr int, c star.RGB) error {
	return h.broadcast(Instruction{Op: OpRecolor, HR: hr, Color: &c})
}

// Resize implements constellation.Renderer.
func (h *Hub) Resize(hr int, size float64) error {
	return h.broadcast(Instruction{Op: OpResize, HR: hr, Size: &size})
}

// CreateGroup implements constellation.Renderer.
func (h *Hub) CreateGroup(handle constellation.Handle, label string) error {
	return h.broadcast(Instruction{Op: OpGroup, Handle: handle, Label: label})
}

// AddLine implements constellation.Renderer.
func (h *Hub) AddLine(handle constellation.Handle, seg astro.Segment) error {
	return h.broadcast(Instruction{Op: OpLine, Handle: handle, Segment: &seg})
}

// DestroyGroup implements constellation.Renderer.
func (h *Hub) DestroyGroup(handle constellation.Handle) error {
	return h.broadcast(Instruction{Op: OpUngroup, Handle: handle})
}

// Clear implements constellation.Renderer.
func (h *Hub) Clear() error {
	return h.broadcast(Instruction{Op: OpClear})
}
