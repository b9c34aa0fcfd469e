// Partybox Kiosk
//
// A single display cycles small rounds of party prompts. The session runs on
// the server: browsers connected to /ws report activity and receive frames to
// draw. Every connected browser shows the same screen.
//
// Features:
// - Logo, question and screensaver screens driven by one kiosk.Loop
// - Enter or a click on the logo starts a round; any key or click advances
// - Idle displays fall back to a bouncing logo screensaver
// - Rare and bonus prompts, with bonus prompts highlighted
// - Late joiners get the current frame immediately
// - QR code pointing at the kiosk page, backed by go-qrcode

package main

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/Seednode/partykiosk/kiosk"
	"github.com/gorilla/websocket"
)

// Messages coming from clients
type ClientMessage struct {
	Type        string  `json:"type"`                   // "pointerdown", "pointermove", "keydown", "touchstart", "resize"
	Target      string  `json:"target,omitempty"`       // pointerdown: "logo" or "questions"
	Key         string  `json:"key,omitempty"`          // keydown
	Width       float64 `json:"width,omitempty"`        // resize
	Height      float64 `json:"height,omitempty"`       // resize
	GlyphWidth  float64 `json:"glyph_width,omitempty"`  // resize
	GlyphHeight float64 `json:"glyph_height,omitempty"` // resize
}

// FrameMessage is everything a browser needs to draw the kiosk.
type FrameMessage struct {
	Type   string     `json:"type"` // "frame"
	Mode   kiosk.Mode `json:"mode"`
	Text   string     `json:"text,omitempty"`
	Bonus  bool       `json:"bonus,omitempty"`
	Cursor int        `json:"cursor"`
	Total  int        `json:"total"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Hue    *float64   `json:"hue,omitempty"`
}

func newFrameMessage(f kiosk.Frame) FrameMessage {
	msg := FrameMessage{
		Type:   "frame",
		Mode:   f.Mode,
		Text:   f.Text,
		Bonus:  f.Bonus,
		Cursor: f.Cursor,
		Total:  f.Total,
		X:      f.X,
		Y:      f.Y,
	}
	if f.HasHue {
		hue := f.Hue
		msg.Hue = &hue
	}

	return msg
}

// StatusMessage is served from /status.
type StatusMessage struct {
	Version string       `json:"version"`
	Ready   bool         `json:"ready"`
	Mode    kiosk.Mode   `json:"mode"`
	Clients int          `json:"clients"`
	Pool    kiosk.Counts `json:"pool"`
	Size    int          `json:"size"`
	Error   string       `json:"error,omitempty"`
}

type Client struct {
	conn *websocket.Conn
	send chan any
}

// Hub fans frames out to every connected browser and implements kiosk.View.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	glyph   kiosk.Size

	last    FrameMessage
	hasLast bool

	ready   bool
	counts  kiosk.Counts
	size    int
	loadErr error
}

func newHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
	}
}

// Render is called from the kiosk loop goroutine.
func (h *Hub) Render(f kiosk.Frame) {
	msg := newFrameMessage(f)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = msg
	h.hasLast = true

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

func (h *Hub) GlyphSize() kiosk.Size {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.glyph
}

func (h *Hub) setGlyph(size kiosk.Size) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.glyph = size
}

func (h *Hub) loaded(pool *kiosk.Pool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ready = true
	h.counts = pool.Counts()
	h.size = pool.Len()
	h.loadErr = err
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = true

	if h.hasLast {
		c.send <- h.last
	}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// closeAll disconnects all clients (used on shutdown).
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) status() StatusMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()

	st := StatusMessage{
		Version: releaseVersion,
		Ready:   h.ready,
		Mode:    h.last.Mode,
		Clients: len(h.clients),
		Pool:    h.counts,
		Size:    h.size,
	}
	if h.loadErr != nil {
		st.Error = h.loadErr.Error()
	}

	return st
}

// toEvent translates a client message; ok is false for unknown types.
func (m ClientMessage) toEvent() (kiosk.Event, bool) {
	switch m.Type {
	case "pointerdown":
		ev := kiosk.Event{Kind: kiosk.PointerDown}
		switch m.Target {
		case "logo":
			ev.Target = kiosk.AreaLogo
		case "questions":
			ev.Target = kiosk.AreaQuestions
		}
		return ev, true
	case "pointermove":
		return kiosk.Event{Kind: kiosk.PointerMove}, true
	case "keydown":
		return kiosk.Event{Kind: kiosk.KeyDown, Key: m.Key}, true
	case "touchstart":
		return kiosk.Event{Kind: kiosk.TouchStart}, true
	case "resize":
		return kiosk.Event{
			Kind:     kiosk.Resize,
			Viewport: kiosk.Size{W: m.Width, H: m.Height},
		}, true
	}

	return kiosk.Event{}, false
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func serveWS(cfg *Config, hub *Hub, loop *kiosk.Loop) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 32),
		}

		hub.register(client)

		logf(cfg, "KIOSK: Display connected from %s", realIP(r))

		go client.writePump()
		client.readPump(r.Context(), hub, loop)

		logf(cfg, "KIOSK: Display disconnected from %s", realIP(r))
	}
}

func (c *Client) readPump(ctx context.Context, h *Hub, loop *kiosk.Loop) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		ev, ok := msg.toEvent()
		if !ok {
			continue
		}

		if ev.Kind == kiosk.Resize {
			h.setGlyph(kiosk.Size{W: msg.GlyphWidth, H: msg.GlyphHeight})
		}

		if err := loop.Send(ctx, ev); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
