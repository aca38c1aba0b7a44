// Package ws mirrors the running show to browsers: frames on /ws, phase and
// error diagnostics on /diag and a JSON summary on /health.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/jrudolph/twaeng-pop-sign/internal/diagnostics"
	"github.com/jrudolph/twaeng-pop-sign/internal/render"
)

// DefaultInterval caps the frame broadcast at 30 fps.
const DefaultInterval = time.Second / 30

type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Hub is a render.Driver and render.Dimmer that fans frames out to websocket
// clients.
type Hub struct {
	mu sync.RWMutex

	// MinInterval drops frames arriving sooner than this after the last
	// broadcast one; 0 sends every frame.
	MinInterval time.Duration

	count       int
	driver      string
	rgb         []byte
	frameID     uint64
	sentID      uint64 // frameID of the last broadcast frame
	lastSent    time.Time
	backlight   int
	phase       string
	phaseIdx    int
	frameErrors uint64
	startTime   time.Time
	clients     map[*client]bool
	diagClients map[*client]bool
}

// NewHub serves a sign of count nodes; driver names the hardware sink for
// /health.
func NewHub(count int, driver string) *Hub {
	return &Hub{
		MinInterval: DefaultInterval,
		count:       count,
		driver:      driver,
		rgb:         make([]byte, count*3),
		phaseIdx:    -1,
		startTime:   time.Now(),
		clients:     map[*client]bool{},
		diagClients: map[*client]bool{},
	}
}

// Routes returns a mux with every endpoint of the hub.
func (h *Hub) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/diag", h.HandleDiagWS)
	mux.HandleFunc("/health", h.HandleHealth)
	return mux
}

// Write stores the frame and broadcasts it, rate limited by MinInterval.
// A frame held back by the limit goes out with the next Flush.
func (h *Hub) Write(buf []render.Color) error {
	h.mu.Lock()
	for i := range h.rgb {
		h.rgb[i] = 0
	}
	for i, c := range buf {
		if i*3+2 >= len(h.rgb) {
			break
		}
		h.rgb[i*3], h.rgb[i*3+1], h.rgb[i*3+2] = c.R, c.G, c.B
	}
	h.frameID++
	now := time.Now()
	if h.MinInterval > 0 && now.Sub(h.lastSent) < h.MinInterval {
		h.mu.Unlock()
		return nil
	}
	f := h.takeLocked(now)
	h.mu.Unlock()

	h.broadcastFrame(f)
	return nil
}

// Flush broadcasts the latest frame if the rate limit held it back.
func (h *Hub) Flush() {
	h.mu.Lock()
	if h.sentID == h.frameID {
		h.mu.Unlock()
		return
	}
	f := h.takeLocked(time.Now())
	h.mu.Unlock()
	h.broadcastFrame(f)
}

func (h *Hub) takeLocked(now time.Time) frame {
	h.lastSent = now
	h.sentID = h.frameID
	return frame{T: now.UnixNano(), FrameID: h.frameID, Backlight: h.backlight, RGB: append([]byte{}, h.rgb...)}
}

// SetLevel records the backlight level for the next frame message.
func (h *Hub) SetLevel(level int) error {
	h.mu.Lock()
	h.backlight = level
	h.mu.Unlock()
	return nil
}

// PhaseStarted announces a new show phase.
func (h *Hub) PhaseStarted(i int, name string) {
	h.Flush()
	h.mu.Lock()
	h.phase, h.phaseIdx = name, i
	h.mu.Unlock()
	h.pushDiag(diag.Diagnostic{
		Severity: diag.Info,
		Code:     diag.CodePhaseStart,
		Summary:  "Phase started",
		Detail:   name,
		Evidence: map[string]any{"index": i},
	})
}

// FrameError reports a failed write to the LED string.
func (h *Hub) FrameError(err error) {
	h.mu.Lock()
	h.frameErrors++
	n := h.frameErrors
	h.mu.Unlock()
	h.pushDiag(diag.Diagnostic{
		Severity:       diag.Warn,
		Code:           diag.CodeFrameWrite,
		Summary:        "Frame write failed",
		Detail:         err.Error(),
		LikelyCauses:   []string{"SPI port busy or unplugged", "LED power supply off"},
		SuggestedFixes: []string{"check the data and power wiring", "run with --driver console"},
		Evidence:       map[string]any{"errors": n},
	})
}

// ShowEnded announces that the program finished or stopped.
func (h *Hub) ShowEnded(err error) {
	h.Flush()
	d := diag.Diagnostic{Severity: diag.Info, Code: diag.CodeShowEnd, Summary: "Show ended"}
	if err != nil {
		d.Severity, d.Detail = diag.Err, err.Error()
	}
	h.pushDiag(d)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	h.sendTopology(c)
	go h.drain(c, h.clients)
}

func (h *Hub) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	h.mu.Lock()
	h.diagClients[c] = true
	h.mu.Unlock()
	b, _ := json.Marshal(diag.Diagnostic{Severity: diag.Info, Code: diag.CodeHello, Summary: "Connected"})
	_ = c.send(b)
	go h.drain(c, h.diagClients)
}

// drain reads until the peer goes away, then unregisters it from set.
func (h *Hub) drain(c *client, set map[*client]bool) {
	defer func() {
		h.mu.Lock()
		delete(set, c)
		h.mu.Unlock()
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	resp := map[string]any{
		"frame_id":     h.frameID,
		"uptime_s":     time.Since(h.startTime).Seconds(),
		"count":        h.count,
		"driver":       h.driver,
		"phase":        h.phase,
		"phase_index":  h.phaseIdx,
		"backlight":    h.backlight,
		"frame_errors": h.frameErrors,
		"clients":      len(h.clients),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Hub) sendTopology(c *client) {
	h.mu.RLock()
	top := map[string]any{
		"count":  h.count,
		"driver": h.driver,
		"phase":  h.phase,
	}
	h.mu.RUnlock()
	b, _ := json.Marshal(top)
	_ = c.send(b)
}

type frame struct {
	T         int64  `json:"t"`
	FrameID   uint64 `json:"frame_id"`
	Backlight int    `json:"backlight"`
	RGB       []byte `json:"rgb"`
}

func (h *Hub) broadcastFrame(f frame) {
	b, _ := json.Marshal(f)
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		if err := c.send(b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (h *Hub) pushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	h.mu.RLock()
	clients := make([]*client, 0, len(h.diagClients))
	for c := range h.diagClients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		_ = c.send(b)
	}
}
