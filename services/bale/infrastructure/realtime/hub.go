// Package realtime pushes stack label changes to websocket observers of a warehouse.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ghuser/baleyard/pkg/logger"
	"github.com/ghuser/baleyard/services/bale/domain/models"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
)

// Message types sent to observers.
const (
	TypeSnapshot = "labels.snapshot"
	TypeDiff     = "labels.diff"
)

const (
	writeWait   = 5 * time.Second
	readWait    = 60 * time.Second
	pingPeriod  = 50 * time.Second
	sendBacklog = 32
)

// Message is one websocket frame. A snapshot carries every label; a diff carries
// changed labels and the keys of stacks that no longer have a label.
type Message struct {
	Type        string                  `json:"type"`
	WarehouseID string                  `json:"warehouse_id"`
	Labels      []domainsvcs.StackLabel `json:"labels"`
	Removed     []models.StackKey       `json:"removed,omitempty"`
}

// Hub fans label messages out to the observers subscribed to each warehouse.
type Hub struct {
	log      logger.Logger
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	subs   map[string]map[uint64]chan []byte
	nextID atomic.Uint64
}

// NewHub returns an empty hub. checkOrigin may be nil to accept any origin.
func NewHub(log logger.Logger, checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		log:  log,
		subs: make(map[string]map[uint64]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// AllowOrigins returns an origin check for a comma-separated allow list.
// "*" or an empty list allows every origin.
func AllowOrigins(list string) func(r *http.Request) bool {
	allowed := make(map[string]bool)
	for _, o := range strings.Split(list, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}
	if len(allowed) == 0 || allowed["*"] {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

// Subscribe registers a buffered channel for the warehouse. The returned func
// unregisters it and closes the channel.
func (h *Hub) Subscribe(warehouseID string) (<-chan []byte, func()) {
	id := h.nextID.Add(1)
	ch := make(chan []byte, sendBacklog)

	h.mu.Lock()
	if h.subs[warehouseID] == nil {
		h.subs[warehouseID] = make(map[uint64]chan []byte)
	}
	h.subs[warehouseID][id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[warehouseID], id)
			if len(h.subs[warehouseID]) == 0 {
				delete(h.subs, warehouseID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of observers of the warehouse.
func (h *Hub) Subscribers(warehouseID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[warehouseID])
}

// PublishLabels sends a diff to every observer of the warehouse. Slow observers
// that have a full backlog miss the frame; the next snapshot on reconnect heals them.
func (h *Hub) PublishLabels(warehouseID string, changed []domainsvcs.StackLabel, removed []models.StackKey) {
	if len(changed) == 0 && len(removed) == 0 {
		return
	}
	if changed == nil {
		changed = []domainsvcs.StackLabel{}
	}
	b, err := json.Marshal(Message{Type: TypeDiff, WarehouseID: warehouseID, Labels: changed, Removed: removed})
	if err != nil {
		h.log.Error("marshal label diff", "error", err, "warehouse_id", warehouseID)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs[warehouseID] {
		select {
		case ch <- b:
		default:
			h.log.Warn("dropping label diff for slow observer", "warehouse_id", warehouseID, "observer", id)
		}
	}
}

// ServeWS upgrades the request, sends the snapshot and streams diffs until the
// peer goes away. Inbound frames are read only to detect closure.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, warehouseID string, snapshot []domainsvcs.StackLabel) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	out, unsubscribe := h.Subscribe(warehouseID)
	defer unsubscribe()

	if snapshot == nil {
		snapshot = []domainsvcs.StackLabel{}
	}
	first, err := json.Marshal(Message{Type: TypeSnapshot, WarehouseID: warehouseID, Labels: snapshot})
	if err != nil {
		h.log.ErrorContext(r.Context(), "marshal label snapshot", "error", err)
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, first); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Writer goroutine.
	writeErr := make(chan error, 1)
	go func() {
		ping := time.NewTicker(pingPeriod)
		defer ping.Stop()
		for {
			select {
			case <-ctx.Done():
				writeErr <- ctx.Err()
				return
			case b, ok := <-out:
				if !ok {
					writeErr <- nil
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					writeErr <- err
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					writeErr <- err
					return
				}
			}
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
	}

	cancel()
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
}
