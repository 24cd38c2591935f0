package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type analysisPayload struct {
	Event       string    `json:"event"`
	Best        *moveDTO  `json:"best,omitempty"`
	Top         []moveDTO `json:"top,omitempty"`
	NoLegalMove bool      `json:"no_legal_move"`
	Candidates  int       `json:"candidates"`
	DurationMs  int64     `json:"duration_ms"`
	SolveCount  int       `json:"solve_count"`
	UpdatedAt   int64     `json:"updated_at_ms"`
}

type AnalysisClient struct {
	hub  *AnalysisHub
	conn *websocket.Conn
	send chan []byte
}

// AnalysisHub fans solve results out to connected websocket clients.
type AnalysisHub struct {
	mu        sync.Mutex
	clients   map[*AnalysisClient]struct{}
	broadcast chan analysisPayload
}

func NewAnalysisHub() *AnalysisHub {
	return &AnalysisHub{
		clients:   make(map[*AnalysisClient]struct{}),
		broadcast: make(chan analysisPayload, 64),
	}
}

func (h *AnalysisHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			if len(h.clients) == 0 {
				h.mu.Unlock()
				continue
			}
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "analysis", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

// Publish never blocks; a full buffer drops the update.
func (h *AnalysisHub) Publish(payload analysisPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *AnalysisHub) Register(c *AnalysisClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *AnalysisHub) Unregister(c *AnalysisClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *AnalysisHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *AnalysisClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func serveAnalysisWS(hub *AnalysisHub, controller *SolveController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &AnalysisClient{hub: hub, conn: conn, send: make(chan []byte, 16)}
	hub.Register(client)

	initial := analysisPayload{
		Event:      "snapshot",
		SolveCount: controller.SolveCount(),
		UpdatedAt:  time.Now().UnixMilli(),
	}
	if result, ok := controller.LastResult(); ok {
		initial = analysisResultPayload("snapshot", result, controller.SolveCount())
	}
	client.sendJSON(wsMessage{Type: "analysis", Payload: mustMarshal(initial)})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}

func analysisResultPayload(event string, result SolveResult, solveCount int) analysisPayload {
	payload := analysisPayload{
		Event:       event,
		NoLegalMove: !result.HasBest,
		Candidates:  result.Candidates,
		DurationMs:  result.Duration.Milliseconds(),
		SolveCount:  solveCount,
		UpdatedAt:   time.Now().UnixMilli(),
	}
	if result.HasBest {
		best := moveToDTO(result.Best)
		payload.Best = &best
		payload.Top = movesToDTO(result.Top)
	}
	return payload
}
