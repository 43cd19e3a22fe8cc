package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rawblock/decipher-engine/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for local dashboard
	},
}

// confirmTimeout bounds how long a human-confirmation prompt waits for a
// reply over POST /api/v1/confirm/:token before Confirm gives up and
// reports the candidate as unconfirmed.
const confirmTimeout = 30 * time.Second

// Hub maintains the set of active websocket clients, broadcasts messages,
// and — wired as a checker.Confirmer — brokers human-confirmation prompts
// for candidates the checker pipeline has already identified, before they
// are accepted as the answer.
type Hub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
	mutex     sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan bool
}

func NewHub() *Hub {
	return &Hub{
		broadcast: make(chan []byte, 256),
		clients:   make(map[*websocket.Conn]bool),
		pending:   make(map[string]chan bool),
	}
}

func (h *Hub) Run() {
	for message := range h.broadcast {
		h.mutex.Lock()
		for client := range h.clients {
			// Set write deadline to prevent blocked clients from hanging the hub
			_ = client.SetWriteDeadline(time.Now().Add(5 * time.Second))
			err := client.WriteMessage(websocket.TextMessage, message)
			if err != nil {
				log.Printf("Websocket write error: %v", err)
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mutex.Unlock()
	}
}

// Subscribe handles incoming websocket connections
func (h *Hub) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()

	log.Printf("New WebSocket client connected. Total clients: %d", len(h.clients))

	// Keep alive loop (we only care about pushing down, but we must read to handle disconnects)
	go func() {
		defer func() {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			conn.Close()
			log.Printf("WebSocket client disconnected. Total clients: %d", len(h.clients))
		}()
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket error: %v", err)
				}
				break
			}
		}
	}()
}

// Broadcast sends JSON data to all connected clients
func (h *Hub) Broadcast(data []byte) {
	h.broadcast <- data
}

// confirmPrompt is the message pushed to every connected client when a
// candidate needs a human's yes/no. Clients answer via
// POST /api/v1/confirm/:token, which calls Resolve.
type confirmPrompt struct {
	Type        string `json:"type"`
	Token       string `json:"token"`
	Text        string `json:"text"`
	CheckerName string `json:"checkerName"`
	Description string `json:"description"`
}

// Confirm implements checker.Confirmer: it broadcasts a confirmation
// prompt and blocks until a client resolves it via Resolve, or
// confirmTimeout passes, in which case the candidate is treated as
// rejected so the search keeps looking rather than stalling forever on
// an unanswered prompt.
func (h *Hub) Confirm(candidate models.CheckerResult) bool {
	token := uuid.NewString()
	reply := make(chan bool, 1)

	h.pendingMu.Lock()
	h.pending[token] = reply
	h.pendingMu.Unlock()
	defer func() {
		h.pendingMu.Lock()
		delete(h.pending, token)
		h.pendingMu.Unlock()
	}()

	payload, err := json.Marshal(confirmPrompt{
		Type:        "confirm",
		Token:       token,
		Text:        candidate.Text,
		CheckerName: candidate.CheckerName,
		Description: candidate.Description,
	})
	if err != nil {
		log.Printf("websocket: marshal confirm prompt: %v", err)
		return false
	}
	h.Broadcast(payload)

	select {
	case accepted := <-reply:
		return accepted
	case <-time.After(confirmTimeout):
		return false
	}
}

// Resolve answers a pending Confirm call identified by token. It reports
// whether a matching pending prompt was found.
func (h *Hub) Resolve(token string, accepted bool) bool {
	h.pendingMu.Lock()
	reply, ok := h.pending[token]
	h.pendingMu.Unlock()
	if !ok {
		return false
	}
	reply <- accepted
	return true
}
