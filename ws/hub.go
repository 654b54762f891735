package ws

// Hub bertanggung jawab untuk menyimpan koneksi client dan melakukan
// broadcast view dashboard yang baru dihitung ke seluruh client.

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Jenis event yang dikirim ke client.
const (
	EventDashboardUpdate   = "dashboard_update"
	EventVitalsQueueUpdate = "vitals_queue_update"
)

var ErrHubClosed = errors.New("ws: hub stopped")

// eventAudience lists the roles allowed to receive each event, mirroring the
// roles of the HTTP route that serves the same view. Events not listed here
// are never delivered.
var eventAudience = map[string][]string{
	EventDashboardUpdate:   {utils.RoleAdmin},
	EventVitalsQueueUpdate: {utils.RoleNurse},
}

func allowed(eventType, role string) bool {
	for _, r := range eventAudience[eventType] {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

type outbound struct {
	eventType string
	payload   []byte
}

// Message is the envelope every push uses.
type Message struct {
	Type   string      `json:"type"`
	Data   interface{} `json:"data"`
	SentAt time.Time   `json:"sent_at"`
}

// Client mewakili koneksi WebSocket. Role diambil dari token saat handshake.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
	Role string
}

// Hub mengelola semua koneksi client
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	count      chan int
	done       chan struct{}
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan int),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run owns the client set until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.log.Debug().Int("clients", len(h.clients)).Msg("ws client registered")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.log.Debug().Int("clients", len(h.clients)).Msg("ws client unregistered")
			}
		case h.count <- len(h.clients):
		case message := <-h.broadcast:
			for client := range h.clients {
				if !allowed(message.eventType, client.Role) {
					continue
				}
				select {
				case client.Send <- message.payload:
				default:
					// slow consumer
					close(client.Send)
					delete(h.clients, client)
					h.log.Warn().Msg("ws client dropped: send buffer full")
				}
			}
		}
	}
}

// Publish wraps data in a Message and queues it for every connected client
// whose role may see eventType.
func (h *Hub) Publish(eventType string, data interface{}) error {
	payload, err := json.Marshal(Message{Type: eventType, Data: data, SentAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- outbound{eventType: eventType, payload: payload}:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

// Clients reports how many connections Run currently holds.
func (h *Hub) Clients() int {
	select {
	case n := <-h.count:
		return n
	case <-h.done:
		return 0
	}
}
