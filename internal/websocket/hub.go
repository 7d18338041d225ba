package websocket

import (
	"log"
	"sync"

	"github.com/dom/postboard/internal/domain"
	"github.com/dom/postboard/internal/observability"
)

// Hub fans feed events out to every connected client.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	stopOnce   sync.Once
	metrics    *observability.Metrics
	mu         sync.RWMutex
}

func NewHub(metrics *observability.Metrics) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		metrics:    metrics,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			h.metrics.SetFeedClients(0)
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.metrics.SetFeedClients(count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.metrics.SetFeedClients(count)

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !client.trySend(data) {
					log.Printf("WARN [websocket.Hub] dropping slow client %s", client.userID)
					delete(h.clients, client)
					client.Close()
				}
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.metrics.SetFeedClients(count)
		}
	}
}

// Stop closes every client and blocks until Run has exited.
// Safe to call more than once and from several goroutines.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues a domain event for all clients. It never blocks the caller:
// when the broadcast queue is full the event is dropped and logged.
func (h *Hub) Publish(event domain.EventType, payload interface{}) {
	data, ok := encode(EventMessageType(event), payload)
	if !ok {
		log.Printf("ERROR [websocket.Hub.Publish] failed to encode %s", event)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("WARN [websocket.Hub.Publish] broadcast queue full, dropping %s", event)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
