package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active wallet connections and broadcasts events to them.
// A wallet may be connected from several tabs/devices at once.
type Hub struct {
	mu               sync.RWMutex
	addressToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			addressToClients: make(map[string]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a wallet address.
func (h *Hub) Register(address string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.addressToClients[address]; !ok {
		h.addressToClients[address] = make(map[Client]struct{})
	}
	h.addressToClients[address][client] = struct{}{}
}

// Unregister removes a client; if the wallet has no more clients, cleans up map.
func (h *Hub) Unregister(address string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.addressToClients[address]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.addressToClients, address)
		}
	}
}

// Broadcast sends a message to all clients of a wallet.
func (h *Hub) Broadcast(address string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.addressToClients[address]
	for c := range clients {
		if ok := c.Send(message); !ok {
			// client write failed; let the handler clean it up on its side
		}
	}
}
