package stream

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Hub fans pings out to websocket subscribers, keyed by vehicle. A Redis
// pub/sub mirror keeps subscribers on other instances in sync. Publishes are
// tagged with the hub's instance id so the pub/sub echo of a local broadcast
// is not delivered twice.
type Hub struct {
	id      string
	redis   *redis.Client
	logger  *zap.Logger
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	VehicleID string
	Send      chan []byte
}

func NewHub(redisClient *redis.Client, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		id:      uuid.NewString(),
		redis:   redisClient,
		logger:  logger,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(vehicleID string) *Client {
	client := &Client{
		VehicleID: vehicleID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[vehicleID] == nil {
		h.clients[vehicleID] = map[*Client]struct{}{}
	}
	h.clients[vehicleID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if vehicleClients, ok := h.clients[client.VehicleID]; ok {
		delete(vehicleClients, client)
		if len(vehicleClients) == 0 {
			delete(h.clients, client.VehicleID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(vehicleID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[vehicleID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(vehicleID), envelope(h.id, payload)).Err()
		if err != nil {
			h.logger.Error("redis publish failed", zap.String("vehicle_id", vehicleID), zap.Error(err))
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "fleet:*:pings")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		src, payload := splitEnvelope(msg.Payload)
		if src == h.id {
			continue
		}

		vehicleID := vehicleIDFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[vehicleID]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(payload):
			default:
			}
		}
	}
}

// envelope prefixes the payload with the publishing instance id.
func envelope(instanceID string, payload []byte) string {
	return instanceID + "|" + string(payload)
}

func splitEnvelope(raw string) (string, string) {
	i := strings.IndexByte(raw, '|')
	if i < 0 {
		return "", raw
	}
	return raw[:i], raw[i+1:]
}

func redisChannel(vehicleID string) string {
	return "fleet:" + vehicleID + ":pings"
}

func vehicleIDFromChannel(ch string) string {
	// fleet:{vehicle}:pings
	const prefix = "fleet:"
	const suffix = ":pings"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
