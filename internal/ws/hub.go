package ws

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/postmessages/board-api/internal/core/domain"
	"github.com/postmessages/board-api/internal/pkg/metrics"
)

// inboxBuffer bounds how many accepted messages may queue for fan-out
// before Publish starts dropping. Delivery is at-most-once.
const inboxBuffer = 256

// broadcastFrame is the wire framing for push events. Every created
// message is emitted as a "broadcast" event, matching the channel
// contract negotiated at connection setup.
type broadcastFrame struct {
	Event string         `json:"event"`
	Data  domain.Message `json:"data"`
}

// Hub fans accepted messages out to all connected observers. A single
// goroutine owns the client set and performs deliveries, so each
// subscriber sees messages in the same relative order they were
// created. There is no replay: a subscriber connecting after a
// creation never receives that earlier message.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Accepted messages awaiting fan-out.
	broadcast chan domain.Message

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Closed when Run returns; releases pumps still trying to
	// register or unregister after shutdown.
	done chan struct{}

	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan domain.Message, inboxBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Publish hands a created message to the hub without blocking the
// write path. When the hub inbox is full the message is dropped:
// best-effort, at-most-once.
func (h *Hub) Publish(m domain.Message) {
	select {
	case h.broadcast <- m:
	default:
		metrics.BroadcastDroppedTotal.Inc()
		h.logger.Warn().Str("id", m.ID).Msg("broadcast inbox full, message dropped")
	}
}

// drop unregisters a client, giving up once the hub has shut down so a
// pump that outlives Run never blocks on the unregister channel.
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			metrics.BroadcastSubscribers.Set(0)
			return

		case client := <-h.register:
			h.clients[client] = true
			metrics.BroadcastSubscribers.Set(float64(len(h.clients)))
			h.logger.Debug().Msg("broadcast subscriber connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.BroadcastSubscribers.Set(float64(len(h.clients)))
				h.logger.Debug().Msg("broadcast subscriber disconnected")
			}

		case message := <-h.broadcast:
			payload, err := json.Marshal(broadcastFrame{Event: "broadcast", Data: message})
			if err != nil {
				h.logger.Error().Err(err).Str("id", message.ID).Msg("failed to encode broadcast")
				continue
			}

			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow subscriber: evict rather than stall the others.
					close(client.send)
					delete(h.clients, client)
					metrics.BroadcastDroppedTotal.Inc()
					metrics.BroadcastSubscribers.Set(float64(len(h.clients)))
				}
			}
		}
	}
}
