// Package websocket streams telemetry events to connected dashboards.
package websocket

import (
	"context"
	"encoding/json"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
)

type Hub struct {
	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan *Subscription
	unsubscribe chan *Subscription

	events chan *domain.WsInternalEvent
	done   chan struct{}

	log logger.Logger
}

type Subscription struct {
	client  *Client
	channel string
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		channels: make(map[string]map[*Client]bool),

		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *Subscription),
		unsubscribe: make(chan *Subscription),

		events: make(chan *domain.WsInternalEvent, 100),
		done:   make(chan struct{}),

		log: log,
	}
}

func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				h.remove(client)
			}
			return nil

		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "id", client.ID, "total_clients", len(h.clients))

		case client := <-h.unregister:
			h.remove(client)

		case sub := <-h.subscribe:
			if _, ok := h.clients[sub.client]; !ok {
				continue
			}
			if h.channels[sub.channel] == nil {
				h.channels[sub.channel] = make(map[*Client]bool)
			}
			h.channels[sub.channel][sub.client] = true
			h.log.Debug("ws: client subscribed", "client_id", sub.client.ID, "channel", sub.channel)

		case sub := <-h.unsubscribe:
			if subs, ok := h.channels[sub.channel]; ok {
				if _, subscribed := subs[sub.client]; subscribed {
					delete(subs, sub.client)
					if len(subs) == 0 {
						delete(h.channels, sub.channel)
					}
					h.log.Debug("ws: client unsubscribed", "client_id", sub.client.ID, "channel", sub.channel)
				}
			}

		case event := <-h.events:
			h.handleEvent(event)
		}
	}
}

// Register adds a client. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) Subscribe(c *Client, channel string) {
	select {
	case h.subscribe <- &Subscription{client: c, channel: channel}:
	case <-h.done:
	}
}

func (h *Hub) Unsubscribe(c *Client, channel string) {
	select {
	case h.unsubscribe <- &Subscription{client: c, channel: channel}:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	for channelID, subs := range h.channels {
		if _, subscribed := subs[client]; subscribed {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.channels, channelID)
			}
		}
	}

	h.log.Info("ws: client unregistered", "id", client.ID, "total_clients", len(h.clients))
}

func (h *Hub) handleEvent(event *domain.WsInternalEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws: failed to marshal server event", "error", err)
		return
	}

	subs, ok := h.channels[event.Channel]
	if !ok {
		h.log.Debug("ws: event channel has no subscribers", "channel", event.Channel)
		return
	}

	for client := range subs {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client channel full, force unregister", "id", client.ID)
			h.remove(client)
		}
	}
}

// Broadcast queues an event for every subscriber of channel. When the queue
// is full the event is dropped; the next publish carries a newer view anyway.
func (h *Hub) Broadcast(channel, event string, payload any) {
	select {
	case h.events <- &domain.WsInternalEvent{Channel: channel, Event: event, Payload: payload}:
	default:
		h.log.Warn("ws: event queue full, dropping event", "channel", channel, "event", event)
	}
}
