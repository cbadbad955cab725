package domain

import "encoding/json"

const (
	WsChannelMetrics = "metrics"
	WsChannelControl = "control"
)

const (
	WsEventMetricsUpdated = "metrics.updated"
	WsEventPauseToggled   = "pause.toggled"
)

const (
	WsSubscribe   = "subscribe"
	WsUnsubscribe = "unsubscribe"
)

type WsClientMessage struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type WsInternalEvent struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

type PausePayload struct {
	Paused bool `json:"paused"`
}
