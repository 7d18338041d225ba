package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/postboard/internal/domain"
)

type MessageType string

const (
	// Server to Client
	MessageTypeConnected MessageType = "CONNECTED"
	MessageTypeError     MessageType = "ERROR"

	// Client to Server
	MessageTypePing MessageType = "PING"
	MessageTypePong MessageType = "PONG"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// EventMessageType maps a domain event onto the feed message type of the
// same name.
func EventMessageType(event domain.EventType) MessageType {
	return MessageType(event)
}

type ConnectedPayload struct {
	UserID string `json:"userId"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
