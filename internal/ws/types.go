package ws

import "encoding/json"

// MessageType enumerates the websocket message kinds.
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeDrawOffer  MessageType = "drawOffer"
	MessageTypeResign     MessageType = "resign"
	MessageTypeDraw       MessageType = "draw"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message is the JSON envelope for every websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
