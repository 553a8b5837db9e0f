package websocket

// Client-to-server event types
const (
	EventPing           = "ping"
	EventJoinChat       = "joinChat"
	EventLeaveChat      = "leaveChat"
	EventSendMessage    = "sendMessage"
	EventRespondToTrade = "respondToTrade"
)

// Server-to-client event types
const (
	EventPong               = "pong"
	EventNewMessage         = "newMessage"
	EventTradeStatusUpdated = "tradeStatusUpdated"
	EventError              = "error"
)

// ClientEvent is the envelope for every frame a client sends.
type ClientEvent struct {
	Type            string `json:"type"`
	ChatID          string `json:"chatId,omitempty"`
	Text            string `json:"text,omitempty"`
	IsTradeProposal bool   `json:"isTradeProposal,omitempty"`
	MessageID       string `json:"messageId,omitempty"`
	Action          string `json:"action,omitempty"`
}

// ServerEvent is the envelope for every frame the server broadcasts.
type ServerEvent struct {
	Type      string      `json:"type"`
	ChatID    string      `json:"chatId,omitempty"`
	MessageID string      `json:"messageId,omitempty"`
	Status    string      `json:"status,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}
