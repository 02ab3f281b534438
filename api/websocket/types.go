package websocket

import (
	"time"

	"github.com/lc4490/rmp-rag/internal/llm"
)

// message type constants for websocket communication
const (
	TypeChat  = "chat"  // client -> server: a conversation to answer
	TypeChunk = "chunk" // server -> client: one fragment of the reply
	TypeDone  = "done"  // server -> client: the reply is complete
	TypeError = "error" // server -> client: the turn failed, connection stays open
)

// connection constants
const (
	// time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum inbound frame size, a full conversation fits comfortably
	maxMessageSize = 256 * 1024

	// chat frames accepted while a reply is still streaming
	maxQueuedTurns = 4
)

// ClientMessage is one request sent over the socket
type ClientMessage struct {
	Type     string        `json:"type"`
	Messages []llm.Message `json:"messages"`
}

// ServerMessage is one frame sent back to the client
type ServerMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}
