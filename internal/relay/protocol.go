// internal/relay/protocol.go
package relay

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"knife-arena/internal/config"
	"knife-arena/internal/types"
)

// MessageType is the "type" field of the wire envelope.
type MessageType string

// Client → server.
const (
	MsgCreateRoom   MessageType = "createRoom"
	MsgJoinRoom     MessageType = "joinRoom"
	MsgPlayerReady  MessageType = "playerReady"
	MsgStartGame    MessageType = "startGame"
	MsgPlayerMove   MessageType = "playerMove"
	MsgKnifeThrow   MessageType = "knifeThrow"
	MsgHealthUpdate MessageType = "healthUpdate"
)

// Server → client.
const (
	MsgRoomCreated          MessageType = "roomCreated"
	MsgJoinSuccess          MessageType = "joinSuccess"
	MsgJoinError            MessageType = "joinError"
	MsgRoomFull             MessageType = "roomFull"
	MsgPlayerJoined         MessageType = "playerJoined"
	MsgPlayerReadyUpdate    MessageType = "playerReadyUpdate"
	MsgGameStart            MessageType = "gameStart"
	MsgError                MessageType = "error"
	MsgOpponentMove         MessageType = "opponentMove"
	MsgOpponentKnifeThrow   MessageType = "opponentKnifeThrow"
	MsgOpponentHealthUpdate MessageType = "opponentHealthUpdate"
	MsgOpponentDisconnected MessageType = "opponentDisconnected"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrEmptyPayload   = errors.New("empty payload")
)

// Message is the wire envelope: {"type": "...", "payload": {...}}.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RoomRequest is the payload of createRoom, joinRoom and startGame.
type RoomRequest struct {
	RoomCode string `json:"roomCode"`
}

// RoomAssignment answers createRoom and joinRoom.
type RoomAssignment struct {
	RoomCode string         `json:"roomCode"`
	PlayerID types.PlayerID `json:"playerId"`
}

// RoomNotice is sent to the room on playerJoined and gameStart.
type RoomNotice struct {
	RoomCode string `json:"roomCode"`
}

// ErrorPayload carries a human readable reason for joinError, roomFull and
// error.
type ErrorPayload struct {
	Message string `json:"message"`
}

type ReadyRequest struct {
	RoomCode string `json:"roomCode"`
	Ready    bool   `json:"ready"`
}

type ReadyUpdate struct {
	PlayerID types.PlayerID `json:"playerId"`
	Ready    bool           `json:"ready"`
}

// MovePayload is playerMove outbound and opponentMove inbound.
type MovePayload struct {
	RoomCode string  `json:"roomCode,omitempty"`
	TargetX  float64 `json:"targetX"`
	TargetZ  float64 `json:"targetZ"`
}

// ThrowPayload is knifeThrow outbound and opponentKnifeThrow inbound.
type ThrowPayload struct {
	RoomCode   string         `json:"roomCode,omitempty"`
	TargetX    float64        `json:"targetX"`
	TargetZ    float64        `json:"targetZ"`
	FromPlayer types.PlayerID `json:"fromPlayer,omitempty"`
}

// HealthPayload is healthUpdate outbound and opponentHealthUpdate inbound.
type HealthPayload struct {
	RoomCode string         `json:"roomCode,omitempty"`
	PlayerID types.PlayerID `json:"playerId"`
	Health   int            `json:"health"`
}

// NewMessage wraps payload in an envelope. A nil payload encodes as {}.
func NewMessage(t MessageType, payload any) (Message, error) {
	if t == "" {
		return Message{}, fmt.Errorf("encode envelope: empty type")
	}
	if payload == nil {
		return Message{Type: t, Payload: json.RawMessage("{}")}, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s payload: %w", t, err)
	}
	return Message{Type: t, Payload: b}, nil
}

// MustMessage is NewMessage for payloads that cannot fail to marshal.
func MustMessage(t MessageType, payload any) Message {
	m, err := NewMessage(t, payload)
	if err != nil {
		panic(err)
	}
	return m
}

// Encode serializes the envelope.
func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses an envelope. The payload stays raw until DecodePayload.
func Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return Message{}, fmt.Errorf("decode envelope: %w", ErrEmptyPayload)
	}
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return Message{}, fmt.Errorf("decode envelope: %w", err)
	}
	if m.Type == "" {
		return Message{}, fmt.Errorf("decode envelope: missing type")
	}
	return m, nil
}

// DecodePayload unmarshals the payload of m into T.
func DecodePayload[T any](m Message) (T, error) {
	var out T
	if len(m.Payload) == 0 {
		return out, fmt.Errorf("%s: %w", m.Type, ErrEmptyPayload)
	}
	if err := json.Unmarshal(m.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", m.Type, err)
	}
	return out, nil
}

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewRoomCode returns a random RoomCodeLength-character code without the
// easily confused characters 0, O, 1 and I.
func NewRoomCode() string {
	b := make([]byte, config.RoomCodeLength)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(fmt.Sprintf("crypto/rand failed: %v", err))
		}
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}

// ValidRoomCode reports whether code has the right length and alphabet.
func ValidRoomCode(code string) bool {
	if len(code) != config.RoomCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(codeChars, code[i]) < 0 {
			return false
		}
	}
	return true
}
