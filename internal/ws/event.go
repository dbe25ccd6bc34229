package ws

import (
	"encoding/json"
	"errors"

	"chessroom/internal/game"
)

// Event names exchanged with clients.
const (
	// inbound
	EventJoinRoom = "joinRoom"
	EventMove     = "move"

	// outbound
	EventPlayerRole    = "playerRole"
	EventSpectatorRole = "spectatorRole"
	EventWaiting       = "waiting"
	EventStart         = "start"
	EventBoardState    = "boardState"
	EventInvalidMove   = "invalidMove"
	EventPlayerLeft    = "playerLeft"
	EventGameOver      = "gameOver"
)

// Envelope is the wire format for every frame: an event name plus an
// event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// MovePayload is the inbound move request.
type MovePayload struct {
	RoomID string    `json:"roomId"`
	Move   game.Move `json:"move"`
}

// moveError carries an engine fault description on invalidMove.
type moveError struct {
	Error string `json:"error"`
}

// unmarshalData decodes an inbound payload into v.
func unmarshalData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errors.New("empty payload")
	}
	return json.Unmarshal(data, v)
}

// encode marshals an outbound frame. Payloads are plain values under
// our control, so marshalling cannot fail; a nil data yields an
// envelope with no data field.
func encode(event string, data any) []byte {
	env := Envelope{Event: event}
	if data != nil {
		raw, _ := json.Marshal(data)
		env.Data = raw
	}
	out, _ := json.Marshal(env)
	return out
}
