package ws

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chessroom/internal/game"
	"chessroom/internal/storage"
)

// inboundFrame pairs a decoded frame with the connection it came from.
type inboundFrame struct {
	client *Client
	env    Envelope
}

// Hub is the session coordinator. A single run loop processes every
// connection event for every room, so handlers never interleave their
// reads and writes to a room or its position; network sends go through
// per-client buffered channels and never block the loop.
type Hub struct {
	logger   *zap.Logger
	registry *game.Registry
	archive  *storage.Store

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundFrame

	clients map[*Client]struct{}
	members map[string]map[*Client]struct{} // roomID -> broadcast group
}

// NewHub creates a hub around the given registry. archive may be nil.
func NewHub(logger *zap.Logger, registry *game.Registry, archive *storage.Store) *Hub {
	return &Hub{
		logger:     logger,
		registry:   registry,
		archive:    archive,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundFrame, 64),
		clients:    make(map[*Client]struct{}),
		members:    make(map[string]map[*Client]struct{}),
	}
}

// Run processes connection events until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.handleDisconnect(c)
				delete(h.clients, c)
				close(c.send)
			}
		case frame := <-h.inbound:
			h.dispatch(frame)
		}
	}
}

// Attach registers a freshly upgraded connection and starts its pumps.
func (h *Hub) Attach(conn *websocket.Conn) *Client {
	c := &Client{
		ID:    uuid.NewString(),
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		rooms: make(map[string]struct{}),
	}
	h.register <- c
	go c.writePump()
	go c.readPump()
	return c
}

func (h *Hub) dispatch(frame inboundFrame) {
	c := frame.client
	// frames can race a slow-client drop; never act for a client that
	// is no longer registered
	if _, ok := h.clients[c]; !ok {
		return
	}
	switch frame.env.Event {
	case EventJoinRoom:
		var roomID string
		if err := unmarshalData(frame.env.Data, &roomID); err != nil {
			return
		}
		h.handleJoin(c, roomID)
	case EventMove:
		var payload MovePayload
		if err := unmarshalData(frame.env.Data, &payload); err != nil {
			return
		}
		h.handleMove(c, payload)
	default:
		h.logger.Debug("unknown event", zap.String("event", frame.env.Event))
	}
}

// handleJoin adds the client to the room's broadcast group and seats
// it: first arrival plays white, second black, everyone after watches.
func (h *Hub) handleJoin(c *Client, roomID string) {
	if roomID == "" {
		return
	}

	group, ok := h.members[roomID]
	if !ok {
		group = make(map[*Client]struct{})
		h.members[roomID] = group
	}
	group[c] = struct{}{}
	c.rooms[roomID] = struct{}{}

	room, pos := h.registry.GetOrCreate(roomID)

	switch role := room.Seat(c.ID); role {
	case game.RoleWhite:
		h.deliver(c, encode(EventPlayerRole, role.Short()))
		h.deliver(c, encode(EventWaiting, nil))
		h.deliver(c, encode(EventBoardState, pos.FEN()))
		h.archiveAsync(func(s *storage.Store) error {
			return s.StartGame(context.Background(), roomID, pos.FEN())
		})
	case game.RoleBlack:
		h.deliver(c, encode(EventPlayerRole, role.Short()))
		h.broadcast(roomID, encode(EventStart, pos.FEN()))
	default:
		h.deliver(c, encode(EventSpectatorRole, nil))
		h.deliver(c, encode(EventBoardState, pos.FEN()))
	}

	h.logger.Info("client joined room",
		zap.String("client", c.ID), zap.String("room", roomID))
}

// handleMove validates authorship and turn order, submits the move to
// the rules engine, and relays the result. Out-of-turn submissions are
// dropped without any reply so an out-of-turn actor learns nothing.
func (h *Hub) handleMove(c *Client, payload MovePayload) {
	room, pos, ok := h.registry.Lookup(payload.RoomID)
	if !ok {
		return
	}

	if room.Holder(pos.Turn()) != c.ID {
		return
	}

	if err := pos.Apply(payload.Move); err != nil {
		if errors.Is(err, game.ErrEngineFault) {
			h.logger.Warn("rules engine fault",
				zap.String("room", payload.RoomID), zap.Error(err))
		}
		h.deliver(c, invalidMoveFrame(payload.Move, err))
		return
	}

	h.broadcast(payload.RoomID, encode(EventMove, payload.Move))
	h.broadcast(payload.RoomID, encode(EventBoardState, pos.FEN()))

	roomID, fen, number := payload.RoomID, pos.FEN(), pos.MoveCount()
	uci := payload.Move.UCI()
	h.archiveAsync(func(s *storage.Store) error {
		return s.RecordMove(context.Background(), roomID, number, uci, fen)
	})

	if outcome, over := pos.Outcome(); over {
		h.broadcast(roomID, encode(EventGameOver, outcome))
		h.archiveAsync(func(s *storage.Store) error {
			return s.CompleteGame(context.Background(), roomID, outcome)
		})
	}
}

// handleDisconnect clears any seat the client holds. Vacating a seat
// discards the room's position so the next pairing starts fresh; a
// room with both seats empty is deleted outright, even if spectators
// are still attached.
func (h *Hub) handleDisconnect(c *Client) {
	for roomID := range c.rooms {
		if group, ok := h.members[roomID]; ok {
			delete(group, c)
			if len(group) == 0 {
				delete(h.members, roomID)
			}
		}

		room, ok := h.registry.Room(roomID)
		if !ok {
			continue
		}

		if role, released := room.Release(c.ID); released {
			h.broadcast(roomID, encode(EventPlayerLeft, string(role)))
			h.registry.DropPosition(roomID)
			h.archiveAsync(func(s *storage.Store) error {
				return s.AbandonGame(context.Background(), roomID)
			})
			h.logger.Info("player left room",
				zap.String("client", c.ID),
				zap.String("room", roomID),
				zap.String("side", string(role)))
		}

		if room.Empty() {
			h.registry.Delete(roomID)
		}
	}
	c.rooms = make(map[string]struct{})
}

// broadcast fans a frame out to every member of the room, spectators
// included.
func (h *Hub) broadcast(roomID string, msg []byte) {
	for c := range h.members[roomID] {
		h.deliver(c, msg)
	}
}

// invalidMoveFrame picks the payload for an invalidMove reply: the
// rejected descriptor normally, an error description when the engine
// itself faulted.
func invalidMoveFrame(m game.Move, err error) []byte {
	if errors.Is(err, game.ErrEngineFault) {
		return encode(EventInvalidMove, moveError{Error: err.Error()})
	}
	return encode(EventInvalidMove, m)
}

// deliver queues a frame for one client. A client whose buffer is full
// is not keeping up; it gets dropped rather than stalling the loop.
// Dropping closes the send channel, so anything queued for the client
// later in the same handler must become a no-op.
func (h *Hub) deliver(c *Client, msg []byte) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		h.logger.Warn("dropping slow client", zap.String("client", c.ID))
		h.handleDisconnect(c)
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) archiveAsync(fn func(*storage.Store) error) {
	if h.archive == nil {
		return
	}
	go func() {
		if err := fn(h.archive); err != nil {
			h.logger.Warn("archive write failed", zap.Error(err))
		}
	}()
}
