package game

import "sync"

// Registry is the process-wide mapping from room id to room and
// position. Rooms and positions are stored separately because their
// lifetimes differ: a player leaving discards the position while the
// room survives until both slots are vacant.
type Registry struct {
	mu        sync.Mutex
	rooms     map[string]*Room
	positions map[string]*Position
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:     make(map[string]*Room),
		positions: make(map[string]*Position),
	}
}

// GetOrCreate returns the room and position for id, creating either
// lazily. A room that lost its position to a departure gets a fresh
// starting position here, on the next join.
func (reg *Registry) GetOrCreate(id string) (*Room, *Position) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[id]
	if !ok {
		room = &Room{ID: id}
		reg.rooms[id] = room
	}
	pos, ok := reg.positions[id]
	if !ok {
		pos = NewPosition()
		reg.positions[id] = pos
	}
	return room, pos
}

// Lookup returns the room and position for id without creating
// anything. ok is false unless both exist.
func (reg *Registry) Lookup(id string) (*Room, *Position, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, rok := reg.rooms[id]
	pos, pok := reg.positions[id]
	return room, pos, rok && pok
}

// Room returns the room for id, if any, regardless of whether a
// position currently exists for it.
func (reg *Registry) Room(id string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[id]
	return room, ok
}

// DropPosition discards the position for id, leaving the room in
// place. The next two arrivals start a fresh game.
func (reg *Registry) DropPosition(id string) {
	reg.mu.Lock()
	delete(reg.positions, id)
	reg.mu.Unlock()
}

// Delete removes the room and its position.
func (reg *Registry) Delete(id string) {
	reg.mu.Lock()
	delete(reg.rooms, id)
	delete(reg.positions, id)
	reg.mu.Unlock()
}

// Len reports how many rooms are live.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}
