package game

// Room is an isolated game session: two role slots filled in arrival
// order, identified by a shared token. Spectators are never recorded
// here; they exist only as members of the room's broadcast group.
type Room struct {
	ID    string
	White string // connection id, empty when vacant
	Black string
}

// Seat assigns the connection to the first empty slot, white before
// black, and returns the assigned role. When both slots are taken the
// connection becomes a spectator and the room is unchanged.
func (r *Room) Seat(connID string) Role {
	if r.White == "" {
		r.White = connID
		return RoleWhite
	}
	if r.Black == "" {
		r.Black = connID
		return RoleBlack
	}
	return RoleSpectator
}

// Release clears whichever slot the connection holds. It reports the
// vacated role; releasing a connection that holds no slot is a no-op.
func (r *Room) Release(connID string) (Role, bool) {
	if connID == "" {
		return "", false
	}
	if r.White == connID {
		r.White = ""
		return RoleWhite, true
	}
	if r.Black == connID {
		r.Black = ""
		return RoleBlack, true
	}
	return "", false
}

// Holder returns the connection occupying the given role's slot.
func (r *Room) Holder(role Role) string {
	switch role {
	case RoleWhite:
		return r.White
	case RoleBlack:
		return r.Black
	}
	return ""
}

// Empty reports whether both slots are vacant. An empty room must not
// stay in the registry.
func (r *Room) Empty() bool {
	return r.White == "" && r.Black == ""
}
