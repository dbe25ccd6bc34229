package game

// Role is a connection's standing within a room.
type Role string

const (
	RoleWhite     Role = "white"
	RoleBlack     Role = "black"
	RoleSpectator Role = "spectator"
)

// Short returns the single-letter form sent to clients ("w"/"b").
func (r Role) Short() string {
	switch r {
	case RoleWhite:
		return "w"
	case RoleBlack:
		return "b"
	}
	return ""
}

// Move is a move proposal as it arrives from a client: square names
// ("e2", "e4") plus an optional promotion piece letter. Only the rules
// engine interprets the contents.
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// UCI serializes the descriptor in the notation the rules engine expects.
func (m Move) UCI() string {
	return m.From + m.To + m.Promotion
}
