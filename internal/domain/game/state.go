package game

// State is the read-only projection broadcast to clients after every change.
// NumPlayers comes from whoever holds the seats, not from the game itself.
type State struct {
	Board           [][]Color `json:"board"`
	MoveNumber      int       `json:"move_number"`
	CurrentPlayer   Color     `json:"current_player"`
	NumPlayers      int       `json:"num_players"`
	ConsecutivePass bool      `json:"consecutive_pass"`
	Running         bool      `json:"running"`
	Status          string    `json:"status"`
}

// Result is the final area score of a finished game.
type Result struct {
	BlackPoints int `json:"black_points" bson:"black_points"`
	WhitePoints int `json:"white_points" bson:"white_points"`
}

// Winner returns Empty on a tie.
func (r Result) Winner() Color {
	switch {
	case r.BlackPoints > r.WhitePoints:
		return Black
	case r.WhitePoints > r.BlackPoints:
		return White
	default:
		return Empty
	}
}
