package game

import "time"

// Record is the archived summary of a finished game.
type Record struct {
	GameID      string    `json:"game_id" bson:"game_id"`
	BoardSize   int       `json:"board_size" bson:"board_size"`
	PlayerBlack string    `json:"player_black" bson:"player_black"`
	PlayerWhite string    `json:"player_white" bson:"player_white"`
	MoveCount   int       `json:"move_count" bson:"move_count"`
	Result      Result    `json:"result" bson:"result"`
	Winner      Color     `json:"winner" bson:"winner"`
	Status      string    `json:"status" bson:"status"`
	FinishedAt  time.Time `json:"finished_at" bson:"finished_at"`
}

// Command is a client's move request. MoveNumber is the move number the
// client last saw and guards against acting on a stale board.
type Command struct {
	Vertex     string `json:"vertex"`
	MoveNumber int    `json:"move_number"`
}
