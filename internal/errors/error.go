package errors

import "errors"

// Move rejections. The board and turn state are unchanged when any of these
// is returned.
var (
	ErrOccupiedPosition  = errors.New("position is already occupied")
	ErrSuicide           = errors.New("move would capture own stones")
	ErrRepeatedPosition  = errors.New("move repeats an earlier position")
	ErrIllegalCoordinate = errors.New("illegal coordinate")
	ErrPlayerOutOfTurn   = errors.New("player is out of turn")
	ErrGameNotStarted    = errors.New("game has not started")
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameFull        = errors.New("game is already full")
	ErrPlayerNotInGame = errors.New("player is not in this game")
	ErrClientOutOfSync = errors.New("client is out of sync with the server")
	ErrResultNotFound  = errors.New("result not found")
	ErrGameInProgress  = errors.New("game is still in progress")
	ErrInternal        = errors.New("internal error")
)
