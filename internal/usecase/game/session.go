package game

import (
	"sync"

	"goban/internal/domain/game"
	"goban/internal/errors"
)

// seat counts the open connections of its player; a player may be connected
// from several places at once.
type seat struct {
	playerID string
	conns    int
}

func (st seat) connected() bool {
	return st.conns > 0
}

// Session binds a game to the two players holding its seats. The game runs
// only while both seated players are connected.
type Session struct {
	// ops serialises the operations that change the game together with
	// everything mirrored from it, so states and moves leave in play order.
	ops sync.Mutex

	mu       sync.Mutex
	game     *game.Game
	black    seat
	white    seat
	archived bool
}

func NewSession(g *game.Game) *Session {
	return &Session{game: g}
}

func (s *Session) Game() *game.Game {
	return s.game
}

// Seat gives playerID the black seat if it is free, otherwise the white one.
// A player already seated keeps their colour.
func (s *Session) Seat(playerID string) (game.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.colorOf(playerID); ok {
		return c, nil
	}
	switch {
	case s.black.playerID == "":
		s.black = seat{playerID: playerID}
		return game.Black, nil
	case s.white.playerID == "":
		s.white = seat{playerID: playerID}
		return game.White, nil
	default:
		return game.Empty, errors.ErrGameFull
	}
}

func (s *Session) ColorOf(playerID string) (game.Color, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colorOf(playerID)
}

func (s *Session) colorOf(playerID string) (game.Color, bool) {
	switch {
	case playerID == "":
		return game.Empty, false
	case s.black.playerID == playerID:
		return game.Black, true
	case s.white.playerID == playerID:
		return game.White, true
	default:
		return game.Empty, false
	}
}

func (s *Session) seatOf(playerID string) *seat {
	switch c, _ := s.colorOf(playerID); c {
	case game.Black:
		return &s.black
	case game.White:
		return &s.white
	default:
		return nil
	}
}

// Connect marks the player's seat as connected and starts the game once both
// players are there. It reports whether this call started the game.
func (s *Session) Connect(playerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.seatOf(playerID)
	if st == nil {
		return false, errors.ErrPlayerNotInGame
	}
	st.conns++

	if s.black.connected() && s.white.connected() && !s.game.Running() && !s.game.HasEnded() {
		s.game.Start()
		return true, nil
	}
	return false, nil
}

// Disconnect closes one of the player's connections. The game is paused once
// the player has no connection left.
func (s *Session) Disconnect(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.seatOf(playerID)
	if st == nil {
		return errors.ErrPlayerNotInGame
	}
	if st.conns > 0 {
		st.conns--
	}
	if !st.connected() {
		s.game.Pause()
	}
	return nil
}

// Leave frees the player's seat. Leaving a game that has already been played
// ends it.
func (s *Session) Leave(playerID string) (ended bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.seatOf(playerID)
	if st == nil {
		return false, errors.ErrPlayerNotInGame
	}
	*st = seat{}

	if s.game.Started() {
		s.game.Stop()
	}
	return s.game.HasEnded(), nil
}

func (s *Session) NumPlayers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	if s.black.playerID != "" {
		n++
	}
	if s.white.playerID != "" {
		n++
	}
	return n
}

func (s *Session) Players() (black, white string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.black.playerID, s.white.playerID
}

// State snapshots the game together with the seat count.
func (s *Session) State() game.State {
	return s.game.State(s.NumPlayers())
}

// markArchived returns true only the first time it is called.
func (s *Session) markArchived() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.archived {
		return false
	}
	s.archived = true
	return true
}
