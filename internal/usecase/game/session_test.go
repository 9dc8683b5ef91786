package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/statuses"
)

func TestSession_Seat(t *testing.T) {
	t.Run("Seats black first, then white", func(t *testing.T) {
		s := NewSession(game.NewGame(5))

		black, err := s.Seat("alice")
		require.NoError(t, err)
		white, err := s.Seat("bob")
		require.NoError(t, err)

		assert.Equal(t, game.Black, black)
		assert.Equal(t, game.White, white)
		assert.Equal(t, 2, s.NumPlayers())
		b, w := s.Players()
		assert.Equal(t, "alice", b)
		assert.Equal(t, "bob", w)
	})

	t.Run("One player cannot take both seats", func(t *testing.T) {
		s := NewSession(game.NewGame(5))

		_, err := s.Seat("alice")
		require.NoError(t, err)
		again, err := s.Seat("alice")
		require.NoError(t, err)

		assert.Equal(t, game.Black, again)
		assert.Equal(t, 1, s.NumPlayers())
	})

	t.Run("Full session refuses newcomers", func(t *testing.T) {
		s := NewSession(game.NewGame(5))
		_, _ = s.Seat("alice")
		_, _ = s.Seat("bob")

		_, err := s.Seat("carol")

		require.ErrorIs(t, err, errs.ErrGameFull)
	})
}

func TestSession_Lifecycle(t *testing.T) {
	t.Run("Starts only when both seats are connected", func(t *testing.T) {
		// Given: a session with two seated players
		s := NewSession(game.NewGame(5))
		_, _ = s.Seat("alice")
		_, _ = s.Seat("bob")

		// When: they connect one after the other
		first, err := s.Connect("alice")
		require.NoError(t, err)
		second, err := s.Connect("bob")
		require.NoError(t, err)

		// Then: only the second connection starts the game
		assert.False(t, first)
		assert.True(t, second)
		assert.True(t, s.Game().Running())
	})

	t.Run("A single seated player never starts the game", func(t *testing.T) {
		s := NewSession(game.NewGame(5))
		_, _ = s.Seat("alice")

		started, err := s.Connect("alice")

		require.NoError(t, err)
		assert.False(t, started)
		assert.Equal(t, statuses.StatusWaitOpponent, s.State().Status)
	})

	t.Run("Disconnect pauses the game", func(t *testing.T) {
		s := NewSession(game.NewGame(5))
		_, _ = s.Seat("alice")
		_, _ = s.Seat("bob")
		_, _ = s.Connect("alice")
		_, _ = s.Connect("bob")

		require.NoError(t, s.Disconnect("alice"))

		assert.Equal(t, statuses.StatusPaused, s.State().Status)
		require.ErrorIs(t, s.Disconnect("mallory"), errs.ErrPlayerNotInGame)
	})

	t.Run("Game keeps running while the player has another connection", func(t *testing.T) {
		// Given: alice connected twice, bob once
		s := NewSession(game.NewGame(5))
		_, _ = s.Seat("alice")
		_, _ = s.Seat("bob")
		_, _ = s.Connect("alice")
		_, _ = s.Connect("alice")
		_, _ = s.Connect("bob")

		// When: one of alice's connections closes
		require.NoError(t, s.Disconnect("alice"))

		// Then: the game goes on until the last one closes too
		assert.True(t, s.Game().Running())
		require.NoError(t, s.Disconnect("alice"))
		assert.False(t, s.Game().Running())
		assert.Equal(t, statuses.StatusPaused, s.State().Status)
	})

	t.Run("Leaving a started game stops it", func(t *testing.T) {
		s := NewSession(game.NewGame(5))
		_, _ = s.Seat("alice")
		_, _ = s.Seat("bob")
		_, _ = s.Connect("alice")
		_, _ = s.Connect("bob")

		ended, err := s.Leave("alice")

		require.NoError(t, err)
		assert.True(t, ended)
		assert.True(t, s.Game().HasEnded())
		assert.Equal(t, 1, s.NumPlayers())
	})

	t.Run("Stopped game does not restart on reconnect", func(t *testing.T) {
		s := NewSession(game.NewGame(5))
		_, _ = s.Seat("alice")
		_, _ = s.Seat("bob")
		_, _ = s.Connect("alice")
		_, _ = s.Connect("bob")
		s.Game().Stop()

		started, err := s.Connect("alice")

		require.NoError(t, err)
		assert.False(t, started)
		assert.False(t, s.Game().Running())
	})

	t.Run("Archived only once", func(t *testing.T) {
		s := NewSession(game.NewGame(5))

		assert.True(t, s.markArchived())
		assert.False(t, s.markArchived())
	})
}
