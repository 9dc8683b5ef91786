package game

import (
	"fmt"
	"sync"
	"sync/atomic"

	errs "goban/internal/errors"
	"goban/internal/statuses"
)

// Game sequences turns on a Board. Black moves first. A game does not accept
// moves until Start is called, and two passes in a row end it for good.
type Game struct {
	mu              sync.Mutex
	board           *Board
	currentPlayer   Color
	consecutivePass bool
	started         bool
	running         bool
	hasEnded        bool

	moveNumber atomic.Int64
}

// NewGame creates a game on an empty size x size board with its own zobrist
// table.
func NewGame(size int) *Game {
	return NewGameWithZobrist(size, NewZobrist(size))
}

func NewGameWithZobrist(size int, z *Zobrist) *Game {
	return &Game{
		board:         NewBoard(size, z),
		currentPlayer: Black,
	}
}

// ExecuteMove plays m. The turn is checked before the lifecycle, and both
// before the board is touched. Board rejections are returned unchanged and
// leave the turn state as it was.
func (g *Game) ExecuteMove(m Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if m.Player != g.currentPlayer {
		return fmt.Errorf("%w: %s to play", errs.ErrPlayerOutOfTurn, g.currentPlayer)
	}
	if !g.running {
		return errs.ErrGameNotStarted
	}

	if m.IsPass() {
		g.pass()
		return nil
	}

	row, col, err := ParseVertex(m.Vertex, g.board.Size())
	if err != nil {
		return err
	}
	if err = g.board.Place(m.Player, row, col); err != nil {
		return err
	}

	g.currentPlayer = Opponent(g.currentPlayer)
	g.consecutivePass = false
	g.moveNumber.Add(1)
	return nil
}

// pass hands the turn over. The second pass in a row ends the game and, unlike
// every other accepted move, does not advance the move number.
func (g *Game) pass() {
	g.currentPlayer = Opponent(g.currentPlayer)
	if g.consecutivePass {
		g.stop()
		return
	}
	g.consecutivePass = true
	g.moveNumber.Add(1)
}

func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hasEnded {
		return
	}
	g.started = true
	g.running = true
}

func (g *Game) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = false
}

// Stop ends the game permanently.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stop()
}

func (g *Game) stop() {
	g.running = false
	g.hasEnded = true
}

func (g *Game) Board() [][]Color {
	return g.board.Snapshot()
}

func (g *Game) BoardSize() int {
	return g.board.Size()
}

func (g *Game) CurrentPlayer() Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentPlayer
}

// MoveNumber does not take the game lock.
func (g *Game) MoveNumber() int {
	return int(g.moveNumber.Load())
}

func (g *Game) ConsecutivePass() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.consecutivePass
}

func (g *Game) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

func (g *Game) HasEnded() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hasEnded
}

// Started reports whether the game has ever been running.
func (g *Game) Started() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.started
}

func (g *Game) Status() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status()
}

func (g *Game) status() string {
	switch {
	case g.hasEnded:
		return statuses.StatusCompleted
	case g.running:
		return statuses.StatusActive
	case g.started:
		return statuses.StatusPaused
	default:
		return statuses.StatusWaitOpponent
	}
}

// Points returns the area score of the current position.
func (g *Game) Points() Score {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.AreaScore()
}

func (g *Game) Result() Result {
	score := g.Points()
	return Result{BlackPoints: score.Black, WhitePoints: score.White}
}

// State takes a consistent snapshot of the game for broadcasting.
func (g *Game) State(numPlayers int) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		Board:           g.board.Snapshot(),
		MoveNumber:      g.MoveNumber(),
		CurrentPlayer:   g.currentPlayer,
		NumPlayers:      numPlayers,
		ConsecutivePass: g.consecutivePass,
		Running:         g.running,
		Status:          g.status(),
	}
}
