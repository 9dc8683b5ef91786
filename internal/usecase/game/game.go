package game

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
	"goban/internal/errors"
	"goban/internal/statuses"
)

type GameStore interface {
	SaveState(ctx context.Context, gameID string, state game.State) error
	LoadState(ctx context.Context, gameID string) (game.State, error)
	AppendMove(ctx context.Context, gameID string, move game.Move) error
	LoadMoves(ctx context.Context, gameID string) ([]game.Move, error)
	DeleteGame(ctx context.Context, gameID string) error
	SaveResult(ctx context.Context, record game.Record) error
	GetResult(ctx context.Context, gameID string) (game.Record, error)
}

// Publisher delivers every new state of a game to whoever is watching it.
// Result is non-nil for the state that ended the game.
type Publisher interface {
	Publish(gameID uuid.UUID, state game.State, result *game.Result)
}

type nopPublisher struct{}

func (nopPublisher) Publish(uuid.UUID, game.State, *game.Result) {}

// GameUseCase keeps the live games of this process. Games are played in
// memory; the store mirrors their state and keeps the finished ones after
// they are released.
type GameUseCase struct {
	store     GameStore
	publisher Publisher
	log       *zap.SugaredLogger
	boardSize int

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewGameUseCase(store GameStore, publisher Publisher, log *zap.SugaredLogger, boardSize int) *GameUseCase {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &GameUseCase{
		store:     store,
		publisher: publisher,
		log:       log,
		boardSize: boardSize,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// CreateGame opens a new game and seats its creator as black.
func (g *GameUseCase) CreateGame(ctx context.Context, playerID string) (uuid.UUID, game.Color, error) {
	session := NewSession(game.NewGame(g.boardSize))
	color, err := session.Seat(playerID)
	if err != nil {
		return uuid.Nil, game.Empty, err
	}

	gameID := uuid.New()
	g.mu.Lock()
	g.sessions[gameID] = session
	g.mu.Unlock()

	g.saveState(ctx, gameID, session)
	g.log.Infow("game created", "game_id", gameID, "player_id", playerID, "board_size", g.boardSize)
	return gameID, color, nil
}

func (g *GameUseCase) JoinGame(ctx context.Context, gameID uuid.UUID, playerID string) (game.Color, error) {
	session, err := g.session(gameID)
	if err != nil {
		return game.Empty, err
	}
	session.ops.Lock()
	defer session.ops.Unlock()

	if session.Game().HasEnded() {
		return game.Empty, fmt.Errorf("%w: game %s has ended", errors.ErrGameFull, gameID)
	}

	color, err := session.Seat(playerID)
	if err != nil {
		return game.Empty, err
	}

	g.publish(ctx, gameID, session, nil)
	g.log.Infow("player joined", "game_id", gameID, "player_id", playerID, "color", color)
	return color, nil
}

// Connect attaches a seated player. The game starts when both players are
// connected.
func (g *GameUseCase) Connect(ctx context.Context, gameID uuid.UUID, playerID string) (game.State, error) {
	session, err := g.session(gameID)
	if err != nil {
		return game.State{}, err
	}
	session.ops.Lock()
	defer session.ops.Unlock()

	started, err := session.Connect(playerID)
	if err != nil {
		return game.State{}, err
	}
	if started {
		g.log.Infow("game started", "game_id", gameID)
	}

	return g.publish(ctx, gameID, session, nil), nil
}

// Disconnect drops one connection of the player. The game pauses until the
// player is back.
func (g *GameUseCase) Disconnect(ctx context.Context, gameID uuid.UUID, playerID string) (game.State, error) {
	session, err := g.session(gameID)
	if err != nil {
		return game.State{}, err
	}
	session.ops.Lock()
	defer session.ops.Unlock()

	if err = session.Disconnect(playerID); err != nil {
		return game.State{}, err
	}

	g.log.Infow("player disconnected", "game_id", gameID, "player_id", playerID)
	return g.publish(ctx, gameID, session, nil), nil
}

// ProcessMove plays cmd for playerID. The returned result is non-nil once the
// move has ended the game. The move is logged, mirrored and published before
// any other move of the same game is played.
func (g *GameUseCase) ProcessMove(ctx context.Context, gameID uuid.UUID, playerID string, cmd game.Command) (game.State, *game.Result, error) {
	session, err := g.session(gameID)
	if err != nil {
		return game.State{}, nil, err
	}

	color, ok := session.ColorOf(playerID)
	if !ok {
		return game.State{}, nil, errors.ErrPlayerNotInGame
	}

	session.ops.Lock()
	defer session.ops.Unlock()

	play := session.Game()
	if cmd.MoveNumber != play.MoveNumber() {
		return game.State{}, nil, fmt.Errorf("%w: client is at move %d, server at %d",
			errors.ErrClientOutOfSync, cmd.MoveNumber, play.MoveNumber())
	}

	move := game.Move{Player: color, Vertex: cmd.Vertex}
	if err = play.ExecuteMove(move); err != nil {
		g.log.Debugw("move rejected", "game_id", gameID, "player_id", playerID, "vertex", cmd.Vertex, "error", err)
		return game.State{}, nil, err
	}

	if err = g.store.AppendMove(ctx, gameID.String(), move); err != nil {
		g.log.Errorw("failed to append move", "game_id", gameID, "error", err)
	}

	var result *game.Result
	if play.HasEnded() {
		black, white := session.Players()
		r := g.archive(ctx, gameID, session, black, white)
		result = &r
	}
	return g.publish(ctx, gameID, session, result), result, nil
}

// LeaveGame frees the player's seat. If that ends the game the result is
// returned as well.
func (g *GameUseCase) LeaveGame(ctx context.Context, gameID uuid.UUID, playerID string) (game.State, *game.Result, error) {
	session, err := g.session(gameID)
	if err != nil {
		return game.State{}, nil, err
	}
	session.ops.Lock()
	defer session.ops.Unlock()

	black, white := session.Players()
	ended, err := session.Leave(playerID)
	if err != nil {
		return game.State{}, nil, err
	}
	g.log.Infow("player left", "game_id", gameID, "player_id", playerID)

	var result *game.Result
	if ended {
		r := g.archive(ctx, gameID, session, black, white)
		result = &r
	}
	return g.publish(ctx, gameID, session, result), result, nil
}

// PlayerColor reports the colour playerID is seated as.
func (g *GameUseCase) PlayerColor(gameID uuid.UUID, playerID string) (game.Color, error) {
	session, err := g.session(gameID)
	if err != nil {
		return game.Empty, err
	}
	color, ok := session.ColorOf(playerID)
	if !ok {
		return game.Empty, errors.ErrPlayerNotInGame
	}
	return color, nil
}

// GetState answers from memory, or from the mirrored state once the game has
// been released.
func (g *GameUseCase) GetState(ctx context.Context, gameID uuid.UUID) (game.State, error) {
	session, err := g.session(gameID)
	if err != nil {
		return g.store.LoadState(ctx, gameID.String())
	}
	return session.State(), nil
}

// GetResult returns the archived record of a finished game. Games still in
// memory are answered directly.
func (g *GameUseCase) GetResult(ctx context.Context, gameID uuid.UUID) (game.Record, error) {
	session, err := g.session(gameID)
	if err != nil {
		return g.store.GetResult(ctx, gameID.String())
	}
	if !session.Game().HasEnded() {
		return game.Record{}, errors.ErrGameNotStarted
	}
	black, white := session.Players()
	return g.record(gameID, session, black, white), nil
}

func (g *GameUseCase) Moves(ctx context.Context, gameID uuid.UUID) ([]game.Move, error) {
	if _, err := g.session(gameID); err != nil {
		if _, err = g.store.LoadState(ctx, gameID.String()); err != nil {
			return nil, err
		}
	}
	return g.store.LoadMoves(ctx, gameID.String())
}

// SGF writes the game so far as an SGF record. The result is included once
// the game has ended. Released games are rebuilt from the archive.
func (g *GameUseCase) SGF(ctx context.Context, gameID uuid.UUID) (string, error) {
	var header sgf.Header
	session, err := g.session(gameID)
	if err != nil {
		record, err := g.store.GetResult(ctx, gameID.String())
		if stderrors.Is(err, errors.ErrResultNotFound) {
			return "", fmt.Errorf("%w: %s", errors.ErrGameNotFound, gameID)
		} else if err != nil {
			return "", err
		}
		header = sgf.Header{
			Size:        record.BoardSize,
			PlayerBlack: record.PlayerBlack,
			PlayerWhite: record.PlayerWhite,
			Result:      &record.Result,
		}
	} else {
		play := session.Game()
		black, white := session.Players()
		header = sgf.Header{Size: play.BoardSize(), PlayerBlack: black, PlayerWhite: white}
		if play.HasEnded() {
			result := play.Result()
			header.Result = &result
		}
	}

	moves, err := g.store.LoadMoves(ctx, gameID.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInternal, err)
	}
	return sgf.FromMoves(header, moves).String(), nil
}

// RemoveGame releases a finished game from memory. Its state and moves stay
// in the store until they expire, its record stays in the archive.
func (g *GameUseCase) RemoveGame(gameID uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	session, ok := g.sessions[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrGameNotFound, gameID)
	}
	if !session.Game().HasEnded() {
		return errors.ErrGameInProgress
	}
	delete(g.sessions, gameID)
	g.log.Infow("game released", "game_id", gameID)
	return nil
}

// DeleteGame releases a finished game and drops its cached state and moves
// right away.
func (g *GameUseCase) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	if err := g.RemoveGame(gameID); err != nil && !stderrors.Is(err, errors.ErrGameNotFound) {
		return err
	}
	if err := g.store.DeleteGame(ctx, gameID.String()); err != nil {
		g.log.Errorw("failed to delete game", "game_id", gameID, "error", err)
		return fmt.Errorf("%w: %v", errors.ErrInternal, err)
	}
	return nil
}

func (g *GameUseCase) session(gameID uuid.UUID) (*Session, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	session, ok := g.sessions[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrGameNotFound, gameID)
	}
	return session, nil
}

func (g *GameUseCase) saveState(ctx context.Context, gameID uuid.UUID, session *Session) game.State {
	state := session.State()
	if err := g.store.SaveState(ctx, gameID.String(), state); err != nil {
		g.log.Errorw("failed to save game state", "game_id", gameID, "error", err)
	}
	return state
}

// publish mirrors the current state and hands it to the publisher. Callers
// hold session.ops.
func (g *GameUseCase) publish(ctx context.Context, gameID uuid.UUID, session *Session, result *game.Result) game.State {
	state := g.saveState(ctx, gameID, session)
	g.publisher.Publish(gameID, state, result)
	return state
}

func (g *GameUseCase) archive(ctx context.Context, gameID uuid.UUID, session *Session, black, white string) game.Result {
	record := g.record(gameID, session, black, white)
	if !session.markArchived() {
		return record.Result
	}

	if err := g.store.SaveResult(ctx, record); err != nil {
		g.log.Errorw("failed to archive game", "game_id", gameID, "error", err)
	}
	g.log.Infow("game ended", "game_id", gameID,
		"black_points", record.Result.BlackPoints, "white_points", record.Result.WhitePoints)
	return record.Result
}

func (g *GameUseCase) record(gameID uuid.UUID, session *Session, black, white string) game.Record {
	play := session.Game()
	result := play.Result()
	return game.Record{
		GameID:      gameID.String(),
		BoardSize:   play.BoardSize(),
		PlayerBlack: black,
		PlayerWhite: white,
		MoveCount:   play.MoveNumber(),
		Result:      result,
		Winner:      result.Winner(),
		Status:      statuses.StatusCompleted,
		FinishedAt:  time.Now().UTC(),
	}
}
