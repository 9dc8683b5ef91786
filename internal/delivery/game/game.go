package game

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	gameuc "goban/internal/usecase/game"
	"goban/internal/utils"
)

const PlayerIDHeader = "X-Player-ID"

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	hub    *Hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type SeatResponse struct {
	GameID   string     `json:"game_id"`
	PlayerID string     `json:"player_id"`
	Color    game.Color `json:"color"`
}

type MovesResponse struct {
	GameID string      `json:"game_id"`
	Moves  []game.Move `json:"moves"`
}

type SGFResponse struct {
	GameID string `json:"game_id"`
	SGF    string `json:"sgf"`
}

type JsonOKResponse struct {
	Text string `json:"text"`
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, store gameuc.GameStore) *GameHandler {
	hub := NewHub(log)
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameuc.NewGameUseCase(store, hub, log, cfg.BoardSize),
		hub:    hub,
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", g.HandleNewGame)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", g.HandleGetGame)
			r.Delete("/", g.HandleDeleteGame)
			r.Post("/join", g.HandleJoinGame)
			r.Post("/move", g.HandleMove)
			r.Post("/leave", g.HandleLeaveGame)
			r.Get("/moves", g.HandleGetMoves)
			r.Get("/result", g.HandleGetResult)
			r.Get("/sgf", g.HandleGetSGF)
			r.Get("/ws", g.HandleStartGame)
		})
	})
}

// HandleNewGame creates a game and seats the caller as black. A caller without
// a player id is given a fresh one.
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	playerID := r.Header.Get(PlayerIDHeader)
	if playerID == "" {
		playerID = uuid.NewString()
	}

	gameID, color, err := g.gameUC.CreateGame(r.Context(), playerID)
	if err != nil {
		g.log.Errorw("failed to create game", "player_id", playerID, "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, SeatResponse{
		GameID:   gameID.String(),
		PlayerID: playerID,
		Color:    color,
	})
}

func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := g.gameID(w, r)
	if !ok {
		return
	}
	playerID := r.Header.Get(PlayerIDHeader)
	if playerID == "" {
		playerID = uuid.NewString()
	}

	color, err := g.gameUC.JoinGame(r.Context(), gameID, playerID)
	if err != nil {
		g.log.Infow("join rejected", "game_id", gameID, "player_id", playerID, "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, SeatResponse{
		GameID:   gameID.String(),
		PlayerID: playerID,
		Color:    color,
	})
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := g.gameID(w, r)
	if !ok {
		return
	}

	state, err := g.gameUC.GetState(r.Context(), gameID)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandleMove plays a move over plain HTTP. Connected clients see the result
// the same way as for a move sent over the websocket.
func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	gameID, ok := g.gameID(w, r)
	if !ok {
		return
	}
	playerID, ok := g.playerID(w, r)
	if !ok {
		return
	}

	var cmd game.Command
	if err := utils.DecodeJSONRequest(r, &cmd); err != nil {
		g.log.Infow("bad move request", "game_id", gameID, "error", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{
			ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc,
		})
		return
	}

	state, err := g.move(r.Context(), gameID, playerID, cmd)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleLeaveGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := g.gameID(w, r)
	if !ok {
		return
	}
	playerID, ok := g.playerID(w, r)
	if !ok {
		return
	}

	_, result, err := g.gameUC.LeaveGame(r.Context(), gameID, playerID)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}

	if result != nil {
		g.release(gameID)
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, JsonOKResponse{Text: "player left the game"})
}

// HandleDeleteGame drops a finished game together with its cached state.
func (g *GameHandler) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := g.gameID(w, r)
	if !ok {
		return
	}

	if err := g.gameUC.DeleteGame(r.Context(), gameID); err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, JsonOKResponse{Text: "game deleted"})
}

func (g *GameHandler) HandleGetMoves(w http.ResponseWriter, r *http.Request) {
	gameID, ok := g.gameID(w, r)
	if !ok {
		return
	}

	moves, err := g.gameUC.Moves(r.Context(), gameID)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, MovesResponse{GameID: gameID.String(), Moves: moves})
}

func (g *GameHandler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	gameID, ok := g.gameID(w, r)
	if !ok {
		return
	}

	record, err := g.gameUC.GetResult(r.Context(), gameID)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, record)
}

func (g *GameHandler) HandleGetSGF(w http.ResponseWriter, r *http.Request) {
	gameID, ok := g.gameID(w, r)
	if !ok {
		return
	}

	record, err := g.gameUC.SGF(r.Context(), gameID)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, SGFResponse{GameID: gameID.String(), SGF: record})
}

// HandleStartGame upgrades a seated player to a websocket. Commands read from
// the socket are played in order; every accepted move is broadcast to the
// whole game, rejections go back to the sender only.
func (g *GameHandler) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := g.gameID(w, r)
	if !ok {
		return
	}
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		playerID = r.Header.Get(PlayerIDHeader)
	}
	if _, err := g.gameUC.PlayerColor(gameID, playerID); err != nil {
		httpresponse.WriteError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorw("upgrade error", "game_id", gameID, "error", err)
		return
	}
	c := g.hub.add(gameID, conn)

	// Disconnect runs after the client has gone away.
	ctx := context.WithoutCancel(r.Context())

	if _, err = g.gameUC.Connect(ctx, gameID, playerID); err != nil {
		_ = c.send(Message{Type: MessageError, Error: err.Error()})
		g.hub.remove(gameID, c)
		_ = conn.Close()
		return
	}

	defer func() {
		g.hub.remove(gameID, c)
		_ = conn.Close()
		_, _ = g.gameUC.Disconnect(ctx, gameID, playerID)
		g.release(gameID)
	}()

	for {
		var cmd game.Command
		if err = conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Warnw("read error", "game_id", gameID, "player_id", playerID, "error", err)
			}
			return
		}

		if _, err = g.move(ctx, gameID, playerID, cmd); err != nil {
			if sendErr := c.send(Message{Type: MessageError, Error: err.Error()}); sendErr != nil {
				return
			}
		}
	}
}

// move plays cmd. The use case publishes the new state to every connection
// of the game.
func (g *GameHandler) move(ctx context.Context, gameID uuid.UUID, playerID string, cmd game.Command) (game.State, error) {
	state, result, err := g.gameUC.ProcessMove(ctx, gameID, playerID, cmd)
	if err != nil {
		return game.State{}, err
	}
	if result != nil {
		g.release(gameID)
	}
	return state, nil
}

// release frees a finished game once nobody is watching it any more.
func (g *GameHandler) release(gameID uuid.UUID) {
	if g.hub.count(gameID) > 0 {
		return
	}
	if err := g.gameUC.RemoveGame(gameID); err != nil {
		g.log.Debugw("game kept in memory", "game_id", gameID, "reason", err)
	}
}

func (g *GameHandler) gameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "gameID")
	gameID, err := uuid.Parse(raw)
	if err != nil {
		httpresponse.WriteError(w, fmt.Errorf("%w: %q", errs.ErrGameNotFound, raw))
		return uuid.Nil, false
	}
	return gameID, true
}

func (g *GameHandler) playerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	playerID := r.Header.Get(PlayerIDHeader)
	if playerID == "" {
		httpresponse.WriteError(w, errs.ErrPlayerNotInGame)
		return "", false
	}
	return playerID, true
}
