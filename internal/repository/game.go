package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	errs "goban/internal/errors"
)

const resultsCollection = "results"

// GameRepository mirrors live games into Redis and archives finished ones in
// MongoDB.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func stateKey(gameID string) string {
	return "game:" + gameID + ":state"
}

func movesKey(gameID string) string {
	return "game:" + gameID + ":moves"
}

func (g *GameRepository) SaveState(ctx context.Context, gameID string, state game.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return g.redis.Set(ctx, stateKey(gameID), data, g.cfg.StateTTL).Err()
}

func (g *GameRepository) LoadState(ctx context.Context, gameID string) (game.State, error) {
	data, err := g.redis.Get(ctx, stateKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.State{}, errs.ErrGameNotFound
	} else if err != nil {
		return game.State{}, err
	}

	var state game.State
	if err = json.Unmarshal(data, &state); err != nil {
		return game.State{}, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return state, nil
}

func (g *GameRepository) AppendMove(ctx context.Context, gameID string, move game.Move) error {
	data, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("failed to marshal move: %w", err)
	}

	key := movesKey(gameID)
	pipe := g.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	if g.cfg.StateTTL > 0 {
		pipe.Expire(ctx, key, g.cfg.StateTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (g *GameRepository) LoadMoves(ctx context.Context, gameID string) ([]game.Move, error) {
	values, err := g.redis.LRange(ctx, movesKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	moves := make([]game.Move, 0, len(values))
	for _, v := range values {
		var move game.Move
		if err = json.Unmarshal([]byte(v), &move); err != nil {
			g.log.Errorw("skipping malformed move", "game_id", gameID, "value", v, "error", err)
			continue
		}
		moves = append(moves, move)
	}
	return moves, nil
}

func (g *GameRepository) DeleteGame(ctx context.Context, gameID string) error {
	return g.redis.Del(ctx, stateKey(gameID), movesKey(gameID)).Err()
}

func (g *GameRepository) SaveResult(ctx context.Context, record game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := g.mongo.Collection(resultsCollection).InsertOne(ctx, record)
	if err != nil {
		g.log.Errorf("failed to insert result to database: %v", err)
		return err
	}

	g.log.Infof("result archived for game: %s", record.GameID)
	return nil
}

func (g *GameRepository) GetResult(ctx context.Context, gameID string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record game.Record
	err := g.mongo.Collection(resultsCollection).FindOne(ctx, bson.M{"game_id": gameID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Record{}, errs.ErrResultNotFound
	} else if err != nil {
		g.log.Error(err)
		return game.Record{}, err
	}
	return record, nil
}
