package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"goban/internal/domain/game"
)

type Config struct {
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	RedisUrl      string        `mapstructure:"REDIS_URL"`
	MongoUri      string        `mapstructure:"MONGO_URI"`
	MongoDatabase string        `mapstructure:"MONGO_DATABASE"`
	BoardSize     int           `mapstructure:"BOARD_SIZE"`
	IsLocalCors   bool          `mapstructure:"LOCAL_CORS"`
	StateTTL      time.Duration `mapstructure:"STATE_TTL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "goban")
	v.SetDefault("BOARD_SIZE", 19)
	v.SetDefault("LOCAL_CORS", false)
	v.SetDefault("STATE_TTL", "24h")
}

// Setup reads cfgPath and lets environment variables override it. A missing
// file is not an error, so the server can be configured by environment alone.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.BoardSize < 1 || cfg.BoardSize > game.MaxBoardSize {
		return nil, fmt.Errorf("BOARD_SIZE must be between 1 and %d, got %d", game.MaxBoardSize, cfg.BoardSize)
	}

	return &cfg, nil
}
