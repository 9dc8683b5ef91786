package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"goban/internal/bootstrap"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"

	mongoPort  = "27017/tcp"
	mongoImage = "mongo"
	mongoTag   = "7"

	testDatabase = "goban_test"
)

type Suite struct {
	*testing.T
	Logger *zap.SugaredLogger
	Config bootstrap.Config

	Redis *redis.Client
	Mongo *mongo.Database
}

// New starts throwaway Redis and MongoDB containers. The test is skipped when
// no docker daemon is reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	pool.MaxWait = maxWaitDuration

	redisHost := run(t, pool, redisImage, redisTag, redisPort)
	mongoHost := run(t, pool, mongoImage, mongoTag, mongoPort)

	var redisClient *redis.Client
	if err = pool.Retry(func() error {
		redisClient = redis.NewClient(&redis.Options{
			Addr: redisHost,
		})
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}
	if err = redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	var mongoClient *mongo.Client
	if err = pool.Retry(func() error {
		mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI("mongodb://"+mongoHost))
		if err != nil {
			return err
		}
		return mongoClient.Ping(ctx, nil)
	}); err != nil {
		t.Fatalf("could not connect to mongo: %v", err)
	}

	t.Cleanup(func() {
		_ = redisClient.Close()
		_ = mongoClient.Disconnect(context.Background())
	})

	return ctx, &Suite{
		T:      t,
		Logger: zaptest.NewLogger(t).Sugar(),
		Config: bootstrap.Config{
			RedisUrl:      redisHost,
			MongoUri:      "mongodb://" + mongoHost,
			MongoDatabase: testDatabase,
			BoardSize:     9,
			StateTTL:      time.Minute,
		},
		Redis: redisClient,
		Mongo: mongoClient.Database(testDatabase),
	}
}

func run(t *testing.T, pool *dockertest.Pool, image, tag, port string) string {
	t.Helper()

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: image,
		Tag:        tag,
	}, func(config *docker.HostConfig) {
		// stopped containers go away by themselves
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start %s: %v", image, err)
	}

	// never returns error
	_ = resource.Expire(expireDuration)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge %s: %v", image, err)
		}
	})

	return resource.GetHostPort(port)
}
