package storage

import (
	"context"
	"errors"
	"net"
	"strconv"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultRedisHash string = "employee_store"

// redisStorage maps every slot to a field of a single redis hash
type redisStorage struct {
	redisClient *redis.Client
	config      struct {
		connectConfig
		address  string
		port     string
		password string
		database int
		hash     string
	}
	logger utilities.Logger
}

func NewRedis(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Storage
} {
	r := &redisStorage{logger: utilities.NewNullLogger()}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			r.logger = p
		}
	}
	return r
}

func (r *redisStorage) Configure(envs map[string]string) error {
	r.config.configure(envs)
	r.config.address, r.config.port = "localhost", "6379"
	r.config.hash = defaultRedisHash
	if redisAddress, ok := envs["REDIS_ADDRESS"]; ok {
		r.config.address = redisAddress
	}
	if redisPort, ok := envs["REDIS_PORT"]; ok {
		r.config.port = redisPort
	}
	if redisPassword, ok := envs["REDIS_PASSWORD"]; ok {
		r.config.password = redisPassword
	}
	if redisDatabase, ok := envs["REDIS_DATABASE"]; ok {
		i, _ := strconv.ParseInt(redisDatabase, 10, 64)
		r.config.database = int(i)
	}
	if hash := envs["STORAGE_REDIS_HASH"]; hash != "" {
		r.config.hash = hash
	}
	return nil
}

func (r *redisStorage) Open(ctx context.Context) error {
	address := net.JoinHostPort(r.config.address, r.config.port)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: r.config.password,
		DB:       r.config.database,
	})
	if err := connect(ctx, r.logger, "redis", r.config.connectMaxTries,
		func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, r.config.timeout)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		}); err != nil {
		_ = redisClient.Close()
		return pkgerrors.Wrapf(err, "error while connecting to redis (%s)", address)
	}
	r.redisClient = redisClient
	r.logger.Info(ctx, "connected to redis: %s", address)
	return nil
}

func (r *redisStorage) Close(ctx context.Context) error {
	if r.redisClient == nil {
		return nil
	}
	if err := r.redisClient.Close(); err != nil {
		r.logger.Error(ctx, "error while shutting down redis client: %s", err)
	}
	return nil
}

func (r *redisStorage) Read(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.timeout)
	defer cancel()
	value, err := r.redisClient.HGet(ctx, r.config.hash, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *redisStorage) Write(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, r.config.timeout)
	defer cancel()
	if _, err := r.redisClient.HSet(ctx, r.config.hash, key, value).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisStorage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.config.timeout)
	defer cancel()
	if _, err := r.redisClient.HDel(ctx, r.config.hash, key).Result(); err != nil {
		return err
	}
	return nil
}
