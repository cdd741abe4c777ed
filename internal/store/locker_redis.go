package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/utils"
)

const (
	registrationLockPrefix = "go-user-service:register:"
	registrationLockTTL    = 10 * time.Second
)

// unlockScript deletes the lock only while it still holds the owner's token,
// so an expired lock taken over by someone else is left alone.
var unlockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RedisLocker is an [EmailLocker] backed by SET NX with a TTL.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisLocker connects to redis and verifies the connection. Address may
// be a redis:// URL or a plain host:port.
func NewRedisLocker(ctx context.Context, cfg config.Redis, log *logger.Logger) (*RedisLocker, error) {
	opt, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	log.Info().Str("func", "NewRedisLocker").Msg("connected to redis successfully")

	return newRedisLocker(client, log), nil
}

func newRedisLocker(client *redis.Client, log *logger.Logger) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    registrationLockTTL,
		logger: log,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, email string) (func(), error) {
	key := registrationLockKey(email)
	owner := utils.NewTraceID()

	acquired, err := l.client.SetNX(ctx, key, owner, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("error acquiring registration lock: %w", err)
	}
	if !acquired {
		return nil, ErrRegistrationInProgress
	}

	unlock := func() {
		// the request context may already be cancelled
		unlockCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := unlockScript.Run(unlockCtx, l.client, []string{key}, owner).Err(); err != nil {
			l.logger.Err(err).Str("key", key).Msg("error releasing registration lock")
		}
	}

	return unlock, nil
}

// Close closes the redis client.
func (l *RedisLocker) Close() error {
	return l.client.Close()
}

func registrationLockKey(email string) string {
	return registrationLockPrefix + email
}

func redisOptions(cfg config.Redis) (*redis.Options, error) {
	if strings.HasPrefix(cfg.Address, "redis://") || strings.HasPrefix(cfg.Address, "rediss://") {
		opt, err := redis.ParseURL(cfg.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opt, nil
	}

	return &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

// noopLocker is used when no redis address is configured; uniqueness then
// rests on the store's unique email constraint alone.
type noopLocker struct{}

func (noopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
