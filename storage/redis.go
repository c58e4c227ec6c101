package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisStore keeps values in Redis under "<namespace>:<key>".
type RedisStore struct {
	client    *redis.Client
	namespace string
	log       logrus.FieldLogger
}

// NewRedisStore parses redisURL, connects and pings the server.
func NewRedisStore(ctx context.Context, redisURL, namespace string, log logrus.FieldLogger) (*RedisStore, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL is required")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.WithFields(logrus.Fields{"addr": opt.Addr, "db": opt.DB, "namespace": namespace}).Info("Connected to Redis")
	return NewRedisStoreWithClient(client, namespace, log), nil
}

func NewRedisStoreWithClient(client *redis.Client, namespace string, log logrus.FieldLogger) *RedisStore {
	return &RedisStore{client: client, namespace: namespace, log: log}
}

func (r *RedisStore) key(k string) string {
	if r.namespace == "" {
		return k
	}
	return r.namespace + ":" + k
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Apply runs the mutations in one MULTI/EXEC block.
func (r *RedisStore) Apply(ctx context.Context, muts []Mutation) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, m := range muts {
			if m.Value == nil {
				pipe.Del(ctx, r.key(m.Key))
				continue
			}
			pipe.Set(ctx, r.key(m.Key), *m.Value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis apply: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
