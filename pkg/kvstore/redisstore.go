package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// redisFieldConfig is the hash field a RedisStore reads and writes the
// board config under. The hash key is per board name, so one Redis instance
// can back several nodes; its single field holds the whole config as JSON.
const redisFieldConfig = "config"

// RedisStore persists BoardConfig in a Redis hash, one hash per board name.
// Useful when several nodes share a central Redis instance instead of each
// keeping its own local file.
type RedisStore struct {
	client  *redis.Client
	ctx     context.Context
	hashKey string
}

// NewRedisStore creates a RedisStore addressing addr, storing the config
// for boardName under "accessnode:config:<boardName>".
func NewRedisStore(addr, boardName string) *RedisStore {
	return &RedisStore{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		ctx:     context.Background(),
		hashKey: fmt.Sprintf("accessnode:config:%s", boardName),
	}
}

// Connect tests the connection.
func (s *RedisStore) Connect() error {
	return s.client.Ping(s.ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Load reads and decodes the board config, returning a zero-value
// BoardConfig (not an error) if the hash field does not exist yet.
func (s *RedisStore) Load() (*BoardConfig, error) {
	raw, err := s.client.HGet(s.ctx, s.hashKey, redisFieldConfig).Result()
	if err != nil {
		if err == redis.Nil {
			return &BoardConfig{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.hashKey, err)
	}
	cfg := &BoardConfig{}
	if err := json.Unmarshal([]byte(raw), cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.hashKey, err)
	}
	return cfg, nil
}

// Save JSON-encodes cfg and writes it to the hash field.
func (s *RedisStore) Save(cfg *BoardConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.client.HSet(s.ctx, s.hashKey, redisFieldConfig, data).Err()
}
