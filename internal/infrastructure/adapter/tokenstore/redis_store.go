package tokenstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
)

// RedisStore keeps handshake tokens in Redis. Expiry rides on the key TTL
// and single-use comes from GETDEL: the lookup that succeeds also deletes,
// so two concurrent redeems cannot both win.
type RedisStore struct {
	client *redis.Client
}

// ConnectRedis dials Redis and verifies the connection
func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// NewRedisStore creates a token store on an existing Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// key generates the Redis key for a handshake token
func key(token string) string { return "handshake:token:" + token }

// Save stores a token that expires after ttl
func (s *RedisStore) Save(ctx context.Context, token *entity.AuthToken, ttl time.Duration) error {
	b, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(token.Token), b, ttl).Err()
}

// Redeem atomically looks up and consumes a token
func (s *RedisStore) Redeem(ctx context.Context, token string) (*entity.AuthToken, error) {
	b, err := s.client.GetDel(ctx, key(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errs.ErrTokenExpiredOrUsed
		}
		return nil, err
	}

	var authToken entity.AuthToken
	if err := json.Unmarshal(b, &authToken); err != nil {
		return nil, err
	}
	return &authToken, nil
}
