// FilePath: internal/session/session.redis.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "envmon:session:"
	maxRetries = 5
)

// RedisStore shares workspaces between console replicas. Tokens are Redis
// counters, so Begin is atomic across processes.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func workspaceKey(sid string) string {
	return keyPrefix + sid
}

func tokenKey(sid string, view View) string {
	return fmt.Sprintf("%s%s:token:%s", keyPrefix, sid, view)
}

func (s *RedisStore) Load(ctx context.Context, sid string) (*Workspace, error) {
	return s.load(ctx, s.client, sid)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) load(ctx context.Context, c getter, sid string) (*Workspace, error) {
	ws := &Workspace{}
	data, err := c.Get(ctx, workspaceKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ws, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	if err := json.Unmarshal(data, ws); err != nil {
		return nil, fmt.Errorf("failed to decode workspace: %w", err)
	}
	return ws, nil
}

func (s *RedisStore) Update(ctx context.Context, sid string, fn func(*Workspace)) error {
	return s.transact(ctx, sid, func(tx *redis.Tx) error { return nil }, fn, workspaceKey(sid))
}

func (s *RedisStore) Begin(ctx context.Context, sid string, view View) (uint64, error) {
	key := tokenKey(sid, view)
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to issue request token: %w", err)
	}
	if s.ttl > 0 {
		s.client.Expire(ctx, key, s.ttl)
	}
	return uint64(n), nil
}

func (s *RedisStore) Commit(ctx context.Context, sid string, view View, token uint64, fn func(*Workspace)) error {
	key := tokenKey(sid, view)
	check := func(tx *redis.Tx) error {
		latest, err := tx.Get(ctx, key).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if latest != token {
			return ErrStale
		}
		return nil
	}
	return s.transact(ctx, sid, check, fn, key, workspaceKey(sid))
}

// transact runs an optimistic read-modify-write of the workspace of sid while
// watching keys, retrying when a concurrent writer touched them.
func (s *RedisStore) transact(ctx context.Context, sid string, check func(*redis.Tx) error, fn func(*Workspace), keys ...string) error {
	txf := func(tx *redis.Tx) error {
		if err := check(tx); err != nil {
			return err
		}
		ws, err := s.load(ctx, tx, sid)
		if err != nil {
			return err
		}
		fn(ws)
		ws.UpdatedAt = time.Now()
		data, err := json.Marshal(ws)
		if err != nil {
			return fmt.Errorf("failed to encode workspace: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, workspaceKey(sid), data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := s.client.Watch(ctx, txf, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("workspace %s: too many concurrent updates", sid)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
