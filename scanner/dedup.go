package scanner

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// SeenStore remembers which transaction hashes were already processed.
// The set grows during the day and is cleared on the daily sweep.
type SeenStore interface {
	Seen(ctx context.Context, hash string) (bool, error)
	Mark(ctx context.Context, hash string) error
	Clear(ctx context.Context) error
}

type memorySeen struct {
	mu  sync.Mutex
	set map[string]struct{}
}

func NewMemorySeen() SeenStore {
	return &memorySeen{set: make(map[string]struct{})}
}

func (m *memorySeen) Seen(_ context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.set[hash]
	return ok, nil
}

func (m *memorySeen) Mark(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set[hash] = struct{}{}
	return nil
}

func (m *memorySeen) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set = make(map[string]struct{})
	return nil
}

const redisSeenKey = "giftvault:deposits:seen"

// redisSeen keeps the set in Redis so a restart does not re-credit
// deposits that were already processed.
type redisSeen struct {
	rdb *redis.Client
}

func NewRedisSeen(rdb *redis.Client) SeenStore {
	return &redisSeen{rdb: rdb}
}

func (r *redisSeen) Seen(ctx context.Context, hash string) (bool, error) {
	return r.rdb.SIsMember(ctx, redisSeenKey, hash).Result()
}

func (r *redisSeen) Mark(ctx context.Context, hash string) error {
	return r.rdb.SAdd(ctx, redisSeenKey, hash).Err()
}

func (r *redisSeen) Clear(ctx context.Context) error {
	return r.rdb.Del(ctx, redisSeenKey).Err()
}
