package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelfares/internal/adapters/observability"
	"travelfares/internal/domain"
)

// Store keeps one current result set per order in Redis. The per-order
// sequence counter doubles as the search token: a result set only lands if
// its token still equals the counter, so responses arriving after a newer
// search began are dropped.
type Store struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *Store {
	return &Store{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

// putIfCurrent compares the stored sequence against the result set's token
// before writing, atomically.
var putIfCurrent = redis.NewScript(`
local seq = redis.call('GET', KEYS[1])
if not seq or tonumber(seq) ~= tonumber(ARGV[1]) then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'EX', tonumber(ARGV[3]))
return 1
`)

func seqKey(orderID string) string    { return fmt.Sprintf("fares:seq:%s", orderID) }
func resultKey(orderID string) string { return fmt.Sprintf("fares:results:%s", orderID) }

func (s *Store) Begin(ctx context.Context, orderID string) (int64, error) {
	n, err := s.c.Incr(ctx, seqKey(orderID)).Result()
	if err != nil {
		return 0, err
	}
	// Sequence expires with the results; a fresh session restarts at 1.
	_ = s.c.Expire(ctx, seqKey(orderID), s.ttl).Err()
	return n, nil
}

func (s *Store) Put(ctx context.Context, orderID string, rs domain.ResultSet) error {
	b, err := json.Marshal(rs)
	if err != nil {
		return err
	}
	n, err := putIfCurrent.Run(ctx, s.c,
		[]string{seqKey(orderID), resultKey(orderID)},
		rs.Token, b, int(s.ttl.Seconds()),
	).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		observability.ObserveStore("stale")
		return domain.ErrStaleSearch
	}
	observability.ObserveStore("put")
	return nil
}

func (s *Store) Get(ctx context.Context, orderID string) (domain.ResultSet, error) {
	b, err := s.c.Get(ctx, resultKey(orderID)).Bytes()
	if err == redis.Nil {
		observability.ObserveStore("miss")
		return domain.ResultSet{}, domain.ErrNoResults
	}
	if err != nil {
		return domain.ResultSet{}, err
	}
	var rs domain.ResultSet
	if err := json.Unmarshal(b, &rs); err != nil {
		return domain.ResultSet{}, err
	}
	observability.ObserveStore("hit")
	return rs, nil
}
