package lock

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DefaultRedisTTL caps how long a crashed holder can keep the lock.
const DefaultRedisTTL = 5 * time.Minute

const redisKeyPrefix = "aquascape:lock:"

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis implements Locker with SET NX PX. A cycle that outlives ttl loses the
// lock silently, so ttl must exceed the longest expected cycle.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Locker = (*Redis)(nil)

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) TryAcquire(ctx context.Context, id int64) (Lease, bool, error) {
	key := redisKey(id)
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &redisLease{client: r.client, key: key, token: token}, true, nil
}

type redisLease struct {
	client *redis.Client
	key    string
	token  string
}

func (l *redisLease) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("redis release %s: %w", l.key, err)
	}
	if n == 0 {
		return ErrNotHeld
	}
	return nil
}

func redisKey(id int64) string {
	return redisKeyPrefix + strconv.FormatInt(id, 10)
}
