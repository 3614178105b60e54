package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSweepInProgress = errors.New("reminder: sweep already running for user")

// Locker serializes sweeps per user.
//
// TryAcquire returns ErrSweepInProgress when another sweep holds the lock.
// With deferToHolder set, the failed attempt is recorded so that the holder
// sweeps once more before it lets go.
type Locker interface {
	TryAcquire(ctx context.Context, userID uuid.UUID, deferToHolder bool) (Lease, error)
}

// Lease is a held per-user lock.
type Lease interface {
	// Release frees the lock unless a caller deferred to this holder since the
	// last pass. In that case the lock is kept and rerun is true.
	Release(ctx context.Context) (rerun bool, err error)
	// Unlock frees the lock unconditionally.
	Unlock(ctx context.Context) error
}

// Takes the lock or, when asked to, leaves a rerun request for the holder.
// Both happen in one step so a request cannot slip in between the holder's
// last check and its release.
var acquireScript = redis.NewScript(`
if redis.call("SET", KEYS[1], ARGV[1], "NX", "PX", ARGV[2]) then
	redis.call("DEL", KEYS[2])
	return 1
end
if ARGV[3] == "1" then
	redis.call("SET", KEYS[2], "1", "PX", ARGV[2])
end
return 0
`)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) ~= ARGV[1] then
	return -1
end
if redis.call("DEL", KEYS[2]) == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[2])
	return 1
end
redis.call("DEL", KEYS[1])
return 0
`)

// Deletes the key only if it still holds our token, so an expired lock
// taken over by another sweep is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func lockKey(userID uuid.UUID) string {
	return "reminder:lock:" + userID.String()
}

func rerunKey(userID uuid.UUID) string {
	return "reminder:dirty:" + userID.String()
}

func (l *RedisLocker) TryAcquire(ctx context.Context, userID uuid.UUID, deferToHolder bool) (Lease, error) {
	keys := []string{lockKey(userID), rerunKey(userID)}
	token := uuid.NewString()
	deferArg := "0"
	if deferToHolder {
		deferArg = "1"
	}

	got, err := acquireScript.Run(ctx, l.client, keys, token, l.ttl.Milliseconds(), deferArg).Int()
	if err != nil {
		return nil, err
	}
	if got != 1 {
		return nil, ErrSweepInProgress
	}
	return &redisLease{client: l.client, keys: keys, token: token, ttl: l.ttl}, nil
}

type redisLease struct {
	client *redis.Client
	keys   []string
	token  string
	ttl    time.Duration
}

// Release reports no rerun when the lock already expired; whoever holds it
// now has swept after any pending request.
func (l *redisLease) Release(ctx context.Context) (bool, error) {
	got, err := releaseScript.Run(ctx, l.client, l.keys, l.token, l.ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return got == 1, nil
}

func (l *redisLease) Unlock(ctx context.Context) error {
	return unlockScript.Run(ctx, l.client, l.keys[:1], l.token).Err()
}
