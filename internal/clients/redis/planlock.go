package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/studyhive/studyhive-backend/internal/logger"
)

// PlanLock serializes study-plan upserts per task event across processes.
// Two concurrent builds for the same task must not race on the persisted
// plan; the second waits for the first's lease to clear.
type PlanLock interface {
	Acquire(ctx context.Context, taskEventID uuid.UUID) (release func(), err error)
	Close() error
}

type planLock struct {
	log   *logger.Logger
	rdb   *goredis.Client
	ttl   time.Duration
	retry time.Duration
}

// NewPlanLock connects to REDIS_ADDR. Callers that run without redis
// should use NewLocalPlanLock instead.
func NewPlanLock(log *logger.Logger) (PlanLock, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &planLock{
		log:   log.With("service", "RedisPlanLock"),
		rdb:   rdb,
		ttl:   30 * time.Second,
		retry: 100 * time.Millisecond,
	}, nil
}

func (l *planLock) Acquire(ctx context.Context, taskEventID uuid.UUID) (func(), error) {
	key := "studyplan:lock:" + taskEventID.String()
	owner := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, key, owner, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire plan lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	release := func() {
		// Only the owner may clear the lease; an expired lease taken over
		// by another builder stays put.
		script := goredis.NewScript(`
			if redis.call("get", KEYS[1]) == ARGV[1] then
				return redis.call("del", KEYS[1])
			end
			return 0
		`)
		if err := script.Run(context.Background(), l.rdb, []string{key}, owner).Err(); err != nil {
			l.log.Warn("release plan lock failed", "key", key, "error", err)
		}
	}
	return release, nil
}

func (l *planLock) Close() error { return l.rdb.Close() }

// localPlanLock is the single-process fallback when redis is not
// configured: one in-memory mutex per task event.
type localPlanLock struct {
	locks sync.Map
}

func NewLocalPlanLock() PlanLock {
	return &localPlanLock{}
}

func (l *localPlanLock) Acquire(ctx context.Context, taskEventID uuid.UUID) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, _ := l.locks.LoadOrStore(taskEventID, &sync.Mutex{})
	mu := entry.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock, nil
}

func (l *localPlanLock) Close() error { return nil }
