package viewcache

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Rendered-view cache invalidation. Lifecycle handlers call Invalidate
// after their transaction commits; the frontend keys its cached renders
// by path under this prefix.

const keyPrefix = "viewcache:"

var rdb *redis.Client

func Init(addr string) {
	if addr == "" {
		logrus.Info("REDIS_ADDR not set, view-cache invalidation disabled")
		return
	}
	rdb = redis.NewClient(&redis.Options{Addr: addr})
}

// Invalidate marks a path's cached render stale. Failures are logged and
// swallowed: a stale page must never fail the write that caused it.
func Invalidate(ctx context.Context, path string) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, keyPrefix+path).Err(); err != nil {
		logrus.Warnf("viewcache: failed to invalidate %s: %v", path, err)
	}
}
