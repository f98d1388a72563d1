package quota

import (
	"context"
	"fmt"
	"text_trans_api/pkg/rds"
	"time"

	"github.com/go-redis/redis/v8"
)

// Daily request counters, one redis key per caller identity (user id
// or IP) with a 24-hour expiry. The translate handler reads the
// counter before the upstream call and increments after it; the gap
// between the two is deliberate and matches the product behavior
// (concurrent requests can both pass the check).

const window = 24 * time.Hour

func key(identity string) string {
	return fmt.Sprintf("req_count:%s", identity)
}

// Used returns how many requests the identity has made in the current
// window. A missing key counts as zero.
func Used(ctx context.Context, identity string) (int, error) {
	used, err := rds.Client.Get(ctx, key(identity)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return used, nil
}

// Consume increments the identity's counter and returns the new count.
// The expiry is set when the key is first created so the window runs
// from the first request of the day.
func Consume(ctx context.Context, identity string) (int, error) {
	k := key(identity)
	used, err := rds.Client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if used == 1 {
		if err := rds.Client.Expire(ctx, k, window).Err(); err != nil {
			return int(used), err
		}
	}
	return int(used), nil
}
