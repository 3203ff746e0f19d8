// README: Redis view publisher; caches the latest view and fans out on a
// pub/sub channel for push-style frontends.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trackmap/internal/tracker"
)

// RedisPublisher stores each view under a latest-view key (with a TTL so a
// stopped tracker ages out of the cache) and publishes it on a channel.
type RedisPublisher struct {
	client  *redis.Client
	key     string
	channel string
	ttl     time.Duration
}

func NewRedisPublisher(client *redis.Client, channel string, ttl time.Duration) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		key:     channel + ":latest",
		channel: channel,
		ttl:     ttl,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, v tracker.View) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode view: %w", err)
	}

	pipe := p.client.Pipeline()
	pipe.Set(ctx, p.key, payload, p.ttl)
	pipe.Publish(ctx, p.channel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}
