package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const EventsChannel = "tourguide:events"

func NewRedis(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisRelay publishes events on a Redis channel and feeds every message on
// that channel into the local hub, so all instances see all events.
type RedisRelay struct {
	rdb     *redis.Client
	hub     *Hub
	channel string
	log     *logrus.Logger
}

func NewRedisRelay(rdb *redis.Client, hub *Hub, log *logrus.Logger) *RedisRelay {
	return &RedisRelay{rdb: rdb, hub: hub, channel: EventsChannel, log: log}
}

func (r *RedisRelay) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Run blocks until ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context) {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer sub.Close()

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				r.log.WithError(err).Warn("drop malformed event")
				continue
			}
			if err := r.hub.Publish(ctx, ev); err != nil {
				return
			}
		}
	}
}
