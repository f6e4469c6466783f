package notifier

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"leadboard/internal/model"
)

const DefaultChannel = "leadboard:transitions"

// RedisWriter publishes stage updates on a pub/sub channel so other boards can
// pick them up.
type RedisWriter struct {
	client  *redis.Client
	channel string
}

func NewRedisWriter(client *redis.Client, channel string) *RedisWriter {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisWriter{client: client, channel: channel}
}

func (w *RedisWriter) WriteStage(ctx context.Context, u model.StageUpdate) error {
	data, err := sonic.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode stage update: %w", err)
	}
	if err := w.client.Publish(ctx, w.channel, data).Err(); err != nil {
		return fmt.Errorf("publish stage update: %w", err)
	}
	return nil
}
