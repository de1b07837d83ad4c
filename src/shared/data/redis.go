package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamReports = "reportbot.reports"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishReport appends one persisted report to the shared event stream so
// other tooling can consume it.
func PublishReport(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamReports,
		Values: payload,
	}).Result()
	return err
}
