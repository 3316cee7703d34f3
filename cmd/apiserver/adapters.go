package main

import (
	"context"
	"fmt"

	"github.com/turtacn/GeoRose/internal/infrastructure/database/redis"
	"github.com/turtacn/GeoRose/internal/infrastructure/messaging/kafka"
	storageminio "github.com/turtacn/GeoRose/internal/infrastructure/storage/minio"
	"github.com/turtacn/GeoRose/internal/interfaces/http/handlers"
)

// Readiness probes for the optional collaborators.

func redisHealth(client *redis.Client) handlers.HealthChecker {
	return handlers.HealthCheckFunc{CheckerName: "redis", Probe: client.Ping}
}

func minioHealth(client *storageminio.MinIOClient) handlers.HealthChecker {
	return handlers.HealthCheckFunc{
		CheckerName: "minio",
		Probe: func(ctx context.Context) error {
			ok, err := client.GetClient().BucketExists(ctx, client.Bucket())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("bucket %q does not exist", client.Bucket())
			}
			return nil
		},
	}
}

func kafkaHealth(topics *kafka.TopicManager, topic string) handlers.HealthChecker {
	return handlers.HealthCheckFunc{
		CheckerName: "kafka",
		Probe: func(ctx context.Context) error {
			ok, err := topics.TopicExists(ctx, topic)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("topic %q not found", topic)
			}
			return nil
		},
	}
}

// acksName maps the numeric acks setting onto the producer's names.
func acksName(requiredAcks int) string {
	switch requiredAcks {
	case -1:
		return "all"
	case 0:
		return "none"
	default:
		return "one"
	}
}

//Personal.AI order the ending
