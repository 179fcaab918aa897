// Package export publishes fact records to Redis for other tools to pick up.
// The sink is write-only: the driver never reads what it published.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/newtron-network/vydriver/pkg/util"
)

// KeyPrefix is the table name of every published record.
const KeyPrefix = "VYDRIVER_FACTS"

// Hash fields of a published record.
const (
	FieldData    = "data"
	FieldUpdated = "updated"
)

// RedisSink writes records as hashes keyed VYDRIVER_FACTS|<device>|<getter>.
type RedisSink struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisSink creates a sink for the Redis server at addr.
func NewRedisSink(addr string, db int, password string) *RedisSink {
	return NewRedisSinkFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       db,
		Password: password,
	}))
}

// NewRedisSinkFromClient wraps an existing client. Close closes the client.
func NewRedisSinkFromClient(client *redis.Client) *RedisSink {
	return &RedisSink{client: client, now: time.Now}
}

// Key returns the Redis key of a record.
func Key(device, getter string) string {
	return fmt.Sprintf("%s|%s|%s", KeyPrefix, device, getter)
}

// Connect tests the connection.
func (s *RedisSink) Connect(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return util.NewConnectionError(s.client.Options().Addr, "redis ping", err)
	}
	return nil
}

// Publish replaces the record of getter for device. Both fields are written in
// one MULTI/EXEC transaction so readers never see data and updated disagree.
func (s *RedisSink) Publish(ctx context.Context, device, getter string, record any) error {
	if device == "" || getter == "" {
		return util.NewInvalidInputError("publish", "device and getter must be set")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", getter, err)
	}

	key := Key(device, getter)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, FieldData, string(data), FieldUpdated, s.now().UTC().Format(time.RFC3339))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return util.NewConnectionError(s.client.Options().Addr, "publish "+key, err)
	}

	util.WithDevice(device).Debugf("Published %s (%d bytes)", key, len(data))
	return nil
}

// Close closes the connection.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
