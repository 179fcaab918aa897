package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/vydriver/internal/testutil"
	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/util"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "VYDRIVER_FACTS|r1|facts", Key("r1", "facts"))
}

func TestPublish_InvalidInput(t *testing.T) {
	s := NewRedisSink("127.0.0.1:0", 0, "")
	defer s.Close()

	err := s.Publish(context.Background(), "", "facts", model.Facts{})
	assert.True(t, errors.Is(err, util.ErrInvalidInput))
}

func TestPublish_Unreachable(t *testing.T) {
	s := NewRedisSink("127.0.0.1:1", 0, "")
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.True(t, errors.Is(s.Connect(ctx), util.ErrConnection))
	assert.True(t, errors.Is(s.Publish(ctx, "r1", "facts", model.Facts{}), util.ErrConnection))
}

func TestPublish(t *testing.T) {
	client := testutil.RedisClient(t, 9)
	ctx := testutil.Context(t)

	s := NewRedisSinkFromClient(client)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, s.Connect(ctx))

	facts := model.Facts{Vendor: model.Vendor, Hostname: "r1", InterfaceList: []string{"eth0"}}
	require.NoError(t, s.Publish(ctx, "r1", "facts", facts))

	got, err := client.HGetAll(ctx, Key("r1", "facts")).Result()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T12:00:00Z", got[FieldUpdated])
	assert.JSONEq(t, `{"uptime":0,"vendor":"VyOS","os_version":"","serial_number":"","model":"",
		"hostname":"r1","fqdn":"","interface_list":["eth0"]}`, got[FieldData])

	// A second publish replaces the record.
	require.NoError(t, s.Publish(ctx, "r1", "facts", model.Facts{Hostname: "r2"}))
	data, err := client.HGet(ctx, Key("r1", "facts"), FieldData).Result()
	require.NoError(t, err)
	assert.Contains(t, data, `"hostname":"r2"`)
}
