package driver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/vydriver/internal/testutil"
	"github.com/newtron-network/vydriver/pkg/audit"
	"github.com/newtron-network/vydriver/pkg/util"
)

// memAudit keeps events in memory.
type memAudit struct {
	events []*audit.Event
}

func (m *memAudit) Log(e *audit.Event) error {
	m.events = append(m.events, e)
	return nil
}

func (m *memAudit) Query(audit.Filter) ([]*audit.Event, error) { return m.events, nil }

func (m *memAudit) Close() error { return nil }

func (m *memAudit) last() *audit.Event { return m.events[len(m.events)-1] }

func newDriver(t *testing.T, outputs map[string]string) (*Driver, *testutil.FakeSession, *memAudit) {
	t.Helper()
	fs := testutil.NewFakeSession(outputs)
	log := &memAudit{}
	d := New("vyos-edge1", fs, WithAuditLogger(log), WithUser("tester"))
	return d, fs, log
}

func TestOpenClose(t *testing.T) {
	d, fs, log := newDriver(t, nil)
	ctx := testutil.Context(t)

	require.NoError(t, d.Open(ctx))
	assert.True(t, d.IsAlive())
	assert.Equal(t, "vyos-edge1", d.Name())
	assert.Equal(t, StateOperational, d.State())

	require.NoError(t, d.Close())
	assert.False(t, d.IsAlive())
	assert.Equal(t, 1, fs.Closes)

	require.Len(t, log.events, 2)
	assert.Equal(t, audit.OpOpen, log.events[0].Operation)
	assert.Equal(t, audit.OpClose, log.events[1].Operation)
	assert.Equal(t, "tester", log.events[0].User)
	assert.Equal(t, log.events[0].SessionID, log.events[1].SessionID)
}

func TestOpen_Error(t *testing.T) {
	d, fs, log := newDriver(t, nil)
	fs.Errors["open"] = errors.New("connection refused")

	err := d.Open(testutil.Context(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrConnection))
	assert.False(t, log.last().Success)
	assert.Contains(t, log.last().Error, "connection refused")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "operational", StateOperational.String())
	assert.Equal(t, "config-edit", StateConfigEdit.String())
}

func TestInnerLines(t *testing.T) {
	assert.Equal(t, "b\nc\n", innerLines("a\nb\nc\nd"))
	assert.Equal(t, "b\n", innerLines("a\nb\nc\n"))
	assert.Equal(t, "", innerLines("a\nb"))
	assert.Equal(t, "", innerLines("a\nb\n"))
	assert.Equal(t, "", innerLines(""))
}
