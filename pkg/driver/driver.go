// Package driver drives one VyOS router through a Session: the configuration
// lifecycle (load, compare, commit, discard, rollback) and the fact getters.
//
// A Driver is synchronous. It serializes calls with a mutex but never runs work
// in the background, and it keeps nothing between getter calls.
package driver

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/newtron-network/vydriver/pkg/audit"
	"github.com/newtron-network/vydriver/pkg/session"
	"github.com/newtron-network/vydriver/pkg/util"
)

// Device-side files used by the lifecycle.
const (
	StagingPath = "/var/tmp/candidate_running.conf"
	BackupPath  = "/var/tmp/backup_running.conf"
	StartupPath = "/config/config.boot"
)

// State is the lifecycle state of a Driver.
type State int

const (
	StateOperational State = iota
	StateConfigEdit
)

func (s State) String() string {
	if s == StateConfigEdit {
		return "config-edit"
	}
	return "operational"
}

// BackupMarker records that the startup configuration was copied to Path.
type BackupMarker struct {
	Path      string
	CreatedAt time.Time
}

// Driver manages one device over one session.
type Driver struct {
	name      string
	sess      session.Session
	user      string
	auditLog  audit.Logger
	sessionID string

	mu        sync.Mutex
	state     State
	candidate string
	backup    *BackupMarker

	// backupFailed is set when the last backup copy failed. The device file
	// may then be stale or partial, so Rollback does not fall back to it.
	backupFailed bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithAuditLogger sends lifecycle events to l instead of the default audit logger.
func WithAuditLogger(l audit.Logger) Option {
	return func(d *Driver) { d.auditLog = l }
}

// WithUser sets the user recorded in audit events.
func WithUser(user string) Option {
	return func(d *Driver) { d.user = user }
}

// New creates a driver for the named device over sess. The session is not
// opened until Open.
func New(name string, sess session.Session, opts ...Option) *Driver {
	d := &Driver{
		name:      name,
		sess:      sess,
		sessionID: uuid.NewString(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Dial creates a driver that talks to the device over SSH.
func Dial(name string, cfg session.Config, opts ...Option) *Driver {
	return New(name, session.NewSSH(name, cfg), opts...)
}

// Name returns the device name.
func (d *Driver) Name() string { return d.name }

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Candidate returns the most recently loaded configuration text.
func (d *Driver) Candidate() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.candidate
}

// Backup returns the backup marker, or nil when this session has not taken a backup.
func (d *Driver) Backup() *BackupMarker {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.backup == nil {
		return nil
	}
	b := *d.backup
	return &b
}

// Open connects the session.
func (d *Driver) Open(ctx context.Context) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	defer func() { d.record(audit.NewEvent(d.user, d.name, audit.OpOpen), start, err) }()

	if err := d.sess.Open(ctx); err != nil {
		return err
	}
	d.state = StateOperational
	util.WithDevice(d.name).Info("Opened")
	return nil
}

// Close disconnects the session and forgets the candidate and backup marker.
// Uncommitted edits are discarded by the device when the shell ends.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	err := d.sess.Close()
	d.state = StateOperational
	d.candidate = ""
	d.backup = nil
	d.backupFailed = false
	d.record(audit.NewEvent(d.user, d.name, audit.OpClose), start, err)
	util.WithDevice(d.name).Info("Closed")
	return err
}

// IsAlive reports whether the transport is still usable.
func (d *Driver) IsAlive() bool {
	return d.sess.IsAlive()
}

// record finishes and writes an audit event. Audit failures are logged, never returned.
func (d *Driver) record(e *audit.Event, start time.Time, err error) {
	e.WithSession(d.sessionID).WithDuration(time.Since(start)).WithResult(err)

	var lerr error
	if d.auditLog != nil {
		lerr = d.auditLog.Log(e)
	} else {
		lerr = audit.Log(e)
	}
	if lerr != nil {
		util.WithDevice(d.name).Warnf("Failed to write audit event: %v", lerr)
	}
}

// show runs an operational "show" or "ping" command. In configuration mode it
// is prefixed with "run" so the device does not read it as a configuration
// command.
func (d *Driver) show(ctx context.Context, cmd string) (string, error) {
	if d.state == StateConfigEdit {
		cmd = "run " + cmd
	}
	return d.sess.SendCommand(ctx, cmd)
}

// innerLines returns out without its first and last lines. Line endings of
// the kept lines are preserved.
func innerLines(out string) string {
	lines := strings.SplitAfter(out, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) <= 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "")
}
