// Package session provides the interactive shell a driver talks to a VyOS
// router through.
package session

import (
	"context"
	"time"
)

// Session is one authenticated shell on one device. Every call blocks until the
// device prints its prompt again or the exchange times out; transport failures are
// returned as *util.ConnectionError and leave the session unusable.
type Session interface {
	Open(ctx context.Context) error
	Close() error
	IsAlive() bool

	// SendCommand runs an operational-mode command and returns its output without
	// the echoed command line and the trailing prompt.
	SendCommand(ctx context.Context, cmd string) (string, error)

	// SendConfigSet enters configuration mode if needed, sends each line in order
	// and returns the transcript: echoed lines, device output and prompts. The
	// session stays in configuration mode.
	SendConfigSet(ctx context.Context, lines []string) (string, error)

	EnterConfigMode(ctx context.Context) error

	// ExitConfigMode leaves configuration mode, discarding uncommitted changes.
	ExitConfigMode(ctx context.Context) error

	// TransferFile copies a local file to remotePath on the device.
	TransferFile(ctx context.Context, localPath, remotePath string) error
}

// Defaults applied to a zero Config.
const (
	DefaultPort    = 22
	DefaultTimeout = 60 * time.Second
)

// Config holds connection parameters for one device.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string

	// KeyFile is a private key used in addition to Password when set.
	KeyFile string

	// KnownHostsFile enables host key verification when set.
	KnownHostsFile string

	// Timeout bounds a single request/response exchange.
	Timeout time.Duration
}

func (c Config) port() int {
	if c.Port == 0 {
		return DefaultPort
	}
	return c.Port
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
