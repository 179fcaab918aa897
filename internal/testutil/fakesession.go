package testutil

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/newtron-network/vydriver/pkg/session"
	"github.com/newtron-network/vydriver/pkg/util"
)

// ConfigPrompt is the prompt FakeSession prints after every configuration line.
const ConfigPrompt = "vyos@test# "

// FakeSession is a scripted session.Session. Operational commands answer from
// Outputs and configuration lines from ConfigOutputs; unknown commands answer
// with empty output. Errors injects a failure for a command, a configuration
// line, "open" or "transfer".
type FakeSession struct {
	mu sync.Mutex

	Outputs       map[string]string
	ConfigOutputs map[string]string
	Errors        map[string]error

	// Sent records every command and configuration line in order, including
	// "configure", "exit" and "exit discard".
	Sent []string

	// Files holds the content of every transferred file by remote path.
	Files map[string]string

	ConfigMode  bool
	Uncommitted bool
	Connected   bool
	Closes      int
}

var _ session.Session = (*FakeSession)(nil)

// NewFakeSession returns an open FakeSession answering with outputs.
func NewFakeSession(outputs map[string]string) *FakeSession {
	if outputs == nil {
		outputs = map[string]string{}
	}
	return &FakeSession{
		Outputs:       outputs,
		ConfigOutputs: map[string]string{},
		Errors:        map[string]error{},
		Files:         map[string]string{},
		Connected:     true,
	}
}

// SentCommands returns a copy of everything sent so far.
func (f *FakeSession) SentCommands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Sent))
	copy(out, f.Sent)
	return out
}

// Reset forgets the sent history.
func (f *FakeSession) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = nil
}

func (f *FakeSession) injected(key string) error {
	if err, ok := f.Errors[key]; ok {
		return util.NewConnectionError("fake", key, err)
	}
	return nil
}

func (f *FakeSession) Open(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.injected("open"); err != nil {
		return err
	}
	f.Connected = true
	return nil
}

func (f *FakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Connected = false
	f.ConfigMode = false
	f.Closes++
	return nil
}

func (f *FakeSession) IsAlive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Connected
}

func (f *FakeSession) SendCommand(ctx context.Context, cmd string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(ctx, cmd); err != nil {
		return "", err
	}
	f.Sent = append(f.Sent, cmd)
	if err := f.injected(cmd); err != nil {
		return "", err
	}
	return f.Outputs[cmd], nil
}

// SendConfigSet returns a transcript shaped like the SSH session's: each line is
// echoed, followed by its output and the configuration prompt.
func (f *FakeSession) SendConfigSet(ctx context.Context, lines []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(ctx, "configure"); err != nil {
		return "", err
	}
	if !f.ConfigMode {
		f.Sent = append(f.Sent, "configure")
		f.ConfigMode = true
	}

	var b strings.Builder
	for _, line := range lines {
		f.Sent = append(f.Sent, line)
		if err := f.injected(line); err != nil {
			return b.String(), err
		}
		switch {
		case line == "commit":
			f.Uncommitted = false
		case line == "compare", line == "save", line == "show":
		default:
			f.Uncommitted = true
		}
		b.WriteString(line + "\n")
		if out := f.ConfigOutputs[line]; out != "" {
			b.WriteString(strings.TrimSuffix(out, "\n") + "\n")
		}
		b.WriteString(ConfigPrompt)
	}
	return b.String(), nil
}

func (f *FakeSession) EnterConfigMode(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(ctx, "configure"); err != nil {
		return err
	}
	if !f.ConfigMode {
		f.Sent = append(f.Sent, "configure")
		f.ConfigMode = true
	}
	return nil
}

func (f *FakeSession) ExitConfigMode(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(ctx, "exit"); err != nil {
		return err
	}
	if !f.ConfigMode {
		return nil
	}
	f.Sent = append(f.Sent, "exit")
	if f.Uncommitted {
		f.Sent = append(f.Sent, "exit discard")
		f.Uncommitted = false
	}
	f.ConfigMode = false
	return nil
}

func (f *FakeSession) TransferFile(ctx context.Context, localPath, remotePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(ctx, "transfer"); err != nil {
		return err
	}
	if err := f.injected("transfer"); err != nil {
		return err
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	f.Files[remotePath] = string(data)
	return nil
}

func (f *FakeSession) ready(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return util.NewConnectionError("fake", op, err)
	}
	if !f.Connected {
		return util.NewConnectionError("fake", op, errors.New("session not open"))
	}
	return nil
}
