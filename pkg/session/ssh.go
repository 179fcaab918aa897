package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/newtron-network/vydriver/pkg/util"
)

var (
	anyPrompt  = regexp.MustCompile(`[$#>]\s*$`)
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
)

const (
	cannotExit = "Cannot exit: configuration modified"

	// The PTY is wide enough that the shell never wraps a command echo.
	termWidth  = 512
	termHeight = 200
)

var pagingOff = []string{
	"set terminal length 0",
	"set terminal width " + strconv.Itoa(termWidth),
}

// SSH is a Session over an interactive SSH shell. File transfer uses the SFTP
// subsystem of the same connection.
type SSH struct {
	device string
	cfg    Config

	// prompt matches the last line of a shell prompt for the login user.
	prompt *regexp.Regexp

	mu         sync.Mutex
	client     *ssh.Client
	shell      *ssh.Session
	stdin      io.WriteCloser
	chunks     chan []byte
	done       chan struct{}
	configMode bool
}

// NewSSH creates an unopened session to the named device.
func NewSSH(device string, cfg Config) *SSH {
	return &SSH{device: device, cfg: cfg, prompt: promptFor(cfg.Username)}
}

// promptFor returns the prompt pattern of user's shell: "user@host:~$ " in
// operational mode and "user@host# " in configuration mode. The host part is
// not pinned since committing a new host-name changes it mid-session. Without
// a user any line ending in $, # or > is taken as a prompt.
func promptFor(user string) *regexp.Regexp {
	if user == "" {
		return anyPrompt
	}
	return regexp.MustCompile(`^` + regexp.QuoteMeta(user) + `@[\w.-]+(:\S*)?[$#>]\s*$`)
}

func (s *SSH) clientConfig() (*ssh.ClientConfig, error) {
	var auth []ssh.AuthMethod
	if s.cfg.KeyFile != "" {
		key, err := os.ReadFile(s.cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parsing key file %s: %w", s.cfg.KeyFile, err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if s.cfg.Password != "" {
		auth = append(auth, ssh.Password(s.cfg.Password))
	}
	if len(auth) == 0 {
		return nil, errors.New("no password or key file configured")
	}

	hostKey := ssh.InsecureIgnoreHostKey()
	if s.cfg.KnownHostsFile != "" {
		cb, err := knownhosts.New(s.cfg.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("loading known hosts: %w", err)
		}
		hostKey = cb
	}

	return &ssh.ClientConfig{
		User:            s.cfg.Username,
		Auth:            auth,
		HostKeyCallback: hostKey,
		Timeout:         s.cfg.timeout(),
	}, nil
}

// Open dials the device, starts a shell on a PTY and disables paging.
func (s *SSH) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}

	config, err := s.clientConfig()
	if err != nil {
		return util.NewConnectionError(s.device, "open", err)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.port()))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return util.NewConnectionError(s.device, "open", err)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return util.NewConnectionError(s.device, "open", fmt.Errorf("SSH handshake %s: %w", addr, err))
	}
	s.client = ssh.NewClient(c, chans, reqs)

	fail := func(err error) error {
		s.teardown()
		return util.NewConnectionError(s.device, "open", err)
	}

	if s.shell, err = s.client.NewSession(); err != nil {
		return fail(fmt.Errorf("SSH session: %w", err))
	}
	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 38400,
		ssh.TTY_OP_OSPEED: 38400,
	}
	if err := s.shell.RequestPty("vt100", termHeight, termWidth, modes); err != nil {
		return fail(fmt.Errorf("requesting PTY: %w", err))
	}
	if s.stdin, err = s.shell.StdinPipe(); err != nil {
		return fail(err)
	}
	stdout, err := s.shell.StdoutPipe()
	if err != nil {
		return fail(err)
	}
	if err := s.shell.Shell(); err != nil {
		return fail(fmt.Errorf("starting shell: %w", err))
	}

	s.chunks = make(chan []byte, 64)
	s.done = make(chan struct{})
	go pump(stdout, s.chunks, s.done)

	if _, err := s.readUntilPrompt(ctx); err != nil {
		return fail(fmt.Errorf("waiting for login prompt: %w", err))
	}
	for _, cmd := range pagingOff {
		if _, err := s.exchange(ctx, cmd); err != nil {
			return fail(err)
		}
	}

	util.WithDevice(s.device).Infof("Connected to %s", addr)
	return nil
}

// pump copies shell output into out until the stream ends or done is closed.
func pump(r io.Reader, out chan<- []byte, done <-chan struct{}) {
	defer close(out)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case out <- chunk:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Close ends the shell and the connection.
func (s *SSH) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teardown()
}

func (s *SSH) teardown() error {
	if s.client == nil {
		return nil
	}
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.shell != nil {
		s.shell.Close()
	}
	err := s.client.Close()
	s.client, s.shell, s.stdin = nil, nil, nil
	s.configMode = false
	if err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// IsAlive sends a keepalive request over the connection.
func (s *SSH) IsAlive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return false
	}
	_, _, err := s.client.SendRequest("keepalive@openssh.com", true, nil)
	return err == nil
}

func (s *SSH) SendCommand(ctx context.Context, cmd string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.exchange(ctx, cmd)
	if err != nil {
		return "", err
	}
	return stripEchoAndPrompt(out), nil
}

func (s *SSH) SendConfigSet(ctx context.Context, lines []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.configMode {
		if err := s.enterConfigMode(ctx); err != nil {
			return "", err
		}
	}
	var b strings.Builder
	for _, line := range lines {
		out, err := s.exchange(ctx, line)
		b.WriteString(out)
		if err != nil {
			return b.String(), err
		}
	}
	return b.String(), nil
}

func (s *SSH) EnterConfigMode(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.configMode {
		return nil
	}
	return s.enterConfigMode(ctx)
}

func (s *SSH) enterConfigMode(ctx context.Context) error {
	out, err := s.exchange(ctx, "configure")
	if err != nil {
		return err
	}
	if !strings.HasSuffix(strings.TrimSpace(lastLine(out)), "#") {
		return util.NewConnectionError(s.device, "configure", fmt.Errorf("unexpected prompt %q", lastLine(out)))
	}
	s.configMode = true
	return nil
}

func (s *SSH) ExitConfigMode(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configMode {
		return nil
	}

	out, err := s.exchange(ctx, "exit")
	if err != nil {
		return err
	}
	if strings.Contains(out, cannotExit) {
		util.WithDevice(s.device).Debug("Discarding uncommitted changes on exit")
		if _, err := s.exchange(ctx, "exit discard"); err != nil {
			return err
		}
	}
	s.configMode = false
	return nil
}

// TransferFile uploads localPath over SFTP.
func (s *SSH) TransferFile(ctx context.Context, localPath, remotePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return util.NewConnectionError(s.device, "transfer", errors.New("session not open"))
	}
	if err := ctx.Err(); err != nil {
		return util.NewConnectionError(s.device, "transfer", err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer src.Close()

	client, err := sftp.NewClient(s.client)
	if err != nil {
		return util.NewConnectionError(s.device, "transfer", fmt.Errorf("starting SFTP: %w", err))
	}
	defer client.Close()

	dst, err := client.Create(remotePath)
	if err != nil {
		return util.NewConnectionError(s.device, "transfer", fmt.Errorf("creating %s: %w", remotePath, err))
	}
	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return util.NewConnectionError(s.device, "transfer", fmt.Errorf("writing %s: %w", remotePath, err))
	}

	util.WithDevice(s.device).Debugf("Transferred %s to %s (%d bytes)", localPath, remotePath, n)
	return nil
}

// exchange sends one line and returns everything up to and including the next
// prompt, normalized.
func (s *SSH) exchange(ctx context.Context, line string) (string, error) {
	if s.client == nil {
		return "", util.NewConnectionError(s.device, line, errors.New("session not open"))
	}
	util.WithDevice(s.device).Debugf("send %q", line)

	if _, err := io.WriteString(s.stdin, line+"\n"); err != nil {
		return "", util.NewConnectionError(s.device, line, err)
	}
	out, err := s.readUntilPrompt(ctx)
	if err != nil {
		return out, util.NewConnectionError(s.device, line, err)
	}
	return out, nil
}

func (s *SSH) readUntilPrompt(ctx context.Context) (string, error) {
	timeout := s.cfg.timeout()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var buf strings.Builder
	for {
		select {
		case <-ctx.Done():
			return normalize(buf.String()), ctx.Err()
		case <-timer.C:
			return normalize(buf.String()), fmt.Errorf("no prompt within %s", timeout)
		case chunk, ok := <-s.chunks:
			if !ok {
				return normalize(buf.String()), io.EOF
			}
			buf.Write(chunk)
			if atPrompt(buf.String(), s.prompt) {
				return normalize(buf.String()), nil
			}
		}
	}
}

// atPrompt reports whether text ends with a shell prompt: a last line, not yet
// terminated by a newline, matching prompt. A chunk boundary inside an output
// line such as "eth0: <BROADCAST,UP>" does not match.
func atPrompt(text string, prompt *regexp.Regexp) bool {
	i := strings.LastIndexByte(text, '\n')
	if i < 0 {
		return false
	}
	last := ansiEscape.ReplaceAllString(text[i+1:], "")
	return strings.TrimSpace(last) != "" && prompt.MatchString(last)
}

// normalize removes terminal escapes, carriage returns and the "[edit]" banner
// VyOS prints above every configuration-mode prompt.
func normalize(text string) string {
	text = ansiEscape.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r", "")
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) == "[edit]" {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

func stripEchoAndPrompt(out string) string {
	lines := strings.Split(out, "\n")
	if len(lines) <= 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

func lastLine(out string) string {
	return out[strings.LastIndexByte(out, '\n')+1:]
}
