package driver

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newtron-network/vydriver/pkg/audit"
	"github.com/newtron-network/vydriver/pkg/util"
)

// Device messages the lifecycle checks for.
const (
	msgLoadComplete   = "Load complete."
	msgNoChanges      = "No configuration changes to commit"
	msgLoadParseError = "Failed to parse specified config file"
	msgSetFailed      = "Set failed"
	msgDeleteFailed   = "Delete failed"
	msgNoDiff         = "No changes between working and active configurations"
)

// commitFailures are the markers of a rejected commit.
var commitFailures = []string{
	"Commit failed",
	"Failed to generate committed config",
}

// Source is configuration to load: a local file or inline text. Exactly one
// must be set.
type Source struct {
	Filename string
	Config   string
}

func (s Source) validate(op string) error {
	switch {
	case s.Filename == "" && s.Config == "":
		return util.NewInvalidInputError(op, "a filename or configuration text must be provided")
	case s.Filename != "" && s.Config != "":
		return util.NewInvalidInputError(op, "filename and configuration text are mutually exclusive")
	}
	return nil
}

func (s Source) String() string {
	if s.Filename != "" {
		return s.Filename
	}
	return "inline"
}

// text returns the configuration, reading the file when one was given.
func (s Source) text() (string, error) {
	if s.Filename == "" {
		return s.Config, nil
	}
	data, err := os.ReadFile(s.Filename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// isSetSnippet reports whether text is "set"/"delete" statements rather than a
// full curly-brace configuration.
func isSetSnippet(text string) bool {
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		return strings.HasPrefix(l, "set ") || strings.HasPrefix(l, "delete ")
	}
	return false
}

// LoadReplace stages a full configuration file on the device and loads it in
// place of the working configuration. The startup configuration is backed up
// first. The change is pending until Commit.
func (d *Driver) LoadReplace(ctx context.Context, src Source) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	defer func() {
		d.record(audit.NewEvent(d.user, d.name, audit.OpLoadReplace).WithSource(src.String()), start, err)
	}()

	if err := src.validate("load_replace"); err != nil {
		return err
	}
	if src.Filename == "" && isSetSnippet(src.Config) {
		return util.NewInvalidInputError("load_replace", "inline configuration must be a full configuration, not set/delete statements")
	}

	text, err := src.text()
	if err != nil {
		return util.NewReplaceConfigError(fmt.Sprintf("config file %s is not readable: %v", src.Filename, err), "")
	}

	local := src.Filename
	if local == "" {
		f, err := os.CreateTemp("", "vydriver-*.conf")
		if err != nil {
			return fmt.Errorf("staging inline configuration: %w", err)
		}
		local = f.Name()
		defer os.Remove(local)
		_, werr := f.WriteString(text)
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return fmt.Errorf("staging inline configuration: %w", werr)
		}
	}

	log := util.WithOperation(d.name, "load_replace")
	log.Infof("Transferring %s to %s", src, StagingPath)
	if err := d.sess.TransferFile(ctx, local, StagingPath); err != nil {
		return err
	}
	if err := d.backupStartup(ctx, util.NewReplaceConfigError); err != nil {
		return err
	}

	out, err := d.sess.SendConfigSet(ctx, []string{"load " + StagingPath})
	if err != nil {
		return err
	}
	d.state = StateConfigEdit

	if strings.Contains(out, msgLoadParseError) ||
		(!strings.Contains(out, msgLoadComplete) && !strings.Contains(out, msgNoChanges)) {
		return util.NewReplaceConfigError("device rejected "+StagingPath, out)
	}

	d.candidate = text
	log.Info("Candidate loaded")
	return nil
}

// LoadMerge sends set/delete statements to the working configuration, one line
// at a time. The startup configuration is backed up first. The change is
// pending until Commit.
func (d *Driver) LoadMerge(ctx context.Context, src Source) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	defer func() {
		d.record(audit.NewEvent(d.user, d.name, audit.OpLoadMerge).WithSource(src.String()), start, err)
	}()

	if err := src.validate("load_merge"); err != nil {
		return err
	}
	text, err := src.text()
	if err != nil {
		return util.NewMergeConfigError(fmt.Sprintf("config file %s is not readable: %v", src.Filename, err), "")
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimRight(l, "\r"); l != "" {
			lines = append(lines, l)
		}
	}

	log := util.WithOperation(d.name, "load_merge")
	if err := d.backupStartup(ctx, util.NewMergeConfigError); err != nil {
		return err
	}

	log.Infof("Merging %d lines from %s", len(lines), src)
	out, err := d.sess.SendConfigSet(ctx, lines)
	if err != nil {
		return err
	}
	d.state = StateConfigEdit

	if strings.Contains(out, msgSetFailed) || strings.Contains(out, msgDeleteFailed) {
		return util.NewMergeConfigError("device rejected merge", out)
	}

	d.candidate = text
	log.Info("Candidate merged")
	return nil
}

// backupStartup copies the startup configuration to the backup slot and marks
// the slot filled. A copy that prints anything has failed. The load must not
// go ahead, so the cp output is returned through failed and the slot is
// emptied.
func (d *Driver) backupStartup(ctx context.Context, failed func(message, output string) *util.ConfigError) error {
	out, err := d.sess.SendCommand(ctx, fmt.Sprintf("cp %s %s", StartupPath, BackupPath))
	if err != nil {
		return err
	}
	if out = strings.TrimSpace(out); out != "" {
		util.WithDevice(d.name).Warnf("Backup of %s failed: %s", StartupPath, out)
		d.backup = nil
		d.backupFailed = true
		return failed("backup of "+StartupPath+" failed, nothing loaded", out)
	}
	d.backup = &BackupMarker{Path: BackupPath, CreatedAt: time.Now()}
	d.backupFailed = false
	return nil
}

// Compare returns the pending changes as printed by the device, or "" when the
// working configuration matches the running one.
func (d *Driver) Compare(ctx context.Context) (diff string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	defer func() {
		d.record(audit.NewEvent(d.user, d.name, audit.OpCompare).WithDiff(diff), start, err)
	}()

	out, err := d.sess.SendConfigSet(ctx, []string{"compare"})
	if err != nil {
		return "", err
	}
	d.state = StateConfigEdit

	if strings.Contains(out, msgNoDiff) {
		return "", nil
	}
	return innerLines(out), nil
}

// Commit applies the pending changes, saves them to the startup configuration
// and leaves configuration mode. Commit messages are not supported by the device.
func (d *Driver) Commit(ctx context.Context, message string) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	defer func() { d.record(audit.NewEvent(d.user, d.name, audit.OpCommit), start, err) }()

	if message != "" {
		return util.NewNotSupportedError("commit message")
	}

	log := util.WithOperation(d.name, "commit")
	out, err := d.sess.SendConfigSet(ctx, []string{"commit"})
	if err != nil {
		return util.NewCommitError("commit failed", out, err)
	}
	d.state = StateConfigEdit
	if commitRejected(out) {
		return util.NewCommitError("device rejected commit", out, nil)
	}

	if _, err := d.sess.SendConfigSet(ctx, []string{"save"}); err != nil {
		return err
	}
	if err := d.sess.ExitConfigMode(ctx); err != nil {
		return err
	}
	d.state = StateOperational
	log.Info("Committed and saved")
	return nil
}

func commitRejected(out string) bool {
	for _, m := range commitFailures {
		if strings.Contains(out, m) {
			return true
		}
	}
	return false
}

// Discard leaves configuration mode, dropping uncommitted edits. The candidate
// text is kept.
func (d *Driver) Discard(ctx context.Context) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	defer func() { d.record(audit.NewEvent(d.user, d.name, audit.OpDiscard), start, err) }()

	if err := d.sess.ExitConfigMode(ctx); err != nil {
		return err
	}
	d.state = StateOperational
	util.WithOperation(d.name, "discard").Info("Uncommitted changes discarded")
	return nil
}

// Rollback loads the backup of the startup configuration taken by the last
// load, commits and saves it. Without a backup from this session, the backup
// file must exist on the device.
func (d *Driver) Rollback(ctx context.Context) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	defer func() { d.record(audit.NewEvent(d.user, d.name, audit.OpRollback), start, err) }()

	log := util.WithOperation(d.name, "rollback")
	path := BackupPath
	switch {
	case d.backup != nil:
		path = d.backup.Path
	case d.backupFailed:
		return util.NewReplaceConfigError("the last backup of "+StartupPath+" failed, refusing to roll back to "+BackupPath, "")
	default:
		ok, err := d.fileExists(ctx, BackupPath)
		if err != nil {
			return err
		}
		if !ok {
			return util.NewReplaceConfigError("no backup configuration to roll back to", "")
		}
		log.Infof("No backup taken in this session, using existing %s", BackupPath)
	}

	out, err := d.sess.SendConfigSet(ctx, []string{"load " + path})
	if err != nil {
		return err
	}
	d.state = StateConfigEdit
	if !strings.Contains(out, msgLoadComplete) {
		return util.NewReplaceConfigError("failed to load "+path, out)
	}

	out, err = d.sess.SendConfigSet(ctx, []string{"commit", "save"})
	if err != nil {
		return util.NewCommitError("rollback commit failed", out, err)
	}
	if commitRejected(out) {
		return util.NewCommitError("device rejected rollback commit", out, nil)
	}
	if err := d.sess.ExitConfigMode(ctx); err != nil {
		return err
	}
	d.state = StateOperational
	d.backup = nil
	log.Infof("Rolled back to %s", path)
	return nil
}

func (d *Driver) fileExists(ctx context.Context, path string) (bool, error) {
	out, err := d.sess.SendCommand(ctx, fmt.Sprintf("test -f %s && echo present", path))
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "present", nil
}
