package driver

import (
	"context"

	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/util"
)

// Configuration stores accepted by GetConfig.
const (
	RetrieveAll       = "all"
	RetrieveRunning   = "running"
	RetrieveCandidate = "candidate"
	RetrieveStartup   = "startup"
)

// GetConfig returns the requested configuration stores; the others are "".
// A sanitized running configuration comes from "show configuration", which masks
// secrets. The unsanitized one is read with "show" in configuration mode.
func (d *Driver) GetConfig(ctx context.Context, retrieve string, sanitized bool) (model.ConfigViews, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var views model.ConfigViews
	switch retrieve {
	case RetrieveAll, RetrieveRunning, RetrieveCandidate, RetrieveStartup:
	default:
		return views, util.NewInvalidInputError("get_config",
			"retrieve must be one of running, candidate, startup or all, got "+retrieve)
	}
	all := retrieve == RetrieveAll

	if all || retrieve == RetrieveRunning {
		running, err := d.runningConfig(ctx, sanitized)
		if err != nil {
			return views, err
		}
		views.Running = running
	}
	if all || retrieve == RetrieveStartup {
		startup, err := d.sess.SendCommand(ctx, "cat "+StartupPath)
		if err != nil {
			return views, err
		}
		views.Startup = startup
	}
	if all || retrieve == RetrieveCandidate {
		views.Candidate = d.candidate
	}
	return views, nil
}

// runningConfig enters and leaves configuration mode only when the driver is
// not already editing, so a pending candidate survives the read.
func (d *Driver) runningConfig(ctx context.Context, sanitized bool) (string, error) {
	if sanitized {
		return d.show(ctx, "show configuration")
	}
	if d.state == StateConfigEdit {
		return d.sess.SendCommand(ctx, "show")
	}

	if err := d.sess.EnterConfigMode(ctx); err != nil {
		return "", err
	}
	out, err := d.sess.SendCommand(ctx, "show")
	if exitErr := d.sess.ExitConfigMode(ctx); err == nil {
		err = exitErr
	}
	if err != nil {
		return "", err
	}
	return out, nil
}
