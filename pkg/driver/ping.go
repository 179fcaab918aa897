package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/parse"
	"github.com/newtron-network/vydriver/pkg/util"
)

// Ping defaults applied to zero PingOptions fields.
const (
	DefaultPingTTL     = 255
	DefaultPingTimeout = 2
	DefaultPingSize    = 100
	DefaultPingCount   = 5
)

// PingOptions parameterize Ping. Timeout is per probe, in seconds.
type PingOptions struct {
	Destination string
	Source      string
	TTL         int
	Timeout     int
	Size        int
	Count       int
	VRF         string
}

func (o PingOptions) withDefaults() PingOptions {
	if o.TTL == 0 {
		o.TTL = DefaultPingTTL
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultPingTimeout
	}
	if o.Size == 0 {
		o.Size = DefaultPingSize
	}
	if o.Count == 0 {
		o.Count = DefaultPingCount
	}
	return o
}

// command renders the device ping command. The whole burst is bounded by a
// deadline of Timeout*Count seconds.
func (o PingOptions) command() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ping %s ttl %d deadline %d size %d count %d",
		o.Destination, o.TTL, o.Timeout*o.Count, o.Size, o.Count)
	if o.Source != "" {
		fmt.Fprintf(&b, " interface %s", o.Source)
	}
	return b.String()
}

// Ping sends probes from the device. An unknown destination yields a result
// with Error set rather than an error.
func (d *Driver) Ping(ctx context.Context, opts PingOptions) (model.PingResult, error) {
	if opts.VRF != "" {
		return model.PingResult{}, util.NewNotSupportedError("ping in a VRF")
	}
	if strings.TrimSpace(opts.Destination) == "" || strings.ContainsAny(opts.Destination, " \t;|&") {
		return model.PingResult{}, util.NewInvalidInputError("ping", fmt.Sprintf("invalid destination %q", opts.Destination))
	}
	if opts.TTL < 0 || opts.Timeout < 0 || opts.Size < 0 || opts.Count < 0 {
		return model.PingResult{}, util.NewInvalidInputError("ping", "ttl, timeout, size and count must not be negative")
	}
	opts = opts.withDefaults()

	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.show(ctx, opts.command())
	if err != nil {
		return model.PingResult{}, err
	}
	return parse.Ping(out, opts.Destination)
}
