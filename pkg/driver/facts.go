package driver

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/parse"
	"github.com/newtron-network/vydriver/pkg/util"
	"github.com/newtron-network/vydriver/pkg/vyconf"
)

// Commands read by the getters.
const (
	cmdInterfaces       = "show interfaces"
	cmdInterfacesDetail = "show interfaces detail"
	cmdConfiguration    = "show configuration"
	cmdConfigCommands   = "show configuration commands"
	cmdVersion          = "show version"
	cmdARP              = "show arp"
	cmdBGPSummary       = "show ip bgp summary"
	cmdBGPNeighbor      = "show ip bgp neighbor "
	cmdLLDP             = "show lldp neighbors detail"
	cmdNTP              = "ntpq -np"
	cmdVMStat           = "vmstat"
	cmdFree             = "free"
	cmdUptime           = "cat /proc/uptime | awk '{print $1}'"
)

// configTree reads and parses the running configuration.
func (d *Driver) configTree(ctx context.Context) (*vyconf.Node, error) {
	out, err := d.show(ctx, cmdConfiguration)
	if err != nil {
		return nil, err
	}
	tree, err := vyconf.Parse(out)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", cmdConfiguration, err)
	}
	return tree, nil
}

// GetEnvironment reports CPU and memory. The platform exposes no fan,
// temperature or power sensors; those families carry placeholder records.
func (d *Driver) GetEnvironment(ctx context.Context) (model.Environment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	env := model.NewEnvironment()

	out, err := d.sess.SendCommand(ctx, cmdVMStat)
	if err != nil {
		return env, err
	}
	usage, err := parse.CPUUsage(out)
	if err != nil {
		return env, err
	}
	env.CPU["0"] = model.CPU{Usage: usage}

	out, err = d.sess.SendCommand(ctx, cmdFree)
	if err != nil {
		return env, err
	}
	if env.Memory, err = parse.Memory(out); err != nil {
		return env, err
	}
	return env, nil
}

// GetInterfaces joins the link/status table with the interface configuration.
// Every configured interface must appear in the status table.
func (d *Driver) GetInterfaces(ctx context.Context) (map[string]model.Interface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.show(ctx, cmdInterfaces)
	if err != nil {
		return nil, err
	}
	rows, err := parse.InterfaceTable(out)
	if err != nil {
		return nil, err
	}
	status := make(map[string]parse.InterfaceRow, len(rows))
	for _, r := range rows {
		status[r.Name] = r
	}

	tree, err := d.configTree(ctx)
	if err != nil {
		return nil, err
	}

	ifaces := make(map[string]model.Interface)
	types, _ := tree.Get("interfaces")
	for _, typ := range types.Keys() {
		byName, _ := types.Get(typ)
		for _, name := range byName.Keys() {
			row, ok := status[name]
			if !ok {
				return nil, util.NewLookupError(cmdInterfaces, name)
			}
			conf, _ := byName.Get(name)
			ifaces[name] = model.Interface{
				IsUp:        row.IsUp(),
				IsEnabled:   row.IsEnabled(),
				Description: conf.ValueOr("", "description"),
				LastFlapped: -1,
				MTU:         intValue(d.name, name, "mtu", conf.ValueOr("", "mtu"), -1),
				Speed:       speed(d.name, name, conf.ValueOr("", "speed")),
				MACAddress:  conf.ValueOr(model.UnknownMAC, "hw-id"),
			}
		}
	}
	return ifaces, nil
}

// speed converts the configured speed; "auto" and an absent value are 0.
func speed(device, iface, v string) int {
	if v == "auto" {
		return 0
	}
	return intValue(device, iface, "speed", v, 0)
}

func intValue(device, iface, field, v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		util.WithDevice(device).Warnf("%s: unparseable %s %q", iface, field, v)
		return def
	}
	return n
}

// GetInterfacesIP returns the addresses of every interface that has one,
// grouped by family.
func (d *Driver) GetInterfacesIP(ctx context.Context) (map[string]model.InterfaceIP, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.show(ctx, cmdInterfaces)
	if err != nil {
		return nil, err
	}
	rows, err := parse.InterfaceTable(out)
	if err != nil {
		return nil, err
	}
	return parse.InterfacesIP(rows)
}

// GetInterfacesCounters returns per-interface traffic counters.
func (d *Driver) GetInterfacesCounters(ctx context.Context) (map[string]model.InterfaceCounters, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.show(ctx, cmdInterfacesDetail)
	if err != nil {
		return nil, err
	}
	return parse.InterfaceCounters(out), nil
}

// GetARPTable returns the ARP cache. Only the default VRF is supported.
func (d *Driver) GetARPTable(ctx context.Context, vrf string) ([]model.ARPEntry, error) {
	if vrf != "" {
		return nil, util.NewNotSupportedError("ARP table for a VRF")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.show(ctx, cmdARP)
	if err != nil {
		return nil, err
	}
	return parse.ARPTable(out)
}

// GetNTPPeers returns the NTP associations keyed by address.
func (d *Driver) GetNTPPeers(ctx context.Context) (map[string]model.NTPPeer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.sess.SendCommand(ctx, cmdNTP)
	if err != nil {
		return nil, err
	}
	return parse.NTPPeers(out)
}

// GetNTPServers returns the same associations as GetNTPPeers.
func (d *Driver) GetNTPServers(ctx context.Context) (map[string]model.NTPServer, error) {
	peers, err := d.GetNTPPeers(ctx)
	if err != nil {
		return nil, err
	}
	servers := make(map[string]model.NTPServer, len(peers))
	for addr := range peers {
		servers[addr] = model.NTPServer{}
	}
	return servers, nil
}

// GetNTPStats returns one record per NTP association.
func (d *Driver) GetNTPStats(ctx context.Context) ([]model.NTPStats, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.sess.SendCommand(ctx, cmdNTP)
	if err != nil {
		return nil, err
	}
	return parse.NTPStats(out)
}

// GetBGPNeighbors returns the BGP summary under the global routing table.
func (d *Driver) GetBGPNeighbors(ctx context.Context) (model.BGPNeighbors, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	table, err := d.bgpSummary(ctx)
	if err != nil {
		return nil, err
	}
	return model.BGPNeighbors{model.GlobalTable: table}, nil
}

func (d *Driver) bgpSummary(ctx context.Context) (model.BGPTable, error) {
	out, err := d.show(ctx, cmdBGPSummary)
	if err != nil {
		return model.BGPTable{}, err
	}
	return parse.BGPSummary(out)
}

// GetBGPNeighborsDetail returns per-neighbor session details grouped by remote
// AS. With an empty neighbor every peer of the summary is read.
func (d *Driver) GetBGPNeighborsDetail(ctx context.Context, neighbor string) (model.BGPNeighborsDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	addrs := []string{neighbor}
	if neighbor == "" {
		table, err := d.bgpSummary(ctx)
		if err != nil {
			return nil, err
		}
		addrs = addrs[:0]
		for addr := range table.Peers {
			addrs = append(addrs, addr)
		}
		sort.Strings(addrs)
	}

	byAS := make(map[int64][]model.BGPPeerDetail)
	for _, addr := range addrs {
		out, err := d.show(ctx, cmdBGPNeighbor+addr)
		if err != nil {
			return nil, err
		}
		peers, err := parse.BGPDetail(out)
		if err != nil {
			return nil, err
		}
		for _, p := range peers {
			byAS[p.RemoteAS] = append(byAS[p.RemoteAS], p)
		}
	}
	return model.BGPNeighborsDetail{model.GlobalTable: byAS}, nil
}

// GetLLDPNeighbors returns the neighbor seen on each local interface.
func (d *Driver) GetLLDPNeighbors(ctx context.Context) (map[string][]model.LLDPNeighbor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.show(ctx, cmdLLDP)
	if err != nil {
		return nil, err
	}
	return parse.LLDPNeighbors(out), nil
}

// GetSNMPInformation reads the "service snmp" configuration. Without one the
// record is empty.
func (d *Driver) GetSNMPInformation(ctx context.Context) (model.SNMPInformation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	info := model.SNMPInformation{Community: map[string]model.SNMPCommunity{}}
	tree, err := d.configTree(ctx)
	if err != nil {
		return info, err
	}
	snmp, ok := tree.Get("service", "snmp")
	if !ok {
		return info, nil
	}

	communities, _ := snmp.Get("community")
	for _, name := range communities.Keys() {
		info.Community[name] = model.SNMPCommunity{
			Mode: communities.ValueOr("", name, "authorization"),
		}
	}
	info.Contact = snmp.ValueOr("", "contact")
	info.Location = snmp.ValueOr("", "location")
	return info, nil
}

// GetFacts describes the device: release, hardware, uptime, names and the
// configured interfaces.
func (d *Driver) GetFacts(ctx context.Context) (model.Facts, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	facts := model.Facts{Vendor: model.Vendor, InterfaceList: []string{}}

	out, err := d.sess.SendCommand(ctx, cmdUptime)
	if err != nil {
		return facts, err
	}
	if facts.Uptime, err = parse.Uptime(out); err != nil {
		return facts, err
	}

	out, err = d.show(ctx, cmdVersion)
	if err != nil {
		return facts, err
	}
	ver, err := parse.Version(out)
	if err != nil {
		return facts, err
	}
	facts.OSVersion, facts.SerialNumber, facts.Model = ver.Version, ver.SerialNumber, ver.Model

	tree, err := d.configTree(ctx)
	if err != nil {
		return facts, err
	}
	facts.Hostname = tree.ValueOr("", "system", "host-name")
	facts.FQDN = tree.ValueOr("", "system", "domain-name")

	types, _ := tree.Get("interfaces")
	for _, typ := range types.Keys() {
		byName, _ := types.Get(typ)
		facts.InterfaceList = append(facts.InterfaceList, byName.Keys()...)
	}
	return facts, nil
}

// GetUsers returns the local login accounts.
func (d *Driver) GetUsers(ctx context.Context) (map[string]model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out, err := d.show(ctx, cmdConfigCommands)
	if err != nil {
		return nil, err
	}
	return parse.Users(out), nil
}
