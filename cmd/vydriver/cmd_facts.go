package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newtron-network/vydriver/pkg/cli"
	"github.com/newtron-network/vydriver/pkg/driver"
	"github.com/newtron-network/vydriver/pkg/model"
)

// runGetter opens the device, runs one getter and emits its record. get takes
// the driver first so method expressions such as (*driver.Driver).GetFacts fit.
func runGetter[T any](cmd *cobra.Command, getter string, get func(*driver.Driver, context.Context) (T, error), render func(io.Writer, T)) error {
	ctx := cmd.Context()
	return app.withDriver(ctx, func(d *driver.Driver) error {
		rec, err := get(d, ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", getter, err)
		}
		return app.emit(ctx, d.Name(), getter, rec, func(w io.Writer) { render(w, rec) })
	})
}

var (
	bgpDetail   bool
	bgpNeighbor string
	arpVRF      string
	ntpServers  bool
	pingOpts    driver.PingOptions
)

func factCommands() []*cobra.Command {
	return []*cobra.Command{
		factsCmd, interfacesCmd, interfacesIPCmd, countersCmd, arpCmd, ntpCmd,
		bgpCmd, lldpCmd, snmpCmd, usersCmd, environmentCmd, pingCmd,
	}
}

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Show device facts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetter(cmd, "facts", (*driver.Driver).GetFacts, renderFacts)
	},
}

func renderFacts(w io.Writer, f model.Facts) {
	fmt.Fprintf(w, "Hostname:   %s\n", bold(f.Hostname))
	fmt.Fprintf(w, "FQDN:       %s\n", cli.Dash(f.FQDN))
	fmt.Fprintf(w, "Vendor:     %s\n", f.Vendor)
	fmt.Fprintf(w, "OS version: %s\n", f.OSVersion)
	fmt.Fprintf(w, "Model:      %s\n", f.Model)
	fmt.Fprintf(w, "Serial:     %s\n", f.SerialNumber)
	fmt.Fprintf(w, "Uptime:     %ds\n", f.Uptime)
	fmt.Fprintf(w, "Interfaces: %s\n", strings.Join(f.InterfaceList, ", "))
}

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "Show interface state and configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetter(cmd, "interfaces", (*driver.Driver).GetInterfaces, renderInterfaces)
	},
}

func renderInterfaces(w io.Writer, ifaces map[string]model.Interface) {
	t := cli.NewTable(w, "INTERFACE", "ADMIN", "LINK", "MTU", "SPEED", "MAC", "DESCRIPTION")
	for _, name := range slices.Sorted(maps.Keys(ifaces)) {
		i := ifaces[name]
		admin := green("enabled")
		if !i.IsEnabled {
			admin = yellow("disabled")
		}
		speed := "auto"
		if i.Speed > 0 {
			speed = strconv.Itoa(i.Speed)
		}
		t.Row(name, admin, cli.UpDown(i.IsUp), cli.Number(int64(i.MTU)), speed, i.MACAddress, i.Description)
	}
	t.Flush()
}

var interfacesIPCmd = &cobra.Command{
	Use:   "interfaces-ip",
	Short: "Show interface addresses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetter(cmd, "interfaces_ip", (*driver.Driver).GetInterfacesIP, renderInterfacesIP)
	},
}

func renderInterfacesIP(w io.Writer, ips map[string]model.InterfaceIP) {
	t := cli.NewTable(w, "INTERFACE", "FAMILY", "ADDRESS")
	for _, name := range slices.Sorted(maps.Keys(ips)) {
		for _, addr := range slices.Sorted(maps.Keys(ips[name].IPv4)) {
			t.Row(name, "ipv4", fmt.Sprintf("%s/%d", addr, ips[name].IPv4[addr].PrefixLength))
		}
		for _, addr := range slices.Sorted(maps.Keys(ips[name].IPv6)) {
			t.Row(name, "ipv6", fmt.Sprintf("%s/%d", addr, ips[name].IPv6[addr].PrefixLength))
		}
	}
	t.Flush()
}

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Show interface counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetter(cmd, "interfaces_counters", (*driver.Driver).GetInterfacesCounters, renderCounters)
	},
}

func renderCounters(w io.Writer, counters map[string]model.InterfaceCounters) {
	t := cli.NewTable(w, "INTERFACE", "RX OCTETS", "RX PKTS", "RX ERR", "RX DROP", "TX OCTETS", "TX PKTS", "TX ERR", "TX DROP")
	for _, name := range slices.Sorted(maps.Keys(counters)) {
		c := counters[name]
		t.Row(name,
			cli.Number(c.RxOctets), cli.Number(c.RxUnicastPackets), cli.Number(c.RxErrors), cli.Number(c.RxDiscards),
			cli.Number(c.TxOctets), cli.Number(c.TxUnicastPackets), cli.Number(c.TxErrors), cli.Number(c.TxDiscards))
	}
	t.Flush()
}

var arpCmd = &cobra.Command{
	Use:   "arp",
	Short: "Show the ARP table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetter(cmd, "arp_table", func(d *driver.Driver, ctx context.Context) ([]model.ARPEntry, error) {
			return d.GetARPTable(ctx, arpVRF)
		}, renderARP)
	},
}

func renderARP(w io.Writer, entries []model.ARPEntry) {
	t := cli.NewTable(w, "ADDRESS", "MAC", "INTERFACE")
	for _, e := range entries {
		t.Row(e.IP, e.MAC, e.Interface)
	}
	t.Flush()
}

var ntpCmd = &cobra.Command{
	Use:   "ntp",
	Short: "Show NTP associations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ntpServers {
			return runGetter(cmd, "ntp_servers", (*driver.Driver).GetNTPServers, renderNTPServers)
		}
		return runGetter(cmd, "ntp_stats", (*driver.Driver).GetNTPStats, renderNTPStats)
	},
}

func renderNTPServers(w io.Writer, servers map[string]model.NTPServer) {
	for _, addr := range slices.Sorted(maps.Keys(servers)) {
		fmt.Fprintln(w, addr)
	}
}

func renderNTPStats(w io.Writer, stats []model.NTPStats) {
	t := cli.NewTable(w, "REMOTE", "REFID", "SYNC", "ST", "WHEN", "POLL", "REACH", "DELAY", "OFFSET", "JITTER")
	for _, s := range stats {
		sync := ""
		if s.Synchronized {
			sync = green("*")
		}
		t.Row(s.Remote, s.ReferenceID, sync, strconv.Itoa(s.Stratum), cli.Number(s.When),
			strconv.Itoa(s.HostPoll), strconv.Itoa(s.Reachability),
			formatFloat(s.Delay), formatFloat(s.Offset), formatFloat(s.Jitter))
	}
	t.Flush()
}

var bgpCmd = &cobra.Command{
	Use:   "bgp",
	Short: "Show BGP neighbors",
	Long: `Show the BGP summary, or per-neighbor details with --detail.

Examples:
  vydriver -d edge1 bgp
  vydriver -d edge1 bgp --detail
  vydriver -d edge1 bgp --detail --neighbor 192.168.1.1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if bgpDetail {
			return runGetter(cmd, "bgp_neighbors_detail", func(d *driver.Driver, ctx context.Context) (model.BGPNeighborsDetail, error) {
				return d.GetBGPNeighborsDetail(ctx, bgpNeighbor)
			}, renderBGPDetail)
		}
		if bgpNeighbor != "" {
			return fmt.Errorf("--neighbor requires --detail")
		}
		return runGetter(cmd, "bgp_neighbors", (*driver.Driver).GetBGPNeighbors, renderBGP)
	},
}

func renderBGP(w io.Writer, neighbors model.BGPNeighbors) {
	for _, table := range slices.Sorted(maps.Keys(neighbors)) {
		summary := neighbors[table]
		fmt.Fprintf(w, "Table %s, router ID %s\n", bold(table), summary.RouterID)
		t := cli.NewTable(w, "NEIGHBOR", "REMOTE AS", "STATE", "ENABLED", "UPTIME", "RECEIVED").WithPrefix("  ")
		for _, addr := range slices.Sorted(maps.Keys(summary.Peers)) {
			p := summary.Peers[addr]
			t.Row(addr, strconv.FormatInt(p.RemoteAS, 10), cli.UpDown(p.IsUp), cli.YesNo(p.IsEnabled),
				cli.Number(p.Uptime), cli.Number(p.AddressFamily["ipv4"].ReceivedPrefixes))
		}
		t.Flush()
	}
}

func renderBGPDetail(w io.Writer, detail model.BGPNeighborsDetail) {
	for _, table := range slices.Sorted(maps.Keys(detail)) {
		byAS := detail[table]
		for _, as := range slices.Sorted(maps.Keys(byAS)) {
			for _, p := range byAS[as] {
				fmt.Fprintf(w, "%s (AS %d) %s\n", bold(p.RemoteAddress), as, cli.UpDown(p.Up))
				fmt.Fprintf(w, "  State:        %s (previous: %s)\n", p.ConnectionState, cli.Dash(p.PreviousConnectionState))
				fmt.Fprintf(w, "  Description:  %s\n", cli.Dash(p.Description))
				fmt.Fprintf(w, "  Router ID:    %s\n", cli.Dash(p.RemoteRouterID))
				fmt.Fprintf(w, "  Local:        %s port %d (AS %d)\n", cli.Dash(p.LocalAddress), p.LocalPort, p.LocalAS)
				fmt.Fprintf(w, "  Hold/KA:      %s/%s\n", cli.Number(p.Holdtime), cli.Number(p.Keepalive))
				fmt.Fprintf(w, "  Messages:     in %d, out %d, queued %d\n", p.InputMessages, p.OutputMessages, p.MessagesQueuedOut)
				fmt.Fprintf(w, "  Prefixes:     received %d, accepted %s\n", p.ReceivedPrefixCount, cli.Number(p.AcceptedPrefixCount))
				fmt.Fprintf(w, "  Flaps:        %d\n", p.FlapCount)
			}
		}
	}
}

var lldpCmd = &cobra.Command{
	Use:   "lldp",
	Short: "Show LLDP neighbors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetter(cmd, "lldp_neighbors", (*driver.Driver).GetLLDPNeighbors, renderLLDP)
	},
}

func renderLLDP(w io.Writer, neighbors map[string][]model.LLDPNeighbor) {
	t := cli.NewTable(w, "LOCAL", "NEIGHBOR", "PORT")
	for _, local := range slices.Sorted(maps.Keys(neighbors)) {
		for _, n := range neighbors[local] {
			t.Row(local, n.Hostname, n.Port)
		}
	}
	t.Flush()
}

var snmpCmd = &cobra.Command{
	Use:   "snmp",
	Short: "Show SNMP configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetter(cmd, "snmp_information", (*driver.Driver).GetSNMPInformation, renderSNMP)
	},
}

func renderSNMP(w io.Writer, info model.SNMPInformation) {
	fmt.Fprintf(w, "Contact:  %s\n", cli.Dash(info.Contact))
	fmt.Fprintf(w, "Location: %s\n", cli.Dash(info.Location))
	t := cli.NewTable(w, "COMMUNITY", "MODE")
	for _, name := range slices.Sorted(maps.Keys(info.Community)) {
		t.Row(name, info.Community[name].Mode)
	}
	t.Flush()
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Show local user accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetter(cmd, "users", (*driver.Driver).GetUsers, renderUsers)
	},
}

func renderUsers(w io.Writer, users map[string]model.User) {
	t := cli.NewTable(w, "USER", "LEVEL", "SSH KEYS")
	for _, name := range slices.Sorted(maps.Keys(users)) {
		u := users[name]
		t.Row(name, strconv.Itoa(u.Level), strconv.Itoa(len(u.SSHKeys)))
	}
	t.Flush()
}

var environmentCmd = &cobra.Command{
	Use:   "environment",
	Short: "Show CPU and memory usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGetter(cmd, "environment", (*driver.Driver).GetEnvironment, renderEnvironment)
	},
}

func renderEnvironment(w io.Writer, env model.Environment) {
	for _, id := range slices.Sorted(maps.Keys(env.CPU)) {
		fmt.Fprintf(w, "CPU %s:   %s%%\n", id, formatFloat(env.CPU[id].Usage))
	}
	fmt.Fprintf(w, "Memory:  %d KiB used of %d KiB\n", env.Memory.UsedRAM, env.Memory.AvailableRAM)
}

var pingCmd = &cobra.Command{
	Use:   "ping <destination>",
	Short: "Ping from the device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := pingOpts
		opts.Destination = args[0]
		return runGetter(cmd, "ping", func(d *driver.Driver, ctx context.Context) (model.PingResult, error) {
			return d.Ping(ctx, opts)
		}, renderPing)
	},
}

func renderPing(w io.Writer, r model.PingResult) {
	if r.Success == nil {
		fmt.Fprintln(w, red(r.Error))
		return
	}
	s := r.Success
	fmt.Fprintf(w, "%d probes sent, %d lost\n", s.ProbesSent, s.PacketLoss)
	if s.RTTAvg >= 0 {
		fmt.Fprintf(w, "rtt min/avg/max/stddev = %s/%s/%s/%s ms\n",
			formatFloat(s.RTTMin), formatFloat(s.RTTAvg), formatFloat(s.RTTMax), formatFloat(s.RTTStddev))
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func init() {
	arpCmd.Flags().StringVar(&arpVRF, "vrf", "", "Routing instance (only the default is supported)")
	ntpCmd.Flags().BoolVar(&ntpServers, "servers", false, "List configured servers only")
	bgpCmd.Flags().BoolVar(&bgpDetail, "detail", false, "Per-neighbor details")
	bgpCmd.Flags().StringVar(&bgpNeighbor, "neighbor", "", "Neighbor address (with --detail)")

	pingCmd.Flags().StringVar(&pingOpts.Source, "source", "", "Source interface")
	pingCmd.Flags().IntVar(&pingOpts.TTL, "ttl", driver.DefaultPingTTL, "Time to live")
	pingCmd.Flags().IntVar(&pingOpts.Timeout, "timeout", driver.DefaultPingTimeout, "Seconds to wait per probe")
	pingCmd.Flags().IntVar(&pingOpts.Size, "size", driver.DefaultPingSize, "Payload size in bytes")
	pingCmd.Flags().IntVar(&pingOpts.Count, "count", driver.DefaultPingCount, "Number of probes")
	pingCmd.Flags().StringVar(&pingOpts.VRF, "vrf", "", "Routing instance (only the default is supported)")
}
