package parse

import (
	"regexp"
	"strings"

	"github.com/newtron-network/vydriver/pkg/duration"
	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/util"
)

const ntpqSource = "ntpq -np"

var ipv4Address = regexp.MustCompile(`(\d+\.\d+\.\d+\.\d+)`)

// NTPStats reads "ntpq -np":
//
//	     remote           refid      st t when poll reach   delay   offset  jitter
//	==============================================================================
//	*116.91.118.97   133.243.238.244  2 u   51   64  377    5.436  987971. 1694.82
//
// The tally character in front of the remote marks the selected peer with "*".
func NTPStats(output string) ([]model.NTPStats, error) {
	stats := []model.NTPStats{}
	for _, l := range ntpRows(output) {
		fields := strings.Fields(l)
		if len(fields) != 10 {
			return nil, util.NewLookupError(ntpqSource, "columns of "+strings.TrimSpace(l))
		}
		remote := ipv4Address.FindString(fields[0])
		if remote == "" {
			return nil, util.NewLookupError(ntpqSource, "remote address in "+fields[0])
		}

		st := model.NTPStats{
			Remote:       remote,
			ReferenceID:  fields[1],
			Synchronized: strings.Contains(fields[0], "*"),
			Type:         fields[3],
		}
		var err error
		if st.When, err = ntpWhen(fields[4]); err != nil {
			return nil, err
		}
		var n int64
		if n, err = mustInt(ntpqSource, "st", fields[2]); err != nil {
			return nil, err
		}
		st.Stratum = int(n)
		if n, err = mustInt(ntpqSource, "poll", fields[5]); err != nil {
			return nil, err
		}
		st.HostPoll = int(n)
		if n, err = mustInt(ntpqSource, "reach", fields[6]); err != nil {
			return nil, err
		}
		st.Reachability = int(n)
		if st.Delay, err = mustFloat(ntpqSource, "delay", fields[7]); err != nil {
			return nil, err
		}
		if st.Offset, err = mustFloat(ntpqSource, "offset", fields[8]); err != nil {
			return nil, err
		}
		if st.Jitter, err = mustFloat(ntpqSource, "jitter", fields[9]); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// NTPPeers returns the IPv4 address of every association in "ntpq -np".
func NTPPeers(output string) (map[string]model.NTPPeer, error) {
	peers := make(map[string]model.NTPPeer)
	for _, l := range ntpRows(output) {
		addr := ipv4Address.FindString(l)
		if addr == "" {
			return nil, util.NewLookupError(ntpqSource, "remote address in "+strings.TrimSpace(l))
		}
		peers[addr] = model.NTPPeer{}
	}
	return peers, nil
}

// ntpRows drops the two header lines and blank lines.
func ntpRows(output string) []string {
	all := lines(output)
	if len(all) <= 2 {
		return nil
	}
	var rows []string
	for _, l := range all[2:] {
		if strings.TrimSpace(l) != "" {
			rows = append(rows, l)
		}
	}
	return rows
}

// ntpWhen converts the "when" column. ntpq prints "-" before the first poll and
// switches to m, h and d suffixes as the value grows.
func ntpWhen(s string) (int64, error) {
	if s == "-" {
		return 0, nil
	}
	unit := int64(1)
	switch {
	case strings.HasSuffix(s, "m"):
		unit = duration.Minute
	case strings.HasSuffix(s, "h"):
		unit = duration.Hour
	case strings.HasSuffix(s, "d"):
		unit = duration.Day
	}
	n, err := mustInt(ntpqSource, "when", strings.TrimRight(s, "mhd"))
	if err != nil {
		return 0, err
	}
	return n * unit, nil
}
