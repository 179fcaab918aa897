package parse

import (
	"regexp"
	"strings"

	"github.com/newtron-network/vydriver/pkg/model"
)

var (
	lldpInterface = regexp.MustCompile(`^\s*Interface:\s+([^,\s]+)`)
	lldpSysName   = regexp.MustCompile(`^\s*SysName:\s+(\S+)`)
	lldpPortID    = regexp.MustCompile(`^\s*PortID:\s+(\S+)\s+(.+?)\s*$`)
	lldpPortDescr = regexp.MustCompile(`^\s*PortDescr:\s+(.+?)\s*$`)
)

// lldpRecord accumulates one "Interface:" block.
type lldpRecord struct {
	local, hostname  string
	portType, portID string
	portDescr        string
}

func (r *lldpRecord) port() string {
	if r.portType == "ifname" || r.portDescr == "" {
		return r.portID
	}
	return r.portDescr
}

// LLDPNeighbors reads "show lldp neighbors detail". Each "Interface:" block is
// one record; only blocks with both a SysName and a PortID are reported. The
// ifname PortID subtype is used as is; for other subtypes the PortDescr is
// preferred. A local interface holds a single neighbor, the last one printed.
func LLDPNeighbors(output string) map[string][]model.LLDPNeighbor {
	neighbors := make(map[string][]model.LLDPNeighbor)

	var cur *lldpRecord
	flush := func() {
		if cur == nil || cur.hostname == "" || cur.portID == "" {
			return
		}
		neighbors[cur.local] = []model.LLDPNeighbor{{Hostname: cur.hostname, Port: cur.port()}}
	}

	for _, l := range lines(output) {
		if m := lldpInterface.FindStringSubmatch(l); m != nil {
			flush()
			cur = &lldpRecord{local: m[1]}
			continue
		}
		if cur == nil {
			continue
		}
		if m := lldpSysName.FindStringSubmatch(l); m != nil {
			cur.hostname = m[1]
		} else if m := lldpPortID.FindStringSubmatch(l); m != nil {
			cur.portType, cur.portID = m[1], strings.TrimSpace(m[2])
		} else if m := lldpPortDescr.FindStringSubmatch(l); m != nil {
			cur.portDescr = m[1]
		}
	}
	flush()
	return neighbors
}
