package parse

import (
	"strings"

	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/util"
)

// ARPTable reads "show arp":
//
//	Address                  HWtype  HWaddress           Flags Mask            Iface
//	10.129.2.254             ether   00:50:56:97:af:b1   C                     eth0
//	192.168.1.134                    (incomplete)                              eth1
//
// Unresolved entries are kept with model.UnknownMAC. The age is not reported.
func ARPTable(output string) ([]model.ARPEntry, error) {
	table := []model.ARPEntry{}
	for i, l := range lines(output) {
		fields := strings.Fields(l)
		if i == 0 || len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, util.NewLookupError("show arp", "columns of "+strings.TrimSpace(l))
		}
		mac := fields[2]
		if strings.Contains(fields[1], "incomplete") {
			mac = model.UnknownMAC
		}
		table = append(table, model.ARPEntry{
			Interface: fields[len(fields)-1],
			MAC:       mac,
			IP:        fields[0],
			Age:       0.0,
		})
	}
	return table, nil
}
