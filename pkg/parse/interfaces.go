package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/util"
)

// Link and admin flags printed in the S/L column of "show interfaces".
const (
	FlagUp        = "u"
	FlagAdminDown = "A"
	FlagDown      = "D"
)

var stateFlags = regexp.MustCompile(`^([uAD])/([uAD])$`)

// InterfaceRow is one interface of the "show interfaces" table. Continuation lines
// are folded into Addresses.
type InterfaceRow struct {
	Name        string
	Addresses   []string
	AdminState  string
	LinkState   string
	Description string
}

// IsEnabled reports whether the interface is administratively up.
func (r InterfaceRow) IsEnabled() bool { return r.AdminState == FlagUp }

// IsUp reports whether the link is up.
func (r InterfaceRow) IsUp() bool { return r.LinkState == FlagUp }

// InterfaceTable tokenizes "show interfaces":
//
//	Interface        IP Address                        S/L  Description
//	---------        ----------                        ---  -----------
//	eth0             192.168.1.1/24                    u/u  Management
//	lo               127.0.0.1/8                       u/u
//	                 ::1/128
//
// Everything up to the dashed divider is header. A row that starts with whitespace
// carries another address of the interface above it.
func InterfaceTable(output string) ([]InterfaceRow, error) {
	all := lines(output)
	start := -1
	for i, l := range all {
		if strings.HasPrefix(strings.TrimSpace(l), "---") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		if strings.TrimSpace(output) == "" {
			return nil, nil
		}
		return nil, util.NewLookupError("show interfaces", "header divider")
	}

	var rows []InterfaceRow
	for _, l := range all[start:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		fields := strings.Fields(l)

		if l[0] == ' ' || l[0] == '\t' {
			if len(rows) == 0 {
				return nil, util.NewLookupError("show interfaces", "interface for "+fields[0])
			}
			last := &rows[len(rows)-1]
			last.Addresses = append(last.Addresses, addressTokens(fields)...)
			continue
		}

		flagIdx := -1
		var m []string
		for i := 1; i < len(fields); i++ {
			if m = stateFlags.FindStringSubmatch(fields[i]); m != nil {
				flagIdx = i
				break
			}
		}
		if flagIdx < 0 {
			util.WithCommand("show interfaces").Warnf("no S/L column in %q", l)
			continue
		}
		rows = append(rows, InterfaceRow{
			Name:        fields[0],
			Addresses:   addressTokens(fields[1:flagIdx]),
			AdminState:  m[1],
			LinkState:   m[2],
			Description: strings.Join(fields[flagIdx+1:], " "),
		})
	}
	return rows, nil
}

// addressTokens drops the "-" placeholder printed for interfaces without addresses.
func addressTokens(fields []string) []string {
	var out []string
	for _, f := range fields {
		if f != "-" && strings.Contains(f, "/") {
			out = append(out, f)
		}
	}
	return out
}

// InterfacesIP groups the addresses of an interface table by family.
func InterfacesIP(rows []InterfaceRow) (map[string]model.InterfaceIP, error) {
	result := make(map[string]model.InterfaceIP)
	for _, row := range rows {
		if len(row.Addresses) == 0 {
			continue
		}
		entry := model.InterfaceIP{}
		for _, cidr := range row.Addresses {
			addr, mask, ok := strings.Cut(cidr, "/")
			if !ok {
				return nil, util.NewLookupError("show interfaces", "prefix length of "+cidr)
			}
			length, err := strconv.Atoi(mask)
			if err != nil {
				return nil, util.NewLookupError("show interfaces", "prefix length of "+cidr)
			}
			switch {
			case strings.Contains(addr, ":"):
				if entry.IPv6 == nil {
					entry.IPv6 = make(map[string]model.Prefix)
				}
				entry.IPv6[addr] = model.Prefix{PrefixLength: length}
			case strings.Contains(addr, "."):
				if entry.IPv4 == nil {
					entry.IPv4 = make(map[string]model.Prefix)
				}
				entry.IPv4[addr] = model.Prefix{PrefixLength: length}
			}
		}
		result[row.Name] = entry
	}
	return result, nil
}
