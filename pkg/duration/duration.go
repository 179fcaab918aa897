// Package duration converts the relative-time strings printed by VyOS routing
// daemons into whole seconds.
//
// Four grammars are recognised, chosen by the most significant unit letter present:
//
//	1y2w3d    years, weeks, days
//	2w3d4h    weeks, days, hours
//	4d23h40m  days, hours, minutes
//	01:02:03  hours, minutes, seconds
//
// The unit combinations are not uniform (the weeks form carries hours, not
// minutes) because the daemon drops the least significant unit as the value grows.
package duration

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/newtron-network/vydriver/pkg/util"
)

const (
	Minute int64 = 60
	Hour         = 60 * Minute
	Day          = 24 * Hour
	Week         = 7 * Day
	Year         = 365 * Day
)

// Never is returned for sessions that have never been established.
const Never int64 = -1

// grammar is one of the unit-letter forms: three numbers, each multiplied by its unit.
type grammar struct {
	marker string
	re     *regexp.Regexp
	units  [3]int64
}

// grammars is ordered most significant first; the first marker present wins.
var grammars = []grammar{
	{"y", regexp.MustCompile(`^(\d+)y(\d+)w(\d+)d$`), [3]int64{Year, Week, Day}},
	{"w", regexp.MustCompile(`^(\d+)w(\d+)d(\d+)h$`), [3]int64{Week, Day, Hour}},
	{"d", regexp.MustCompile(`^(\d+)d(\d+)h(\d+)m$`), [3]int64{Day, Hour, Minute}},
}

// Parse returns the number of seconds s represents, or Never for "never".
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "never") {
		return Never, nil
	}

	for _, g := range grammars {
		if !strings.Contains(s, g.marker) {
			continue
		}
		m := g.re.FindStringSubmatch(s)
		if m == nil {
			return 0, util.NewLookupError("duration", s)
		}
		var total int64
		for i, unit := range g.units {
			n, err := strconv.ParseInt(m[i+1], 10, 64)
			if err != nil {
				return 0, util.NewLookupError("duration", s)
			}
			total += n * unit
		}
		return total, nil
	}

	return parseClock(s)
}

// parseClock handles the h:m:s form.
func parseClock(s string) (int64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, util.NewLookupError("duration", s)
	}
	units := [3]int64{Hour, Minute, 1}
	var total int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return 0, util.NewLookupError("duration", s)
		}
		total += n * units[i]
	}
	return total, nil
}
