package parse

import (
	"strings"

	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/util"
)

// CPUUsage derives the utilization percentage from the last sample of vmstat:
//
//	procs -----------memory---------- ---swap-- -----io---- -system-- ----cpu----
//	 r  b   swpd   free   buff  cache   si   so    bi    bo   in   cs us sy id wa
//	 0  0      0  61404 139624 139360    0    0     0     0    9   14  0  0 100  0
//
// The idle column is located by the "id" header when present; older vmstat builds
// print it second to last.
func CPUUsage(output string) (float64, error) {
	sample := strings.Fields(lastNonEmpty(output))
	if len(sample) < 2 {
		return 0, util.NewLookupError("vmstat", "sample line")
	}

	idx := len(sample) - 2
	for _, l := range lines(output) {
		header := strings.Fields(l)
		for i, h := range header {
			if h == "id" && len(header) == len(sample) {
				idx = i
			}
		}
	}

	idle, err := mustFloat("vmstat", "id", sample[idx])
	if err != nil {
		return 0, err
	}
	return 100 - idle, nil
}

// Memory reads the Mem row of free:
//
//	             total       used       free     shared    buffers     cached
//	Mem:        508156     446784      61372          0     139624     139360
func Memory(output string) (model.Memory, error) {
	for _, l := range lines(output) {
		fields := strings.Fields(l)
		if len(fields) < 3 || fields[0] != "Mem:" {
			continue
		}
		total, err := mustInt("free", "total", fields[1])
		if err != nil {
			return model.Memory{}, err
		}
		used, err := mustInt("free", "used", fields[2])
		if err != nil {
			return model.Memory{}, err
		}
		return model.Memory{AvailableRAM: total, UsedRAM: used}, nil
	}
	return model.Memory{}, util.NewLookupError("free", "Mem:")
}
