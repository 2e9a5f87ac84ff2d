// Package monitor gathers a host snapshot for the check command and the
// run report: CPU model, thread count, and current load. Best effort;
// fields stay zero when gopsutil cannot read them.
package monitor

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"codecsweep/pkg/models"
)

// Snapshot collects host specs at the start of a run.
func Snapshot(ctx context.Context) models.HostSpecs {
	specs := models.HostSpecs{
		CPUModel: "Unknown CPU",
		Threads:  runtime.NumCPU(),
	}

	if info, err := cpu.InfoWithContext(ctx); err == nil && len(info) > 0 {
		specs.CPUModel = info[0].ModelName
	}

	if v, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		specs.RAMFreeGB = float64(v.Available) / (1 << 30)
	}

	// Zero duration returns an immediate gauge rather than sampling.
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		specs.CPUUsagePct = pct[0]
	}

	return specs
}
