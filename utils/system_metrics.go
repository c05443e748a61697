package utils

import (
	"log"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// cpuSampleWindow is how long GetCPUUsage blocks to measure; the health
// endpoint budgets for it in its own timeout.
const cpuSampleWindow = time.Second

// GetCPUUsage samples overall CPU utilization as a percentage. Errors are
// logged and reported as 0 so health checks degrade instead of failing.
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(cpuSampleWindow, false)
	if err != nil {
		log.Printf("Error getting CPU usage: %v", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}
