package docker

import "github.com/docker/docker/api/types/container"

// calculateCPUPercent calculates CPU usage percentage from Docker stats.
// The calculation uses the difference between the container's CPU usage and
// the system's CPU usage to determine the percentage.
func calculateCPUPercent(stats *container.StatsResponse) float64 {
	// The counters are unsigned and reset when the daemon restarts, so
	// compare before subtracting.
	if stats.CPUStats.CPUUsage.TotalUsage < stats.PreCPUStats.CPUUsage.TotalUsage ||
		stats.CPUStats.SystemUsage <= stats.PreCPUStats.SystemUsage {
		return 0.0
	}
	cpuDelta := float64(stats.CPUStats.CPUUsage.TotalUsage - stats.PreCPUStats.CPUUsage.TotalUsage)
	systemDelta := float64(stats.CPUStats.SystemUsage - stats.PreCPUStats.SystemUsage)

	cpuCount := float64(stats.CPUStats.OnlineCPUs)
	if cpuCount == 0.0 {
		// Fallback to PercpuUsage length if OnlineCPUs is not set
		cpuCount = float64(len(stats.CPUStats.CPUUsage.PercpuUsage))
		if cpuCount == 0.0 {
			cpuCount = 1.0
		}
	}

	return (cpuDelta / systemDelta) * cpuCount * 100.0
}
