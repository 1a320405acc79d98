package procstats

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Stats represents process resource usage statistics
type Stats struct {
	CPUPercent  float64
	MemoryBytes uint64
}

// Provider defines the interface for retrieving process statistics
type Provider interface {
	Self() Stats
	GetStats(pid int) (Stats, error)
}

// provider implements the Provider interface
type provider struct {
	pid int
}

// NewProvider creates a provider bound to the viewer's own process
func NewProvider() Provider {
	return &provider{pid: os.Getpid()}
}

// Self returns resource usage of the viewer process for the status bar
func (p *provider) Self() Stats {
	stats, _ := p.GetStats(p.pid)

	return stats
}

// GetStats retrieves CPU and memory statistics for a process by PID
func (p *provider) GetStats(pid int) (Stats, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return Stats{}, nil
	}

	proc, err := process.NewProcess(int32(pid)) // #nosec G115 -- PID range checked above
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}

	cpuPercent, err := proc.CPUPercent()
	if err == nil {
		stats.CPUPercent = cpuPercent
	}

	memInfo, err := proc.MemoryInfo()
	if err == nil {
		stats.MemoryBytes = memInfo.RSS
	}

	return stats, nil
}

// FormatMemory formats bytes into human-readable format (Bytes, Kb, Mb, Gb)
func FormatMemory(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%5dB", bytes)
	}

	suffixes := []string{"Kb", "Mb", "Gb"}
	value := float64(bytes)

	for i, suffix := range suffixes {
		value /= float64(unit)
		if value < float64(unit) || i == len(suffixes)-1 {
			if value >= 100 {
				return fmt.Sprintf("%4.0f %s", value, suffix)
			} else if value >= 10 {
				return fmt.Sprintf("%4.1f %s", value, suffix)
			}
			return fmt.Sprintf("%4.2f %s", value, suffix)
		}
	}

	return fmt.Sprintf("%4.0f Tb", value)
}

// FormatUptime formats a duration into human-readable uptime (Xh Ym or Xm Ys or Xs)
func FormatUptime(d time.Duration) string {
	d = d.Round(time.Second)

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%2dh%02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%2dm%02ds", m, s)
	}
	return fmt.Sprintf("  %2ds", s)
}
