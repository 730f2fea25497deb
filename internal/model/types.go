// Package model defines the data types shared across syswatch:
// snapshots, derived trends, security findings, and the report document.
package model

import "time"

// Snapshot is one point-in-time reading of all monitored system metrics.
// Immutable once produced; the sample history owns it after insertion.
type Snapshot struct {
	TakenAt time.Time `json:"taken_at"`

	// CPUUsage holds one utilization percentage (0-100) per logical core,
	// in core-index order.
	CPUUsage []float64 `json:"cpu_usage"`

	MemoryUsed  uint64 `json:"memory_used"`
	MemoryTotal uint64 `json:"memory_total"`
	SwapUsed    uint64 `json:"swap_used"`

	// NetworkRx and NetworkTx are cumulative byte counters since boot,
	// summed over all interfaces.
	NetworkRx uint64 `json:"network_rx"`
	NetworkTx uint64 `json:"network_tx"`

	// Interfaces holds the per-interface cumulative counters behind the
	// aggregate above.
	Interfaces map[string]InterfaceCounters `json:"interfaces,omitempty"`

	Disks        map[string]DiskUsage          `json:"disks,omitempty"`
	Processes    []ProcessSample               `json:"processes,omitempty"`
	Temperatures map[string]TemperatureReading `json:"temperatures,omitempty"`
	TempFiles    TempFileSet                   `json:"temp_files"`
}

// InterfaceCounters holds cumulative rx/tx byte counters for one interface.
type InterfaceCounters struct {
	Rx uint64 `json:"rx"`
	Tx uint64 `json:"tx"`
}

// DiskUsage describes one mounted filesystem.
type DiskUsage struct {
	Total uint64 `json:"total"`
	Used  uint64 `json:"used"`
}

// ProcessSample is one process observed in a snapshot.
type ProcessSample struct {
	Name       string  `json:"name"`
	PID        int32   `json:"pid"`
	CPUPercent float64 `json:"cpu_percent"`
	// MemoryBytes is resident memory.
	MemoryBytes uint64 `json:"memory_bytes"`
	// DiskBytes is always zero: per-process disk accounting is out of scope.
	DiskBytes uint64 `json:"disk_bytes"`
}

// TemperatureReading is one sensor reading. Sensors that report nothing
// are simply absent from the snapshot map.
type TemperatureReading struct {
	Celsius    float64 `json:"celsius"`
	Fahrenheit float64 `json:"fahrenheit"`
}

// TempFileSet is the temporary-file inventory taken with a snapshot.
type TempFileSet struct {
	TotalSize uint64         `json:"total_size"`
	Files     []TempFileInfo `json:"files,omitempty"`
}

// TempFileInfo describes one file found under a temp root.
type TempFileInfo struct {
	Path string `json:"path"`
	Size uint64 `json:"size"`
	// LastModified is nil when the filesystem could not report it.
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// UsageTrend summarizes one metric series over the sample history.
// Pattern is a heuristic score, roughly in [0,1] but not hard-clamped;
// it is not a normalized probability.
type UsageTrend struct {
	Average float64 `json:"average"`
	Peak    float64 `json:"peak"`
	Pattern float64 `json:"pattern"`
}

// NetworkTrend holds throughput rates derived from the sample history.
type NetworkTrend struct {
	// RxRate and TxRate are bytes per second over the history's wall-clock
	// span, from the difference of the first and last cumulative counters.
	RxRate float64 `json:"rx_rate"`
	TxRate float64 `json:"tx_rate"`
}

// SecurityAnalysis collects the findings of all enabled heuristic scans.
// Every list is present and empty when its scan found nothing; a list is
// also empty when its scan is disabled.
type SecurityAnalysis struct {
	SuspiciousProcesses    []string `json:"suspicious_processes"`
	SuspiciousFiles        []string `json:"suspicious_files"`
	UnusualNetworkActivity []string `json:"unusual_network_activity"`
	HighResourceUsage      []string `json:"high_resource_usage"`
}

// Empty reports whether no scan produced any finding.
func (a *SecurityAnalysis) Empty() bool {
	return len(a.SuspiciousProcesses) == 0 &&
		len(a.SuspiciousFiles) == 0 &&
		len(a.UnusualNetworkActivity) == 0 &&
		len(a.HighResourceUsage) == 0
}

// CleanupStats is the outcome of one temp-file cleanup run. Errors holds
// one formatted entry per failed deletion; a failure never aborts the run.
type CleanupStats struct {
	FilesDeleted int      `json:"files_deleted"`
	BytesFreed   uint64   `json:"bytes_freed"`
	Errors       []string `json:"errors,omitempty"`
}
