package model

// Report is the complete output document of one monitoring run. It is
// rendered as text for the console and serialized to JSON for `--output`
// and for `syswatch diff`.
type Report struct {
	Metadata        Metadata               `json:"metadata"`
	System          SystemInfo             `json:"system"`
	CPUTrends       []UsageTrend           `json:"cpu_trends"`
	CPULevels       []string               `json:"cpu_levels"`
	MemoryTrend     UsageTrend             `json:"memory_trend"`
	MemoryLevel     string                 `json:"memory_level"`
	NetworkTrend    NetworkTrend           `json:"network_trend"`
	Security        SecurityAnalysis       `json:"security"`
	Recommendations []string               `json:"recommendations"`
	Latest          *Snapshot              `json:"latest,omitempty"`
}

// Metadata identifies the monitoring run that produced a report.
type Metadata struct {
	Tool          string `json:"tool"`
	Version       string `json:"version"`
	SchemaVersion string `json:"schema_version"`
	Hostname      string `json:"hostname"`
	Timestamp     string `json:"timestamp"`
	Samples       int    `json:"samples"`
	Interval      string `json:"interval"`
}

// SystemInfo describes the host the run was taken on. Fields the platform
// cannot report stay empty.
type SystemInfo struct {
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	KernelVersion string `json:"kernel_version"`
	PhysicalCores int    `json:"physical_cores"`
	LogicalCores  int    `json:"logical_cores"`
}
