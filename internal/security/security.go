package security

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ostashkin/syswatch/internal/history"
	"github.com/ostashkin/syswatch/internal/model"
)

// Config selects which sub-scans run and what they consult. Zero-value
// gates disable a scan; use DefaultConfig for the full set.
type Config struct {
	Rules RuleSet

	ScanProcesses bool
	ScanResources bool
	ScanNetwork   bool
	ScanFiles     bool

	// FileRoots are the directories the file scan traverses. Defaults to
	// the user home plus the platform temp directories.
	FileRoots []string

	// MaxDepth bounds the file scan below each root.
	MaxDepth int
}

// DefaultConfig enables every scan with the built-in rules.
func DefaultConfig() Config {
	return Config{
		Rules:         DefaultRules(),
		ScanProcesses: true,
		ScanResources: true,
		ScanNetwork:   true,
		ScanFiles:     true,
		FileRoots:     DefaultFileRoots(),
		MaxDepth:      4,
	}
}

// Analyzer runs the enabled heuristic scans.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer returns an Analyzer for the given config.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze scans the latest snapshot against the history baseline and,
// when enabled, the filesystem. Every category list in the result is
// non-nil; a disabled or clean scan leaves its list empty.
func (a *Analyzer) Analyze(latest *model.Snapshot, h *history.History) *model.SecurityAnalysis {
	analysis := &model.SecurityAnalysis{
		SuspiciousProcesses:    []string{},
		SuspiciousFiles:        []string{},
		UnusualNetworkActivity: []string{},
		HighResourceUsage:      []string{},
	}
	if latest == nil {
		return analysis
	}

	if a.cfg.ScanProcesses || a.cfg.ScanResources {
		a.scanProcesses(latest, analysis)
	}
	if a.cfg.ScanFiles {
		analysis.SuspiciousFiles = append(analysis.SuspiciousFiles,
			a.scanFiles(a.cfg.FileRoots)...)
	}
	if a.cfg.ScanNetwork {
		a.scanNetwork(latest, h, analysis)
	}
	return analysis
}

// scanProcesses walks the snapshot's process table in its stored order
// (sorted by PID at collection time, so results are deterministic within
// a run).
func (a *Analyzer) scanProcesses(snap *model.Snapshot, analysis *model.SecurityAnalysis) {
	memLimit := uint64(0)
	if a.cfg.Rules.MemoryShareDivisor > 0 {
		memLimit = snap.MemoryTotal / a.cfg.Rules.MemoryShareDivisor
	}

	for _, proc := range snap.Processes {
		name := strings.ToLower(proc.Name)

		if a.cfg.ScanProcesses && matchesAny(name, a.cfg.Rules.ProcessNamePatterns) {
			analysis.SuspiciousProcesses = append(analysis.SuspiciousProcesses,
				fmt.Sprintf("%s (PID: %d)", proc.Name, proc.PID))
		}

		if a.cfg.ScanResources &&
			(proc.CPUPercent > a.cfg.Rules.HighCPUPercent ||
				(memLimit > 0 && proc.MemoryBytes > memLimit)) {
			analysis.HighResourceUsage = append(analysis.HighResourceUsage,
				fmt.Sprintf("%s (CPU: %.1f%%, Memory: %s)",
					proc.Name, proc.CPUPercent, humanize.IBytes(proc.MemoryBytes)))
		}
	}
}

// scanNetwork flags interfaces whose current combined throughput strictly
// exceeds the multiplier times the historical baseline. The baseline is
// the integer mean of per-snapshot (rx+tx) over the whole history.
func (a *Analyzer) scanNetwork(snap *model.Snapshot, h *history.History, analysis *model.SecurityAnalysis) {
	baseline := NetworkBaseline(h)
	if baseline == 0 {
		return
	}
	limit := a.cfg.Rules.NetworkBaselineMultiplier * float64(baseline)

	names := make([]string, 0, len(snap.Interfaces))
	for name := range snap.Interfaces {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := snap.Interfaces[name]
		if float64(c.Rx+c.Tx) > limit {
			analysis.UnusualNetworkActivity = append(analysis.UnusualNetworkActivity,
				fmt.Sprintf("Interface %s shows unusual activity", name))
		}
	}
}

// NetworkBaseline returns the mean combined (rx+tx) per snapshot across
// the history, truncated to an integer. Zero for an empty history.
func NetworkBaseline(h *history.History) uint64 {
	if h == nil || h.Len() == 0 {
		return 0
	}
	var total uint64
	for i := 0; i < h.Len(); i++ {
		s := h.At(i)
		total += s.NetworkRx + s.NetworkTx
	}
	return total / uint64(h.Len())
}

func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
