// Package diff compares two saved monitor reports and highlights
// regressions and improvements between runs.
package diff

import (
	"fmt"
	"math"
	"strings"

	"github.com/ostashkin/syswatch/internal/model"
)

// DiffReport contains the comparison between two monitor reports.
type DiffReport struct {
	Baseline     string         `json:"baseline"`
	Current      string         `json:"current"`
	Changes      []MetricChange `json:"changes"`
	Regressions  int            `json:"regressions"`
	Improvements int            `json:"improvements"`
	// FindingsDelta is the change in total security findings
	// (positive = more findings now).
	FindingsDelta int `json:"findings_delta"`
}

// MetricChange is a single metric difference between the two reports.
type MetricChange struct {
	Metric       string  `json:"metric"`
	OldValue     float64 `json:"old_value"`
	NewValue     float64 `json:"new_value"`
	Delta        float64 `json:"delta"`
	DeltaPct     float64 `json:"delta_pct"`
	Direction    string  `json:"direction"`    // "regression", "improvement", "unchanged"
	Significance string  `json:"significance"` // "high", "medium", "low"
}

// Compare computes the differences between two reports. CPU trends are
// compared per core up to the shorter core count.
func Compare(baseline, current *model.Report) *DiffReport {
	d := &DiffReport{
		Baseline:      baseline.Metadata.Timestamp,
		Current:       current.Metadata.Timestamp,
		FindingsDelta: findingCount(&current.Security) - findingCount(&baseline.Security),
	}

	cores := len(baseline.CPUTrends)
	if len(current.CPUTrends) < cores {
		cores = len(current.CPUTrends)
	}
	for i := 0; i < cores; i++ {
		addChange(d, fmt.Sprintf("cpu%d_average", i),
			baseline.CPUTrends[i].Average, current.CPUTrends[i].Average)
		addChange(d, fmt.Sprintf("cpu%d_peak", i),
			baseline.CPUTrends[i].Peak, current.CPUTrends[i].Peak)
	}

	addChange(d, "memory_average", baseline.MemoryTrend.Average, current.MemoryTrend.Average)
	addChange(d, "memory_peak", baseline.MemoryTrend.Peak, current.MemoryTrend.Peak)
	addChange(d, "network_rx_rate", baseline.NetworkTrend.RxRate, current.NetworkTrend.RxRate)
	addChange(d, "network_tx_rate", baseline.NetworkTrend.TxRate, current.NetworkTrend.TxRate)

	for _, c := range d.Changes {
		switch c.Direction {
		case "regression":
			d.Regressions++
		case "improvement":
			d.Improvements++
		}
	}
	return d
}

func findingCount(a *model.SecurityAnalysis) int {
	return len(a.SuspiciousProcesses) + len(a.SuspiciousFiles) +
		len(a.UnusualNetworkActivity) + len(a.HighResourceUsage)
}

// addChange records a metric change unless it is negligible. Higher
// values are treated as worse for every compared metric.
func addChange(d *DiffReport, metric string, oldVal, newVal float64) {
	delta := newVal - oldVal
	deltaPct := 0.0
	if oldVal != 0 {
		deltaPct = (delta / math.Abs(oldVal)) * 100
	}

	if math.Abs(deltaPct) < 1.0 && math.Abs(delta) < 0.1 {
		return
	}

	direction := "unchanged"
	if deltaPct > 5 {
		direction = "regression"
	} else if deltaPct < -5 {
		direction = "improvement"
	}

	significance := "low"
	absPct := math.Abs(deltaPct)
	if absPct >= 50 {
		significance = "high"
	} else if absPct >= 20 {
		significance = "medium"
	}

	d.Changes = append(d.Changes, MetricChange{
		Metric:       metric,
		OldValue:     oldVal,
		NewValue:     newVal,
		Delta:        delta,
		DeltaPct:     deltaPct,
		Direction:    direction,
		Significance: significance,
	})
}

// FormatDiff returns a human-readable diff summary, regressions first.
func FormatDiff(d *DiffReport) string {
	var sb strings.Builder

	sb.WriteString("=== Report Diff ===\n")
	sb.WriteString(fmt.Sprintf("Baseline: %s\n", d.Baseline))
	sb.WriteString(fmt.Sprintf("Current:  %s\n\n", d.Current))
	sb.WriteString(fmt.Sprintf("Security findings: %+d\n", d.FindingsDelta))
	sb.WriteString(fmt.Sprintf("Regressions: %d, Improvements: %d\n", d.Regressions, d.Improvements))

	writeGroup := func(header, direction string) {
		first := true
		for _, c := range d.Changes {
			if c.Direction != direction {
				continue
			}
			if first {
				sb.WriteString("\n" + header + "\n")
				first = false
			}
			sb.WriteString(fmt.Sprintf("  %s: %.2f -> %.2f (%+.1f%%, %s)\n",
				c.Metric, c.OldValue, c.NewValue, c.DeltaPct, c.Significance))
		}
	}
	writeGroup("Regressions:", "regression")
	writeGroup("Improvements:", "improvement")

	return sb.String()
}
