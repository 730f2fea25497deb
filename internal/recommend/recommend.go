// Package recommend turns trend and security results into actionable
// report lines. Generation is a pure function of its inputs, and the
// emission order of the rule blocks is part of the output contract:
// memory, CPU, suspicious processes, suspicious files, network, browser
// memory, then the fixed maintenance block.
package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ostashkin/syswatch/internal/history"
	"github.com/ostashkin/syswatch/internal/model"
	"github.com/ostashkin/syswatch/internal/security"
)

// memoryCriticalPercent triggers the critical-memory block.
const memoryCriticalPercent = 80.0

// coreHotPercent marks a core as hot in the latest snapshot.
const coreHotPercent = 90.0

// Generate derives recommendation lines from the latest snapshot and the
// security findings. Each rule is evaluated independently; every
// applicable rule emits its block. The history must be non-empty.
func Generate(h *history.History, analysis *model.SecurityAnalysis, rules security.RuleSet) ([]string, error) {
	latest, err := h.Latest()
	if err != nil {
		return nil, err
	}

	var recs []string

	if latest.MemoryTotal > 0 {
		usedPct := float64(latest.MemoryUsed) / float64(latest.MemoryTotal) * 100
		if usedPct > memoryCriticalPercent {
			recs = append(recs,
				"* Critical: High memory usage detected - Consider closing unused applications",
				"* Run memory diagnostics to check for memory leaks")
		}
	}

	if hot := hotCores(latest.CPUUsage); len(hot) > 0 {
		recs = append(recs, fmt.Sprintf(
			"* High CPU usage on cores %s - Check for CPU-intensive processes",
			strings.Join(hot, ", ")))
	}

	if len(analysis.SuspiciousProcesses) > 0 {
		recs = append(recs,
			"* URGENT: Suspicious processes detected - Run full system scan",
			"* Review and terminate suspicious processes")
	}

	if len(analysis.SuspiciousFiles) > 0 {
		recs = append(recs,
			"* Suspicious files detected:",
			"  - Run antivirus scan",
			"  - Check file permissions",
			"  - Review recently modified files")
	}

	if len(analysis.UnusualNetworkActivity) > 0 {
		recs = append(recs,
			"* Unusual network activity detected - Check firewall settings",
			"* Monitor network connections for unauthorized access")
	}

	if browserOverLimit(latest.Processes, rules) {
		recs = append(recs,
			"* Browser memory usage is high:",
			"  - Consider reducing number of open tabs",
			"  - Check browser extensions for memory leaks")
	}

	recs = append(recs,
		"* Schedule regular system maintenance:",
		"  - Update system and application software",
		"  - Run disk cleanup and defragmentation",
		"  - Monitor system performance over time",
		"  - Regularly scan for suspicious files")

	return recs, nil
}

// hotCores returns the indices of cores above coreHotPercent, as strings
// in core order.
func hotCores(perCore []float64) []string {
	var hot []string
	for i, usage := range perCore {
		if usage > coreHotPercent {
			hot = append(hot, strconv.Itoa(i))
		}
	}
	return hot
}

// browserOverLimit reports whether any browser process exceeds the
// configured memory level.
func browserOverLimit(procs []model.ProcessSample, rules security.RuleSet) bool {
	for _, p := range procs {
		name := strings.ToLower(p.Name)
		for _, browser := range rules.BrowserNames {
			if strings.Contains(name, browser) && p.MemoryBytes > rules.BrowserMemoryBytes {
				return true
			}
		}
	}
	return false
}
