// Package monitor coordinates one monitoring run: sample the system at a
// fixed interval, derive trends, run the security scans, and assemble the
// report document.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ostashkin/syswatch/internal/history"
	"github.com/ostashkin/syswatch/internal/model"
	"github.com/ostashkin/syswatch/internal/output"
	"github.com/ostashkin/syswatch/internal/recommend"
	"github.com/ostashkin/syswatch/internal/security"
	"github.com/ostashkin/syswatch/internal/snapshot"
	"github.com/ostashkin/syswatch/internal/trend"
)

// SchemaVersion identifies the report JSON layout.
const SchemaVersion = "1.0.0"

// Runner holds the pieces of one monitoring run.
type Runner struct {
	Provider snapshot.Provider
	Interval time.Duration
	Samples  int
	Security security.Config
	Progress *output.Progress
	Version  string
}

// Run samples the system, analyzes the history, and returns the report.
// An interrupted run still produces a report when at least two samples
// were collected; fewer samples make analysis impossible and the sampling
// error is returned instead.
func (r *Runner) Run(ctx context.Context) (*model.Report, error) {
	if r.Samples < 2 {
		return nil, fmt.Errorf("monitor: need at least 2 samples, got %d", r.Samples)
	}

	r.Progress.Log("Starting monitoring: %d samples at %s intervals", r.Samples, r.Interval)

	sampler := &history.Sampler{
		Provider: r.Provider,
		Interval: r.Interval,
		Samples:  r.Samples,
		Progress: r.Progress,
	}
	h, err := sampler.Run(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) || h.Len() < 2 {
			return nil, err
		}
		r.Progress.Log("Interrupted; analyzing %d collected samples", h.Len())
	}

	return r.buildReport(ctx, h)
}

// buildReport runs every analysis over a completed history.
func (r *Runner) buildReport(ctx context.Context, h *history.History) (*model.Report, error) {
	cpuTrends, err := trend.AnalyzeCPUTrend(h)
	if err != nil {
		return nil, fmt.Errorf("cpu trend: %w", err)
	}
	memTrend, err := trend.AnalyzeMemoryTrend(h)
	if err != nil {
		return nil, fmt.Errorf("memory trend: %w", err)
	}
	netTrend, err := trend.AnalyzeNetworkTrend(h)
	if err != nil {
		return nil, fmt.Errorf("network trend: %w", err)
	}

	latest, err := h.Latest()
	if err != nil {
		return nil, err
	}

	r.Progress.Log("Running security scans")
	r.Progress.Debug("scan gates: processes=%t resources=%t network=%t files=%t",
		r.Security.ScanProcesses, r.Security.ScanResources,
		r.Security.ScanNetwork, r.Security.ScanFiles)
	if r.Security.ScanFiles {
		r.Progress.Debug("file scan roots: %v (depth %d)", r.Security.FileRoots, r.Security.MaxDepth)
	}
	analysis := security.NewAnalyzer(r.Security).Analyze(latest, h)

	recs, err := recommend.Generate(h, analysis, r.Security.Rules)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}

	levels := make([]string, len(cpuTrends))
	for i, t := range cpuTrends {
		levels[i] = string(trend.Classify(t.Pattern))
	}

	system := snapshot.HostInfo(ctx)
	meta := r.metadata(h)
	meta.Hostname = system.Hostname

	report := &model.Report{
		Metadata:        meta,
		System:          system,
		CPUTrends:       cpuTrends,
		CPULevels:       levels,
		MemoryTrend:     memTrend,
		MemoryLevel:     string(trend.Classify(memTrend.Pattern)),
		NetworkTrend:    netTrend,
		Security:        *analysis,
		Recommendations: recs,
		Latest:          latest,
	}

	r.Progress.Log("Run complete: %d cores analyzed, %d recommendations",
		len(cpuTrends), len(recs))
	return report, nil
}

func (r *Runner) metadata(h *history.History) model.Metadata {
	return model.Metadata{
		Tool:          "syswatch",
		Version:       r.Version,
		SchemaVersion: SchemaVersion,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Samples:       h.Len(),
		Interval:      r.Interval.String(),
	}
}
