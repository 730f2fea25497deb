package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/ostashkin/syswatch/internal/model"
)

// diskWarnPercent marks a mount as low on space in the rendered report.
const diskWarnPercent = 90.0

// Render writes the human-readable monitor report.
func Render(w io.Writer, report *model.Report) {
	renderSystemInfo(w, report)
	if report.Latest != nil {
		renderMemory(w, report.Latest)
		renderDisks(w, report.Latest)
		renderTemperatures(w, report.Latest)
	}
	renderPerformance(w, report)
	renderSecurity(w, &report.Security)
	renderRecommendations(w, report.Recommendations)
}

func renderSystemInfo(w io.Writer, report *model.Report) {
	fmt.Fprintln(w, "=== System Information ===")
	fmt.Fprintf(w, "Device Name: %s\n", report.System.Hostname)
	fmt.Fprintf(w, "OS: %s\n", report.System.OS)
	fmt.Fprintf(w, "Kernel: %s\n", report.System.KernelVersion)
	fmt.Fprintf(w, "CPUs: %d (Physical), %d (Logical)\n",
		report.System.PhysicalCores, report.System.LogicalCores)
	fmt.Fprintf(w, "Samples: %d over %s intervals\n\n",
		report.Metadata.Samples, report.Metadata.Interval)
}

func renderMemory(w io.Writer, snap *model.Snapshot) {
	fmt.Fprintln(w, "=== Memory Information ===")
	fmt.Fprintf(w, "Total Memory: %s\n", humanize.IBytes(snap.MemoryTotal))
	usedPct := 0.0
	if snap.MemoryTotal > 0 {
		usedPct = float64(snap.MemoryUsed) / float64(snap.MemoryTotal) * 100
	}
	fmt.Fprintf(w, "Used Memory: %s (%.1f%%)\n", humanize.IBytes(snap.MemoryUsed), usedPct)
	fmt.Fprintf(w, "Used Swap: %s\n\n", humanize.IBytes(snap.SwapUsed))
}

func renderDisks(w io.Writer, snap *model.Snapshot) {
	if len(snap.Disks) == 0 {
		return
	}
	fmt.Fprintln(w, "=== Disk Information ===")
	mounts := make([]string, 0, len(snap.Disks))
	for mount := range snap.Disks {
		mounts = append(mounts, mount)
	}
	sort.Strings(mounts)
	for _, mount := range mounts {
		d := snap.Disks[mount]
		usedPct := 0.0
		if d.Total > 0 {
			usedPct = float64(d.Used) / float64(d.Total) * 100
		}
		fmt.Fprintf(w, "Mount point: %s, Total: %s, Used: %s (%.1f%%)\n",
			mount, humanize.IBytes(d.Total), humanize.IBytes(d.Used), usedPct)
		if usedPct > diskWarnPercent {
			fmt.Fprintf(w, "WARNING: Low disk space on %s\n", mount)
		}
	}
	fmt.Fprintln(w)
}

func renderTemperatures(w io.Writer, snap *model.Snapshot) {
	if len(snap.Temperatures) == 0 {
		return
	}
	fmt.Fprintln(w, "=== Temperatures ===")
	labels := make([]string, 0, len(snap.Temperatures))
	for label := range snap.Temperatures {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		t := snap.Temperatures[label]
		fmt.Fprintf(w, "%s: %.1f°C (%.1f°F)\n", label, t.Celsius, t.Fahrenheit)
	}
	fmt.Fprintln(w)
}

func renderPerformance(w io.Writer, report *model.Report) {
	fmt.Fprintln(w, "=== Performance Analysis ===")

	if len(report.CPUTrends) > 0 {
		fmt.Fprintln(w, "\nCPU Usage Trends:")
		for core, t := range report.CPUTrends {
			level := ""
			if core < len(report.CPULevels) {
				level = report.CPULevels[core]
			}
			fmt.Fprintf(w, "Core %d: %.2f%% avg, %.2f%% peak, Pattern: %s\n",
				core, t.Average, t.Peak, level)
		}
	}

	fmt.Fprintln(w, "\nMemory Usage:")
	fmt.Fprintf(w, "Average: %s\n", humanize.IBytes(uint64(report.MemoryTrend.Average)))
	fmt.Fprintf(w, "Peak: %s\n", humanize.IBytes(uint64(report.MemoryTrend.Peak)))
	fmt.Fprintf(w, "Pattern: %s\n", report.MemoryLevel)

	fmt.Fprintln(w, "\nNetwork Activity:")
	fmt.Fprintf(w, "Avg Throughput: down %s/s, up %s/s\n",
		humanize.IBytes(uint64(report.NetworkTrend.RxRate)),
		humanize.IBytes(uint64(report.NetworkTrend.TxRate)))
}

func renderSecurity(w io.Writer, analysis *model.SecurityAnalysis) {
	fmt.Fprintln(w, "\n=== Security Analysis ===")
	if analysis.Empty() {
		fmt.Fprintln(w, "No findings.")
		return
	}
	renderFindings(w, "Suspicious Processes:", analysis.SuspiciousProcesses)
	renderFindings(w, "Suspicious Files:", analysis.SuspiciousFiles)
	renderFindings(w, "Unusual Network Activity:", analysis.UnusualNetworkActivity)
	renderFindings(w, "High Resource Usage:", analysis.HighResourceUsage)
}

func renderFindings(w io.Writer, header string, findings []string) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", header)
	for _, f := range findings {
		fmt.Fprintf(w, "- %s\n", f)
	}
}

func renderRecommendations(w io.Writer, recs []string) {
	fmt.Fprintln(w, "\n=== System Recommendations ===")
	for _, rec := range recs {
		fmt.Fprintln(w, rec)
	}
}

// RenderTempFiles writes the temp-file inventory, largest first.
func RenderTempFiles(w io.Writer, set model.TempFileSet, limit int) {
	fmt.Fprintln(w, "=== Temporary Files ===")
	fmt.Fprintf(w, "Total size: %s across %d files\n",
		humanize.IBytes(set.TotalSize), len(set.Files))

	files := set.Files
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	for _, f := range files {
		age := "age unknown"
		if f.LastModified != nil {
			age = humanize.Time(*f.LastModified)
		}
		fmt.Fprintf(w, "%12s  %s (%s)\n", humanize.IBytes(f.Size), f.Path, age)
	}
}

// RenderCleanupStats writes the outcome of a cleanup run, including every
// per-file error.
func RenderCleanupStats(w io.Writer, stats model.CleanupStats) {
	fmt.Fprintf(w, "Deleted %d files, freed %s\n",
		stats.FilesDeleted, humanize.IBytes(stats.BytesFreed))
	if len(stats.Errors) > 0 {
		fmt.Fprintf(w, "%d deletions failed:\n", len(stats.Errors))
		for _, e := range stats.Errors {
			fmt.Fprintf(w, "- %s\n", e)
		}
	}
}
