package diff

import (
	"strings"
	"testing"

	"github.com/ostashkin/syswatch/internal/model"
)

func reportWith(cpuAvg, memAvg, rxRate float64) *model.Report {
	return &model.Report{
		Metadata: model.Metadata{Timestamp: "2026-06-01T00:00:00Z"},
		CPUTrends: []model.UsageTrend{
			{Average: cpuAvg, Peak: cpuAvg + 10},
		},
		MemoryTrend:  model.UsageTrend{Average: memAvg, Peak: memAvg},
		NetworkTrend: model.NetworkTrend{RxRate: rxRate, TxRate: rxRate / 2},
	}
}

func findChange(t *testing.T, d *DiffReport, metric string) MetricChange {
	t.Helper()
	for _, c := range d.Changes {
		if c.Metric == metric {
			return c
		}
	}
	t.Fatalf("no change recorded for %s in %v", metric, d.Changes)
	return MetricChange{}
}

func TestCompareClassifiesDirections(t *testing.T) {
	baseline := reportWith(50, 1000, 100)
	current := reportWith(80, 900, 100) // cpu up 60%, memory down 10%, rx flat

	d := Compare(baseline, current)

	cpu := findChange(t, d, "cpu0_average")
	if cpu.Direction != "regression" {
		t.Errorf("cpu direction = %q, want regression", cpu.Direction)
	}
	if cpu.Significance != "high" {
		t.Errorf("cpu significance = %q, want high (60%% jump)", cpu.Significance)
	}
	if cpu.Delta != 30 {
		t.Errorf("cpu delta = %v, want 30", cpu.Delta)
	}

	mem := findChange(t, d, "memory_average")
	if mem.Direction != "improvement" {
		t.Errorf("memory direction = %q, want improvement", mem.Direction)
	}
	if mem.Significance != "low" {
		t.Errorf("memory significance = %q, want low", mem.Significance)
	}

	for _, c := range d.Changes {
		if c.Metric == "network_rx_rate" {
			t.Errorf("flat rx rate should be suppressed, got %+v", c)
		}
	}

	if d.Regressions != 2 { // cpu0_average and cpu0_peak
		t.Errorf("Regressions = %d, want 2", d.Regressions)
	}
	if d.Improvements != 2 { // memory_average and memory_peak
		t.Errorf("Improvements = %d, want 2", d.Improvements)
	}
}

func TestCompareSmallDriftIsUnchanged(t *testing.T) {
	baseline := reportWith(50, 1000, 100)
	current := reportWith(51, 1000, 100) // +2%: recorded, but neither direction

	d := Compare(baseline, current)
	cpu := findChange(t, d, "cpu0_average")
	if cpu.Direction != "unchanged" {
		t.Errorf("direction = %q, want unchanged", cpu.Direction)
	}
	if d.Regressions != 0 || d.Improvements != 0 {
		t.Errorf("counts = %d/%d, want 0/0", d.Regressions, d.Improvements)
	}
}

func TestCompareMismatchedCoreCounts(t *testing.T) {
	baseline := reportWith(50, 1000, 100)
	baseline.CPUTrends = append(baseline.CPUTrends, model.UsageTrend{Average: 40, Peak: 45})
	current := reportWith(80, 1000, 100)

	d := Compare(baseline, current)
	for _, c := range d.Changes {
		if strings.HasPrefix(c.Metric, "cpu1") {
			t.Errorf("compared beyond the shorter core count: %s", c.Metric)
		}
	}
}

func TestCompareFindingsDelta(t *testing.T) {
	baseline := reportWith(50, 1000, 100)
	baseline.Security.SuspiciousFiles = []string{"a"}
	current := reportWith(50, 1000, 100)
	current.Security.SuspiciousProcesses = []string{"x", "y"}
	current.Security.UnusualNetworkActivity = []string{"z"}

	d := Compare(baseline, current)
	if d.FindingsDelta != 2 {
		t.Errorf("FindingsDelta = %d, want 2", d.FindingsDelta)
	}
}

func TestFormatDiff(t *testing.T) {
	baseline := reportWith(50, 1000, 100)
	current := reportWith(80, 700, 100)

	out := FormatDiff(Compare(baseline, current))

	for _, want := range []string{
		"=== Report Diff ===",
		"Security findings: +0",
		"Regressions:",
		"cpu0_average: 50.00 -> 80.00 (+60.0%, high)",
		"Improvements:",
		"memory_average: 1000.00 -> 700.00 (-30.0%, medium)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output missing %q\n%s", want, out)
		}
	}
}
