package trend

import (
	"math"
	"testing"
	"time"

	"github.com/ostashkin/syswatch/internal/history"
	"github.com/ostashkin/syswatch/internal/model"
)

// floatEq checks whether two float64 values are equal within a tolerance.
func floatEq(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// histFrom builds a history with the given per-snapshot CPU readings,
// spaced 10 seconds apart.
func histFrom(t *testing.T, cpuSeries [][]float64) *history.History {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &history.History{}
	for i, cores := range cpuSeries {
		h.Append(&model.Snapshot{
			TakenAt:  base.Add(time.Duration(i) * 10 * time.Second),
			CPUUsage: cores,
		})
	}
	return h
}

// --- UsagePattern ---

func TestUsagePatternEmpty(t *testing.T) {
	if got := UsagePattern(nil); got != 0 {
		t.Errorf("UsagePattern(nil) = %v, want 0", got)
	}
	if got := UsagePattern([]float64{}); got != 0 {
		t.Errorf("UsagePattern([]) = %v, want 0", got)
	}
}

func TestUsagePatternSingleValue(t *testing.T) {
	// One value: no volatility, no trend, avg/max = 1 -> 1/3.
	got := UsagePattern([]float64{42})
	want := 1.0 / 3.0
	if !floatEq(got, want, 1e-9) {
		t.Errorf("UsagePattern([42]) = %v, want %v", got, want)
	}
}

func TestUsagePatternAllZero(t *testing.T) {
	// max == 0 must not divide; everything contributes 0.
	if got := UsagePattern([]float64{0, 0, 0}); got != 0 {
		t.Errorf("UsagePattern zeros = %v, want 0", got)
	}
}

func TestUsagePatternConstantSeries(t *testing.T) {
	got := UsagePattern([]float64{50, 50, 50})
	want := 1.0 / 3.0
	if !floatEq(got, want, 1e-9) {
		t.Errorf("UsagePattern constant = %v, want %v", got, want)
	}
}

func TestUsagePatternRisingSeries(t *testing.T) {
	// [10,20,30]: volatility (30-10)/20 = 1, trend (1+1)/2 = 1,
	// ratio 20/30. Score = (1 + 1 + 2/3) / 3.
	got := UsagePattern([]float64{10, 20, 30})
	want := (1.0 + 1.0 + 20.0/30.0) / 3.0
	if !floatEq(got, want, 1e-9) {
		t.Errorf("UsagePattern rising = %v, want %v", got, want)
	}
}

func TestUsagePatternFallingMatchesRising(t *testing.T) {
	// The trend term is absolute: a mirror-image fall scores the same.
	rising := UsagePattern([]float64{10, 20, 30})
	falling := UsagePattern([]float64{30, 20, 10})
	// Averages and extremes match, only direction differs.
	if !floatEq(rising, falling, 1e-9) {
		t.Errorf("rising %v != falling %v", rising, falling)
	}
}

// --- AnalyzeCPUTrend ---

func TestAnalyzeCPUTrendPerCore(t *testing.T) {
	h := histFrom(t, [][]float64{
		{10, 90},
		{30, 70},
	})

	trends, err := AnalyzeCPUTrend(h)
	if err != nil {
		t.Fatalf("AnalyzeCPUTrend: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("got %d trends, want 2", len(trends))
	}

	if !floatEq(trends[0].Average, 20, 1e-9) {
		t.Errorf("core 0 average = %v, want 20", trends[0].Average)
	}
	if !floatEq(trends[0].Peak, 30, 1e-9) {
		t.Errorf("core 0 peak = %v, want 30", trends[0].Peak)
	}
	if !floatEq(trends[1].Average, 80, 1e-9) {
		t.Errorf("core 1 average = %v, want 80", trends[1].Average)
	}
	if !floatEq(trends[1].Peak, 90, 1e-9) {
		t.Errorf("core 1 peak = %v, want 90", trends[1].Peak)
	}

	for core, tr := range trends {
		if tr.Peak < tr.Average || tr.Average < 0 {
			t.Errorf("core %d: want peak >= average >= 0, got peak=%v average=%v",
				core, tr.Peak, tr.Average)
		}
	}
}

func TestAnalyzeCPUTrendEmptyHistory(t *testing.T) {
	if _, err := AnalyzeCPUTrend(&history.History{}); err != ErrEmptyHistory {
		t.Errorf("got %v, want ErrEmptyHistory", err)
	}
}

func TestAnalyzeCPUTrendNoCores(t *testing.T) {
	h := histFrom(t, [][]float64{{}})
	if _, err := AnalyzeCPUTrend(h); err != ErrNoCores {
		t.Errorf("got %v, want ErrNoCores", err)
	}
}

func TestAnalyzeCPUTrendMismatchedCores(t *testing.T) {
	h := histFrom(t, [][]float64{
		{10, 20},
		{10, 20, 30},
	})
	if _, err := AnalyzeCPUTrend(h); err == nil {
		t.Error("want error on mismatched core counts, got nil")
	}
}

// --- AnalyzeMemoryTrend ---

func TestAnalyzeMemoryTrendTruncatedMean(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &history.History{}
	for i, used := range []uint64{10, 11} {
		h.Append(&model.Snapshot{
			TakenAt:    base.Add(time.Duration(i) * time.Second),
			CPUUsage:   []float64{1},
			MemoryUsed: used,
		})
	}

	tr, err := AnalyzeMemoryTrend(h)
	if err != nil {
		t.Fatalf("AnalyzeMemoryTrend: %v", err)
	}
	// (10+11)/2 truncates to 10.
	if tr.Average != 10 {
		t.Errorf("average = %v, want 10", tr.Average)
	}
	if tr.Peak != 11 {
		t.Errorf("peak = %v, want 11", tr.Peak)
	}
}

func TestAnalyzeMemoryTrendEmptyHistory(t *testing.T) {
	if _, err := AnalyzeMemoryTrend(&history.History{}); err != ErrEmptyHistory {
		t.Errorf("got %v, want ErrEmptyHistory", err)
	}
}

// --- AnalyzeNetworkTrend ---

func TestAnalyzeNetworkTrendRates(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &history.History{}
	h.Append(&model.Snapshot{TakenAt: base, NetworkRx: 100, NetworkTx: 50})
	h.Append(&model.Snapshot{TakenAt: base.Add(10 * time.Second), NetworkRx: 300, NetworkTx: 150})

	tr, err := AnalyzeNetworkTrend(h)
	if err != nil {
		t.Fatalf("AnalyzeNetworkTrend: %v", err)
	}
	// Counter deltas over the span: (300-100)/10 and (150-50)/10.
	if !floatEq(tr.RxRate, 20, 1e-9) {
		t.Errorf("rx rate = %v, want 20", tr.RxRate)
	}
	if !floatEq(tr.TxRate, 10, 1e-9) {
		t.Errorf("tx rate = %v, want 10", tr.TxRate)
	}
}

func TestAnalyzeNetworkTrendCounterReset(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &history.History{}
	h.Append(&model.Snapshot{TakenAt: base, NetworkRx: 500})
	h.Append(&model.Snapshot{TakenAt: base.Add(10 * time.Second), NetworkRx: 100})

	tr, err := AnalyzeNetworkTrend(h)
	if err != nil {
		t.Fatalf("AnalyzeNetworkTrend: %v", err)
	}
	if tr.RxRate != 0 {
		t.Errorf("rx rate after reset = %v, want 0", tr.RxRate)
	}
}

func TestAnalyzeNetworkTrendShortHistory(t *testing.T) {
	h := &history.History{}
	h.Append(&model.Snapshot{TakenAt: time.Now(), NetworkRx: 100})
	if _, err := AnalyzeNetworkTrend(h); err != ErrShortHistory {
		t.Errorf("got %v, want ErrShortHistory", err)
	}
}

func TestAnalyzeNetworkTrendZeroSpan(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &history.History{}
	h.Append(&model.Snapshot{TakenAt: at})
	h.Append(&model.Snapshot{TakenAt: at})
	if _, err := AnalyzeNetworkTrend(h); err == nil {
		t.Error("want error on zero time span, got nil")
	}
}
