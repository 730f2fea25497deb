// Package trend derives usage summaries from the sample history. Every
// function here is a pure transformation over its inputs: nothing is
// cached, and invariant violations are hard errors rather than zeroed
// results.
package trend

import (
	"errors"
	"fmt"

	"github.com/ostashkin/syswatch/internal/history"
	"github.com/ostashkin/syswatch/internal/model"
)

var (
	// ErrEmptyHistory is returned when a trend is requested with no samples.
	ErrEmptyHistory = errors.New("trend: empty sample history")

	// ErrNoCores is returned when the first snapshot carries no CPU readings.
	ErrNoCores = errors.New("trend: snapshot has no per-core cpu readings")

	// ErrShortHistory is returned when a rate needs at least two samples.
	ErrShortHistory = errors.New("trend: need at least 2 samples")
)

// AnalyzeCPUTrend computes one UsageTrend per core over the whole history,
// in core-index order. Every snapshot must report the same number of cores
// as the first; a mismatch is a hard error, never a silent truncation.
func AnalyzeCPUTrend(h *history.History) ([]model.UsageTrend, error) {
	if h.Len() == 0 {
		return nil, ErrEmptyHistory
	}
	cores := len(h.At(0).CPUUsage)
	if cores == 0 {
		return nil, ErrNoCores
	}
	for i := 0; i < h.Len(); i++ {
		if n := len(h.At(i).CPUUsage); n != cores {
			return nil, fmt.Errorf("trend: sample %d has %d cores, first has %d", i, n, cores)
		}
	}

	trends := make([]model.UsageTrend, 0, cores)
	values := make([]float64, h.Len())
	for core := 0; core < cores; core++ {
		for i := 0; i < h.Len(); i++ {
			values[i] = h.At(i).CPUUsage[core]
		}
		trends = append(trends, model.UsageTrend{
			Average: mean(values),
			Peak:    max64(values),
			Pattern: UsagePattern(values),
		})
	}
	return trends, nil
}

// AnalyzeMemoryTrend summarizes used-memory over the history. The average
// is the integer-truncated mean of the byte counts.
func AnalyzeMemoryTrend(h *history.History) (model.UsageTrend, error) {
	if h.Len() == 0 {
		return model.UsageTrend{}, ErrEmptyHistory
	}

	var sum, peak uint64
	values := make([]float64, h.Len())
	for i := 0; i < h.Len(); i++ {
		used := h.At(i).MemoryUsed
		sum += used
		if used > peak {
			peak = used
		}
		values[i] = float64(used)
	}

	return model.UsageTrend{
		Average: float64(sum / uint64(h.Len())),
		Peak:    float64(peak),
		Pattern: UsagePattern(values),
	}, nil
}

// AnalyzeNetworkTrend computes rx/tx throughput in bytes per second from
// the difference of the first and last cumulative counters over the
// history's wall-clock span. It needs at least two samples and a positive
// span. A counter that went backwards (reset) contributes a zero rate.
func AnalyzeNetworkTrend(h *history.History) (model.NetworkTrend, error) {
	if h.Len() < 2 {
		return model.NetworkTrend{}, ErrShortHistory
	}
	elapsed := h.Span().Seconds()
	if elapsed <= 0 {
		return model.NetworkTrend{}, fmt.Errorf("trend: non-positive sample span %.3fs", elapsed)
	}

	first, last := h.At(0), h.At(h.Len()-1)
	return model.NetworkTrend{
		RxRate: counterDelta(first.NetworkRx, last.NetworkRx) / elapsed,
		TxRate: counterDelta(first.NetworkTx, last.NetworkTx) / elapsed,
	}, nil
}

func counterDelta(first, last uint64) float64 {
	if last < first {
		return 0
	}
	return float64(last - first)
}

// UsagePattern scores a value series by combining relative volatility,
// directional trend, and average-to-peak ratio. The result is a heuristic
// in roughly [0,1] but is not mathematically bounded; callers classify it
// with Classify rather than treating it as a probability.
func UsagePattern(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	maxV := max64(values)
	minV := min64(values)
	avg := mean(values)

	volatility := 0.0
	if maxV != minV && avg != 0 {
		volatility = (maxV - minV) / avg
	}

	// Signed step count: +1 per rise, -1 per fall, over n-1 pairs.
	trend := 0.0
	if len(values) > 1 {
		for i := 1; i < len(values); i++ {
			switch {
			case values[i] > values[i-1]:
				trend++
			case values[i] < values[i-1]:
				trend--
			}
		}
		trend /= float64(len(values) - 1)
	}

	ratio := 0.0
	if maxV != 0 {
		ratio = avg / maxV
	}

	if trend < 0 {
		trend = -trend
	}
	return (volatility + trend + ratio) / 3
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func max64(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func min64(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
