// Package history accumulates snapshots over one monitoring run. The
// history is written by a single sampler and read only after sampling
// completes, so no locking is needed.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ostashkin/syswatch/internal/model"
)

// ErrEmpty is returned by accessors on a history with no samples.
var ErrEmpty = errors.New("history: no samples collected")

// History is an append-only, time-ordered sequence of snapshots.
type History struct {
	samples []*model.Snapshot
}

// Append adds a snapshot. Snapshots must arrive in collection order.
func (h *History) Append(s *model.Snapshot) {
	h.samples = append(h.samples, s)
}

// Len returns the number of collected samples.
func (h *History) Len() int { return len(h.samples) }

// At returns the sample at position i.
func (h *History) At(i int) *model.Snapshot { return h.samples[i] }

// Samples returns the underlying ordered sequence. Callers must treat it
// as read-only.
func (h *History) Samples() []*model.Snapshot { return h.samples }

// Latest returns the most recent snapshot.
func (h *History) Latest() (*model.Snapshot, error) {
	if len(h.samples) == 0 {
		return nil, ErrEmpty
	}
	return h.samples[len(h.samples)-1], nil
}

// Span returns the wall-clock duration between the first and last sample.
func (h *History) Span() time.Duration {
	if len(h.samples) < 2 {
		return 0
	}
	return h.samples[len(h.samples)-1].TakenAt.Sub(h.samples[0].TakenAt)
}

// Progress receives sampling status lines. Satisfied by output.Progress.
type Progress interface {
	Log(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Sampler collects a fixed number of snapshots at a fixed interval.
type Sampler struct {
	Provider interface {
		Snapshot(ctx context.Context) (*model.Snapshot, error)
	}
	Interval time.Duration
	Samples  int
	Progress Progress
}

// Run collects the configured number of snapshots, sleeping Interval
// between them. Cancelling the context interrupts the sleep immediately
// and returns the partial history along with the context error. A failed
// snapshot read aborts the run: the monitor cannot proceed without data.
func (s *Sampler) Run(ctx context.Context) (*History, error) {
	h := &History{}

	for i := 0; i < s.Samples; i++ {
		if err := ctx.Err(); err != nil {
			return h, err
		}

		snap, err := s.Provider.Snapshot(ctx)
		if err != nil {
			return h, fmt.Errorf("sample %d/%d: %w", i+1, s.Samples, err)
		}
		h.Append(snap)
		if s.Progress != nil {
			s.Progress.Log("  sample %d/%d collected", i+1, s.Samples)
			s.Progress.Debug("    %d cores, %d processes, rx=%d tx=%d",
				len(snap.CPUUsage), len(snap.Processes), snap.NetworkRx, snap.NetworkTx)
		}

		if i == s.Samples-1 {
			break
		}
		select {
		case <-time.After(s.Interval):
		case <-ctx.Done():
			return h, ctx.Err()
		}
	}
	return h, nil
}
