// Package snapshot acquires point-in-time system readings. The production
// provider is built on gopsutil; analysis code only ever sees the
// model.Snapshot value, never a live system handle.
package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/ostashkin/syswatch/internal/model"
)

// Provider returns a best-effort system reading on demand. Implementations
// may block briefly (CPU sampling needs a measurement window).
type Provider interface {
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}

// SystemProvider reads live host state via gopsutil.
type SystemProvider struct {
	// CPUInterval is the measurement window for per-core CPU percentages.
	CPUInterval time.Duration

	// TempRoots are the directories inventoried for temporary files.
	// Defaults to platform temp directories when empty.
	TempRoots []string

	// MaxTempFiles caps the inventory size; 0 means unlimited.
	MaxTempFiles int
}

// NewSystemProvider returns a provider with default settings.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{
		CPUInterval: 500 * time.Millisecond,
		TempRoots:   DefaultTempRoots(),
	}
}

// Snapshot gathers one reading. CPU, memory, and network are required:
// failing to read any of them fails the snapshot. Disks, processes,
// temperatures, and temp files are optional extras recorded best-effort.
func (p *SystemProvider) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{TakenAt: time.Now()}

	perCore, err := cpu.PercentWithContext(ctx, p.CPUInterval, true)
	if err != nil {
		return nil, fmt.Errorf("read cpu usage: %w", err)
	}
	snap.CPUUsage = perCore

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("read memory: %w", err)
	}
	snap.MemoryUsed = vm.Used
	snap.MemoryTotal = vm.Total

	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		snap.SwapUsed = swap.Used
	}

	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("read network counters: %w", err)
	}
	snap.Interfaces = make(map[string]model.InterfaceCounters, len(counters))
	for _, c := range counters {
		snap.Interfaces[c.Name] = model.InterfaceCounters{Rx: c.BytesRecv, Tx: c.BytesSent}
		snap.NetworkRx += c.BytesRecv
		snap.NetworkTx += c.BytesSent
	}

	snap.Disks = p.readDisks(ctx)
	snap.Processes = p.readProcesses(ctx)
	snap.Temperatures = p.readTemperatures(ctx)
	snap.TempFiles = CollectTempFiles(p.TempRoots, p.MaxTempFiles)

	return snap, nil
}

// readDisks collects per-mount usage. Unreadable mounts are skipped.
func (p *SystemProvider) readDisks(ctx context.Context) map[string]model.DiskUsage {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil
	}
	disks := make(map[string]model.DiskUsage, len(parts))
	for _, part := range parts {
		usage, err := disk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil {
			continue
		}
		disks[part.Mountpoint] = model.DiskUsage{Total: usage.Total, Used: usage.Used}
	}
	return disks
}

// readProcesses collects the process table, sorted by PID so that
// downstream scans see a deterministic order within one run. Processes
// that vanish mid-read are skipped.
func (p *SystemProvider) readProcesses(ctx context.Context) []model.ProcessSample {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil
	}
	samples := make([]model.ProcessSample, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		sample := model.ProcessSample{Name: name, PID: proc.Pid}
		if pct, err := proc.CPUPercentWithContext(ctx); err == nil {
			sample.CPUPercent = pct
		}
		if mi, err := proc.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			sample.MemoryBytes = mi.RSS
		}
		samples = append(samples, sample)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].PID < samples[j].PID })
	return samples
}

// readTemperatures collects sensor readings. A host without sensors is
// not an error: the map is simply nil.
func (p *SystemProvider) readTemperatures(ctx context.Context) map[string]model.TemperatureReading {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil || len(stats) == 0 {
		return nil
	}
	temps := make(map[string]model.TemperatureReading, len(stats))
	for _, s := range stats {
		temps[s.SensorKey] = model.TemperatureReading{
			Celsius:    s.Temperature,
			Fahrenheit: s.Temperature*9/5 + 32,
		}
	}
	return temps
}

// HostInfo reads the system-information header fields.
func HostInfo(ctx context.Context) model.SystemInfo {
	info := model.SystemInfo{}
	if hi, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = hi.Hostname
		info.OS = fmt.Sprintf("%s %s", hi.Platform, hi.PlatformVersion)
		info.KernelVersion = hi.KernelVersion
	}
	if logical, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.LogicalCores = logical
	}
	if physical, err := cpu.CountsWithContext(ctx, false); err == nil {
		info.PhysicalCores = physical
	}
	return info
}
