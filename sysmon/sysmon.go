// Package sysmon samples CPU, memory, and disk usage on an interval for
// the status bar, the supplemented "resource sampler" named in the event
// loop design (spec.md §4.11) and grounded on the original implementation's
// system-monitor component.
package sysmon

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Sample is one reading. CPUPercent and DiskPercent are -1 and MemUsedMB
// is 0 when that reading is unavailable on the host.
type Sample struct {
	CPUPercent  float64
	MemUsedMB   uint64
	DiskPercent float64
}

// Sampler takes readings on a fixed interval and exposes the latest one.
// It never blocks the caller: Tick only samples if the interval elapsed.
type Sampler struct {
	interval time.Duration
	path     string // filesystem path to report disk usage for
	last     time.Time
	prevIdle uint64
	prevTot  uint64
	sample   Sample
}

func New(interval time.Duration, watchPath string) *Sampler {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Sampler{interval: interval, path: watchPath}
}

// Tick samples if the configured interval has elapsed since the last
// sample; it is cheap to call every main-loop iteration.
func (s *Sampler) Tick(now time.Time) {
	if !s.last.IsZero() && now.Sub(s.last) < s.interval {
		return
	}
	s.last = now
	s.sample.CPUPercent = s.sampleCPU()
	s.sample.MemUsedMB = s.sampleMem()
	s.sample.DiskPercent = s.sampleDisk()
}

// Summary renders the latest sample for the status bar; empty if nothing
// has been sampled yet or every reading failed.
func (s *Sampler) Summary() string {
	if s.last.IsZero() {
		return ""
	}
	var parts []string
	if s.sample.CPUPercent >= 0 {
		parts = append(parts, fmt.Sprintf("CPU %.0f%%", s.sample.CPUPercent))
	}
	if s.sample.MemUsedMB > 0 {
		parts = append(parts, fmt.Sprintf("Mem %dM", s.sample.MemUsedMB))
	}
	if s.sample.DiskPercent >= 0 {
		parts = append(parts, fmt.Sprintf("Disk %.0f%%", s.sample.DiskPercent))
	}
	return strings.Join(parts, " │ ")
}

// sampleCPU reads /proc/stat's aggregate cpu line and returns percent busy
// since the previous sample. Returns -1 when /proc is unavailable (non-Linux).
func (s *Sampler) sampleCPU() float64 {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return -1
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return -1
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 5 || fields[0] != "cpu" {
		return -1
	}
	var total, idle uint64
	for i, field := range fields[1:] {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		total += v
		if i == 3 { // idle column
			idle = v
		}
	}

	var pct float64
	if s.prevTot != 0 {
		deltaTotal := float64(total - s.prevTot)
		deltaIdle := float64(idle - s.prevIdle)
		if deltaTotal > 0 {
			pct = (1 - deltaIdle/deltaTotal) * 100
		}
	}
	s.prevTot, s.prevIdle = total, idle
	return pct
}

// sampleMem reads resident set size for the current process from
// /proc/self/statm, in megabytes. Returns 0 when unavailable.
func (s *Sampler) sampleMem() uint64 {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0
	}
	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	pageSize := uint64(os.Getpagesize())
	return pages * pageSize / (1024 * 1024)
}

// sampleDisk reports percent used on the filesystem containing s.path.
func (s *Sampler) sampleDisk() float64 {
	if s.path == "" {
		return -1
	}
	var stat syscall.Statfs_t
	if err := syscall.Statfs(s.path, &stat); err != nil {
		return -1
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bfree * uint64(stat.Bsize)
	if total == 0 {
		return -1
	}
	used := total - free
	return float64(used) / float64(total) * 100
}
