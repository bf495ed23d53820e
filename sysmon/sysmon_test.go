package sysmon

import (
	"strings"
	"testing"
	"time"
)

func TestNewClampsNonPositiveInterval(t *testing.T) {
	s := New(0, "")
	if s.interval != 2*time.Second {
		t.Fatalf("expected default 2s interval, got %v", s.interval)
	}
}

func TestSummaryEmptyBeforeFirstTick(t *testing.T) {
	s := New(time.Second, "")
	if got := s.Summary(); got != "" {
		t.Fatalf("expected empty summary before any tick, got %q", got)
	}
}

func TestTickRespectsInterval(t *testing.T) {
	s := New(time.Minute, "/")
	base := time.Now()
	s.Tick(base)
	first := s.last

	s.Tick(base.Add(time.Second))
	if s.last != first {
		t.Fatalf("expected Tick to be a no-op before the interval elapses")
	}

	s.Tick(base.Add(2 * time.Minute))
	if s.last == first {
		t.Fatalf("expected Tick to resample once the interval elapses")
	}
}

func TestSummaryIncludesDiskOnLinuxHost(t *testing.T) {
	s := New(time.Second, "/")
	s.Tick(time.Now())
	got := s.Summary()
	if got == "" {
		t.Fatalf("expected a non-empty summary after a tick")
	}
	if !strings.Contains(got, "Disk ") {
		t.Fatalf("expected the summary to include a Disk reading for \"/\", got %q", got)
	}
}

func TestSampleDiskEmptyPathReportsUnavailable(t *testing.T) {
	s := New(time.Second, "")
	if got := s.sampleDisk(); got != -1 {
		t.Fatalf("expected -1 disk percent for an empty watch path, got %v", got)
	}
}
