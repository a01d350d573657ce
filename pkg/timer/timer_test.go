package timer

import (
	"testing"
	"time"
)

type pingMsg struct{ gen uint64 }

func TestSlotFireOnlyLatestGeneration(t *testing.T) {
	var s Slot
	first := s.Arm()
	second := s.Arm()

	if s.Fire(first) {
		t.Error("superseded generation should not fire")
	}
	if !s.Fire(second) {
		t.Error("latest generation should fire")
	}
	if s.Fire(second) {
		t.Error("a slot should fire at most once per arm")
	}
}

func TestSlotCancelMakesPendingInert(t *testing.T) {
	var s Slot
	gen := s.Arm()
	if !s.Pending() {
		t.Fatal("expected pending after Arm")
	}

	s.Cancel()

	if s.Pending() {
		t.Error("expected no pending timer after Cancel")
	}
	if s.Fire(gen) {
		t.Error("cancelled timer must not fire")
	}
}

func TestZeroSlotNeverFires(t *testing.T) {
	var s Slot
	if s.Fire(0) {
		t.Error("idle slot should not fire")
	}
}

func TestRecorderReturnsMessageImmediately(t *testing.T) {
	var r Recorder
	cmd := r.After(3*time.Second, pingMsg{gen: 7})
	if cmd == nil {
		t.Fatal("expected a command")
	}

	msg, ok := cmd().(pingMsg)
	if !ok || msg.gen != 7 {
		t.Errorf("cmd() = %#v, want pingMsg{gen: 7}", msg)
	}

	last, ok := r.Last()
	if !ok {
		t.Fatal("expected a recorded call")
	}
	if last.Delay != 3*time.Second {
		t.Errorf("Delay = %v, want 3s", last.Delay)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestTickSchedulerReturnsCommand(t *testing.T) {
	// tea.Tick blocks for the delay when executed, so only the shape is checked.
	if cmd := (TickScheduler{}).After(time.Millisecond, pingMsg{}); cmd == nil {
		t.Fatal("expected a non-nil command")
	}
}
