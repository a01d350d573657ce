package collectors

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(NewMockCollector("network", time.Second)); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := reg.Register(NewMockCollector("network", time.Second)); err == nil {
		t.Fatal("expected error for duplicate name")
	}
}

func TestRegistryListSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"tasks", "network", "tailscale"} {
		if err := reg.Register(NewMockCollector(name, time.Second)); err != nil {
			t.Fatal(err)
		}
	}
	got := reg.List()
	want := []string{"network", "tailscale", "tasks"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunnerDeliversInitialSample(t *testing.T) {
	reg := NewRegistry()
	mock := NewMockCollector("network", time.Hour, WithData(true))
	if err := reg.Register(mock); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(reg, nil)
	r.Start(context.Background())
	defer r.Stop()

	select {
	case u := <-r.Updates():
		if u.Source != "network" {
			t.Errorf("Source = %q, want network", u.Source)
		}
		if v, ok := u.Data.(bool); !ok || !v {
			t.Errorf("Data = %v, want true", u.Data)
		}
		if u.Error != nil {
			t.Errorf("Error = %v, want nil", u.Error)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no update delivered")
	}
}

func TestRunnerRecordsErrors(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	if err := reg.Register(NewMockCollector("tailscale", time.Hour, WithError(boom))); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(reg, nil)
	r.Start(context.Background())

	u := <-r.Updates()
	r.Stop()

	if !errors.Is(u.Error, boom) {
		t.Fatalf("Error = %v, want boom", u.Error)
	}
	st, ok := reg.Status("tailscale")
	if !ok {
		t.Fatal("status missing")
	}
	if st.Healthy() {
		t.Error("status should be unhealthy after error")
	}
	if st.RunCount != 1 || st.ErrorCount != 1 {
		t.Errorf("RunCount=%d ErrorCount=%d, want 1/1", st.RunCount, st.ErrorCount)
	}
}

func TestRunnerStopClosesUpdates(t *testing.T) {
	reg := NewRegistry()
	block := make(chan struct{})
	mock := NewMockCollector("slow", time.Hour, WithCollectFunc(func(ctx context.Context) (interface{}, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-block:
			return nil, nil
		}
	}))
	if err := reg.Register(mock); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(reg, nil)
	r.Start(context.Background())
	r.Stop()

	for range r.Updates() {
		t.Error("no update expected from a cancelled collector")
	}
	close(block)
}

func TestRunnerStopIdempotent(t *testing.T) {
	r := NewRunner(NewRegistry(), nil)
	r.Stop()
	r.Stop()
	r.Start(context.Background())

	if _, open := <-r.Updates(); open {
		t.Fatal("updates should be closed")
	}
}

func TestCollectOnce(t *testing.T) {
	reg := NewRegistry()
	mock := NewMockCollector("tasks", time.Hour, WithData(3))
	if err := reg.Register(mock); err != nil {
		t.Fatal(err)
	}
	r := NewRunner(reg, nil)
	defer r.Stop()

	got, err := r.CollectOnce(context.Background(), "tasks")
	if err != nil {
		t.Fatalf("CollectOnce: %v", err)
	}
	if got != 3 {
		t.Errorf("CollectOnce = %v, want 3", got)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount())
	}

	if _, err := r.CollectOnce(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown collector")
	}
}
