package health

import (
	"context"
	"testing"
	"time"
)

type staticChecker struct {
	result CheckResult
}

func (c staticChecker) Check(ctx context.Context) CheckResult { return c.result }

func TestProbeRunnerAllHealthy(t *testing.T) {
	runner := NewProbeRunner(time.Second, 0,
		staticChecker{CheckResult{Name: "database", Healthy: true}},
		staticChecker{CheckResult{Name: "cache", Healthy: true}},
	)

	ready, results := runner.Ready(context.Background())
	if !ready {
		t.Fatal("expected ready")
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestProbeRunnerUnhealthyDependency(t *testing.T) {
	runner := NewProbeRunner(time.Second, 0,
		staticChecker{CheckResult{Name: "database", Healthy: false, Error: "dial timeout"}},
	)

	ready, results := runner.Ready(context.Background())
	if ready {
		t.Fatal("expected not ready")
	}
	if len(results) != 1 || results[0].Error != "dial timeout" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestProbeRunnerStartupGrace(t *testing.T) {
	runner := NewProbeRunner(time.Second, time.Hour,
		staticChecker{CheckResult{Name: "database", Healthy: true}},
	)

	ready, results := runner.Ready(context.Background())
	if ready {
		t.Fatal("expected not ready during grace period")
	}
	if len(results) != 1 || results[0].Name != "startup_grace" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestProbeRunnerNilIsReady(t *testing.T) {
	var runner *ProbeRunner
	ready, results := runner.Ready(context.Background())
	if !ready || results != nil {
		t.Fatalf("nil runner must report ready, got ready=%v results=%+v", ready, results)
	}
}
