package health

import (
	"context"
	"time"
)

type CheckResult struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

type Checker interface {
	Check(ctx context.Context) CheckResult
}

// ProbeRunner drives the readiness endpoint. Until the startup grace deadline
// passes it reports not-ready without touching any dependency, giving the
// database pool time to warm up before the first real probe.
type ProbeRunner struct {
	checkers   []Checker
	timeout    time.Duration
	graceUntil time.Time
}

func NewProbeRunner(timeout, gracePeriod time.Duration, checkers ...Checker) *ProbeRunner {
	if timeout <= 0 {
		timeout = time.Second
	}
	r := &ProbeRunner{checkers: checkers, timeout: timeout}
	if gracePeriod > 0 {
		r.graceUntil = time.Now().Add(gracePeriod)
	}
	return r
}

func (r *ProbeRunner) Ready(ctx context.Context) (bool, []CheckResult) {
	if r == nil {
		return true, nil
	}
	if !r.graceUntil.IsZero() && time.Now().Before(r.graceUntil) {
		return false, []CheckResult{{Name: "startup_grace", Error: "startup grace period active"}}
	}
	ready := true
	results := make([]CheckResult, len(r.checkers))
	for i, c := range r.checkers {
		checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
		results[i] = c.Check(checkCtx)
		cancel()
		ready = ready && results[i].Healthy
	}
	return ready, results
}
