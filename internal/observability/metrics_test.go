package observability

import (
	"context"
	"testing"
	"time"
)

// Record helpers must be safe to call before InitMetrics has run; the handlers
// and repository call them unconditionally.
func TestRecordHelpersBeforeInitDoNotPanic(t *testing.T) {
	instrumentsMu.Lock()
	saved := instruments
	instruments = nil
	instrumentsMu.Unlock()
	t.Cleanup(func() {
		instrumentsMu.Lock()
		instruments = saved
		instrumentsMu.Unlock()
	})

	ctx := context.Background()
	RecordProductOperation(ctx, "create", "success", 5*time.Millisecond)
	RecordRepositoryOperation(ctx, "product", "replace", "conflict")
	RecordMiddlewareValidationEvent(ctx, "cors", "preflight")
	RecordHealthCheckResult(ctx, "database", "healthy")
	RecordHealthCheckDuration(ctx, "database", time.Millisecond)
}
