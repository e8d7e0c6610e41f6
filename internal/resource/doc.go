// Package resource governs the resources a blob-backed store may consume.
//
// A Controller tracks three budgets:
//
//   - Memory: bytes held by caches (non-blocking, fail-fast)
//   - IO slots: concurrent calls into a blob backend (blocking semaphore)
//   - IO bandwidth: value bytes per second sent to or read from a backend
//     (token bucket)
//
// A nil *Controller is valid and imposes no limits, so callers never need
// to branch on whether governance is configured.
//
//	rc := resource.NewController(resource.Config{
//	    MaxConcurrentIO:    8,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	if err := rc.AcquireIO(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseIO()
//	if err := rc.WaitBytes(ctx, len(value)); err != nil {
//	    return err
//	}
package resource
