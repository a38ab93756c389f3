package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bimber/services/logger"
)

// AsyncRunner chạy các tác vụ phụ sau khi commit (mail, event, websocket).
// Lỗi chỉ được ghi log, không trả về cho request.
type AsyncRunner struct {
	wg      sync.WaitGroup
	log     logger.Logger
	timeout time.Duration
}

func NewAsyncRunner(log logger.Logger, timeout time.Duration) *AsyncRunner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AsyncRunner{log: log, timeout: timeout}
}

func (r *AsyncRunner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("async task %s panicked: %v", name, rec)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			r.log.Error("async task %s failed: %v", name, err)
		}
	}()
}

// Wait chờ các tác vụ đang chạy, trả lỗi khi ctx hết hạn trước
func (r *AsyncRunner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("async tasks still running: %w", ctx.Err())
	}
}
