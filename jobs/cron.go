package jobs

import (
	"context"
	"time"

	"bimber/services/logger"

	"github.com/robfig/cron/v3"
)

// BookingCompleter hoàn tất các booking đã hết hạn và trả phòng
type BookingCompleter interface {
	CompleteEndedBookings(ctx context.Context) (int, error)
}

// TokenCleaner xóa token xác thực đã hết hạn
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

const jobTimeout = 2 * time.Minute

// InitCronJobs đăng ký job quét booking theo biểu thức cron sweepSpec và job dọn token lúc 3h mỗi ngày
func InitCronJobs(c *cron.Cron, sweepSpec string, bookings BookingCompleter, tokens TokenCleaner, log logger.Logger) error {
	if _, err := c.AddFunc(sweepSpec, SweepBookings(bookings, log)); err != nil {
		return err
	}
	if _, err := c.AddFunc("0 3 * * *", CleanupTokens(tokens, log)); err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized, availability sweep %q", sweepSpec)
	return nil
}

// SweepBookings chuyển booking đã trả phòng sang COMPLETED và mở lại phòng
func SweepBookings(bookings BookingCompleter, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := bookings.CompleteEndedBookings(ctx)
		if err != nil {
			log.Error("availability sweep failed after %d bookings: %v", n, err)
			return
		}
		if n > 0 {
			log.Info("availability sweep completed %d bookings", n)
		}
	}
}

func CleanupTokens(tokens TokenCleaner, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := tokens.CleanupExpiredTokens(ctx)
		if err != nil {
			log.Error("token cleanup failed: %v", err)
			return
		}
		log.Debug("token cleanup removed %d tokens", n)
	}
}
