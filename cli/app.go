package cli

import (
	"context"
	"time"

	"bimber/config"
	"bimber/jobs"
	"bimber/middleware"
	"bimber/routes"
	"bimber/services"
	"bimber/services/logger"
	"bimber/services/mail"
	"bimber/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// app giữ các thành phần cần đóng khi tắt server
type app struct {
	cfg     *config.Config
	log     *logger.ZapLogger
	db      *gorm.DB
	rdb     *redis.Client
	events  notification.Publisher
	async   *services.AsyncRunner
	limiter *middleware.RateLimiter
	router  *gin.Engine
	melody  *melody.Melody
	cron    *cron.Cron
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.ZapLogger, autoMigrate bool) (*app, error) {
	a := &app{cfg: cfg, log: log, events: notification.NopPublisher{}}

	var err error
	if a.db, err = config.ConnectDB(cfg); err != nil {
		return nil, err
	}
	if autoMigrate {
		if err := config.Migrate(a.db); err != nil {
			a.close(ctx)
			return nil, err
		}
	}

	if a.rdb, err = config.ConnectRedis(ctx, cfg); err != nil {
		a.close(ctx)
		return nil, err
	}
	if a.rdb == nil {
		log.Info("REDIS_ADDR not set, caching disabled")
	}

	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	if cld == nil {
		log.Info("CLOUDINARY_URL not set, picture uploads disabled")
	}

	if cfg.NATSURL != "" {
		pub, err := notification.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			a.close(ctx)
			return nil, err
		}
		a.events = pub
	}

	var mailer mail.Sender = mail.NewLogSender(log)
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPSender(mail.SMTPOptions{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	if a.router, a.melody, a.cron, err = config.InitApp(cfg, log); err != nil {
		a.close(ctx)
		return nil, err
	}
	a.async = services.NewAsyncRunner(log, 30*time.Second)
	a.limiter = middleware.NewRateLimiter(middleware.RateLimiterOptions{
		Capacity:    cfg.RateLimit.Capacity,
		RefillEvery: cfg.RateLimit.RefillEvery,
		IdleTTL:     cfg.RateLimit.IdleTTL,
	})

	cache := services.NewCache(a.rdb)
	states := services.NewStateMatcher()
	pictures := services.NewPictureStore(cld)
	notifier := notification.NewMelodyService(a.melody)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)

	authService := services.NewAuthService(services.AuthServiceOptions{
		DB:       a.db,
		Logger:   log.With("service", "auth"),
		Tokens:   tokens,
		Mailer:   mailer,
		Google:   services.NewGoogleVerifier(cfg.GoogleClientID),
		Async:    a.async,
		BaseURL:  cfg.AppBaseURL,
		AdminKey: cfg.AdminRegistrationKey,
	})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		DB:       a.db,
		Logger:   log.With("service", "booking"),
		Cache:    cache,
		CacheTTL: cfg.CacheTTL,
		Mailer:   mailer,
		Events:   a.events,
		Notifier: notifier,
		Async:    a.async,
	})

	routes.SetupRoutes(a.router, routes.Dependencies{
		Tokens: tokens,
		Auth:   authService,
		Users: services.NewUserService(services.UserServiceOptions{
			DB:       a.db,
			Logger:   log.With("service", "user"),
			Notifier: notifier,
			Async:    a.async,
		}),
		Payments: services.NewPaymentService(a.db, log.With("service", "payment")),
		Hotels: services.NewHotelService(services.HotelServiceOptions{
			DB:       a.db,
			Logger:   log.With("service", "hotel"),
			Cache:    cache,
			CacheTTL: cfg.CacheTTL,
			States:   states,
			Pictures: pictures,
		}),
		Rooms: services.NewRoomService(services.RoomServiceOptions{
			DB:       a.db,
			Logger:   log.With("service", "room"),
			Cache:    cache,
			States:   states,
			Pictures: pictures,
		}),
		Bookings: bookingService,
		Comments: services.NewCommentService(services.CommentServiceOptions{
			DB:     a.db,
			Logger: log.With("service", "comment"),
		}),
		Melody:  a.melody,
		Limiter: a.limiter,
		Logger:  log,
	})

	if err := jobs.InitCronJobs(a.cron, cfg.AvailabilitySweepSpec, bookingService, authService, log.With("component", "cron")); err != nil {
		a.close(ctx)
		return nil, err
	}

	return a, nil
}

// close dừng cron, chờ tác vụ nền rồi đóng kết nối
func (a *app) close(ctx context.Context) {
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}
	if a.async != nil {
		if err := a.async.Wait(ctx); err != nil {
			a.log.Error("background tasks did not finish: %v", err)
		}
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.melody != nil {
		_ = a.melody.Close()
	}
	if err := a.events.Close(); err != nil {
		a.log.Error("close event publisher: %v", err)
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
