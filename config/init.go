package config

import (
	"fmt"

	"bimber/middleware"
	"bimber/services/logger"
	"bimber/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp tạo router gin với chuỗi middleware chung, melody cho websocket và cron scheduler
func InitApp(cfg *Config, log *logger.ZapLogger) (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validator.RegisterBindingRules(); err != nil {
		return nil, nil, nil, fmt.Errorf("register binding rules: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log.Desugar()))
	router.Use(middleware.ErrorHandler(log))

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middleware.HeaderRequestID, "X-Admin-Key")
	configCors.AddExposeHeaders(middleware.HeaderRequestID)
	configCors.AllowCredentials = true
	if len(cfg.CORSOrigins) > 0 {
		configCors.AllowOrigins = cfg.CORSOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)

	m := melody.New()
	c := cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger)))

	return router, m, c, nil
}
