package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AIforimpact22/HR-amas/internal/middleware"
	"github.com/AIforimpact22/HR-amas/internal/shared/connection"
)

// BuildApp connects the backing stores, runs migrations and mounts every
// module on the router.
func BuildApp(router *gin.Engine) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, 5)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := runMigrations(gormDB); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())
	// Coarse per-IP backstop in front of the per-user limits on the routes.
	router.Use(middleware.RateLimitByIP(50, 100))

	// Register Modules & Routes
	return registerModules(router, sqlDB, gormDB, rdb, zap.L())
}
