package main

import (
	"github.com/collabconnect/backend/internal/config"
	"github.com/collabconnect/backend/internal/handlers"
	"github.com/collabconnect/backend/internal/models"
	"github.com/collabconnect/backend/internal/services"
	"github.com/collabconnect/backend/internal/utils"
	"github.com/collabconnect/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// appServices holds the shared dependencies the route layer needs: the
// database handle, config, long-lived services and the maintenance cron.
type appServices struct {
	cfg              *config.Config
	db               *gorm.DB
	systemLogService *services.SystemLogService
	authService      *services.AuthService
	authHandler      *handlers.AuthHandler
	cron             *cron.Cron
}

// bootstrap initializes database, services and the maintenance scheduler.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	db, err := models.Open(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	systemLogService := services.NewSystemLogService(db)
	authService := services.NewAuthService(db, &cfg.LDAP, &cfg.JWT)

	if err := authService.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	// Nightly maintenance: audit-log retention and expired refresh tokens.
	c := cron.New()
	retentionDays := cfg.Log.RetentionDays
	c.AddFunc("@daily", func() {
		systemLogService.RunRetentionCleanup(retentionDays)
	})
	c.AddFunc("@daily", func() {
		n, err := authService.CleanupExpiredRefreshTokens()
		if err != nil {
			logger.Error().Err(err).Msg("refresh token cleanup failed")
			return
		}
		if n > 0 {
			logger.Info().Int64("removed", n).Msg("expired refresh tokens purged")
		}
	})
	c.Start()

	return &appServices{
		cfg:              cfg,
		db:               db,
		systemLogService: systemLogService,
		authService:      authService,
		authHandler:      handlers.NewAuthHandler(db, cfg),
		cron:             c,
	}
}

// shutdown stops background work before the process exits.
func (s *appServices) shutdown() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Scheduler stopped")
}
