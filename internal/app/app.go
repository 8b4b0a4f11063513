package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lifetrackhq/lifetrack/internal/config"
	"github.com/lifetrackhq/lifetrack/internal/db"
	"github.com/lifetrackhq/lifetrack/internal/service"
	"github.com/lifetrackhq/lifetrack/internal/storage"
)

// App holds all application dependencies
type App struct {
	Config *config.Config
	DB     *sqlx.DB

	GoalService     *service.GoalService
	AuthService     *service.AuthService
	EmailService    *service.EmailService
	ReminderService *service.ReminderService
	TemplateService *service.TemplateService
	BackupService   *service.BackupService
}

// New creates the application, connecting the database and running
// pending migrations before constructing services.
func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	goalService := service.NewGoalService(database)
	authService := service.NewAuthService(cfg.AuthPasswordHash, cfg.JWTSecret, cfg.JWTExpiry)
	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppName, cfg.IsDevelopment())
	reminderService := service.NewReminderService(goalService, emailService, cfg.ReminderEmail, cfg.ReminderWindowDays)
	templateService := service.NewTemplateService(cfg.ContentPath, goalService)

	var backupService *service.BackupService
	if cfg.BackupEnabled() {
		store, err := storage.NewS3Storage(storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to initialize backup storage: %w", err)
		}
		backupService = service.NewBackupService(goalService, store, cfg.BackupPrefix)
		slog.Info("cloud backup enabled", "bucket", cfg.S3Bucket)
	}

	return &App{
		Config:          cfg,
		DB:              database,
		GoalService:     goalService,
		AuthService:     authService,
		EmailService:    emailService,
		ReminderService: reminderService,
		TemplateService: templateService,
		BackupService:   backupService,
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
