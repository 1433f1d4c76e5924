package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillified/internal/config"
	"skillified/internal/database"
	"skillified/internal/database/migration"
	dbpostgres "skillified/internal/database/postgres"
	"skillified/internal/infrastructure/cache"
	"skillified/internal/infrastructure/mailer"
	"skillified/internal/infrastructure/storage"
	"skillified/internal/pkg/jwt"
	"skillified/internal/repository"
	"skillified/internal/repository/memory"
	"skillified/internal/usecase"
	"skillified/internal/ws"

	"go.uber.org/zap"
)

const mailQueueSize = 64

type Usecases struct {
	Auth     *usecase.Auth
	Catalog  *usecase.Catalog
	Skills   *usecase.Skills
	Events   *usecase.Events
	Profiles *usecase.Profiles
	Settings *usecase.Settings
	Contact  *usecase.Contact
	Messages *usecase.Messages
}

type Container struct {
	Config config.Config
	Logger *zap.Logger

	// DB is nil when the memory store is selected.
	DB       database.DB
	Store    repository.Store
	Cache    *cache.Redis
	JWT      jwt.Service
	Hub      *ws.Hub
	Mailer   *mailer.Dispatcher
	Pictures *storage.Local

	Usecases Usecases
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openStore(); err != nil {
		return nil, err
	}

	pictures, err := storage.NewLocal(cfg.Media.Dir, cfg.Media.BaseURL)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("media storage: %w", err)
	}
	c.Pictures = pictures

	c.Cache = cache.NewRedis(cfg.Redis, logger.Named("cache"))
	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Hub = ws.NewHub(logger.Named("ws"))
	c.Mailer = mailer.NewDispatcher(
		mailer.NewSender(cfg.Mail, logger.Named("mail")),
		cfg.Mail.Workers,
		mailQueueSize,
		logger.Named("mail"),
	)
	c.Mailer.SetRateLimit(cfg.Mail.RateLimit)

	c.wireUsecases()
	return c, nil
}

func (c *Container) openStore() error {
	if c.Config.App.StoreDriver == config.StoreDriverMemory {
		c.Logger.Warn("using in-memory store, data is lost on restart")
		c.Store = memory.NewStore()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, c.Config.Database, c.Logger.Named("db"))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	if c.Config.Database.RunMigrations {
		r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: c.Logger.Named("migration")}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	c.Store = repository.NewPostgresStore(db)
	return nil
}

func (c *Container) wireUsecases() {
	cfg := c.Config
	ttl := cfg.Redis.CacheTTL
	loc := cfg.App.TimeZone

	invalidator := usecase.NewCatalogInvalidator(c.Cache, c.Logger)
	sessions := usecase.NewSessionVersions(c.Store, c.Cache, cfg.JWT.AccessExpiresIn, c.Logger)
	notifier := ws.NewNotifier(c.Hub, c.Store.NotificationSettings(), c.Logger.Named("notify"))

	c.Usecases = Usecases{
		Auth:     usecase.NewAuthUsecase(c.Store, c.JWT, sessions),
		Catalog:  usecase.NewCatalogUsecase(c.Store, c.Cache, ttl, loc, c.Logger),
		Skills:   usecase.NewSkillUsecase(c.Store, invalidator, notifier),
		Events:   usecase.NewEventUsecase(c.Store, loc, invalidator, notifier),
		Profiles: usecase.NewProfileUsecase(c.Store, c.Pictures, invalidator, c.Logger),
		Settings: usecase.NewSettingsUsecase(c.Store, c.JWT, sessions, invalidator),
		Contact:  usecase.NewContactUsecase(c.Mailer, cfg.Mail.From, cfg.Mail.ContactRecipients, c.Logger),
		Messages: usecase.NewMessageUsecase(c.Store, notifier),
	}
}

// Start launches background workers. They stop when ctx is cancelled or the
// container is closed.
func (c *Container) Start(ctx context.Context) {
	if c.Mailer != nil {
		c.Mailer.Start(ctx)
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Hub != nil {
		c.Hub.Close()
	}
	if c.Mailer != nil {
		c.Mailer.Close()
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
