package app

import (
	"context"
	"fmt"
	"time"

	"applytrack/internal/config"
	"applytrack/internal/database"
	"applytrack/internal/database/migration"
	dbpostgres "applytrack/internal/database/postgres"
	"applytrack/internal/delivery/graphql"
	"applytrack/internal/domain/application"
	"applytrack/internal/domain/calendar"
	"applytrack/internal/domain/contact"
	"applytrack/internal/domain/user"
	"applytrack/internal/infrastructure/cache"
	"applytrack/internal/pkg/jwt"
	"applytrack/internal/pkg/logger"
	"applytrack/internal/repository"
	"applytrack/internal/repository/memory"
	"applytrack/internal/usecase"
	ucauth "applytrack/internal/usecase/auth"
)

type repositories struct {
	users        user.Repository
	contacts     contact.Repository
	applications application.Repository
	pictures     user.ProfilePictureRepository
	events       calendar.Repository
}

// Container owns every long-lived dependency of the server. DB is nil when
// the memory storage driver is selected.
type Container struct {
	Config config.Config
	Log    *logger.Logger
	DB     database.DB
	Cache  *cache.Redis
	Tokens *jwt.HMACService

	Services graphql.Services
}

func NewContainer(cfg config.Config, log *logger.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c := &Container{Config: cfg, Log: log}

	repos, err := c.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, log.With("component", "cache"))
	c.Tokens = jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	collections := usecase.NewCollectionCache(c.Cache, cfg.Redis.TTL, log.With("component", "query_cache"))
	authSvc := ucauth.NewService(repos.users)
	c.Services = graphql.Services{
		Auth:            usecase.NewAuthUsecase(authSvc, c.Tokens, log.With("usecase", "auth")),
		Contacts:        usecase.NewContactUsecase(repos.users, repos.contacts, collections, log.With("usecase", "contacts")),
		Applications:    usecase.NewApplicationUsecase(repos.users, repos.applications, collections, log.With("usecase", "applications")),
		Calendar:        usecase.NewCalendarUsecase(repos.events, log.With("usecase", "calendar")),
		ProfilePictures: usecase.NewProfilePictureUsecase(repos.users, repos.pictures, collections, log.With("usecase", "profile_picture")),
		Query: usecase.NewQueryUsecase(usecase.QueryRepositories{
			Users:        repos.users,
			Contacts:     repos.contacts,
			Applications: repos.applications,
			Pictures:     repos.pictures,
			Events:       repos.events,
		}, collections, log.With("usecase", "query")),
	}

	return c, nil
}

func (c *Container) openStorage(ctx context.Context) (repositories, error) {
	if c.Config.App.StorageDriver == config.StorageDriverMemory {
		c.Log.Warn("memory storage driver selected, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			users:        store.Users(),
			contacts:     store.Contacts(),
			applications: store.Applications(),
			pictures:     store.ProfilePictures(),
			events:       store.Calendar(),
		}, nil
	}

	db, err := dbpostgres.Connect(ctx, c.Config.Database)
	if err != nil {
		return repositories{}, err
	}

	if err := Migrate(ctx, db, c.Config.App.MigrationsDir, c.Log); err != nil {
		_ = db.Close()
		return repositories{}, err
	}
	c.DB = db

	return repositories{
		users:        repository.NewPostgresUserRepository(db),
		contacts:     repository.NewPostgresContactRepository(db),
		applications: repository.NewPostgresApplicationRepository(db),
		pictures:     repository.NewPostgresProfilePictureRepository(db),
		events:       repository.NewPostgresCalendarRepository(db),
	}, nil
}

// Migrate applies pending migrations and then checks that every table the
// repositories rely on has the expected columns.
func Migrate(ctx context.Context, db database.DB, dir string, log *logger.Logger) error {
	r := migration.Runner{Dir: dir, Log: log.With("component", "migration")}
	res, err := r.Run(ctx, db.SQLDB())
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations applied", "applied", len(res.Applied), "skipped", res.Skipped)

	if err := database.VerifySchema(ctx, db); err != nil {
		return fmt.Errorf("verify schema: %w", err)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
