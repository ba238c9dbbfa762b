package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/jobdeck/jobdeck/config"
	"github.com/jobdeck/jobdeck/internal/adapters/jwtauth"
	"github.com/jobdeck/jobdeck/internal/adapters/password"
	redisadapter "github.com/jobdeck/jobdeck/internal/adapters/redis"
	"github.com/jobdeck/jobdeck/internal/adapters/scheduler"
	"github.com/jobdeck/jobdeck/internal/data"
	"github.com/jobdeck/jobdeck/internal/service"
)

// devJWTSecret is only used when DEV=true and no JWT_SECRET is set.
const devJWTSecret = "jobdeck-dev-secret-do-not-use-in-production"

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Jobs      *service.JobService
	Refresher *service.StatusRefreshService
	Auth      *service.AuthService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient goredis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories and adapters into the service layer.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	jobRepo := data.NewJobRepo(deps.DB)
	userRepo := data.NewUserRepo(deps.DB)

	jobs := service.NewJobService(service.JobServiceOptions{Repo: jobRepo})
	refresher := service.NewStatusRefreshService(service.StatusRefreshServiceOptions{
		Repo:   jobRepo,
		Logger: logger,
	})

	auth, err := newAuthService(deps.Config, userRepo, deps.RedisClient, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Jobs:      jobs,
		Refresher: refresher,
		Auth:      auth,
	}, nil
}

func newAuthService(
	cfg *config.AppConfig,
	users *data.UserRepo,
	redisClient goredis.UniversalClient,
	logger *slog.Logger,
) (*service.AuthService, error) {
	authCfg := cfg.Auth
	if authCfg.JWTSecret == "" {
		if !cfg.IsDev {
			return nil, errors.New("JWT_SECRET is required outside dev mode")
		}
		logger.Warn("JWT_SECRET not set, using insecure dev secret")
		authCfg.JWTSecret = devJWTSecret
	}

	issuer, err := jwtauth.NewIssuer(jwtauth.IssuerOptions{Config: authCfg})
	if err != nil {
		return nil, fmt.Errorf("init token issuer: %w", err)
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Users:        users,
		Hasher:       password.NewBcryptHasher(authCfg.BcryptCost),
		Tokens:       issuer,
		RefreshStore: redisadapter.NewTokenStore(redisClient),
		Logger:       logger,
	})
}

// RunConfig contains dependencies for running the application services.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and the optional
// in-process status refresh runner, then blocks until a shutdown
// signal is received or a background component fails.
func RunServicesWithShutdown(cfg *RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	group, groupCtx := errgroup.WithContext(ctx)
	if err := startRefreshRunner(groupCtx, group, cfg, logger); err != nil {
		stop()
		shutdownErr := ShutdownHTTPServer(context.Background(), server, logger)
		return errors.Join(err, shutdownErr)
	}

	<-groupCtx.Done()
	if ctx.Err() != nil {
		logger.Info("received shutdown signal")
	}
	stop()

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		logger.Error("background service failed", "error", err)
	}

	if shutdownErr := ShutdownHTTPServer(context.Background(), server, logger); shutdownErr != nil {
		err = errors.Join(err, fmt.Errorf("shutdown HTTP server: %w", shutdownErr))
	}

	return err
}

// startRefreshRunner launches the periodic status sweep in the group
// when an interval is configured.
func startRefreshRunner(ctx context.Context, group *errgroup.Group, cfg *RunConfig, logger *slog.Logger) error {
	if cfg.Config.Refresher.Interval <= 0 {
		logger.Info("status refresh runner disabled", "reason", "no interval configured")
		return nil
	}

	runner, err := scheduler.NewRunner(scheduler.RunnerOptions{
		Refresher: cfg.Services.Refresher,
		Config:    cfg.Config.Refresher,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("init status refresh runner: %w", err)
	}

	group.Go(func() error {
		return runner.Run(ctx)
	})

	logger.Info("status refresh runner started", "interval", cfg.Config.Refresher.Interval)
	return nil
}
