package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/hirebase/jobboard/config"
	"github.com/hirebase/jobboard/internal/data"
	"github.com/hirebase/jobboard/internal/service"
)

// ServiceDeps contains shared dependencies for building services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// Services is the container of wired application services.
type Services struct {
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Admins       *service.AdminService
	Auth         *service.AuthService
}

// NewServices wires repositories and services from shared dependencies.
func NewServices(deps *ServiceDeps) (*Services, error) {
	jobs, err := service.NewJobService(service.JobServiceOptions{
		Repo:   data.NewJobRepo(deps.DB),
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build job service: %w", err)
	}

	apps, err := service.NewApplicationService(service.ApplicationServiceOptions{
		Repo:   data.NewApplicationRepo(deps.DB),
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build application service: %w", err)
	}

	admins, err := service.NewAdminService(service.AdminServiceOptions{
		Repo:   data.NewAdminRepo(deps.DB),
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build admin service: %w", err)
	}

	auth, err := BuildAuthService(AuthBuildConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Users:       data.NewUserRepo(deps.DB),
		Roles:       admins,
		Logger:      deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}

	return &Services{
		Jobs:         jobs,
		Applications: apps,
		Admins:       admins,
		Auth:         auth,
	}, nil
}
