package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/hirebase/jobboard/config"
	"github.com/hirebase/jobboard/internal/adapters/devauth"
	"github.com/hirebase/jobboard/internal/adapters/oidc"
	redisadapter "github.com/hirebase/jobboard/internal/adapters/redis"
	"github.com/hirebase/jobboard/internal/core"
	"github.com/hirebase/jobboard/internal/ports"
	"github.com/hirebase/jobboard/internal/service"
)

// AuthBuildConfig contains configuration for the auth service.
type AuthBuildConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Users       core.UserRepository
	Roles       ports.RoleResolver
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Identity is load-bearing here, so a misconfigured provider is a startup
// error rather than a disabled feature.
func BuildAuthService(cfg AuthBuildConfig) (*service.AuthService, error) {
	if cfg.RedisClient == nil {
		return nil, errors.New("auth service requires a redis client")
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")

	provider, err := buildAuthProvider(cfg)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		Sessions:   sessionStore,
		Roles:      cfg.Roles,
		Users:      cfg.Users,
		SessionTTL: cfg.Auth.SessionTTL,
	}), nil
}

func buildAuthProvider(cfg AuthBuildConfig) (ports.AuthProvider, error) { //nolint:ireturn // provider selection happens at runtime
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		if cfg.Logger != nil {
			cfg.Logger.Warn("using mock auth provider; do not run this mode in production",
				"email", cfg.Auth.DevAuth.Email)
		}
		return devauth.NewProvider(devauth.Config{
			Email:    cfg.Auth.DevAuth.Email,
			FullName: cfg.Auth.DevAuth.FullName,
		})

	case config.AuthModeOAuth:
		oauth := cfg.Auth.OAuth
		if oauth.ClientID == "" || oauth.ClientSecret == "" {
			return nil, errors.New("AUTH_MODE=oauth requires OAUTH_CLIENT_ID and OAUTH_CLIENT_SECRET")
		}
		return oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     oauth.ClientID,
			ClientSecret: oauth.ClientSecret,
			RedirectURL:  oauth.RedirectURL,
			Scope:        oauth.Scope,
			IssuerURL:    oauth.IssuerURL,
		})

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}
