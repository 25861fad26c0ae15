package bootstrap

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hirebase/jobboard/config"
	"github.com/hirebase/jobboard/internal/mocks"
)

func testAuthConfig(mode config.AuthMode) config.AuthConfig {
	return config.AuthConfig{
		Mode: mode,
		DevAuth: config.DevAuthConfig{
			Email:    "dev@example.com",
			FullName: "Dev User",
		},
		SessionTTL: 8 * time.Hour,
	}
}

func TestBuildAuthService_RequiresRedis(t *testing.T) {
	_, err := BuildAuthService(AuthBuildConfig{
		Auth: testAuthConfig(config.AuthModeMock),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis client")
}

func TestBuildAuthService_MockMode(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc, err := BuildAuthService(AuthBuildConfig{
		Auth:        testAuthConfig(config.AuthModeMock),
		RedisClient: redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
		Users:       mocks.NewMockUserRepository(ctrl),
	})

	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestBuildAuthService_OAuthModeRequiresCredentials(t *testing.T) {
	cfg := testAuthConfig(config.AuthModeOAuth)
	cfg.OAuth = config.OAuthConfig{
		RedirectURL: "http://localhost:8080/auth/callback",
		IssuerURL:   "https://accounts.google.com",
	}

	_, err := BuildAuthService(AuthBuildConfig{
		Auth:        cfg,
		RedisClient: redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OAUTH_CLIENT_ID")
}

func TestBuildAuthService_UnknownMode(t *testing.T) {
	_, err := BuildAuthService(AuthBuildConfig{
		Auth:        testAuthConfig(config.AuthMode("saml")),
		RedisClient: redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported auth mode")
}
