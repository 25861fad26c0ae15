package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hirebase/jobboard/internal/core"
	domainauth "github.com/hirebase/jobboard/internal/domain/auth"
	"github.com/hirebase/jobboard/internal/domain/model"
	apperrors "github.com/hirebase/jobboard/internal/errors"
	"github.com/hirebase/jobboard/internal/ports"
)

const (
	minPasswordLen    = 8
	defaultSessionTTL = 8 * time.Hour
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider   ports.AuthProvider
	Sessions   ports.SessionStore
	Roles      ports.RoleResolver
	Users      core.UserRepository
	SessionTTL time.Duration // for password logins; default 8h when zero
}

// AuthService orchestrates authentication flows. It coordinates the OAuth
// provider, local password accounts, role resolution, and session persistence,
// and fans session lifecycle changes out to registered listeners.
type AuthService struct {
	provider   ports.AuthProvider
	sessions   ports.SessionStore
	roles      ports.RoleResolver
	users      core.UserRepository
	sessionTTL time.Duration

	mu        sync.Mutex
	listeners map[int]func(domainauth.SessionEvent)
	nextID    int
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Sessions == nil {
		panic("auth service requires a session store")
	}
	ttl := opts.SessionTTL
	if ttl == 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		provider:   opts.Provider,
		sessions:   opts.Sessions,
		roles:      opts.Roles,
		users:      opts.Users,
		sessionTTL: ttl,
		listeners:  make(map[int]func(domainauth.SessionEvent)),
	}
}

// OnSessionChange registers a listener for session lifecycle events and
// returns an unsubscribe function. Listeners run synchronously on the
// goroutine that changed the session.
func (s *AuthService) OnSessionChange(fn func(domainauth.SessionEvent)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *AuthService) notify(ev domainauth.SessionEvent) {
	s.mu.Lock()
	fns := make([]func(domainauth.SessionEvent), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// SignUpInput groups parameters for password signup.
type SignUpInput struct {
	Email    string
	FullName string
	Password string
}

// SignUp creates a password account and establishes a session. A duplicate
// email surfaces as a Conflict from the user repository.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domainauth.Session, error) {
	if s.users == nil {
		return nil, errors.New("user repository not configured")
	}
	if len(input.Password) < minPasswordLen {
		return nil, apperrors.ValidationField("password", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)

	user, err := s.users.Create(ctx, &model.CreateUserRequest{
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: &hashStr,
		Provider:     string(domainauth.ProviderPassword),
	})
	if err != nil {
		return nil, err
	}

	return s.establishSession(ctx, user, time.Now().Add(s.sessionTTL))
}

// PasswordSignIn verifies email and password and establishes a session.
// Unknown emails and wrong passwords both come back as Unauthenticated with
// the same message so the response does not reveal which accounts exist.
func (s *AuthService) PasswordSignIn(ctx context.Context, email, password string) (*domainauth.Session, error) {
	if s.users == nil {
		return nil, errors.New("user repository not configured")
	}
	if email == "" || password == "" {
		return nil, apperrors.Unauthenticated("Invalid email or password")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthenticated("Invalid email or password")
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}
	if user.PasswordHash == nil {
		// OAuth-only account
		return nil, apperrors.Unauthenticated("Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthenticated("Invalid email or password")
	}

	return s.establishSession(ctx, user, time.Now().Add(s.sessionTTL))
}

// BeginLoginResult contains the result of beginning an OAuth login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an OAuth flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("auth provider not configured")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing an OAuth login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin completes an OAuth flow: exchanges the code for an identity,
// upserts the local account, resolves the role, and persists a session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*domainauth.Session, error) {
	if s.provider == nil {
		return nil, errors.New("auth provider not configured")
	}
	if s.users == nil {
		return nil, errors.New("user repository not configured")
	}
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	user, err := s.users.UpsertOAuth(ctx, &model.CreateUserRequest{
		Email:     identity.Email,
		FullName:  identity.FullName,
		AvatarURL: identity.AvatarURL,
		Provider:  string(identity.Provider),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert account: %w", err)
	}

	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(s.sessionTTL)
	}
	return s.establishSession(ctx, user, expiresAt)
}

func (s *AuthService) establishSession(ctx context.Context, user *model.User, expiresAt time.Time) (*domainauth.Session, error) {
	role := domainauth.RoleUser
	if s.roles != nil {
		role = s.roles.Resolve(ctx, user.ID)
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		Role:      role,
		ExpiresAt: expiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	s.notify(domainauth.SessionEvent{Kind: domainauth.SessionEstablished, Session: session})

	return &session, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session. Logging out an unknown or already-removed
// session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	session, getErr := s.sessions.Get(ctx, sessionID)

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if getErr == nil {
		s.notify(domainauth.SessionEvent{Kind: domainauth.SessionCleared, Session: session})
	}

	return nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
