package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/hirebase/jobboard/internal/domain/auth"
	apperrors "github.com/hirebase/jobboard/internal/errors"
	"github.com/hirebase/jobboard/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*domainauth.Session, error)
	SignUp(ctx context.Context, input service.SignUpInput) (*domainauth.Session, error)
	PasswordSignIn(ctx context.Context, email, password string) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the OAuth login initiation endpoint.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), redirectURI)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     err,
		})
		return
	}

	// Store state, nonce, and the original redirect URI in secure cookies
	h.setOAuthCookies(w, r, oauthCookieParams{State: result.State, Nonce: result.Nonce, RedirectURI: redirectURI})

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback handles the OAuth callback endpoint.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_code",
			Err:     errors.New("authorization code is required"),
		})
		return
	}
	if state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_state",
			Err:     errors.New("state parameter is required"),
		})
		return
	}

	// Verify state and read nonce
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}
	nonceCookie, err := r.Cookie("oauth_nonce")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_nonce",
			Err:     errors.New("missing nonce parameter"),
		})
		return
	}

	session, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_completion_failed",
			Err:     err,
		})
		return
	}

	// Set session cookie and clear temporary OAuth cookies
	h.setSessionCookie(w, r, *session)
	h.clearCookie(w, r, "oauth_state")
	h.clearCookie(w, r, "oauth_nonce")

	redirectURI := h.getPostLoginRedirect(w, r)
	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// SignUp handles password account creation.
// POST /auth/signup with form fields email, full_name, password, redirect_uri
// or the equivalent JSON body.
func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var input service.SignUpInput
	var redirectURI string

	if isJSONRequest(r) {
		var body struct {
			Email    string `json:"email"`
			FullName string `json:"full_name"`
			Password string `json:"password"`
		}
		if !DecodeJSON(w, r, &body) {
			return
		}
		input = service.SignUpInput{Email: body.Email, FullName: body.FullName, Password: body.Password}
	} else {
		if err := r.ParseForm(); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
			return
		}
		input = service.SignUpInput{
			Email:    r.PostFormValue("email"),
			FullName: r.PostFormValue("full_name"),
			Password: r.PostFormValue("password"),
		}
		redirectURI = r.PostFormValue("redirect_uri")
	}

	session, err := h.Svc.SignUp(r.Context(), input)
	if err != nil {
		h.writeCredentialError(w, r, credentialErrorParams{Err: err, FormPath: "/signup", RedirectURI: redirectURI})
		return
	}

	h.finishCredentialLogin(w, r, credentialLoginParams{Session: session, RedirectURI: redirectURI})
}

// SignIn handles password sign-in.
// POST /auth/signin with form fields email, password, redirect_uri
// or the equivalent JSON body.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var email, password, redirectURI string

	if isJSONRequest(r) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !DecodeJSON(w, r, &body) {
			return
		}
		email, password = body.Email, body.Password
	} else {
		if err := r.ParseForm(); err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
			return
		}
		email = r.PostFormValue("email")
		password = r.PostFormValue("password")
		redirectURI = r.PostFormValue("redirect_uri")
	}

	session, err := h.Svc.PasswordSignIn(r.Context(), email, password)
	if err != nil {
		h.writeCredentialError(w, r, credentialErrorParams{Err: err, FormPath: "/login", RedirectURI: redirectURI})
		return
	}

	h.finishCredentialLogin(w, r, credentialLoginParams{Session: session, RedirectURI: redirectURI})
}

// credentialLoginParams groups the post-login outputs for password flows.
type credentialLoginParams struct {
	Session     *domainauth.Session
	RedirectURI string
}

// finishCredentialLogin sets the session cookie and responds per request kind:
// JSON clients get the session payload, browsers get a redirect.
func (h *AuthHandlers) finishCredentialLogin(w http.ResponseWriter, r *http.Request, p credentialLoginParams) {
	h.setSessionCookie(w, r, *p.Session)

	if isJSONRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"user": map[string]any{
				"id":        p.Session.UserID,
				"email":     p.Session.Email,
				"full_name": p.Session.FullName,
				"role":      p.Session.Role,
			},
			"expires_at": p.Session.ExpiresAt,
		})
		return
	}

	http.Redirect(w, r, safeRedirectPath(p.RedirectURI), http.StatusSeeOther)
}

// credentialErrorParams groups error-response inputs for password flows.
type credentialErrorParams struct {
	Err         error
	FormPath    string
	RedirectURI string
}

// writeCredentialError responds to a failed signup/sign-in. JSON clients get a
// mapped error; browsers are sent back to the originating form with the
// message in the query string so the page can render it inline.
func (h *AuthHandlers) writeCredentialError(w http.ResponseWriter, r *http.Request, p credentialErrorParams) {
	if isJSONRequest(r) {
		WriteAppError(w, p.Err)
		return
	}

	msg := "Something went wrong. Please try again."
	switch apperrors.GetCode(p.Err) {
	case apperrors.ErrCodeUnauthenticated, apperrors.ErrCodeValidation, apperrors.ErrCodeConflict:
		msg = p.Err.Error()
	default:
		h.logger().ErrorContext(r.Context(), "credential flow failed", "error", p.Err)
	}

	u := url.URL{Path: p.FormPath}
	q := url.Values{}
	q.Set("error", msg)
	if redirect := safeRedirectPath(p.RedirectURI); redirect != "/" {
		q.Set("redirect_uri", redirect)
	}
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	// Invalidate the server-side session if present
	if sessionCookie, err := r.Cookie("session_id"); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	// Clear session cookie on the client
	h.clearCookie(w, r, "session_id")

	// Determine desired post-login destination (where user wanted to be after re-auth)
	redirectURI := r.FormValue("redirect_uri")
	if redirectURI == "" {
		redirectURI = r.URL.Query().Get("redirect_uri")
	}
	redirectURI = safeRedirectPath(redirectURI)

	u := url.URL{Path: "/auth/signed-out"}
	q := url.Values{}
	q.Set("redirect_uri", redirectURI)
	u.RawQuery = q.Encode()
	signedOutURL := u.String()

	// AJAX requests get a JSON payload; regular requests redirect
	if isJSONRequest(r) || strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": signedOutURL,
		})
		return
	}

	http.Redirect(w, r, signedOutURL, http.StatusFound)
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie("session_id")
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
		})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie
		h.clearCookie(w, r, "session_id")
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":         session.UserID,
			"email":      session.Email,
			"full_name":  session.FullName,
			"avatar_url": session.AvatarURL,
			"role":       session.Role,
		},
		"expires_at": session.ExpiresAt,
	})
}

// isJSONRequest reports whether the client is speaking JSON rather than
// posting a browser form.
func isJSONRequest(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	cd := h.CookieDomain
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// oauthCookieParams groups values needed to set OAuth cookies (≤3 params rule).
type oauthCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

// setOAuthCookies stores OAuth state, nonce, and the post-login redirect in secure cookies.
func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	cd := h.CookieDomain

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    p.State,
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_nonce",
		Value:    p.Nonce,
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "post_login_redirect",
		Value:    p.RedirectURI,
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	cd := h.CookieDomain
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    s.ID,
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// getPostLoginRedirect returns the post-login redirect URL and clears the cookie.
func (h *AuthHandlers) getPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := "/"
	if redirectCookie, err := r.Cookie("post_login_redirect"); err == nil {
		candidate := redirectCookie.Value
		// Defensive re-validation: allow only relative paths
		u, parseErr := url.Parse(candidate)
		if parseErr == nil && !u.IsAbs() && u.Host == "" && strings.HasPrefix(u.Path, "/") {
			redirectURI = candidate
		}
		h.clearCookie(w, r, "post_login_redirect")
	}
	return redirectURI
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
