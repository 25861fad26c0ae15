package httpx

import (
	"net/http"
	"net/url"
)

// Landing renders the marketing landing page.
// GET /.
func (h *UIHandlers) Landing(w http.ResponseWriter, r *http.Request) {
	// The mux pattern "/" matches everything without a more specific route.
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	data := NewTemplateData(r, PageMeta{
		Title:       "Hirebase - Find your next role",
		PageTitle:   "Find your next role",
		CurrentPage: PageHome,
	}).Build()
	h.renderPage(w, r, data)
}

// LoginPage renders the sign-in form. A failed POST redirects back here with
// the message in the "error" query param.
// GET /login.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session := GetSessionFromContext(r.Context()); session != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	b := NewTemplateData(r, PageMeta{
		Title:       "Sign in - Hirebase",
		PageTitle:   "Sign in",
		CurrentPage: PageLogin,
	})
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	b.With("RedirectURI", redirect)
	b.With("OAuthLoginURL", "/auth/login?redirect_uri="+url.QueryEscape(redirect))
	if msg := r.URL.Query().Get("error"); msg != "" {
		b.WithError(msg)
	}
	h.renderPage(w, r, b.Build())
}

// SignupPage renders the account creation form.
// GET /signup.
func (h *UIHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	if session := GetSessionFromContext(r.Context()); session != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	b := NewTemplateData(r, PageMeta{
		Title:       "Create account - Hirebase",
		PageTitle:   "Create account",
		CurrentPage: PageSignup,
	})
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	b.With("RedirectURI", redirect)
	if msg := r.URL.Query().Get("error"); msg != "" {
		b.WithError(msg)
	}
	h.renderPage(w, r, b.Build())
}

// Dashboard lists open jobs newest-first for the signed-in candidate.
// GET /dashboard.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	b := NewTemplateData(r, PageMeta{
		Title:       "Dashboard - Hirebase",
		PageTitle:   "Open roles",
		CurrentPage: PageDashboard,
	})

	jobs, err := h.Jobs.List(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "dashboard job list failed", "error", err)
		b.WithError("Unable to load jobs right now. Please try again.")
	} else {
		b.With("Jobs", jobs)
	}

	h.renderPage(w, r, b.Build())
}

// SignedOut renders a simple signed-out page with a sign-in button.
// GET /auth/signed-out.
func (h *UIHandlers) SignedOut(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	if h.T == nil {
		http.Redirect(w, r, "/login?redirect_uri="+url.QueryEscape(redirect), http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title":       "Signed out - Hirebase",
		"RedirectURI": redirect,
	}
	if err := h.T.renderTemplate(w, "signed-out-page", data); err != nil {
		http.Redirect(w, r, "/login?redirect_uri="+url.QueryEscape(redirect), http.StatusSeeOther)
	}
}
