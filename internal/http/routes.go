package httpx

import (
	"bytes"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	jobboard "github.com/hirebase/jobboard"
	domainauth "github.com/hirebase/jobboard/internal/domain/auth"
	"github.com/hirebase/jobboard/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Auth         AuthServiceInterface
	CookieDomain string
	IsDev        bool         // Development mode flag for template reloading, etc.
	Logger       *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	jobHandlers := &JobHandlers{Svc: services.Jobs}
	appHandlers := &ApplicationHandlers{Svc: services.Applications}
	authHandlers := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: services.Logger}

	registerJobRoutes(mux, jobHandlers, services.Auth)
	registerApplicationRoutes(mux, appHandlers, services.Auth)
	registerAuthRoutes(mux, authHandlers)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	// UI routes with template renderer
	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		registerUIRoutes(mux, uiHandlers, services.Auth)
	}

	// Wrap with NotFound handler and browser detection middleware
	handler := &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}

	return BrowserDetection()(handler)
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers, auth AuthServiceInterface) {
	adminOnly := RequireRole(auth, domainauth.RoleAdmin)

	mux.HandleFunc("GET /api/jobs", h.List)
	mux.HandleFunc("GET /api/jobs/{id}", h.Get)
	mux.Handle("POST /api/jobs", adminOnly(http.HandlerFunc(h.Create)))
	mux.Handle("DELETE /api/jobs/{id}", adminOnly(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/jobs/batch-delete", adminOnly(http.HandlerFunc(h.BatchDelete)))
}

func registerApplicationRoutes(mux *http.ServeMux, h *ApplicationHandlers, auth AuthServiceInterface) {
	authed := RequireAuth(auth)

	mux.Handle("GET /api/jobs/{id}/application", authed(http.HandlerFunc(h.GetStatus)))
	mux.Handle("POST /api/jobs/{id}/applications", authed(http.HandlerFunc(h.Apply)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/signup", h.SignUp)
	mux.HandleFunc("POST /auth/signin", h.SignIn)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, auth AuthServiceInterface) {
	withSession := OptionalAuth(auth)
	authed := RequireAuthBrowser(auth)
	adminOnly := RequireRoleBrowser(auth, domainauth.RoleAdmin)

	mux.Handle("GET /", withSession(http.HandlerFunc(h.Landing)))
	mux.Handle("GET /login", withSession(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /login", http.HandlerFunc(redirectFormToSignIn))
	mux.Handle("GET /signup", withSession(http.HandlerFunc(h.SignupPage)))
	mux.Handle("GET /auth/signed-out", http.HandlerFunc(h.SignedOut))

	mux.Handle("GET /dashboard", authed(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /application", authed(http.HandlerFunc(h.ApplicationForm)))
	mux.Handle("POST /application", authed(http.HandlerFunc(h.ApplicationSubmit)))

	mux.Handle("GET /admin/dashboard", adminOnly(http.HandlerFunc(h.AdminDashboard)))
	mux.Handle("POST /admin/jobs", adminOnly(http.HandlerFunc(h.AdminCreateJob)))
	mux.Handle("POST /admin/jobs/delete", adminOnly(http.HandlerFunc(h.AdminDeleteJob)))
	mux.Handle("POST /admin/jobs/batch-delete", adminOnly(http.HandlerFunc(h.AdminBatchDeleteJobs)))
}

// redirectFormToSignIn keeps old bookmarked form targets working by sending
// POST /login through the canonical sign-in endpoint.
func redirectFormToSignIn(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/auth/signin", http.StatusTemporaryRedirect)
}

// setupUIHandlers creates UI handlers with a template renderer.
// In dev mode (services.IsDev=true), templates are loaded from disk for hot reloading.
// In production mode (services.IsDev=false), templates are loaded from embedded FS.
func setupUIHandlers(services RouterServices) *UIHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(jobboard.TemplateFS, "frontend/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &UIHandlers{
		T:      tr,
		Jobs:   services.Jobs,
		Apps:   services.Applications,
		IsDev:  services.IsDev,
		Logger: services.Logger,
	}
}

// staticHandler serves /static/* assets.
// In dev mode (isDev=true), serves from disk for hot reloading.
// In production mode (isDev=false), serves from embedded FS.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}

	staticSub, err := fs.Sub(jobboard.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub)))
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	// Serve the request through the mux, capturing status, headers, and body
	h.mux.ServeHTTP(cw, r)

	// If the mux didn't handle the request (404), use our custom handler
	if cw.status == http.StatusNotFound {
		// For missing static assets, preserve the default file server response
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	// Not a 404: write the captured response
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}
