package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across UI handlers and template mapping.
const (
	// Public pages.
	PageHome   = "home"
	PageLogin  = "login"
	PageSignup = "signup"

	// Authenticated pages.
	PageDashboard = "dashboard"
	PageJob       = "job"

	// Admin pages.
	PageAdmin = "admin"
)

// Template paths used for loading templates in tests and production.
const (
	// Template directory paths.
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:      "landing-content",
	PageLogin:     "login-content",
	PageSignup:    "signup-content",
	PageDashboard: "dashboard-content",
	PageJob:       "application-content",
	PageAdmin:     "admin-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to landing-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "landing-content"
}
