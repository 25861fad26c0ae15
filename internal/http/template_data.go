package httpx

import (
	"net/http"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":           meta.Title,
		"PageTitle":       meta.PageTitle,
		"CurrentPage":     meta.CurrentPage,
		"IsAuthenticated": false,
		"IsAdmin":         false,
	}

	if session := GetSessionFromContext(r.Context()); session != nil {
		data["IsAuthenticated"] = true
		data["IsAdmin"] = session.IsAdmin()
		data["User"] = map[string]any{
			"Email":     session.Email,
			"FullName":  session.FullName,
			"AvatarURL": session.AvatarURL,
			"Role":      string(session.Role),
		}
	}

	return data
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
