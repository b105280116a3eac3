package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"randomusers/internal/randomuser/model"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	TemplateUserList = "user_list.html"
	TemplateUser     = "user.html"
	TemplateError    = "error.html"
)

// TemplateRenderer renders the embedded HTML pages for echo.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"location": formatLocation,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

type listPageData struct {
	Title     string
	Page      *model.UserPage
	Number    string
	FormError string
}

type userPageData struct {
	Title string
	User  *model.User
}

type errorPageData struct {
	Title   string
	Status  int
	Message string
}

// formatLocation renders the usual random user location fields as one line.
func formatLocation(location map[string]any) string {
	var parts []string
	if street, ok := location["street"].(map[string]any); ok {
		line := strings.TrimSpace(fmt.Sprint(valueOr(street["number"]), " ", valueOr(street["name"])))
		if line != "" {
			parts = append(parts, line)
		}
	}
	for _, key := range []string{"city", "state", "country", "postcode"} {
		if v := valueOr(location[key]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func valueOr(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprint(val)
	default:
		return fmt.Sprint(val)
	}
}
