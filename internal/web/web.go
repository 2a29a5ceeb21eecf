// Package web renders the server-side HTML pages and holds the helpers
// shared by the HTML and JSON handlers of every module.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/auth/session"
)

//go:embed templates
var templateFS embed.FS

// Page is the data passed to every page template.
type Page struct {
	Title   string
	Flash   *Flash
	Current *session.Session
	// Data is the page payload, usually a View.
	Data any
	// Form holds submitted values to re-populate a form.
	Form any
	// Errors maps form field names to messages.
	Errors map[string]string
	// Error is a message shown above a form.
	Error string
	// Next is the post-login redirect target.
	Next string
}

// FieldError returns the error for a form field.
func (p Page) FieldError(field string) string {
	return p.Errors[field]
}

// SetError attaches err to the field it names, or to the whole form.
func (p *Page) SetError(err error) {
	if field := apperror.Field(err); field != "" {
		if p.Errors == nil {
			p.Errors = map[string]string{}
		}
		p.Errors[field] = apperror.Message(err)
		return
	}
	p.Error = apperror.Message(err)
}

// SetBindError attaches the field errors of a failed form binding.
func (p *Page) SetBindError(err error) {
	if fields := FieldErrors(err); len(fields) > 0 {
		p.Errors = fields
		return
	}
	p.Error = apperror.Message(BindError(err))
}

// RenderForm re-renders a form page after err with the status of its code.
func RenderForm(c *gin.Context, name string, page Page, err error) {
	page.SetError(err)
	Render(c, apperror.CodeOf(err).HTTPStatus(), name, page)
}

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04")
	},
	"inputTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(InputTimeLayout)
	},
	"optTime": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04")
	},
	"optInputTime": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format(InputTimeLayout)
	},
	"optID": FormatOptionalID,
	"isID": func(id *int64, v int64) bool {
		return id != nil && *id == v
	},
	"idList": JoinIDs,
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html", "templates/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// MustTemplates is like Templates but panics on error.
func MustTemplates() *template.Template {
	tmpl, err := Templates()
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Render renders the named page with the current session and flash message.
func Render(c *gin.Context, status int, name string, page Page) {
	if page.Current == nil {
		page.Current, _ = session.FromContext(c.Request.Context())
	}
	if page.Flash == nil {
		page.Flash = GetFlash(c)
	}
	c.HTML(status, name, page)
}

// RenderError renders the generic error page for err.
func RenderError(c *gin.Context, err error) {
	Render(c, apperror.CodeOf(err).HTTPStatus(), "error", Page{Title: "Error", Error: apperror.Message(err)})
}

// JoinIDs formats ids as a comma separated list.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// SafeNext returns next when it is a local path, "/" otherwise.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
