package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"ofx/internal/adapters/http/middleware"
	"ofx/internal/domain/earning"
)

//go:embed templates/*.html
var templateFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// userMessage returns the display text for err when it is one of known.
func userMessage(err error, known ...error) (string, bool) {
	for _, k := range known {
		if errors.Is(err, k) {
			return capitalize(k.Error()), true
		}
	}
	return "", false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// render executes layout.html plus the named page and writes it with status.
// A pending flash message is attached as .Flash unless the page sets one.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = s.sessions.PopFlash(w, r)
	}

	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":   func() bool { return loggedIn },
		"isAdmin":      func() bool { return loggedIn && sess.IsAdmin },
		"currentEmail": func() string { return sess.Email },
		"csrfToken":    func() string { return csrf.Token(r) },
		"csrfField":    func() string { return middleware.CSRFFieldName },
		"earningTypes": func() []earning.Type { return earning.Types },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("2 Jan 2006 15:04")
		},
		"lower": strings.ToLower,
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// redirectWithFlash stores message and redirects with 303.
func (s *Server) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	if message != "" {
		if err := s.sessions.SetFlash(w, message); err != nil {
			slog.Warn("flash_failed", "error", err)
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
