package web

import (
	"errors"
	"log/slog"
	"net/http"

	"ofx/internal/adapters/http/middleware"
	"ofx/internal/application/orchestrators"
	"ofx/internal/domain/user"
)

// signupErrors are shown back to the visitor on the signup form.
var signupErrors = []error{
	user.ErrEmptyName,
	user.ErrNameTooLong,
	user.ErrEmptyEmail,
	user.ErrEmailTooLong,
	user.ErrInvalidEmail,
	user.ErrEmptyPassword,
	user.ErrDuplicateEmail,
	user.ErrUnknownReferrer,
}

// landingFor is where a signed-in identity starts.
func landingFor(isAdmin bool) string {
	if isAdmin {
		return "/admin"
	}
	return "/"
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, landingFor(sess.IsAdmin), http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "login.html", nil)
}

// handleLogin authenticates and establishes the session.
// Missing fields re-render with 400; bad credentials with 401.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		UserStore: s.stores.UserStore,
	})
	switch {
	case errors.Is(err, orchestrators.ErrMissingCredentials):
		s.render(w, r, http.StatusBadRequest, "login.html", map[string]any{
			"Error": "Email and password are required.",
			"Email": input.Email,
		})
		return
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		s.render(w, r, http.StatusUnauthorized, "login.html", map[string]any{
			"Error": "Invalid credentials",
			"Email": input.Email,
		})
		return
	case err != nil:
		internalError(w, err)
		return
	}

	if err := s.sessions.Issue(w, middleware.Session{
		UserID:  result.UserID,
		Email:   result.Email,
		IsAdmin: result.IsAdmin,
	}); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, landingFor(result.IsAdmin), http.StatusSeeOther)
}

func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, landingFor(sess.IsAdmin), http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "signup.html", map[string]any{
		"Ref": r.URL.Query().Get("ref"),
	})
}

// handleSignup registers a member and signs them in straight away.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.SignupInput{
		Name:         r.PostFormValue("name"),
		Email:        r.PostFormValue("email"),
		Password:     r.PostFormValue("password"),
		ReferralCode: r.PostFormValue("ref"),
	}

	result, err := orchestrators.ExecuteSignup(r.Context(), input, orchestrators.SignupDeps{
		UserStore:  s.stores.UserStore,
		Mailer:     s.mailer,
		BaseURL:    s.opts.BaseURL,
		GenerateID: s.newID,
		Now:        s.now,
	})
	if err != nil {
		msg, ok := userMessage(err, signupErrors...)
		if !ok {
			internalError(w, err)
			return
		}
		s.render(w, r, http.StatusBadRequest, "signup.html", map[string]any{
			"Error": msg,
			"Name":  input.Name,
			"Email": input.Email,
			"Ref":   input.ReferralCode,
		})
		return
	}

	if err := s.sessions.Issue(w, middleware.Session{UserID: result.UserID, Email: result.Email}); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout clears the session entirely.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		slog.Info("auth_event", "event", "logout", "email", sess.Email)
	}
	s.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
