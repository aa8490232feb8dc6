package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ofx/internal/adapters/email"
	"ofx/internal/domain/user"
)

// UserStoreForSignup defines the store interface needed by Signup.
type UserStoreForSignup interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	Create(ctx context.Context, u user.User) error
}

// SignupInput carries input for the signup orchestrator.
type SignupInput struct {
	Name         string
	Email        string
	Password     string
	ReferralCode string // referrer's user id, optional
}

// SignupResult carries the identity to put in the session.
type SignupResult struct {
	UserID string
	Name   string
	Email  string
}

// SignupDeps holds dependencies for Signup.
type SignupDeps struct {
	UserStore  UserStoreForSignup
	Mailer     email.Sender // nil disables the welcome email
	BaseURL    string
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSignup registers a non-admin user, optionally credited to a referrer.
// PRE: none
// POST: User persisted with a bcrypt hash; welcome email attempted
// INVARIANT: Email is unique; referral_id references an existing user
func ExecuteSignup(ctx context.Context, input SignupInput, deps SignupDeps) (SignupResult, error) {
	u := user.User{
		ID:        deps.GenerateID(),
		Name:      strings.TrimSpace(input.Name),
		Email:     user.NormalizeEmail(input.Email),
		CreatedAt: deps.Now(),
	}
	if err := u.Validate(); err != nil {
		return SignupResult{}, err
	}
	if input.Password == "" {
		return SignupResult{}, user.ErrEmptyPassword
	}

	if code := strings.TrimSpace(input.ReferralCode); code != "" {
		referrer, err := deps.UserStore.GetByID(ctx, code)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return SignupResult{}, user.ErrUnknownReferrer
			}
			return SignupResult{}, fmt.Errorf("look up referrer: %w", err)
		}
		u.ReferralID = referrer.ID
	}

	if err := u.SetPassword(input.Password); err != nil {
		return SignupResult{}, err
	}
	if err := deps.UserStore.Create(ctx, u); err != nil {
		return SignupResult{}, err
	}

	slog.Info("auth_event", "event", "signup", "email", u.Email, "referred", u.WasReferred())
	sendWelcome(ctx, deps, u)

	return SignupResult{UserID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// sendWelcome is best effort; a failed send never fails the signup.
func sendWelcome(ctx context.Context, deps SignupDeps, u user.User) {
	if deps.Mailer == nil {
		return
	}
	msg, err := email.WelcomeMessage(u.Email, u.Name, user.ReferralLink(deps.BaseURL, u.ID))
	if err == nil {
		_, err = deps.Mailer.Send(ctx, msg)
	}
	if err != nil {
		slog.Warn("welcome_email_failed", "email", u.Email, "error", err)
	}
}
