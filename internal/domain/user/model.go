package user

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// bcryptCost is the work factor for password hashes.
const bcryptCost = 12

// Referral programme constants.
const (
	// ReferralReward is the amount credited per referred user on the referral page.
	ReferralReward = 200

	// ReferralBonusThreshold is the referral earnings needed to unlock the bonus.
	ReferralBonusThreshold = 2500
)

// Domain errors
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrNameTooLong     = errors.New("name cannot exceed 100 characters")
	ErrEmptyEmail      = errors.New("email cannot be empty")
	ErrEmailTooLong    = errors.New("email cannot exceed 254 characters")
	ErrInvalidEmail    = errors.New("email must contain '@'")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrWrongPassword   = errors.New("incorrect password")
	ErrSelfReferral    = errors.New("a user cannot refer themselves")
	ErrDuplicateEmail  = errors.New("an account with this email already exists")
	ErrNotFound        = errors.New("user not found")
	ErrUnknownReferrer = errors.New("referral code not recognised")
)

// User holds state for a registered person. ReferralID is empty when the user
// signed up without a referral code.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	ReferralID   string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if len(u.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.ReferralID != "" && u.ReferralID == u.ID {
		return ErrSelfReferral
	}
	return nil
}

// NormalizeEmail trims surrounding whitespace. Case is preserved: lookups
// match the stored address exactly.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// WasReferred reports whether the user signed up with a referral code.
func (u *User) WasReferred() bool {
	return u.ReferralID != ""
}

// ReferralEarnings is the referral-page figure for a number of referrals.
// It is independent of the user's recorded Earning rows.
func ReferralEarnings(referrals int) int {
	return referrals * ReferralReward
}

// BonusUnlocked reports whether the referral bonus is available.
// Derived on read; never stored.
func BonusUnlocked(referrals int) bool {
	return ReferralEarnings(referrals) >= ReferralBonusThreshold
}

// ReferralLink is the signup URL that credits userID as the referrer.
func ReferralLink(baseURL, userID string) string {
	return strings.TrimRight(baseURL, "/") + "/signup?ref=" + url.QueryEscape(userID)
}
