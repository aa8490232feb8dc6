package middleware

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

// SessionTTL is how long an issued session stays valid.
const SessionTTL = 24 * time.Hour

const (
	sessionCookieName = "ofx_session"
	flashCookieName   = "ofx_flash"
	flashTTL          = 5 * time.Minute
)

// ErrShortSessionKey is returned when the master key is too short to derive from.
var ErrShortSessionKey = errors.New("session key must be at least 32 bytes")

// Session represents an authenticated session.
type Session struct {
	UserID   string    `json:"uid"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"admin"`
	IssuedAt time.Time `json:"iat"`
}

// SessionManager issues and reads signed, encrypted session cookies.
// Nothing is kept server-side; the cookie is the whole session.
type SessionManager struct {
	codec  *securecookie.SecureCookie
	flash  *securecookie.SecureCookie
	secure bool
}

// NewSessionManager derives the cookie signing and encryption keys from masterKey.
// PRE: len(masterKey) >= 32
// POST: Returns a manager whose cookies are Secure when secure is true
func NewSessionManager(masterKey []byte, secure bool) (*SessionManager, error) {
	if len(masterKey) < 32 {
		return nil, ErrShortSessionKey
	}
	hashKey, err := deriveKey(masterKey, "ofx session hmac", 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(masterKey, "ofx session aes", 32)
	if err != nil {
		return nil, err
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(SessionTTL.Seconds()))

	flash := securecookie.New(hashKey, blockKey)
	flash.SetSerializer(securecookie.JSONEncoder{})
	flash.MaxAge(int(flashTTL.Seconds()))

	return &SessionManager{codec: codec, flash: flash, secure: secure}, nil
}

func deriveKey(secret []byte, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s: %w", info, err)
	}
	return key, nil
}

// Issue writes a session cookie for the given identity.
// PRE: sess.UserID is non-empty
// POST: Response carries a fresh session cookie
func (m *SessionManager) Issue(w http.ResponseWriter, sess Session) error {
	if sess.IssuedAt.IsZero() {
		sess.IssuedAt = time.Now()
	}
	encoded, err := m.codec.Encode(sessionCookieName, sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	http.SetCookie(w, m.cookie(sessionCookieName, encoded, int(SessionTTL.Seconds())))
	return nil
}

// Read decodes the session cookie. Missing, tampered or expired cookies yield false.
func (m *SessionManager) Read(r *http.Request) (Session, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return Session{}, false
	}
	var sess Session
	if err := m.codec.Decode(sessionCookieName, c.Value, &sess); err != nil {
		return Session{}, false
	}
	if sess.UserID == "" || time.Since(sess.IssuedAt) > SessionTTL {
		return Session{}, false
	}
	return sess, true
}

// Clear removes the session cookie entirely.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(sessionCookieName, "", -1))
}

// SetFlash stores a one-shot notice shown on the next rendered page.
func (m *SessionManager) SetFlash(w http.ResponseWriter, message string) error {
	encoded, err := m.flash.Encode(flashCookieName, message)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}
	http.SetCookie(w, m.cookie(flashCookieName, encoded, int(flashTTL.Seconds())))
	return nil
}

// PopFlash returns the pending notice, if any, and clears it.
func (m *SessionManager) PopFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, m.cookie(flashCookieName, "", -1))
	var message string
	if err := m.flash.Decode(flashCookieName, c.Value, &message); err != nil {
		return ""
	}
	return message
}

func (m *SessionManager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
