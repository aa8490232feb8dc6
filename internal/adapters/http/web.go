package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"ofx/internal/adapters/email"
	"ofx/internal/adapters/http/middleware"
	earningStore "ofx/internal/adapters/storage/earning"
	userStore "ofx/internal/adapters/storage/user"
	videoStore "ofx/internal/adapters/storage/video"
	withdrawalStore "ofx/internal/adapters/storage/withdrawal"
	"ofx/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	UserStore       userStore.Store
	VideoStore      videoStore.Store
	EarningStore    earningStore.Store
	WithdrawalStore withdrawalStore.Store
}

// Options carries deployment settings the handlers need.
type Options struct {
	StaticDir      string
	BaseURL        string
	MaxUploadBytes int64
	Secure         bool   // HTTPS deployment: Secure cookies and strict CSRF checks
	CSRFKey        []byte // 32 bytes
	TrustedOrigins []string
	SlowRequestMs  int
	NotifyEmail    string // admin address for withdrawal notices; empty disables them
}

// DefaultMaxUploadBytes bounds a video upload when Options leaves it unset.
const DefaultMaxUploadBytes = 512 << 20

// Server owns the HTTP handlers and everything they depend on.
type Server struct {
	stores   Stores
	sessions *middleware.SessionManager
	mailer   email.Sender
	files    orchestrators.FileStore
	opts     Options

	now   func() time.Time
	newID func() string
}

// NewServer wires a Server. mailer may be nil to disable email.
// PRE: stores are non-nil; sessions is non-nil
func NewServer(stores Stores, sessions *middleware.SessionManager, mailer email.Sender, files orchestrators.FileStore, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Server{
		stores:   stores,
		sessions: sessions,
		mailer:   mailer,
		files:    files,
		opts:     opts,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Routes returns the route table with session decoding but without CSRF,
// timing or security headers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	user := middleware.RequireAuth
	admin := middleware.RequireAdmin

	mux.Handle("GET /{$}", user(http.HandlerFunc(s.handleDashboard)))
	mux.Handle("GET /training", user(http.HandlerFunc(s.handleTraining)))
	mux.Handle("GET /referral", user(http.HandlerFunc(s.handleReferral)))
	mux.Handle("GET /referral/qr.png", user(http.HandlerFunc(s.handleReferralQR)))
	mux.Handle("GET /wallet", user(http.HandlerFunc(s.handleWallet)))
	mux.Handle("POST /withdraw", user(http.HandlerFunc(s.handleWithdraw)))
	mux.Handle("GET /account", user(http.HandlerFunc(s.handleAccount)))

	mux.HandleFunc("GET /logout", s.handleLogout)
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /signup", s.handleSignupForm)
	mux.HandleFunc("POST /signup", s.handleSignup)

	mux.Handle("GET /admin", admin(http.HandlerFunc(s.handleAdminPanel)))
	mux.Handle("POST /admin", admin(http.HandlerFunc(s.handleAdminPanel)))
	mux.Handle("POST /admin/upload_video", admin(http.HandlerFunc(s.handleUploadVideo)))
	mux.Handle("POST /admin/withdrawals/{id}/decide", admin(http.HandlerFunc(s.handleDecideWithdrawal)))
	mux.Handle("POST /admin/earnings", admin(http.HandlerFunc(s.handleRecordEarning)))
	mux.Handle("GET /admin/export.xlsx", admin(http.HandlerFunc(s.handleExport)))

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir))))

	return middleware.Auth(s.sessions)(mux)
}

// Handler returns the full middleware stack:
// Timing -> SecurityHeaders -> MaxBody -> CSRF -> Auth -> routes.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.Routes(),
		middleware.Timing(s.opts.SlowRequestMs),
		middleware.SecurityHeaders,
		middleware.MaxBody(s.opts.MaxUploadBytes),
		middleware.CSRF(s.opts.CSRFKey, s.opts.Secure, s.opts.TrustedOrigins),
	)
}
