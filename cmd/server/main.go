package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	emailPkg "ofx/internal/adapters/email"
	web "ofx/internal/adapters/http"
	"ofx/internal/adapters/http/middleware"
	"ofx/internal/adapters/storage"
	earningStore "ofx/internal/adapters/storage/earning"
	userStore "ofx/internal/adapters/storage/user"
	videoStore "ofx/internal/adapters/storage/video"
	withdrawalStore "ofx/internal/adapters/storage/withdrawal"
	"ofx/internal/adapters/uploads"
	"ofx/internal/application/orchestrators"
	"ofx/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	if cfg.GeneratedSecret {
		log.Println("WARNING: using random session/CSRF keys (sessions won't survive restart). Set OFX_SESSION_KEY and OFX_CSRF_KEY for production.")
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Stores share the timed wrapper so slow queries are logged.
	timedDB := storage.NewTimedDB(db, cfg.SlowQueryMs)
	users := userStore.NewSQLiteStore(timedDB)
	stores := web.Stores{
		UserStore:       users,
		VideoStore:      videoStore.NewSQLiteStore(timedDB),
		EarningStore:    earningStore.NewSQLiteStore(timedDB),
		WithdrawalStore: withdrawalStore.NewSQLiteStore(timedDB),
	}

	created, err := orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, orchestrators.SeedAdminDeps{
		UserStore:  users,
		GenerateID: func() string { return uuid.New().String() },
		Now:        time.Now,
	})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if created {
		log.Printf("Admin account created for %s", cfg.AdminEmail)
	}

	var mailer emailPkg.Sender
	if cfg.ResendKey != "" {
		mailer = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		mailer = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Println("WARNING: OFX_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set OFX_RESEND_KEY for real delivery)")
		}
	}

	files, err := uploads.NewLocalStore(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}

	sessions, err := middleware.NewSessionManager(cfg.SessionKey, cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to create session manager: %v", err)
	}

	server := web.NewServer(stores, sessions, mailer, files, web.Options{
		StaticDir:      cfg.StaticDir,
		BaseURL:        cfg.BaseURL,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Secure:         cfg.IsProduction(),
		CSRFKey:        cfg.CSRFKey,
		SlowRequestMs:  cfg.SlowRequestMs,
		NotifyEmail:    cfg.AdminNotifyTo,
		TrustedOrigins: cfg.TrustedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("OFX %s starting on %s (env=%s, schema=%d)", version, cfg.Addr, cfg.Env, storage.LatestSchemaVersion())
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
