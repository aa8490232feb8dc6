// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvProduction is the OFX_ENV value that turns on Secure cookies and required keys.
const EnvProduction = "production"

// StaticURLPrefix is where StaticDir is served.
const StaticURLPrefix = "/static"

// keySize is the decoded length of OFX_SESSION_KEY and OFX_CSRF_KEY.
const keySize = 32

// Config holds every runtime setting.
type Config struct {
	Env             string
	Addr            string
	DBPath          string
	StaticDir       string
	UploadDir       string
	UploadURLPrefix string // public path of UploadDir under StaticURLPrefix
	BaseURL         string
	SessionKey      []byte
	CSRFKey         []byte
	MaxUploadBytes  int64
	AdminEmail      string
	AdminPassword   string
	ResendKey       string
	EmailFrom       string
	AdminNotifyTo   string
	TrustedOrigins  []string // extra hosts allowed to POST, e.g. behind a proxy
	LogLevel        slog.Level
	SlowQueryMs     int
	SlowRequestMs   int
	GeneratedSecret bool // a dev key was generated for this start
}

// IsProduction reports whether OFX_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads .env (when present) and then the process environment.
// Variables already set in the environment take precedence over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config from getenv.
// PRE: getenv is non-nil
// POST: Returns a fully defaulted Config or the first invalid setting
func LoadFrom(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Env:           get("OFX_ENV", "development"),
		Addr:          get("OFX_ADDR", "0.0.0.0:10000"),
		DBPath:        get("OFX_DB_PATH", "ofx_app.db"),
		StaticDir:     get("OFX_STATIC_DIR", "static"),
		BaseURL:       strings.TrimRight(get("OFX_BASE_URL", "http://localhost:10000"), "/"),
		AdminEmail:    get("OFX_ADMIN_EMAIL", ""),
		AdminPassword: getenv("OFX_ADMIN_PASSWORD"),
		ResendKey:     get("OFX_RESEND_KEY", ""),
		EmailFrom:     get("OFX_EMAIL_FROM", "OFX <noreply@localhost>"),
		AdminNotifyTo: get("OFX_ADMIN_NOTIFY_EMAIL", ""),
	}
	cfg.UploadDir = get("OFX_UPLOAD_DIR", cfg.StaticDir+"/uploads")
	cfg.TrustedOrigins = splitList(getenv("OFX_TRUSTED_ORIGINS"))

	var err error
	if cfg.UploadURLPrefix, err = uploadURLPrefix(cfg.StaticDir, cfg.UploadDir); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel, err = parseLevel(get("OFX_LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	maxMB, err := positiveInt(get("OFX_MAX_UPLOAD_MB", "512"), "OFX_MAX_UPLOAD_MB")
	if err != nil {
		return Config{}, err
	}
	cfg.MaxUploadBytes = int64(maxMB) << 20
	if cfg.SlowQueryMs, err = positiveInt(get("OFX_SLOW_QUERY_MS", "50"), "OFX_SLOW_QUERY_MS"); err != nil {
		return Config{}, err
	}
	if cfg.SlowRequestMs, err = positiveInt(get("OFX_SLOW_REQUEST_MS", "200"), "OFX_SLOW_REQUEST_MS"); err != nil {
		return Config{}, err
	}

	var generated bool
	if cfg.SessionKey, generated, err = loadKey(getenv("OFX_SESSION_KEY"), "OFX_SESSION_KEY", cfg.IsProduction()); err != nil {
		return Config{}, err
	}
	cfg.GeneratedSecret = generated
	if cfg.CSRFKey, generated, err = loadKey(getenv("OFX_CSRF_KEY"), "OFX_CSRF_KEY", cfg.IsProduction()); err != nil {
		return Config{}, err
	}
	cfg.GeneratedSecret = cfg.GeneratedSecret || generated

	return cfg, nil
}

// loadKey decodes a 64-hex-character key. Outside production a missing key is
// replaced by a random one so sessions last only until restart.
func loadKey(raw, name string, production bool) ([]byte, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		key, err := hex.DecodeString(raw)
		if err != nil || len(key) != keySize {
			return nil, false, fmt.Errorf("%s must be 64 hex characters (32 bytes)", name)
		}
		return key, false, nil
	}
	if production {
		return nil, false, fmt.Errorf("%s is required in production", name)
	}
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate %s: %w", name, err)
	}
	return key, true, nil
}

// uploadURLPrefix maps uploadDir to its URL under StaticURLPrefix.
// Uploads outside staticDir could not be served, so they are rejected.
func uploadURLPrefix(staticDir, uploadDir string) (string, error) {
	staticAbs, err := filepath.Abs(staticDir)
	if err != nil {
		return "", fmt.Errorf("OFX_STATIC_DIR: %w", err)
	}
	uploadAbs, err := filepath.Abs(uploadDir)
	if err != nil {
		return "", fmt.Errorf("OFX_UPLOAD_DIR: %w", err)
	}
	rel, err := filepath.Rel(staticAbs, uploadAbs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("OFX_UPLOAD_DIR %q must be inside OFX_STATIC_DIR %q", uploadDir, staticDir)
	}
	return path.Join(StaticURLPrefix, filepath.ToSlash(rel)), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("OFX_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func positiveInt(s, name string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return n, nil
}
