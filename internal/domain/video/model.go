package video

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 10000
	MaxFilenameLength    = 200
)

// fallbackFilename is used when sanitizing leaves nothing.
const fallbackFilename = "upload"

// Domain errors
var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title cannot exceed 200 characters")
	ErrEmptyDuration   = errors.New("duration is required")
	ErrEmptyAmount     = errors.New("amount is required")
	ErrDescriptionLong = errors.New("description cannot exceed 10000 characters")
	ErrNoFile          = errors.New("a video file is required")
)

// Video is a training video. Duration and Amount are kept exactly as entered
// by the administrator.
type Video struct {
	ID          string
	Title       string
	Duration    string
	Amount      string
	Description string // markdown
	FilePath    string // public path, e.g. /static/uploads/<name>
	CreatedAt   time.Time
}

// Validate checks if the Video has valid data.
// PRE: Video struct is populated
// POST: Returns nil if valid, error otherwise
func (v *Video) Validate() error {
	if strings.TrimSpace(v.Title) == "" {
		return ErrEmptyTitle
	}
	if len(v.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(v.Duration) == "" {
		return ErrEmptyDuration
	}
	if strings.TrimSpace(v.Amount) == "" {
		return ErrEmptyAmount
	}
	if len(v.Description) > MaxDescriptionLength {
		return ErrDescriptionLong
	}
	return nil
}

// SanitizeFilename reduces an uploaded filename to a safe ASCII basename:
// accents are folded, path separators and unsafe characters removed, and
// whitespace runs collapsed to underscores.
func SanitizeFilename(name string) string {
	var ascii strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r <= unicode.MaxASCII {
			ascii.WriteRune(r)
		}
	}

	s := strings.NewReplacer("/", " ", "\\", " ").Replace(ascii.String())
	s = strings.Join(strings.Fields(s), "_")

	var safe strings.Builder
	for _, r := range s {
		if r == '.' || r == '-' || r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			safe.WriteRune(r)
		}
	}

	out := strings.Trim(safe.String(), "._")
	if len(out) > MaxFilenameLength {
		out = out[len(out)-MaxFilenameLength:]
		out = strings.TrimLeft(out, "._")
	}
	if out == "" {
		return fallbackFilename
	}
	return out
}

// StoredFilename namespaces a sanitized filename with the video ID so two
// uploads with the same name never overwrite each other.
func StoredFilename(id, original string) string {
	return id + "-" + SanitizeFilename(original)
}
