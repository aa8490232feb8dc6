package orchestrators

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"ofx/internal/domain/video"
)

// VideoStoreForUpload defines the store interface needed by UploadVideo.
type VideoStoreForUpload interface {
	Create(ctx context.Context, v video.Video) error
}

// FileStore persists uploaded bytes and returns a public path.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

// UploadVideoInput carries the admin form. File is nil when no file was sent.
type UploadVideoInput struct {
	Title       string
	Duration    string
	Amount      string
	Description string
	Filename    string
	File        io.Reader
}

// UploadVideoDeps holds dependencies for UploadVideo.
type UploadVideoDeps struct {
	VideoStore VideoStoreForUpload
	Files      FileStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteUploadVideo stores the file and then records the video row.
// PRE: Caller is an admin
// POST: File saved and one video row inserted; video.ErrNoFile takes precedence over field errors and leaves no row
func ExecuteUploadVideo(ctx context.Context, input UploadVideoInput, deps UploadVideoDeps) (video.Video, error) {
	if input.File == nil || input.Filename == "" {
		return video.Video{}, video.ErrNoFile
	}

	v := video.Video{
		ID:          deps.GenerateID(),
		Title:       input.Title,
		Duration:    input.Duration,
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   deps.Now(),
	}
	if err := v.Validate(); err != nil {
		return video.Video{}, err
	}

	publicPath, err := deps.Files.Save(ctx, video.StoredFilename(v.ID, input.Filename), input.File)
	if err != nil {
		return video.Video{}, fmt.Errorf("save upload: %w", err)
	}
	v.FilePath = publicPath

	if err := deps.VideoStore.Create(ctx, v); err != nil {
		if rmErr := deps.Files.Remove(ctx, publicPath); rmErr != nil {
			slog.Warn("upload_cleanup_failed", "path", publicPath, "error", rmErr)
		}
		return video.Video{}, fmt.Errorf("create video: %w", err)
	}

	slog.Info("video_uploaded", "video_id", v.ID, "title", v.Title, "path", v.FilePath)
	return v, nil
}
