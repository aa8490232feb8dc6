package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ofx/internal/domain/video"
)

func uploadDeps(videos *mockVideoStore, files *mockFileStore) UploadVideoDeps {
	return UploadVideoDeps{VideoStore: videos, Files: files, GenerateID: fixedID, Now: fixedNow}
}

func TestExecuteUploadVideo_StoresFileAndRow(t *testing.T) {
	videos := &mockVideoStore{}
	files := newMockFileStore()

	v, err := ExecuteUploadVideo(context.Background(), UploadVideoInput{
		Title:       "Intro",
		Duration:    "10 mins",
		Amount:      "500",
		Description: "**Watch** this first",
		Filename:    "My Intro.mp4",
		File:        strings.NewReader("bytes"),
	}, uploadDeps(videos, files))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos.rows) != 1 {
		t.Fatalf("video rows = %d, want 1", len(videos.rows))
	}
	if v.FilePath != "/static/uploads/test-id-001-My_Intro.mp4" {
		t.Errorf("FilePath = %q", v.FilePath)
	}
	if string(files.files[v.FilePath]) != "bytes" {
		t.Errorf("stored bytes = %q", files.files[v.FilePath])
	}
	if v.Duration != "10 mins" || v.Amount != "500" {
		t.Errorf("fields not stored as given: %+v", v)
	}
}

func TestExecuteUploadVideo_NoFile(t *testing.T) {
	videos := &mockVideoStore{}
	_, err := ExecuteUploadVideo(context.Background(), UploadVideoInput{
		Title: "Intro", Duration: "10", Amount: "500",
	}, uploadDeps(videos, newMockFileStore()))
	if !errors.Is(err, video.ErrNoFile) {
		t.Fatalf("error = %v, want ErrNoFile", err)
	}
	if len(videos.rows) != 0 {
		t.Error("no row should be created without a file")
	}
}

// TestExecuteUploadVideo_NoFileBeforeFieldErrors verifies a missing file wins over missing fields.
func TestExecuteUploadVideo_NoFileBeforeFieldErrors(t *testing.T) {
	_, err := ExecuteUploadVideo(context.Background(), UploadVideoInput{Duration: "10"}, uploadDeps(&mockVideoStore{}, newMockFileStore()))
	if !errors.Is(err, video.ErrNoFile) {
		t.Fatalf("error = %v, want ErrNoFile", err)
	}
}

func TestExecuteUploadVideo_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		input   UploadVideoInput
		wantErr error
	}{
		{"title", UploadVideoInput{Duration: "10", Amount: "5"}, video.ErrEmptyTitle},
		{"duration", UploadVideoInput{Title: "T", Amount: "5"}, video.ErrEmptyDuration},
		{"amount", UploadVideoInput{Title: "T", Duration: "10"}, video.ErrEmptyAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Filename = "a.mp4"
			tt.input.File = strings.NewReader("x")
			files := newMockFileStore()
			_, err := ExecuteUploadVideo(context.Background(), tt.input, uploadDeps(&mockVideoStore{}, files))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if len(files.files) != 0 {
				t.Error("file should not be stored when fields are missing")
			}
		})
	}
}

// TestExecuteUploadVideo_RemovesFileOnInsertFailure verifies no orphaned upload remains.
func TestExecuteUploadVideo_RemovesFileOnInsertFailure(t *testing.T) {
	files := newMockFileStore()
	_, err := ExecuteUploadVideo(context.Background(), UploadVideoInput{
		Title: "T", Duration: "1", Amount: "1", Filename: "a.mp4", File: strings.NewReader("x"),
	}, uploadDeps(&mockVideoStore{err: errors.New("disk full")}, files))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(files.files) != 0 {
		t.Errorf("orphaned files = %v", files.files)
	}
}
