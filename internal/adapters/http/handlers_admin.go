package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"ofx/internal/application/orchestrators"
	"ofx/internal/application/projections"
	"ofx/internal/domain/earning"
	"ofx/internal/domain/money"
	"ofx/internal/domain/user"
	"ofx/internal/domain/video"
	"ofx/internal/domain/withdrawal"
)

// multipartMemory is how much of an upload is buffered in memory before spilling to disk.
const multipartMemory = 32 << 20

func (s *Server) adminPanel(r *http.Request) (projections.AdminPanelResult, error) {
	return projections.QueryGetAdminPanel(r.Context(), projections.GetAdminPanelDeps{
		UserStore:       s.stores.UserStore,
		VideoStore:      s.stores.VideoStore,
		EarningStore:    s.stores.EarningStore,
		WithdrawalStore: s.stores.WithdrawalStore,
	})
}

// handleAdminPanel renders aggregates and listings for both GET and POST.
func (s *Server) handleAdminPanel(w http.ResponseWriter, r *http.Request) {
	result, err := s.adminPanel(r)
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, "admin.html", map[string]any{
		"Panel": result,
	})
}

// handleUploadVideo stores the uploaded file and records the video.
// A request without a file redirects back without creating anything.
func (s *Server) handleUploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.redirectWithFlash(w, r, "/admin", fmt.Sprintf("File is too large (limit %d MB).", s.opts.MaxUploadBytes>>20))
			return
		}
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	input := orchestrators.UploadVideoInput{
		Title:       r.FormValue("title"),
		Duration:    r.FormValue("duration"),
		Amount:      r.FormValue("amount"),
		Description: r.FormValue("description"),
	}
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		if header.Size > 0 {
			input.File = file
			input.Filename = header.Filename
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		internalError(w, err)
		return
	}

	v, err := orchestrators.ExecuteUploadVideo(r.Context(), input, orchestrators.UploadVideoDeps{
		VideoStore: s.stores.VideoStore,
		Files:      s.files,
		GenerateID: s.newID,
		Now:        s.now,
	})
	if err != nil {
		if errors.Is(err, video.ErrNoFile) {
			slog.Warn("upload_without_file", "title", input.Title)
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		msg, ok := userMessage(err, video.ErrEmptyTitle, video.ErrTitleTooLong, video.ErrEmptyDuration, video.ErrEmptyAmount, video.ErrDescriptionLong)
		if !ok {
			internalError(w, err)
			return
		}
		s.redirectWithFlash(w, r, "/admin", msg)
		return
	}
	s.redirectWithFlash(w, r, "/admin", fmt.Sprintf("Uploaded %q.", v.Title))
}

// handleDecideWithdrawal approves or rejects a pending withdrawal.
func (s *Server) handleDecideWithdrawal(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	wd, err := orchestrators.ExecuteDecideWithdrawal(r.Context(), orchestrators.DecideWithdrawalInput{
		WithdrawalID: r.PathValue("id"),
		Decision:     r.PostFormValue("decision"),
		AdminID:      currentSession(r).UserID,
	}, orchestrators.DecideWithdrawalDeps{
		WithdrawalStore: s.stores.WithdrawalStore,
		Now:             s.now,
	})
	if err != nil {
		msg, ok := userMessage(err, withdrawal.ErrNotFound, withdrawal.ErrAlreadyDecided, withdrawal.ErrInvalidDecision)
		if !ok {
			internalError(w, err)
			return
		}
		s.redirectWithFlash(w, r, "/admin", msg)
		return
	}
	s.redirectWithFlash(w, r, "/admin", fmt.Sprintf("Withdrawal of %s %s.", money.Format(wd.Amount), wd.Status))
}

// handleRecordEarning credits an earning to a user by email.
func (s *Server) handleRecordEarning(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	e, err := orchestrators.ExecuteRecordEarning(r.Context(), orchestrators.RecordEarningInput{
		UserEmail: r.PostFormValue("email"),
		Amount:    r.PostFormValue("amount"),
		Type:      r.PostFormValue("type"),
	}, orchestrators.RecordEarningDeps{
		UserStore:    s.stores.UserStore,
		EarningStore: s.stores.EarningStore,
		GenerateID:   s.newID,
		Now:          s.now,
	})
	if err != nil {
		msg, ok := userMessage(err,
			earning.ErrInvalidType,
			money.ErrEmptyAmount, money.ErrInvalidAmount, money.ErrNonPositive, money.ErrAmountTooLarge,
			user.ErrEmptyEmail, user.ErrNotFound,
		)
		if !ok {
			internalError(w, err)
			return
		}
		s.redirectWithFlash(w, r, "/admin", msg)
		return
	}
	s.redirectWithFlash(w, r, "/admin", fmt.Sprintf("Recorded %s %s earning.", money.Format(e.Amount), e.Type))
}

// handleExport streams the admin workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, err := s.adminPanel(r)
	if err != nil {
		internalError(w, err)
		return
	}
	f, err := buildWorkbook(result)
	if err != nil {
		internalError(w, err)
		return
	}
	defer f.Close()

	name := fmt.Sprintf("ofx-export-%s.xlsx", s.now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		slog.Error("export_write_failed", "error", err)
	}
}
