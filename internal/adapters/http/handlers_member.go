package web

import (
	"errors"
	"net/http"

	"github.com/skip2/go-qrcode"

	"ofx/internal/adapters/http/middleware"
	"ofx/internal/application/orchestrators"
	"ofx/internal/application/projections"
	"ofx/internal/domain/money"
	"ofx/internal/domain/user"
)

// qrSize is the edge length in pixels of the referral QR code.
const qrSize = 256

// currentSession returns the session RequireAuth already checked.
func currentSession(r *http.Request) middleware.Session {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return sess
}

// staleSession handles a valid cookie whose user no longer exists.
func (s *Server) staleSession(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, user.ErrNotFound) {
		return false
	}
	s.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		UserID: currentSession(r).UserID,
	}, projections.GetDashboardDeps{
		UserStore:       s.stores.UserStore,
		ReferralCounter: s.stores.UserStore,
		EarningStore:    s.stores.EarningStore,
	})
	if err != nil {
		if !s.staleSession(w, r, err) {
			internalError(w, err)
		}
		return
	}
	s.render(w, r, http.StatusOK, "dashboard.html", map[string]any{
		"Name":      result.Name,
		"Referrals": result.Referrals,
		"Earnings":  result.EarningsDisplay,
	})
}

func (s *Server) handleTraining(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetTraining(r.Context(), projections.GetTrainingDeps{
		VideoStore: s.stores.VideoStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, "training.html", map[string]any{
		"Videos": result.Videos,
	})
}

func (s *Server) handleReferral(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetReferral(r.Context(), projections.GetReferralQuery{
		UserID:  currentSession(r).UserID,
		BaseURL: s.opts.BaseURL,
	}, projections.GetReferralDeps{
		ReferralCounter: s.stores.UserStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, "referral.html", map[string]any{
		"Referrals":      result.Referrals,
		"Earnings":       result.EarningsDisplay,
		"BonusUnlocked":  result.BonusUnlocked,
		"BonusThreshold": result.BonusThreshold,
		"ReferralLink":   result.ReferralLink,
	})
}

// handleReferralQR serves the referral link as a PNG QR code.
func (s *Server) handleReferralQR(w http.ResponseWriter, r *http.Request) {
	link := user.ReferralLink(s.opts.BaseURL, currentSession(r).UserID)
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(png)
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetWallet(r.Context(), projections.GetWalletQuery{
		UserID: currentSession(r).UserID,
	}, projections.GetWalletDeps{
		EarningStore:    s.stores.EarningStore,
		WithdrawalStore: s.stores.WithdrawalStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, "wallet.html", map[string]any{
		"Balance":     result.BalanceDisplay,
		"History":     result.Entries,
		"Withdrawals": result.Withdrawals,
	})
}

// handleWithdraw records a pending withdrawal and returns to the wallet.
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteRequestWithdrawal(r.Context(), orchestrators.RequestWithdrawalInput{
		UserID: currentSession(r).UserID,
		Amount: r.PostFormValue("amount"),
	}, orchestrators.RequestWithdrawalDeps{
		WithdrawalStore: s.stores.WithdrawalStore,
		UserStore:       s.stores.UserStore,
		Mailer:          s.mailer,
		NotifyEmail:     s.opts.NotifyEmail,
		AdminURL:        s.opts.BaseURL + "/admin",
		GenerateID:      s.newID,
		Now:             s.now,
	})
	if err != nil {
		msg, ok := userMessage(err, money.ErrEmptyAmount, money.ErrInvalidAmount, money.ErrNonPositive, money.ErrAmountTooLarge)
		if !ok {
			internalError(w, err)
			return
		}
		s.redirectWithFlash(w, r, "/wallet", msg)
		return
	}
	s.redirectWithFlash(w, r, "/wallet", orchestrators.WithdrawalRequestedMessage)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetAccount(r.Context(), currentSession(r).UserID, projections.GetAccountDeps{
		UserStore: s.stores.UserStore,
	})
	if err != nil {
		if !s.staleSession(w, r, err) {
			internalError(w, err)
		}
		return
	}
	s.render(w, r, http.StatusOK, "account.html", map[string]any{
		"Name":  result.Name,
		"Email": result.Email,
	})
}
