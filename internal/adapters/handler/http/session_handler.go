package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/smallie/smallie/internal/core/ports"
)

type SessionHandler struct {
	sessionService ports.SessionService
	redirectURL    string
	cookieDomain   string
	cookieSameSite http.SameSite
	log            *slog.Logger
}

func NewSessionHandler(sessionService ports.SessionService, redirectURL string, cookieDomain string, cookieSameSite http.SameSite, log *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		redirectURL:    redirectURL,
		cookieDomain:   cookieDomain,
		cookieSameSite: cookieSameSite,
		log:            log,
	}
}

// GoogleCallback completes the redirect-based sign-in: Google posts the
// credential here after the page navigation. Failures are logged and the
// user lands back on the page signed out, free to retry.
func (h *SessionHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	credential := r.FormValue("credential")
	if credential == "" {
		http.Error(w, "Missing credential", http.StatusBadRequest)
		return
	}

	accessToken, refreshToken, err := h.sessionService.LoginWithGoogle(r.Context(), credential)
	if err != nil {
		h.log.Error("sign-in failed", "error", err)
		http.Redirect(w, r, h.redirectURL, http.StatusSeeOther)
		return
	}

	h.setAccessTokenCookie(w, accessToken)
	h.setRefreshTokenCookie(w, refreshToken)

	http.Redirect(w, r, h.redirectURL, http.StatusSeeOther)
}

// GetSession projects the session state the page renders its login/logout
// affordances from.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	var accessToken string
	if cookie, err := r.Cookie("access_token"); err == nil {
		accessToken = cookie.Value
	}

	state := h.sessionService.Current(r.Context(), accessToken)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		http.Error(w, "Missing refresh token", http.StatusUnauthorized)
		return
	}

	accessToken, refreshToken, err := h.sessionService.RefreshAccessToken(r.Context(), cookie.Value)
	if err != nil {
		h.expireCookies(w)
		http.Error(w, "Refresh failed: "+err.Error(), http.StatusUnauthorized)
		return
	}

	h.setAccessTokenCookie(w, accessToken)

	// If refresh token was rotated, update it too
	if refreshToken != "" && refreshToken != cookie.Value {
		h.setRefreshTokenCookie(w, refreshToken)
	}

	w.WriteHeader(http.StatusOK)
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err == nil && cookie.Value != "" {
		if err := h.sessionService.Logout(r.Context(), cookie.Value); err != nil {
			h.log.Error("sign-out failed", "error", err)
		}
	}

	h.expireCookies(w)
	w.WriteHeader(http.StatusOK)
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *SessionHandler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   true,
		SameSite: h.cookieSameSite,
		MaxAge:   15 * 60, // 15 minutes
	})
}

func (h *SessionHandler) setRefreshTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   true,
		SameSite: h.cookieSameSite,
		MaxAge:   7 * 24 * 60 * 60, // 7 days
	})
}

func (h *SessionHandler) expireCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", MaxAge: -1, Path: "/", Domain: h.cookieDomain})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", MaxAge: -1, Path: "/", Domain: h.cookieDomain})
}
