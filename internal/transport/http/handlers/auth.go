package handlers

import (
	"net/http"
	"time"

	"github.com/pribylovaa/go-fitness-tracker/internal/models"
	"github.com/pribylovaa/go-fitness-tracker/internal/service"
	"github.com/pribylovaa/go-fitness-tracker/internal/transport/http/httperr"
)

// refreshCookieName — имя HTTP-only cookie с refresh-токеном.
const refreshCookieName = "refreshToken"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"accessToken"`
	ExpiresAt   time.Time      `json:"expiresAt"`
	User        models.Profile `json:"user"`
}

type refreshResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// LoginUser — POST /login.
// Успех: access-токен в теле, refresh — в HTTP-only cookie.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return
	}

	pair, user, err := h.Service.LoginUser(r.Context(), in.Email, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt,
		User:        user.PublicProfile(),
	})
}

// RefreshToken — GET /token.
// Читает refresh из cookie и выпускает новый access-токен; сам refresh
// не ротируется. Отсутствие cookie — 401, несовпадение/истечение — 403.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookieName)
	if err != nil || c.Value == "" {
		httperr.WriteError(w, r, service.ErrMissingToken)
		return
	}

	accessToken, expiresAt, err := h.Service.RefreshAccessToken(r.Context(), c.Value)
	if err != nil {
		httperr.WriteRefreshError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	})
}

// Logout — DELETE /logout. Идемпотентен: 200, если сессия завершена этим
// вызовом, 204 — если завершать было нечего. Cookie очищается в обоих случаях.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(refreshCookieName); err == nil {
		token = c.Value
	}

	ended, err := h.Service.Logout(r.Context(), token)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	h.clearRefreshCookie(w)

	if !ended {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handlers) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.RefreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
