// httperr стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя (sentinel-ошибки service/storage),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Маппинг следует историческому контракту API: занятость email/username и
// неверный пароль отвечают 400 (не 409/401), неизвестный email на логине — 404.
// Истёкший access-токен различим от подделанного: 401 token_expired против
// 403 invalid_token — клиенту по 401 следует обновиться через refresh.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-fitness-tracker/internal/predict"
	"github.com/pribylovaa/go-fitness-tracker/internal/service"
	"github.com/pribylovaa/go-fitness-tracker/internal/storage"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ.
//
// err == nil — программная ошибка вызова: возвращаем 500/internal,
// чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, envelope("internal", "internal error")
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, envelope("invalid_input", "invalid input")
	case errors.Is(err, service.ErrPasswordMismatch):
		return http.StatusBadRequest, envelope("password_mismatch", "password confirmation does not match")
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusBadRequest, envelope("email_taken", "email already taken")
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusBadRequest, envelope("username_taken", "username already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, envelope("invalid_credentials", "invalid credentials")
	case errors.Is(err, service.ErrUnknownExercise):
		return http.StatusBadRequest, envelope("unknown_exercise", "unknown exercise")
	case errors.Is(err, service.ErrMissingToken):
		return http.StatusUnauthorized, envelope("missing_token", "authentication required")
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, envelope("token_expired", "token expired")
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusForbidden, envelope("invalid_token", "invalid token")
	case errors.Is(err, service.ErrRefreshMismatch):
		return http.StatusForbidden, envelope("refresh_mismatch", "refresh token not recognized")
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, envelope("not_found", "not found")
	case errors.Is(err, predict.ErrPredictTimeout):
		return http.StatusInternalServerError, envelope("prediction_timeout", "model prediction timed out")
	case errors.Is(err, predict.ErrPredictFailed):
		return http.StatusInternalServerError, envelope("prediction_failed", "model prediction failed")
	default:
		return http.StatusInternalServerError, envelope("internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	write(w, r, status, resp)
}

// WriteRefreshError — вариант для refresh-операций: истечение и невалидность
// refresh-токена отвечают 403 (повторная аутентификация), а не 401.
func WriteRefreshError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	if errors.Is(err, service.ErrTokenExpired) {
		status = http.StatusForbidden
	}
	write(w, r, status, resp)
}

func write(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func envelope(code, msg string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: msg}}
}
