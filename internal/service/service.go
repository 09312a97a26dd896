// service содержит бизнес-логику fitness-трекера: регистрацию и
// аутентификацию пользователей, жизненный цикл access/refresh-токенов,
// тренировочные сессии и расчёт калорий.
//
// Основные аспекты:
//   - Service не хранит состояние запроса; экземпляр безопасен для
//     конкурентного использования из разных горутин при условии, что
//     переданное хранилище (storage.Storage) потокобезопасно.
//   - Ошибки возвращаются наверх и маппятся HTTP-слоем на статус-коды
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/pribylovaa/go-fitness-tracker/internal/cache"
	"github.com/pribylovaa/go-fitness-tracker/internal/config"
	"github.com/pribylovaa/go-fitness-tracker/internal/storage"
)

var (
	// ErrInvalidInput — отсутствующие/некорректные поля запроса. HTTP 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPasswordMismatch — password и confirmPassword не совпадают. HTTP 400.
	ErrPasswordMismatch = errors.New("password confirmation mismatch")

	// ErrEmailTaken — email уже занят другим пользователем. HTTP 400
	// (исторический контракт API; конвенциональный 409 не используется).
	ErrEmailTaken = errors.New("email already taken")

	// ErrUsernameTaken — username уже занят. HTTP 400.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound — пользователь не найден. HTTP 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials — пароль не совпал с хэшем. HTTP 400
	// (исторический контракт: логин с неверным паролем отвечает 400, не 401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingToken — credential отсутствует (нет Authorization/cookie). HTTP 401.
	ErrMissingToken = errors.New("missing token")

	// ErrTokenExpired — срок действия токена истёк. Для access-токена — HTTP 401
	// (клиенту следует обновиться через refresh), для refresh — HTTP 403.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidToken — подпись/формат токена некорректны. HTTP 403.
	ErrInvalidToken = errors.New("invalid token")

	// ErrRefreshMismatch — предъявленный refresh-токен не совпадает с хранимым
	// слотом ни одного аккаунта (никогда не логинился / уже разлогинен /
	// вытеснен повторным логином). HTTP 403.
	ErrRefreshMismatch = errors.New("refresh token mismatch")

	// ErrUnknownExercise — упражнение отсутствует в MET-таблице. HTTP 400.
	ErrUnknownExercise = errors.New("unknown exercise")
)

// Service описывает бизнес-логику сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	rcache  cache.RefreshCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetRefreshCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}
