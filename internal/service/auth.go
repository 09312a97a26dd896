package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-fitness-tracker/internal/cache"
	"github.com/pribylovaa/go-fitness-tracker/internal/models"
	"github.com/pribylovaa/go-fitness-tracker/internal/pkg/log"
	"github.com/pribylovaa/go-fitness-tracker/internal/pkg/redact"
	"github.com/pribylovaa/go-fitness-tracker/internal/storage"
)

// RegisterInput — данные регистрации нового пользователя.
// Обязательны name/username/email/password/confirmPassword; профильные
// поля опциональны и валидируются по физическим границам.
type RegisterInput struct {
	Name            string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string

	Country       string
	Gender        string
	Age           int
	Height        float64
	CurrentWeight float64
	TargetWeight  float64
	WeeklyTarget  float64
	TargetDate    *time.Time
	ActivityLevel float64
	TargetCal     int
}

// RegisterUser регистрирует нового пользователя.
// Занятость email/username проверяется одним комбинированным запросом,
// коллизия сообщает, какое именно поле занято.
func (s *Service) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	normEmail, err := validateRegisterInput(&in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.storage.UserByEmailOrUsername(ctx, normEmail, in.Username)
	if err == nil {
		if strings.EqualFold(existing.Email, normEmail) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Если цель по калориям не задана, но профиль полон — считаем сами.
	targetCal := in.TargetCal
	if targetCal == 0 {
		targetCal = computeTargetCalories(in.Gender, in.CurrentWeight, in.Height, in.Age, in.ActivityLevel, in.WeeklyTarget)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:            uuid.New(),
		Name:          in.Name,
		Username:      in.Username,
		Email:         normEmail,
		PasswordHash:  hashedPassword,
		Country:       in.Country,
		Gender:        in.Gender,
		Age:           in.Age,
		Height:        in.Height,
		CurrentWeight: in.CurrentWeight,
		TargetWeight:  in.TargetWeight,
		WeeklyTarget:  in.WeeklyTarget,
		TargetDate:    in.TargetDate,
		ActivityLevel: in.ActivityLevel,
		TargetCal:     targetCal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		// Гонка двух регистраций: уникальность добита на уровне БД.
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		if errors.Is(err, storage.ErrUsernameTaken) {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_registered",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(user.Email)),
	)

	return user, nil
}

// LoginUser выполняет вход по email+пароль и выпускает пару токенов.
//
// Переходы состояния (Anonymous -> Authenticated):
//   - аккаунт не найден -> ErrUserNotFound;
//   - пароль не совпал -> ErrInvalidCredentials;
//   - успех: выпускаются access и refresh (раздельные секреты/TTL),
//     хэш refresh записывается в единственный слот аккаунта, перезаписывая
//     прежний. Повторный логин молча вытесняет предыдущую сессию — это
//     осознанный трейд-офф single-session-per-account, а не баг.
//
// Ровно одна запись в хранилище на успешный логин.
func (s *Service) LoginUser(ctx context.Context, email, password string) (*models.TokenPair, *models.User, error) {
	const op = "service.auth.LoginUser"

	lg := log.From(ctx)

	normEmail := strings.ToLower(strings.TrimSpace(email))
	if normEmail == "" || password == "" {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Warn("login_password_mismatch",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
		)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	now := time.Now().UTC()

	accessToken, err := s.issueToken(ctx, user, s.cfg.AccessSecret, s.cfg.AccessTokenTTL, now)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.issueToken(ctx, user, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL, now)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	newHash := hashToken(refreshToken)
	if err := s.storage.SetRefreshHash(ctx, user.ID, newHash); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	// Кэш: вытесняем прежний refresh и кладём новый.
	if s.rcache != nil {
		if user.RefreshTokenHash != nil {
			if cerr := s.rcache.Delete(ctx, *user.RefreshTokenHash); cerr != nil {
				lg.Warn("refresh_cache_delete_failed", slog.String("op", op), slog.String("err", cerr.Error()))
			}
		}

		entry := &cache.RefreshEntry{
			UserID:    user.ID,
			Name:      user.Name,
			Email:     user.Email,
			ExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
		}
		if cerr := s.rcache.Set(ctx, newHash, entry, s.cfg.RefreshTokenTTL); cerr != nil {
			lg.Warn("refresh_cache_set_failed", slog.String("op", op), slog.String("err", cerr.Error()))
		}
	}

	lg.Info("user_logged_in",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
	)

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, user, nil
}

// Authenticate проверяет access-токен и возвращает identity-claims.
// Токен самодостаточен: похода в БД нет, claims — единственный источник
// истины для этого перехода.
func (s *Service) Authenticate(_ context.Context, accessToken string) (*models.Claims, error) {
	const op = "service.auth.Authenticate"

	if accessToken == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	claims, err := s.verifyToken(accessToken, s.cfg.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return claims, nil
}

// RefreshAccessToken выпускает новый access-токен по refresh-токену.
//
// Порядок проверок — сначала соответствие хранимому слоту, затем подпись:
//   - refresh отсутствует -> ErrMissingToken (401);
//   - хэш не совпал ни с одним слотом -> ErrRefreshMismatch (403) —
//     покрывает и "никогда не логинился", и "уже разлогинен/вытеснен";
//   - подпись/срок невалидны -> ErrInvalidToken/ErrTokenExpired (403).
//
// Refresh-токен при этом НЕ ротируется: конкурентные refresh — идемпотентные
// чтения, оба получают валидные access-токены.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	const op = "service.auth.RefreshAccessToken"

	lg := log.From(ctx)

	if refreshToken == "" {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	hash := hashToken(refreshToken)

	user, err := s.userByRefreshHash(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("refresh_lookup_not_found", slog.String("op", op))
			return "", time.Time{}, fmt.Errorf("%s: %w", op, ErrRefreshMismatch)
		}

		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.verifyToken(refreshToken, s.cfg.RefreshSecret); err != nil {
		lg.Warn("refresh_verify_failed",
			slog.String("op", op),
			slog.String("user_id", user.ID.String()),
		)
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	accessToken, err := s.issueToken(ctx, user, s.cfg.AccessSecret, s.cfg.AccessTokenTTL, now)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return accessToken, now.Add(s.cfg.AccessTokenTTL), nil
}

// Logout завершает сессию по refresh-токену.
// Операция идемпотентна: отсутствие cookie или несовпадение со слотом —
// тривиальный успех (ended=false, "нечего завершать"), повторный logout
// с тем же протухшим токеном ошибкой не является.
func (s *Service) Logout(ctx context.Context, refreshToken string) (bool, error) {
	const op = "service.auth.Logout"

	if refreshToken == "" {
		return false, nil
	}

	hash := hashToken(refreshToken)

	user, err := s.storage.UserByRefreshHash(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.ClearRefreshHash(ctx, user.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	if s.rcache != nil {
		if cerr := s.rcache.Delete(ctx, hash); cerr != nil {
			log.From(ctx).Warn("refresh_cache_delete_failed",
				slog.String("op", op),
				slog.String("err", cerr.Error()),
			)
		}
	}

	log.From(ctx).Info("user_logged_out",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
	)

	return true, nil
}

// userByRefreshHash достаёт владельца refresh-токена: сперва из кэша,
// при промахе — из БД (и прогревает кэш). Кэш не источник истины,
// поэтому любая его ошибка деградирует в поход в БД.
func (s *Service) userByRefreshHash(ctx context.Context, hash string) (*models.User, error) {
	const op = "service.auth.userByRefreshHash"

	if s.rcache != nil {
		entry, ok, err := s.rcache.Get(ctx, hash)
		if err != nil {
			log.From(ctx).Warn("refresh_cache_get_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		} else if ok {
			return &models.User{
				ID:    entry.UserID,
				Name:  entry.Name,
				Email: entry.Email,
			}, nil
		}
	}

	user, err := s.storage.UserByRefreshHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	if s.rcache != nil {
		entry := &cache.RefreshEntry{
			UserID:    user.ID,
			Name:      user.Name,
			Email:     user.Email,
			ExpiresAt: time.Now().UTC().Add(s.cfg.RefreshTokenTTL),
		}
		if cerr := s.rcache.Set(ctx, hash, entry, s.cfg.RefreshTokenTTL); cerr != nil {
			log.From(ctx).Warn("refresh_cache_set_failed",
				slog.String("op", op),
				slog.String("err", cerr.Error()),
			)
		}
	}

	return user, nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateRegisterInput проверяет вход регистрации и возвращает
// нормализованный email. Физические границы профиля enforc'ятся здесь —
// на валидационной границе, до каких-либо сайд-эффектов.
func validateRegisterInput(in *RegisterInput) (string, error) {
	if in.Name == "" || in.Username == "" || in.Email == "" || in.Password == "" {
		return "", ErrInvalidInput
	}

	if in.Password != in.ConfirmPassword {
		return "", ErrPasswordMismatch
	}

	if len(in.Password) < 6 {
		return "", ErrInvalidInput
	}

	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidInput
	}

	if in.Gender != "" && in.Gender != "male" && in.Gender != "female" {
		return "", ErrInvalidInput
	}
	if in.Age != 0 && (in.Age < 13 || in.Age > 100) {
		return "", ErrInvalidInput
	}
	if in.Height != 0 && (in.Height < 100 || in.Height > 250) {
		return "", ErrInvalidInput
	}
	if in.CurrentWeight != 0 && (in.CurrentWeight < 30 || in.CurrentWeight > 300) {
		return "", ErrInvalidInput
	}
	if in.TargetWeight != 0 && (in.TargetWeight < 30 || in.TargetWeight > 200) {
		return "", ErrInvalidInput
	}

	return strings.ToLower(email), nil
}
