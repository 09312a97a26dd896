package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-fitness-tracker/internal/models"
	"github.com/pribylovaa/go-fitness-tracker/internal/storage"
)

const userColumns = `
	id, name, username, email, password_hash,
	country, gender, age, height, current_weight, target_weight,
	weekly_target, target_date, activity_level, target_calories,
	refresh_token_hash, created_at, updated_at
`

// scanUser читает строку users в модель.
// username может быть NULL — читаем через указатель.
func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var username *string

	err := row.Scan(
		&user.ID,
		&user.Name,
		&username,
		&user.Email,
		&user.PasswordHash,
		&user.Country,
		&user.Gender,
		&user.Age,
		&user.Height,
		&user.CurrentWeight,
		&user.TargetWeight,
		&user.WeeklyTarget,
		&user.TargetDate,
		&user.ActivityLevel,
		&user.TargetCal,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if username != nil {
		user.Username = *username
	}

	return &user, nil
}

// nullableUsername превращает пустой username в NULL,
// чтобы не ловить конфликт уникальности на пустых строках.
func nullableUsername(u string) *string {
	if u == "" {
		return nil
	}
	return &u
}

// SaveUser создаёт нового пользователя в БД.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users(
			id, name, username, email, password_hash,
			country, gender, age, height, current_weight, target_weight,
			weekly_target, target_date, activity_level, target_calories,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Name,
		nullableUsername(user.Username),
		user.Email,
		user.PasswordHash,
		user.Country,
		user.Gender,
		user.Age,
		user.Height,
		user.CurrentWeight,
		user.TargetWeight,
		user.WeeklyTarget,
		user.TargetDate,
		user.ActivityLevel,
		user.TargetCal,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// Какая именно уникальность нарушена — видно по имени констрейнта.
			if pgErr.ConstraintName == "users_username_key" {
				return fmt.Errorf("%s: %w", op, storage.ErrUsernameTaken)
			}

			return fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByEmail находит пользователя по email.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.UserByEmail"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(s.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.postgres.UserByID"

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UserByEmailOrUsername проверяет занятость email/username одним запросом.
// Возвращает первого совпавшего пользователя либо ErrNotFound.
func (s *Storage) UserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	const op = "storage.postgres.UserByEmailOrUsername"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $2 LIMIT 1`

	user, err := scanUser(s.db.QueryRow(ctx, query, email, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UserByRefreshHash находит пользователя по хэшу его refresh-токена.
func (s *Storage) UserByRefreshHash(ctx context.Context, hash string) (*models.User, error) {
	const op = "storage.postgres.UserByRefreshHash"

	query := `SELECT ` + userColumns + ` FROM users WHERE refresh_token_hash = $1`

	user, err := scanUser(s.db.QueryRow(ctx, query, hash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// SetRefreshHash записывает хэш нового refresh-токена в слот пользователя.
// Прежнее значение перезаписывается: одна активная сессия на аккаунт.
func (s *Storage) SetRefreshHash(ctx context.Context, userID uuid.UUID, hash string) error {
	const op = "storage.postgres.SetRefreshHash"

	query := `
		UPDATE users
		SET refresh_token_hash = $2, updated_at = now()
		WHERE id = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, userID, hash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ClearRefreshHash обнуляет refresh-слот пользователя.
func (s *Storage) ClearRefreshHash(ctx context.Context, userID uuid.UUID) error {
	const op = "storage.postgres.ClearRefreshHash"

	query := `
		UPDATE users
		SET refresh_token_hash = NULL, updated_at = now()
		WHERE id = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
