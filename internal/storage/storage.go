package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-fitness-tracker/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/сессия).
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken — нарушение уникальности email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUsernameTaken — нарушение уникальности username.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserStorage выполняет операции над пользователями и их refresh-слотом.
type UserStorage interface {
	// SaveUser создаёт нового пользователя в БД.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UserByEmailOrUsername проверяет занятость email/username одним запросом.
	UserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	// UserByRefreshHash находит пользователя по хэшу его refresh-токена.
	UserByRefreshHash(ctx context.Context, hash string) (*models.User, error)
	// SetRefreshHash записывает хэш нового refresh-токена в слот пользователя
	// (перезаписывая прежний — единственная сессия на аккаунт).
	SetRefreshHash(ctx context.Context, userID uuid.UUID, hash string) error
	// ClearRefreshHash обнуляет refresh-слот пользователя (logout).
	ClearRefreshHash(ctx context.Context, userID uuid.UUID) error
}

// WorkoutStorage выполняет операции над тренировочными сессиями.
type WorkoutStorage interface {
	// SaveWorkout создаёт новую сессию.
	SaveWorkout(ctx context.Context, w *models.WorkoutSession) error
	// WorkoutByID находит сессию по ID в рамках владельца.
	WorkoutByID(ctx context.Context, userID, id uuid.UUID) (*models.WorkoutSession, error)
	// ListWorkouts возвращает страницу сессий по фильтру.
	ListWorkouts(ctx context.Context, f models.WorkoutFilter) (*models.WorkoutPage, error)
	// UpdateWorkout применяет частичное обновление; ErrNotFound, если сессии нет.
	UpdateWorkout(ctx context.Context, userID, id uuid.UUID, upd models.WorkoutUpdate) (*models.WorkoutSession, error)
	// DeleteWorkout удаляет сессию владельца; ErrNotFound, если её нет.
	DeleteWorkout(ctx context.Context, userID, id uuid.UUID) error
	// WorkoutsInRange возвращает сессии пользователя в интервале дат
	// (для постанализа/статистики), отсортированные по дате.
	WorkoutsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.WorkoutSession, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	WorkoutStorage
	Close()
}
