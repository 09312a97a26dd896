package models

import (
	"time"

	"github.com/google/uuid"
)

// User — модель пользователя в системе.
//
// RefreshTokenHash — единственный мутабельный элемент auth-состояния:
// в нём хранится SHA-256-хэш текущего refresh-токена (nullable).
// Инвариант: не более одного действующего refresh-токена на аккаунт;
// повторный логин перезаписывает слот, logout обнуляет его.
type User struct {
	ID           uuid.UUID
	Name         string
	Username     string
	Email        string
	PasswordHash string

	// Профиль для расчёта калорий (опциональные поля).
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

	RefreshTokenHash *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile — публичное представление пользователя (без хэша пароля
// и refresh-слота), отдаётся наружу через GET /users.
type Profile struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Username      string     `json:"username,omitempty"`
	Email         string     `json:"email"`
	Country       string     `json:"country,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	Age           int        `json:"age,omitempty"`
	Height        float64    `json:"height,omitempty"`
	CurrentWeight float64    `json:"currentWeight,omitempty"`
	TargetWeight  float64    `json:"targetWeight,omitempty"`
	WeeklyTarget  float64    `json:"weeklyTarget,omitempty"`
	TargetDate    *time.Time `json:"targetDeadline,omitempty"`
	ActivityLevel float64    `json:"activityLevel,omitempty"`
	TargetCal     int        `json:"targetCalories,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// PublicProfile возвращает безопасное представление пользователя.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Email:         u.Email,
		Country:       u.Country,
		Gender:        u.Gender,
		Age:           u.Age,
		Height:        u.Height,
		CurrentWeight: u.CurrentWeight,
		TargetWeight:  u.TargetWeight,
		WeeklyTarget:  u.WeeklyTarget,
		TargetDate:    u.TargetDate,
		ActivityLevel: u.ActivityLevel,
		TargetCal:     u.TargetCal,
		CreatedAt:     u.CreatedAt,
	}
}
