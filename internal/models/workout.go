package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы тренировочной сессии.
const (
	WorkoutStatusSaved     = "saved"
	WorkoutStatusCompleted = "completed"
	WorkoutStatusAnalyzing = "analyzing"
)

// WorkoutSession — одна сохранённая тренировка пользователя.
// Метрики пользователя (вес/рост/возраст/пол) снимаются в момент
// сохранения: профиль может меняться, а история расчётов — нет.
type WorkoutSession struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"userId"`
	ExerciseName      string    `json:"exerciseName"`
	PredictedExercise string    `json:"predictedExercise,omitempty"`
	Duration          int       `json:"duration"` // в секундах
	CaloriesBurned    float64   `json:"caloriesBurned"`
	BMR               float64   `json:"bmr,omitempty"`
	ExerciseImage     string    `json:"exerciseImage,omitempty"`
	WorkoutDate       time.Time `json:"workoutDate"`
	WorkoutTime       string    `json:"workoutTime"`
	Status            string    `json:"status"`
	Notes             string    `json:"notes,omitempty"`

	UserWeight float64 `json:"userWeight,omitempty"`
	UserHeight float64 `json:"userHeight,omitempty"`
	UserAge    int     `json:"userAge,omitempty"`
	UserGender string  `json:"userGender,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkoutFilter — параметры выборки списка тренировок.
type WorkoutFilter struct {
	UserID    uuid.UUID
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
	Exercise  string
	Status    string
	Page      int
	Limit     int
}

// WorkoutUpdate — частичное обновление сессии; nil-поле означает "не трогать".
type WorkoutUpdate struct {
	ExerciseName   *string
	Duration       *int
	CaloriesBurned *float64
	Status         *string
	Notes          *string
}

// WorkoutPage — страница выборки вместе с общим количеством строк.
type WorkoutPage struct {
	Items []WorkoutSession
	Total int64
}

// DailyWorkoutStat — агрегат тренировок за один день.
type DailyWorkoutStat struct {
	Date          time.Time          `json:"date"`
	TotalCalories float64            `json:"totalCalories"`
	TotalDuration int                `json:"totalDuration"`
	SessionCount  int                `json:"sessionCount"`
	Exercises     []WorkoutStatEntry `json:"exercises"`
}

// WorkoutStatEntry — вклад одного упражнения в дневной агрегат.
type WorkoutStatEntry struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Duration int     `json:"duration"`
}
