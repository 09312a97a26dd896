package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-fitness-tracker/internal/models"
	"github.com/pribylovaa/go-fitness-tracker/internal/pkg/log"
	"github.com/pribylovaa/go-fitness-tracker/internal/storage"
)

// WorkoutInput — данные сохранения тренировочной сессии.
type WorkoutInput struct {
	ExerciseName      string
	PredictedExercise string
	Duration          int
	CaloriesBurned    *float64
	BMR               float64
	ExerciseImage     string
	WorkoutDate       *time.Time
	Status            string
	Notes             string
}

// WorkoutList — страница тренировок с пагинацией и статистикой выборки.
type WorkoutList struct {
	Items      []models.WorkoutSession
	Total      int64
	Page       int
	TotalPages int
	HasNext    bool
	HasPrev    bool
	Statistics WorkoutListStats
}

// WorkoutListStats — сводка по строкам текущей страницы.
type WorkoutListStats struct {
	TotalSessions   int64    `json:"totalSessions"`
	TotalCalories   float64  `json:"totalCalories"`
	TotalDuration   int      `json:"totalDuration"`
	TotalDurationM  int      `json:"totalDurationMinutes"`
	UniqueExercises int      `json:"uniqueExercises"`
	ExerciseTypes   []string `json:"exerciseTypes"`
}

// WorkoutStatsSummary — сводка периода для статистики по дням.
type WorkoutStatsSummary struct {
	TotalDays         int     `json:"totalDays"`
	TotalCalories     float64 `json:"totalCalories"`
	TotalSessions     int     `json:"totalSessions"`
	AvgCaloriesPerDay float64 `json:"averageCaloriesPerDay"`
}

// SaveWorkout сохраняет тренировку пользователя, снимая снапшот его
// текущих метрик (вес/рост/возраст/пол): история расчётов не должна
// меняться вместе с профилем.
func (s *Service) SaveWorkout(ctx context.Context, userID uuid.UUID, in WorkoutInput) (*models.WorkoutSession, error) {
	const op = "service.workouts.SaveWorkout"

	if in.ExerciseName == "" || in.CaloriesBurned == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if in.Duration <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if in.Status != "" && !validWorkoutStatus(in.Status) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	user, err := s.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	predicted := in.PredictedExercise
	if predicted == "" {
		predicted = in.ExerciseName
	}

	workoutDate := now.Truncate(24 * time.Hour)
	if in.WorkoutDate != nil {
		workoutDate = *in.WorkoutDate
	}

	status := in.Status
	if status == "" {
		status = models.WorkoutStatusSaved
	}

	w := &models.WorkoutSession{
		ID:                uuid.New(),
		UserID:            user.ID,
		ExerciseName:      in.ExerciseName,
		PredictedExercise: predicted,
		Duration:          in.Duration,
		CaloriesBurned:    *in.CaloriesBurned,
		BMR:               in.BMR,
		ExerciseImage:     in.ExerciseImage,
		WorkoutDate:       workoutDate,
		WorkoutTime:       now.Format("15:04:05"),
		Status:            status,
		Notes:             in.Notes,
		UserWeight:        user.CurrentWeight,
		UserHeight:        user.Height,
		UserAge:           user.Age,
		UserGender:        user.Gender,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.storage.SaveWorkout(ctx, w); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("workout_saved",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("workout_id", w.ID.String()),
	)

	return w, nil
}

// ListWorkouts возвращает страницу тренировок по фильтру вместе
// с пагинацией и сводкой выборки.
func (s *Service) ListWorkouts(ctx context.Context, f models.WorkoutFilter) (*WorkoutList, error) {
	const op = "service.workouts.ListWorkouts"

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	page, err := s.storage.ListWorkouts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var totalCalories float64
	var totalDuration int
	seen := make(map[string]struct{})
	types := make([]string, 0)

	for _, w := range page.Items {
		totalCalories += w.CaloriesBurned
		totalDuration += w.Duration
		if _, ok := seen[w.PredictedExercise]; !ok {
			seen[w.PredictedExercise] = struct{}{}
			types = append(types, w.PredictedExercise)
		}
	}

	totalPages := int((page.Total + int64(f.Limit) - 1) / int64(f.Limit))
	offset := (f.Page - 1) * f.Limit

	return &WorkoutList{
		Items:      page.Items,
		Total:      page.Total,
		Page:       f.Page,
		TotalPages: totalPages,
		HasNext:    int64(offset+len(page.Items)) < page.Total,
		HasPrev:    f.Page > 1,
		Statistics: WorkoutListStats{
			TotalSessions:   page.Total,
			TotalCalories:   round2(totalCalories),
			TotalDuration:   totalDuration,
			TotalDurationM:  totalDuration / 60,
			UniqueExercises: len(types),
			ExerciseTypes:   types,
		},
	}, nil
}

// WorkoutByID возвращает тренировку владельца.
func (s *Service) WorkoutByID(ctx context.Context, userID, id uuid.UUID) (*models.WorkoutSession, error) {
	const op = "service.workouts.WorkoutByID"

	w, err := s.storage.WorkoutByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return w, nil
}

// UpdateWorkout применяет частичное обновление тренировки владельца.
func (s *Service) UpdateWorkout(ctx context.Context, userID, id uuid.UUID, upd models.WorkoutUpdate) (*models.WorkoutSession, error) {
	const op = "service.workouts.UpdateWorkout"

	if upd.Duration != nil && *upd.Duration <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if upd.Status != nil && !validWorkoutStatus(*upd.Status) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	w, err := s.storage.UpdateWorkout(ctx, userID, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return w, nil
}

// DeleteWorkout удаляет тренировку владельца.
func (s *Service) DeleteWorkout(ctx context.Context, userID, id uuid.UUID) error {
	const op = "service.workouts.DeleteWorkout"

	if err := s.storage.DeleteWorkout(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// WorkoutStatistics агрегирует тренировки по дням за период.
// По умолчанию период — последние 30 дней.
func (s *Service) WorkoutStatistics(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]models.DailyWorkoutStat, WorkoutStatsSummary, error) {
	const op = "service.workouts.WorkoutStatistics"

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -30)
	end := now
	if from != nil && to != nil {
		start, end = *from, *to
	}

	sessions, err := s.storage.WorkoutsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, WorkoutStatsSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	var days []models.DailyWorkoutStat
	idx := make(map[string]int)

	for _, w := range sessions {
		key := w.WorkoutDate.Format("2006-01-02")
		i, ok := idx[key]
		if !ok {
			days = append(days, models.DailyWorkoutStat{Date: w.WorkoutDate})
			i = len(days) - 1
			idx[key] = i
		}

		days[i].TotalCalories += w.CaloriesBurned
		days[i].TotalDuration += w.Duration
		days[i].SessionCount++
		days[i].Exercises = append(days[i].Exercises, models.WorkoutStatEntry{
			Name:     w.PredictedExercise,
			Calories: w.CaloriesBurned,
			Duration: w.Duration,
		})
	}

	summary := WorkoutStatsSummary{TotalDays: len(days)}
	for i := range days {
		days[i].TotalCalories = round2(days[i].TotalCalories)
		summary.TotalCalories += days[i].TotalCalories
		summary.TotalSessions += days[i].SessionCount
	}
	summary.TotalCalories = round2(summary.TotalCalories)
	if len(days) > 0 {
		summary.AvgCaloriesPerDay = round2(summary.TotalCalories / float64(len(days)))
	}

	return days, summary, nil
}

func validWorkoutStatus(st string) bool {
	switch st {
	case models.WorkoutStatusSaved, models.WorkoutStatusCompleted, models.WorkoutStatusAnalyzing:
		return true
	}
	return false
}
