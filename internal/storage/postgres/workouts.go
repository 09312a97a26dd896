package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-fitness-tracker/internal/models"
	"github.com/pribylovaa/go-fitness-tracker/internal/storage"
)

const workoutColumns = `
	id, user_id, exercise_name, predicted_exercise, duration, calories_burned,
	bmr, exercise_image, workout_date, workout_time, status, notes,
	user_weight, user_height, user_age, user_gender, created_at, updated_at
`

func scanWorkout(row pgx.Row) (*models.WorkoutSession, error) {
	var w models.WorkoutSession

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.ExerciseName,
		&w.PredictedExercise,
		&w.Duration,
		&w.CaloriesBurned,
		&w.BMR,
		&w.ExerciseImage,
		&w.WorkoutDate,
		&w.WorkoutTime,
		&w.Status,
		&w.Notes,
		&w.UserWeight,
		&w.UserHeight,
		&w.UserAge,
		&w.UserGender,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &w, nil
}

// SaveWorkout создаёт новую тренировочную сессию.
func (s *Storage) SaveWorkout(ctx context.Context, w *models.WorkoutSession) error {
	const op = "storage.postgres.SaveWorkout"

	query := `
		INSERT INTO workout_sessions(
			id, user_id, exercise_name, predicted_exercise, duration, calories_burned,
			bmr, exercise_image, workout_date, workout_time, status, notes,
			user_weight, user_height, user_age, user_gender, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := s.db.Exec(ctx, query,
		w.ID,
		w.UserID,
		w.ExerciseName,
		w.PredictedExercise,
		w.Duration,
		w.CaloriesBurned,
		w.BMR,
		w.ExerciseImage,
		w.WorkoutDate,
		w.WorkoutTime,
		w.Status,
		w.Notes,
		w.UserWeight,
		w.UserHeight,
		w.UserAge,
		w.UserGender,
		w.CreatedAt,
		w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// WorkoutByID находит сессию по ID в рамках владельца.
func (s *Storage) WorkoutByID(ctx context.Context, userID, id uuid.UUID) (*models.WorkoutSession, error) {
	const op = "storage.postgres.WorkoutByID"

	query := `SELECT ` + workoutColumns + ` FROM workout_sessions WHERE id = $1 AND user_id = $2`

	w, err := scanWorkout(s.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return w, nil
}

// buildWorkoutWhere собирает WHERE-условие и аргументы по фильтру.
func buildWorkoutWhere(f models.WorkoutFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{f.UserID}

	next := func() string { return "$" + strconv.Itoa(len(args)+1) }

	if f.Date != nil {
		conds = append(conds, "workout_date = "+next())
		args = append(args, *f.Date)
	}

	if f.StartDate != nil && f.EndDate != nil {
		p1 := next()
		args = append(args, *f.StartDate)
		p2 := next()
		args = append(args, *f.EndDate)
		conds = append(conds, "workout_date BETWEEN "+p1+" AND "+p2)
	}

	if f.Exercise != "" {
		p := next()
		args = append(args, "%"+f.Exercise+"%")
		conds = append(conds, "(exercise_name ILIKE "+p+" OR predicted_exercise ILIKE "+p+")")
	}

	if f.Status != "" {
		conds = append(conds, "status = "+next())
		args = append(args, f.Status)
	}

	return strings.Join(conds, " AND "), args
}

// ListWorkouts возвращает страницу сессий по фильтру вместе с общим количеством.
func (s *Storage) ListWorkouts(ctx context.Context, f models.WorkoutFilter) (*models.WorkoutPage, error) {
	const op = "storage.postgres.ListWorkouts"

	where, args := buildWorkoutWhere(f)

	var total int64
	countQuery := `SELECT count(*) FROM workout_sessions WHERE ` + where
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	listQuery := `SELECT ` + workoutColumns + `
		FROM workout_sessions
		WHERE ` + where + `
		ORDER BY workout_date DESC, workout_time DESC
		LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(offset)

	rows, err := s.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.WorkoutSession, 0, limit)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.WorkoutPage{Items: items, Total: total}, nil
}

// UpdateWorkout применяет частичное обновление сессии владельца.
func (s *Storage) UpdateWorkout(ctx context.Context, userID, id uuid.UUID, upd models.WorkoutUpdate) (*models.WorkoutSession, error) {
	const op = "storage.postgres.UpdateWorkout"

	sets := []string{"updated_at = now()"}
	args := []any{id, userID}

	next := func() string { return "$" + strconv.Itoa(len(args)+1) }

	if upd.ExerciseName != nil {
		sets = append(sets, "exercise_name = "+next())
		args = append(args, *upd.ExerciseName)
	}
	if upd.Duration != nil {
		sets = append(sets, "duration = "+next())
		args = append(args, *upd.Duration)
	}
	if upd.CaloriesBurned != nil {
		sets = append(sets, "calories_burned = "+next())
		args = append(args, *upd.CaloriesBurned)
	}
	if upd.Status != nil {
		sets = append(sets, "status = "+next())
		args = append(args, *upd.Status)
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = "+next())
		args = append(args, *upd.Notes)
	}

	query := `
		UPDATE workout_sessions
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = $1 AND user_id = $2
		RETURNING ` + workoutColumns

	w, err := scanWorkout(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return w, nil
}

// DeleteWorkout удаляет сессию владельца.
func (s *Storage) DeleteWorkout(ctx context.Context, userID, id uuid.UUID) error {
	const op = "storage.postgres.DeleteWorkout"

	query := `DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2`

	cmdTag, err := s.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// WorkoutsInRange возвращает сессии пользователя в интервале дат (включительно),
// отсортированные по дате по возрастанию — под дневную агрегацию.
func (s *Storage) WorkoutsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.WorkoutSession, error) {
	const op = "storage.postgres.WorkoutsInRange"

	query := `SELECT ` + workoutColumns + `
		FROM workout_sessions
		WHERE user_id = $1 AND workout_date BETWEEN $2 AND $3
		ORDER BY workout_date ASC, workout_time ASC`

	rows, err := s.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.WorkoutSession
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}
