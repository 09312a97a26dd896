package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-fitness-tracker/internal/models"
	"github.com/pribylovaa/go-fitness-tracker/internal/storage"
)

func fptr(v float64) *float64 { return &v }

func TestSaveWorkout_OK_SnapshotsUserMetrics(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{
		ID:            uuid.New(),
		Gender:        "male",
		Age:           30,
		Height:        180,
		CurrentWeight: 80,
	}
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	var saved *models.WorkoutSession
	st.EXPECT().SaveWorkout(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, w *models.WorkoutSession) error {
			saved = w
			return nil
		})

	got, err := svc.SaveWorkout(context.Background(), user.ID, WorkoutInput{
		ExerciseName:   "squat",
		Duration:       1800,
		CaloriesBurned: fptr(210),
		BMR:            1780,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, saved, got)

	require.NotEqual(t, uuid.Nil, got.ID)
	require.Equal(t, user.ID, got.UserID)
	// Умолчания: predicted = exerciseName, статус saved, дата — сегодня.
	require.Equal(t, "squat", got.PredictedExercise)
	require.Equal(t, models.WorkoutStatusSaved, got.Status)
	require.WithinDuration(t, time.Now().UTC(), got.WorkoutDate, 24*time.Hour)
	// Снапшот метрик пользователя на момент тренировки.
	require.Equal(t, user.CurrentWeight, got.UserWeight)
	require.Equal(t, user.Height, got.UserHeight)
	require.Equal(t, user.Age, got.UserAge)
	require.Equal(t, user.Gender, got.UserGender)
}

func TestSaveWorkout_Validation(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	uid := uuid.New()

	_, err := svc.SaveWorkout(ctx, uid, WorkoutInput{Duration: 60, CaloriesBurned: fptr(10)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SaveWorkout(ctx, uid, WorkoutInput{ExerciseName: "squat", Duration: 60})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SaveWorkout(ctx, uid, WorkoutInput{ExerciseName: "squat", Duration: 0, CaloriesBurned: fptr(10)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SaveWorkout(ctx, uid, WorkoutInput{
		ExerciseName: "squat", Duration: 60, CaloriesBurned: fptr(10), Status: "bogus",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListWorkouts_PaginationAndStats(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()
	items := []models.WorkoutSession{
		{UserID: uid, PredictedExercise: "squat", CaloriesBurned: 100, Duration: 600},
		{UserID: uid, PredictedExercise: "plank", CaloriesBurned: 50, Duration: 300},
		{UserID: uid, PredictedExercise: "squat", CaloriesBurned: 120, Duration: 660},
	}

	st.EXPECT().ListWorkouts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.WorkoutFilter) (*models.WorkoutPage, error) {
			// Умолчания применяются до похода в хранилище.
			require.Equal(t, 1, f.Page)
			require.Equal(t, 50, f.Limit)
			return &models.WorkoutPage{Items: items, Total: 3}, nil
		})

	out, err := svc.ListWorkouts(context.Background(), models.WorkoutFilter{UserID: uid})
	require.NoError(t, err)

	require.Equal(t, int64(3), out.Total)
	require.Equal(t, 1, out.Page)
	require.Equal(t, 1, out.TotalPages)
	require.False(t, out.HasNext)
	require.False(t, out.HasPrev)

	require.Equal(t, int64(3), out.Statistics.TotalSessions)
	require.InDelta(t, 270.0, out.Statistics.TotalCalories, 0.01)
	require.Equal(t, 1560, out.Statistics.TotalDuration)
	require.Equal(t, 26, out.Statistics.TotalDurationM)
	require.Equal(t, 2, out.Statistics.UniqueExercises)
	require.ElementsMatch(t, []string{"squat", "plank"}, out.Statistics.ExerciseTypes)
}

func TestListWorkouts_HasNext(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()
	st.EXPECT().ListWorkouts(gomock.Any(), gomock.Any()).
		Return(&models.WorkoutPage{
			Items: []models.WorkoutSession{{UserID: uid}, {UserID: uid}},
			Total: 5,
		}, nil)

	out, err := svc.ListWorkouts(context.Background(), models.WorkoutFilter{UserID: uid, Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 3, out.TotalPages)
	require.True(t, out.HasNext)
	require.False(t, out.HasPrev)
}

func TestWorkoutByID_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid, id := uuid.New(), uuid.New()
	st.EXPECT().WorkoutByID(gomock.Any(), uid, id).Return(nil, storage.ErrNotFound)

	_, err := svc.WorkoutByID(context.Background(), uid, id)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateWorkout_Validation(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	uid, id := uuid.New(), uuid.New()

	bad := -1
	_, err := svc.UpdateWorkout(ctx, uid, id, models.WorkoutUpdate{Duration: &bad})
	require.ErrorIs(t, err, ErrInvalidInput)

	status := "bogus"
	_, err = svc.UpdateWorkout(ctx, uid, id, models.WorkoutUpdate{Status: &status})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateWorkout_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid, id := uuid.New(), uuid.New()
	status := models.WorkoutStatusCompleted
	want := &models.WorkoutSession{ID: id, UserID: uid, Status: status}

	st.EXPECT().UpdateWorkout(gomock.Any(), uid, id, gomock.Any()).Return(want, nil)

	got, err := svc.UpdateWorkout(context.Background(), uid, id, models.WorkoutUpdate{Status: &status})
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDeleteWorkout_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid, id := uuid.New(), uuid.New()
	st.EXPECT().DeleteWorkout(gomock.Any(), uid, id).Return(storage.ErrNotFound)

	err := svc.DeleteWorkout(context.Background(), uid, id)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWorkoutStatistics_GroupsByDay(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()
	day1 := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)

	st.EXPECT().WorkoutsInRange(gomock.Any(), uid, gomock.Any(), gomock.Any()).
		Return([]models.WorkoutSession{
			{WorkoutDate: day1, PredictedExercise: "squat", CaloriesBurned: 100, Duration: 600},
			{WorkoutDate: day1, PredictedExercise: "plank", CaloriesBurned: 50, Duration: 300},
			{WorkoutDate: day2, PredictedExercise: "deadlift", CaloriesBurned: 200, Duration: 900},
		}, nil)

	days, summary, err := svc.WorkoutStatistics(context.Background(), uid, nil, nil)
	require.NoError(t, err)
	require.Len(t, days, 2)

	require.Equal(t, day1, days[0].Date)
	require.InDelta(t, 150.0, days[0].TotalCalories, 0.01)
	require.Equal(t, 900, days[0].TotalDuration)
	require.Equal(t, 2, days[0].SessionCount)
	require.Len(t, days[0].Exercises, 2)

	require.Equal(t, 2, summary.TotalDays)
	require.Equal(t, 3, summary.TotalSessions)
	require.InDelta(t, 350.0, summary.TotalCalories, 0.01)
	require.InDelta(t, 175.0, summary.AvgCaloriesPerDay, 0.01)
}

func TestWorkoutStatistics_DefaultRangeLast30Days(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	uid := uuid.New()
	st.EXPECT().WorkoutsInRange(gomock.Any(), uid, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, from, to time.Time) ([]models.WorkoutSession, error) {
			require.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -30), from, 2*time.Second)
			require.WithinDuration(t, time.Now().UTC(), to, 2*time.Second)
			return nil, nil
		})

	days, summary, err := svc.WorkoutStatistics(context.Background(), uid, nil, nil)
	require.NoError(t, err)
	require.Empty(t, days)
	require.Equal(t, 0, summary.TotalDays)
}
