package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-fitness-tracker/internal/models"
	"github.com/pribylovaa/go-fitness-tracker/internal/service"
	"github.com/pribylovaa/go-fitness-tracker/internal/transport/http/httperr"
)

type workoutRequest struct {
	ExerciseName      string   `json:"exerciseName"`
	PredictedExercise string   `json:"predictedExercise"`
	Duration          int      `json:"duration"`
	CaloriesBurned    *float64 `json:"caloriesBurned"`
	BMR               float64  `json:"bmr"`
	ExerciseImage     string   `json:"exerciseImage"`
	WorkoutDate       string   `json:"workoutDate"`
	Status            string   `json:"status"`
	Notes             string   `json:"notes"`
}

type workoutListResponse struct {
	Items      []models.WorkoutSession  `json:"items"`
	Pagination paginationBlock          `json:"pagination"`
	Statistics service.WorkoutListStats `json:"statistics"`
}

type paginationBlock struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type workoutStatsResponse struct {
	Days    []models.DailyWorkoutStat   `json:"days"`
	Summary service.WorkoutStatsSummary `json:"summary"`
}

// CreateWorkout — POST /workout-sessions. 201 + сохранённая сессия.
func (h *Handlers) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	uid, ok := authUserID(r)
	if !ok {
		httperr.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var in workoutRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return
	}

	svcIn := service.WorkoutInput{
		ExerciseName:      in.ExerciseName,
		PredictedExercise: in.PredictedExercise,
		Duration:          in.Duration,
		CaloriesBurned:    in.CaloriesBurned,
		BMR:               in.BMR,
		ExerciseImage:     in.ExerciseImage,
		Status:            in.Status,
		Notes:             in.Notes,
	}

	if in.WorkoutDate != "" {
		d, err := time.Parse("2006-01-02", in.WorkoutDate)
		if err != nil {
			httperr.WriteError(w, r, service.ErrInvalidInput)
			return
		}
		svcIn.WorkoutDate = &d
	}

	workout, err := h.Service.SaveWorkout(r.Context(), uid, svcIn)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, workout)
}

// ListWorkouts — GET /workout-sessions с фильтрами и пагинацией.
func (h *Handlers) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	uid, ok := authUserID(r)
	if !ok {
		httperr.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	f, err := parseWorkoutFilter(r, uid)
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return
	}

	out, err := h.Service.ListWorkouts(r.Context(), f)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, workoutListResponse{
		Items: out.Items,
		Pagination: paginationBlock{
			Total:      out.Total,
			Page:       out.Page,
			TotalPages: out.TotalPages,
			HasNext:    out.HasNext,
			HasPrev:    out.HasPrev,
		},
		Statistics: out.Statistics,
	})
}

// WorkoutStatistics — GET /workout-sessions/statistics: агрегация по дням.
func (h *Handlers) WorkoutStatistics(w http.ResponseWriter, r *http.Request) {
	uid, ok := authUserID(r)
	if !ok {
		httperr.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var from, to *time.Time
	if s := r.URL.Query().Get("startDate"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.WriteError(w, r, service.ErrInvalidInput)
			return
		}
		from = &d
	}
	if s := r.URL.Query().Get("endDate"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.WriteError(w, r, service.ErrInvalidInput)
			return
		}
		// Конец диапазона включителен: добираем день целиком.
		d = d.Add(24*time.Hour - time.Second)
		to = &d
	}

	days, summary, err := h.Service.WorkoutStatistics(r.Context(), uid, from, to)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, workoutStatsResponse{Days: days, Summary: summary})
}

// WorkoutByID — GET /workout-sessions/{id}.
func (h *Handlers) WorkoutByID(w http.ResponseWriter, r *http.Request) {
	uid, id, ok := workoutScope(w, r)
	if !ok {
		return
	}

	workout, err := h.Service.WorkoutByID(r.Context(), uid, id)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, workout)
}

type workoutUpdateRequest struct {
	ExerciseName   *string  `json:"exerciseName"`
	Duration       *int     `json:"duration"`
	CaloriesBurned *float64 `json:"caloriesBurned"`
	Status         *string  `json:"status"`
	Notes          *string  `json:"notes"`
}

// UpdateWorkout — PUT /workout-sessions/{id}: частичное обновление.
func (h *Handlers) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	uid, id, ok := workoutScope(w, r)
	if !ok {
		return
	}

	var in workoutUpdateRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return
	}

	workout, err := h.Service.UpdateWorkout(r.Context(), uid, id, models.WorkoutUpdate{
		ExerciseName:   in.ExerciseName,
		Duration:       in.Duration,
		CaloriesBurned: in.CaloriesBurned,
		Status:         in.Status,
		Notes:          in.Notes,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, workout)
}

// DeleteWorkout — DELETE /workout-sessions/{id}.
func (h *Handlers) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	uid, id, ok := workoutScope(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteWorkout(r.Context(), uid, id); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "workout deleted"})
}

// workoutScope достаёт владельца из claims и id сессии из пути.
func workoutScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	uid, ok := authUserID(r)
	if !ok {
		httperr.WriteError(w, r, service.ErrInvalidToken)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return uuid.Nil, uuid.Nil, false
	}

	return uid, id, true
}

func parseWorkoutFilter(r *http.Request, uid uuid.UUID) (models.WorkoutFilter, error) {
	q := r.URL.Query()
	f := models.WorkoutFilter{
		UserID:   uid,
		Exercise: q.Get("exercise"),
		Status:   q.Get("status"),
	}

	if s := q.Get("date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.Date = &d
	}
	if s := q.Get("startDate"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.StartDate = &d
	}
	if s := q.Get("endDate"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.EndDate = &d
	}
	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return f, strconv.ErrSyntax
		}
		f.Page = n
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return f, strconv.ErrSyntax
		}
		f.Limit = n
	}

	return f, nil
}
