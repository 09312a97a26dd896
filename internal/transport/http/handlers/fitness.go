package handlers

import (
	"errors"
	"net/http"

	"github.com/pribylovaa/go-fitness-tracker/internal/service"
	"github.com/pribylovaa/go-fitness-tracker/internal/transport/http/httperr"
)

type calculateWorkoutRequest struct {
	Exercise string `json:"exercise"`
	Duration int    `json:"duration"` // в минутах
}

// Exercises — GET /exercises: публичный каталог упражнений с MET.
func (h *Handlers) Exercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"exercises": h.Service.Exercises(),
	})
}

// CalculateWorkout — POST /calculate-workout (bearer).
// Неизвестное упражнение — 400 со списком доступных.
func (h *Handlers) CalculateWorkout(w http.ResponseWriter, r *http.Request) {
	uid, ok := authUserID(r)
	if !ok {
		httperr.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var in calculateWorkoutRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return
	}

	res, err := h.Service.CalculateWorkout(r.Context(), uid, in.Exercise, in.Duration)
	if err != nil {
		if errors.Is(err, service.ErrUnknownExercise) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error": map[string]any{
					"code":               "unknown_exercise",
					"message":            "unknown exercise",
					"availableExercises": h.Service.AvailableExercises(),
				},
			})
			return
		}

		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
