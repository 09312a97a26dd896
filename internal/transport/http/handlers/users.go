package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-fitness-tracker/internal/service"
	"github.com/pribylovaa/go-fitness-tracker/internal/transport/http/httperr"
	"github.com/pribylovaa/go-fitness-tracker/internal/transport/http/middleware"
)

type registerRequest struct {
	Name            string  `json:"name"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirmPassword"`
	Country         string  `json:"country"`
	Gender          string  `json:"gender"`
	Age             int     `json:"age"`
	Height          float64 `json:"height"`
	CurrentWeight   float64 `json:"currentWeight"`
	TargetWeight    float64 `json:"targetWeight"`
	WeeklyTarget    float64 `json:"weeklyTarget"`
	TargetDeadline  string  `json:"targetDeadline"`
	ActivityLevel   float64 `json:"activityLevel"`
	TargetCalories  int     `json:"targetCalories"`
}

// RegisterUser — POST /users. Успех: 201 + аккаунт без хэша пароля.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return
	}

	svcIn := service.RegisterInput{
		Name:            in.Name,
		Username:        in.Username,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		Country:         in.Country,
		Gender:          in.Gender,
		Age:             in.Age,
		Height:          in.Height,
		CurrentWeight:   in.CurrentWeight,
		TargetWeight:    in.TargetWeight,
		WeeklyTarget:    in.WeeklyTarget,
		ActivityLevel:   in.ActivityLevel,
		TargetCal:       in.TargetCalories,
	}

	if in.TargetDeadline != "" {
		d, err := time.Parse("2006-01-02", in.TargetDeadline)
		if err != nil {
			httperr.WriteError(w, r, service.ErrInvalidInput)
			return
		}
		svcIn.TargetDate = &d
	}

	user, err := h.Service.RegisterUser(r.Context(), svcIn)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user.PublicProfile())
}

// Profile — GET /users (bearer). Возвращает профиль аутентифицированного
// пользователя; 404, если строка аккаунта исчезла.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := authUserID(r)
	if !ok {
		httperr.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	user, err := h.Service.UserByID(r.Context(), uid)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user.PublicProfile())
}

// authUserID достаёт UUID пользователя из claims, положенных AuthBearer.
func authUserID(r *http.Request) (uuid.UUID, bool) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return uuid.Nil, false
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}

	return uid, true
}
