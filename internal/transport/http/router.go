package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-fitness-tracker/internal/predict"
	"github.com/pribylovaa/go-fitness-tracker/internal/service"
	"github.com/pribylovaa/go-fitness-tracker/internal/transport/http/handlers"
	"github.com/pribylovaa/go-fitness-tracker/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger     *slog.Logger
	Timeout    time.Duration
	RefreshTTL time.Duration
	UploadsDir string
	Ready      func() error // nil — /healthz всегда отвечает 200
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, p predict.Predictor, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc, p, opts.RefreshTTL, opts.UploadsDir)

	// Служебные эндпойнты вне основного API.
	root.Handle("/metrics", promhttp.Handler())
	root.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	root.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(); err != nil {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, verifier middleware.TokenVerifier) {
	// Публичные маршруты.
	r.Post("/users", h.RegisterUser)
	r.Post("/login", h.LoginUser)
	r.Get("/token", h.RefreshToken)
	r.Delete("/logout", h.Logout)
	r.Get("/exercises", h.Exercises)
	r.Post("/predict", h.PredictTabular)
	r.Post("/predict-image", h.PredictImage)

	// Маршруты под bearer-аутентификацией.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.AuthBearer(verifier))

		pr.Get("/users", h.Profile)

		pr.Post("/workout-sessions", h.CreateWorkout)
		pr.Get("/workout-sessions", h.ListWorkouts)
		pr.Get("/workout-sessions/statistics", h.WorkoutStatistics)
		pr.Get("/workout-sessions/{id}", h.WorkoutByID)
		pr.Put("/workout-sessions/{id}", h.UpdateWorkout)
		pr.Delete("/workout-sessions/{id}", h.DeleteWorkout)

		pr.Post("/calculate-workout", h.CalculateWorkout)
	})
}
