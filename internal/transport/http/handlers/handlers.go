package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pribylovaa/go-fitness-tracker/internal/predict"
	"github.com/pribylovaa/go-fitness-tracker/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	Service    *service.Service
	Predictor  predict.Predictor
	RefreshTTL time.Duration
	UploadsDir string
}

func New(svc *service.Service, p predict.Predictor, refreshTTL time.Duration, uploadsDir string) *Handlers {
	return &Handlers{
		Service:    svc,
		Predictor:  p,
		RefreshTTL: refreshTTL,
		UploadsDir: uploadsDir,
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
