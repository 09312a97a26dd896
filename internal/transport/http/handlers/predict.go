package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-fitness-tracker/internal/service"
	"github.com/pribylovaa/go-fitness-tracker/internal/transport/http/httperr"
)

// maxImageSize — предел размера загружаемого изображения (10 МБ).
const maxImageSize = 10 << 20

type predictRequest struct {
	Features []float64 `json:"features"`
}

// PredictTabular — POST /predict: табличные признаки -> модель.
func (h *Handlers) PredictTabular(w http.ResponseWriter, r *http.Request) {
	var in predictRequest
	if err := decodeStrict(r, &in); err != nil || len(in.Features) == 0 {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return
	}

	res, err := h.Predictor.PredictTabular(r.Context(), in.Features)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// PredictImage — POST /predict-image: multipart-поле image сохраняется
// в каталог загрузок, путь передаётся модели.
func (h *Handlers) PredictImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httperr.WriteError(w, r, service.ErrInvalidInput)
		return
	}
	defer file.Close()

	path, err := h.saveUpload(file, header.Filename)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	res, err := h.Predictor.PredictImage(r.Context(), path)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// saveUpload кладёт файл под уникальным именем в каталог загрузок.
// Имя от клиента не используется как путь, берётся только расширение.
func (h *Handlers) saveUpload(src io.Reader, origName string) (string, error) {
	if err := os.MkdirAll(h.UploadsDir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(origName)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)
	path := filepath.Join(h.UploadsDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
