// Package predict — мост к ML-модели распознавания упражнений.
//
// Модель живёт в python-скрипте: сервис запускает его отдельным
// процессом на каждый запрос и читает JSON-результат из stdout.
// Скрипт принимает либо JSON-массив признаков (табличный режим),
// либо "image <путь>" (распознавание по изображению). Тайм-аут
// запуска ограничен конфигом; stderr классифицируется, чтобы
// отличить падение модели от шума ML-библиотек.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/pribylovaa/go-fitness-tracker/internal/pkg/log"
)

var (
	// ErrPredictFailed — модель завершилась с ошибкой или вернула
	// нераспознаваемый вывод.
	ErrPredictFailed = errors.New("prediction failed")
	// ErrPredictTimeout — модель не уложилась в тайм-аут.
	ErrPredictTimeout = errors.New("prediction timed out")
)

// ClassScore — один класс из top-N ответа модели.
type ClassScore struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// Prediction — ответ модели.
type Prediction struct {
	PredictedClass string       `json:"predicted_class"`
	Confidence     float64      `json:"confidence"`
	Top3           []ClassScore `json:"top_3_predictions"`
	Status         string       `json:"status"`
	ModelType      string       `json:"model_type"`
}

// Predictor распознаёт упражнение по табличным признакам или изображению.
type Predictor interface {
	PredictTabular(ctx context.Context, features []float64) (*Prediction, error)
	PredictImage(ctx context.Context, imagePath string) (*Prediction, error)
}

// PythonPredictor запускает python-скрипт модели отдельным процессом.
type PythonPredictor struct {
	pythonBin  string
	scriptPath string
	timeout    time.Duration
}

var _ Predictor = (*PythonPredictor)(nil)

// NewPython собирает предиктор поверх python-скрипта.
func NewPython(pythonBin, scriptPath string, timeout time.Duration) *PythonPredictor {
	return &PythonPredictor{
		pythonBin:  pythonBin,
		scriptPath: scriptPath,
		timeout:    timeout,
	}
}

// PredictTabular передаёт скрипту JSON-массив признаков одним аргументом.
func (p *PythonPredictor) PredictTabular(ctx context.Context, features []float64) (*Prediction, error) {
	const op = "predict.PythonPredictor.PredictTabular"

	if len(features) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrPredictFailed)
	}

	raw, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p.run(ctx, op, string(raw))
}

// PredictImage передаёт скрипту путь к изображению в image-режиме.
func (p *PythonPredictor) PredictImage(ctx context.Context, imagePath string) (*Prediction, error) {
	const op = "predict.PythonPredictor.PredictImage"

	if imagePath == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrPredictFailed)
	}

	return p.run(ctx, op, "image", imagePath)
}

func (p *PythonPredictor) run(ctx context.Context, op string, args ...string) (*Prediction, error) {
	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	argv := append([]string{p.scriptPath}, args...)
	cmd := exec.CommandContext(runCtx, p.pythonBin, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		log.From(ctx).Error("predict_timeout",
			slog.String("op", op),
			slog.Duration("timeout", p.timeout),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrPredictTimeout)
	}

	if err != nil {
		log.From(ctx).Error("predict_process_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
			slog.String("stderr", truncate(stderr.String(), 512)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrPredictFailed)
	}

	if fatalStderr(stderr.String()) {
		log.From(ctx).Error("predict_script_error",
			slog.String("op", op),
			slog.String("stderr", truncate(stderr.String(), 512)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrPredictFailed)
	}

	var res Prediction
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &res); err != nil {
		log.From(ctx).Error("predict_bad_output",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrPredictFailed)
	}

	if res.Status == "error" || res.PredictedClass == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrPredictFailed)
	}

	return &res, nil
}

// fatalStderr отличает фатальный stderr от предупреждений библиотек:
// ML-стек шумит в stderr даже при успешном предсказании.
func fatalStderr(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(s, "Traceback") ||
		strings.Contains(lower, "error") ||
		strings.Contains(lower, "exception")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
