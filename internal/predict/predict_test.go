package predict

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeScript пишет шелл-скрипт, играющий роль python-модели.
func fakeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "predict.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestPredictTabular_OK(t *testing.T) {
	t.Parallel()

	script := fakeScript(t, `echo '{"predicted_class":"squat","confidence":0.92,"status":"success","model_type":"tabular"}'`)
	p := NewPython("/bin/sh", script, 5*time.Second)

	res, err := p.PredictTabular(context.Background(), []float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "squat", res.PredictedClass)
	require.InDelta(t, 0.92, res.Confidence, 0.001)
}

func TestPredictImage_PassesImageMode(t *testing.T) {
	t.Parallel()

	// Скрипт отвечает успехом только при image-режиме с путём.
	script := fakeScript(t, `
if [ "$1" = "image" ] && [ -n "$2" ]; then
  echo '{"predicted_class":"plank","confidence":0.8,"status":"success","model_type":"image"}'
else
  echo '{"error":"bad args","status":"error"}'
  exit 1
fi`)
	p := NewPython("/bin/sh", script, 5*time.Second)

	res, err := p.PredictImage(context.Background(), "/tmp/img.jpg")
	require.NoError(t, err)
	require.Equal(t, "plank", res.PredictedClass)
}

func TestPredict_EmptyInput(t *testing.T) {
	t.Parallel()

	p := NewPython("/bin/sh", "unused.sh", time.Second)

	_, err := p.PredictTabular(context.Background(), nil)
	require.ErrorIs(t, err, ErrPredictFailed)

	_, err = p.PredictImage(context.Background(), "")
	require.ErrorIs(t, err, ErrPredictFailed)
}

func TestPredict_ScriptFailure(t *testing.T) {
	t.Parallel()

	script := fakeScript(t, `echo '{"error":"boom","status":"error"}'; exit 1`)
	p := NewPython("/bin/sh", script, 5*time.Second)

	_, err := p.PredictTabular(context.Background(), []float64{1})
	require.ErrorIs(t, err, ErrPredictFailed)
}

func TestPredict_FatalStderr(t *testing.T) {
	t.Parallel()

	// Процесс завершился успешно, но stderr содержит traceback.
	script := fakeScript(t, `echo 'Traceback (most recent call last):' >&2; echo '{"predicted_class":"x","status":"success"}'`)
	p := NewPython("/bin/sh", script, 5*time.Second)

	_, err := p.PredictTabular(context.Background(), []float64{1})
	require.ErrorIs(t, err, ErrPredictFailed)
}

func TestPredict_StderrNoiseTolerated(t *testing.T) {
	t.Parallel()

	script := fakeScript(t, `echo 'oneDNN custom operations are on' >&2; echo '{"predicted_class":"squat","confidence":0.5,"status":"success"}'`)
	p := NewPython("/bin/sh", script, 5*time.Second)

	res, err := p.PredictTabular(context.Background(), []float64{1})
	require.NoError(t, err)
	require.Equal(t, "squat", res.PredictedClass)
}

func TestPredict_Timeout(t *testing.T) {
	t.Parallel()

	script := fakeScript(t, `sleep 5`)
	p := NewPython("/bin/sh", script, 200*time.Millisecond)

	_, err := p.PredictTabular(context.Background(), []float64{1})
	require.ErrorIs(t, err, ErrPredictTimeout)
}

func TestFatalStderrClassification(t *testing.T) {
	t.Parallel()

	require.True(t, fatalStderr("Traceback (most recent call last):"))
	require.True(t, fatalStderr("ValueError: bad input"))
	require.True(t, fatalStderr("Unhandled Exception in thread"))
	require.False(t, fatalStderr(""))
	require.False(t, fatalStderr("TF_CPP_MIN_LOG_LEVEL set, suppressing warnings"))
}
