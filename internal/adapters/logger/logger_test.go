package logger_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glow/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	lg := logger.New()
	concrete, ok := lg.(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	concrete.SetOutput(&buf)
	lg.Info("some message")

	assert.Contains(t, buf.String(), "some message")
	assert.Contains(t, buf.String(), "INFO")
}

func TestLogger_Warn(t *testing.T) {
	lg := logger.New()
	concrete, ok := lg.(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	concrete.SetOutput(&buf)
	lg.Warn("some warning")

	assert.Contains(t, buf.String(), "some warning")
	assert.Contains(t, buf.String(), "WARN")
}

func TestLogger_Error(t *testing.T) {
	lg := logger.New()
	concrete, ok := lg.(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	concrete.SetOutput(&buf)
	lg.Error(os.ErrPermission)

	assert.Contains(t, buf.String(), "permission denied")
	assert.Contains(t, buf.String(), "ERROR")
}
