package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glow/internal/adapters/telemetry/progrock"
	"go.trai.ch/glow/internal/core/domain"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)

	_, v := recorder.Record(context.Background(), "lower wave")
	require.NotNil(t, v)

	v.Log(domain.LogLevelInfo, "regenerating")
	v.Complete(nil)

	assert.NoError(t, recorder.Close())
}
