package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.False(t, p.LinkSpans(&Providers{}))
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddress(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true}, nil)
	assert.ErrorIs(t, err, ErrProfilerAddressRequired)
}

func TestProfiler_NilIsNoop(t *testing.T) {
	var p *Profiler
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Stop())
}
