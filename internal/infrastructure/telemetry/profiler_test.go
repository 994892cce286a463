package telemetry_test

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/rentals/backend/internal/infrastructure/config"
	"github.com/rentals/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := telemetry.NewProfiler(config.ProfilingConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServerAddress(t *testing.T) {
	_, err := telemetry.NewProfiler(config.ProfilingConfig{Enabled: true}, nil)
	assert.Error(t, err)
}

func TestNewProfiler_RejectsUnknownProfileType(t *testing.T) {
	_, err := telemetry.NewProfiler(config.ProfilingConfig{
		Enabled:       true,
		ServerAddress: "http://localhost:4040",
		ProfileTypes:  []string{"cpu", "heap"},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heap")
}

func TestParseProfileTypes(t *testing.T) {
	types, err := telemetry.ParseProfileTypes([]string{"CPU", " goroutines "})
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileGoroutines}, types)
}
