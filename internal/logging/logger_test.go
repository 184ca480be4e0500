package logging

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	ctx, err := New(context.Background(), nil, Config{
		Writer: &buf,
		Root:   "/proj",
		Level:  zerolog.InfoLevel,
	})
	require.NoError(t, err)

	Get(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"hello"`)
	assert.Contains(t, buf.String(), `"root":"/proj"`)
}

func TestNewRequiresFilesystemWithoutWriter(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), nil, Config{Root: "/proj"})
	require.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	ctx, err := New(context.Background(), nil, Config{
		Writer: &buf,
		Level:  zerolog.WarnLevel,
	})
	require.NoError(t, err)

	Get(ctx).Debug().Msg("suppressed")
	Get(ctx).Warn().Msg("surfaced")

	assert.NotContains(t, buf.String(), "suppressed")
	assert.Contains(t, buf.String(), "surfaced")
}

func TestGetWithoutLoggerIsDisabled(t *testing.T) {
	t.Parallel()

	logger := Get(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
