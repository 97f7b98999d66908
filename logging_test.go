package hydrogen

import (
	"bytes"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_DefaultsToNoop(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		logger().Info().Str("k", "v").Log("message")
	})
}

func TestSetLogger_RoutesToInstalledBackend(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	l := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(&buf)),
		stumpy.L.WithLevel(logiface.LevelInformational),
	).Logger()
	SetLogger(l)

	logger().Info().Str("component", "test").Log("hello")

	require.NotZero(t, buf.Len())
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "component")
}

func TestNewDefaultLogger_RespectsMinimumLevel(t *testing.T) {
	l := NewDefaultLogger(logiface.LevelDebug)
	assert.True(t, l.Level().Enabled())
}
