package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // nil context is handled explicitly
}

func TestWithContext_RoundTrip(t *testing.T) {
	scoped := With("request_id", "abc")
	ctx := WithContext(context.Background(), scoped)

	assert.Same(t, scoped, FromContext(ctx))
}

func TestInit_WritesFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	Init("production", path)
	t.Cleanup(func() { Init("development", "") })

	Info("file sink check", "component", "logger_test")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file sink check")
	assert.Contains(t, string(data), `"component":"logger_test"`)
}
