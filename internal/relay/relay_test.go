package relay

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lc4490/rmp-rag/internal/llm"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestCopy_ForwardsNonEmptyChunksInOrder(t *testing.T) {
	stream := &llm.SliceStream{Chunks: []string{"Dr. ", "", "Smith", " is great"}}
	w := httptest.NewRecorder()

	n, err := Copy(context.Background(), stream, w)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Dr. Smith is great", w.Body.String())
	assert.True(t, w.Flushed)
	assert.True(t, stream.Closed)
}

func TestCopy_UpstreamErrorAfterChunks(t *testing.T) {
	boom := errors.New("connection reset")
	stream := &llm.SliceStream{Chunks: []string{"partial"}, Failure: boom}
	w := httptest.NewRecorder()

	n, err := Copy(context.Background(), stream, w)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
	assert.Equal(t, "partial", w.Body.String())
	assert.True(t, stream.Closed)
}

func TestCopy_CancelledContextStopsReading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream := &llm.SliceStream{Chunks: []string{"never sent"}}
	w := httptest.NewRecorder()

	n, err := Copy(ctx, stream, w)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Empty(t, w.Body.String())
	assert.True(t, stream.Closed)
}

func TestCopy_WriteFailure(t *testing.T) {
	stream := &llm.SliceStream{Chunks: []string{"a", "b"}}

	n, err := Copy(context.Background(), stream, failingWriter{})

	assert.Error(t, err)
	assert.Zero(t, n)
	assert.True(t, stream.Closed)
}

func TestCopy_EmptyStream(t *testing.T) {
	stream := &llm.SliceStream{}
	w := httptest.NewRecorder()

	n, err := Copy(context.Background(), stream, w)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, w.Flushed)
}
