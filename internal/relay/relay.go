package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lc4490/rmp-rag/internal/llm"
	"github.com/lc4490/rmp-rag/internal/metrics"
)

// forwards every non-empty chunk of stream to w in arrival order,
// flushing after each write when w supports it. the upstream stream is
// always closed. returns the number of chunks written; a cancelled ctx
// stops the copy with ctx.Err().
func Copy(ctx context.Context, stream llm.Stream, w io.Writer) (int, error) {
	defer stream.Close() //nolint:errcheck // upstream already drained or abandoned

	flusher, _ := w.(http.Flusher)
	written := 0

	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		if !stream.Next() {
			break
		}

		chunk := stream.Chunk()
		if chunk == "" {
			continue
		}

		if _, err := io.WriteString(w, chunk); err != nil {
			return written, fmt.Errorf("failed to write chunk: %w", err)
		}

		if flusher != nil {
			flusher.Flush()
		}

		written++
		metrics.RelayedChunks.Inc()
	}

	if err := stream.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return written, ctxErr
		}

		return written, fmt.Errorf("completion stream failed: %w", err)
	}

	return written, nil
}
