package websocket

import (
	"net/http"
	"slices"


	"github.com/lc4490/rmp-rag/internal/logger"
)

// accepts requests without an Origin header (non-browser clients) and
// browser origins on the allow list. an empty list or "*" allows any origin.
func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
			return true
		}

		if slices.Contains(allowedOrigins, origin) {
			return true
		}

		logger.Warn("websocket origin rejected",
			"origin", origin,
			"allowed_origins", allowedOrigins,
		)

		return false
	}
}

// adapts a session to io.Writer so the chunk relay can drive it.
// every Write becomes one chunk frame.
type frameWriter struct {
	session *session
	err     error
}

func (w *frameWriter) Write(p []byte) (int, error) {
	if err := w.session.writeFrame(ServerMessage{Type: TypeChunk, Content: string(p)}); err != nil {
		w.err = err
		return 0, err
	}

	return len(p), nil
}
