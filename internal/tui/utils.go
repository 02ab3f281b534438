package tui

import (
	"time"
	"unicode/utf8"
)

const (
	chatRequestTimeout = 2 * time.Minute
	readBufferSize     = 4096

	greeting     = "Hi! I'm the Rate My Professor support assistant. How can I help you today?"
	errorApology = "I'm sorry, but I encountered an error. Please try again later."
)

// splits p into its longest prefix of complete UTF-8 sequences and the
// trailing bytes of a sequence that may be completed by the next read
func splitValidUTF8(p []byte) (complete, rest []byte) {
	end := len(p)

	// an incomplete rune is at most utf8.UTFMax-1 bytes long
	for i := len(p) - 1; i >= 0 && i >= len(p)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(p[i]) {
			continue
		}

		if !utf8.FullRune(p[i:]) {
			end = i
		}

		break
	}

	return p[:end], p[end:]
}
