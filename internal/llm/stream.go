package llm

import (
	"context"
)

// adapts callback and iterator style provider APIs to Stream.
// the producer runs in its own goroutine and hands fragments over an
// unbuffered channel, so nothing is read ahead of the consumer.
type pushStream struct {
	chunks  chan string
	cancel  context.CancelFunc
	err     error // written by the producer before chunks is closed
	current string
}

// starts produce in a goroutine; emit blocks until the consumer takes the fragment
func newPushStream(ctx context.Context, produce func(ctx context.Context, emit func(string) error) error) *pushStream {
	ctx, cancel := context.WithCancel(ctx)

	s := &pushStream{
		chunks: make(chan string),
		cancel: cancel,
	}

	go func() {
		defer close(s.chunks)

		s.err = produce(ctx, func(text string) error {
			select {
			case s.chunks <- text:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	return s
}

func (s *pushStream) Next() bool {
	text, ok := <-s.chunks
	if !ok {
		return false
	}

	s.current = text

	return true
}

func (s *pushStream) Chunk() string {
	return s.current
}

func (s *pushStream) Err() error {
	return s.err
}

// cancels the producer and waits for it to exit
func (s *pushStream) Close() error {
	s.cancel()

	for range s.chunks { //nolint:revive // drain until the producer closes the channel
	}

	return nil
}

// stream over a fixed set of fragments, used by tests and fakes
type SliceStream struct {
	Chunks  []string
	Failure error // reported after all chunks were consumed
	Closed  bool
	pos     int
}

func (s *SliceStream) Next() bool {
	if s.Closed || s.pos >= len(s.Chunks) {
		return false
	}

	s.pos++

	return true
}

func (s *SliceStream) Chunk() string {
	if s.pos == 0 {
		return ""
	}

	return s.Chunks[s.pos-1]
}

func (s *SliceStream) Err() error {
	if s.pos >= len(s.Chunks) {
		return s.Failure
	}

	return nil
}

func (s *SliceStream) Close() error {
	s.Closed = true
	return nil
}
