// Package input moves operator lines from blocking readers to the host
// loop through a single-slot channel.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var ErrClosed = errors.New("input closed")

// Lines is a capacity-1 line channel. Send blocks while a line is pending,
// so producers are throttled to the consumer's pace and nothing is dropped.
// TryRecv never blocks.
type Lines struct {
	ch        chan string
	done      chan struct{}
	closeOnce sync.Once
}

func NewLines() *Lines {
	return &Lines{
		ch:   make(chan string, 1),
		done: make(chan struct{}),
	}
}

// Send queues line, blocking until the slot is free, ctx ends, or the
// channel is closed.
func (l *Lines) Send(ctx context.Context, line string) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}
	select {
	case l.ch <- line:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryRecv returns the pending line, if any.
func (l *Lines) TryRecv() (string, bool) {
	select {
	case line := <-l.ch:
		return line, true
	default:
		return "", false
	}
}

// Close marks the producer side finished. A line already queued can still
// be received.
func (l *Lines) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

// Exhausted reports whether the channel is closed and drained, meaning no
// line will ever arrive again.
func (l *Lines) Exhausted() bool {
	select {
	case <-l.done:
		return len(l.ch) == 0
	default:
		return false
	}
}

// ReadFrom sends each line of r, without its line ending, until r is
// exhausted. It returns nil at EOF.
func ReadFrom(ctx context.Context, r io.Reader, l *Lines) error {
	lr := NewLineReader(r)
	for {
		line, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if err := l.Send(ctx, line); err != nil {
			return err
		}
	}
}

// LineReader splits a stream into lines of any length.
type LineReader struct {
	br *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{br: bufio.NewReader(r)}
}

// ReadLine returns the next line without its "\n" or "\r\n" ending. A final
// unterminated line is returned before io.EOF.
func (lr *LineReader) ReadLine() (string, error) {
	line, err := lr.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
