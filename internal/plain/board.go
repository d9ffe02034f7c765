// Package plain draws scramble frames straight to a writer, one line per
// target, redrawing in place with cursor movement instead of a full TUI.
package plain

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/idursun/scramble/internal/scramble"
)

type Board struct {
	mu    sync.Mutex
	lines []string
	drawn int
	dirty bool
}

func NewBoard(n int) *Board {
	return &Board{lines: make([]string, n)}
}

// Line returns a sink that updates the i-th line.
func (b *Board) Line(i int) scramble.Sink {
	return scramble.SinkFunc(func(text string) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.lines[i] != text {
			b.lines[i] = text
			b.dirty = true
		}
	})
}

// Flush redraws every line if anything changed since the last flush.
func (b *Board) Flush(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.dirty && b.drawn > 0 {
		return nil
	}
	var sb strings.Builder
	if b.drawn > 0 {
		sb.WriteString("\r")
		if b.drawn > 1 {
			sb.WriteString(ansi.CursorUp(b.drawn - 1))
		}
	}
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(ansi.EraseEntireLine)
		sb.WriteString(line)
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	b.drawn = len(b.lines)
	b.dirty = false
	return nil
}

// Close draws the final state and moves the cursor below the board.
func (b *Board) Close(w io.Writer) error {
	if err := b.Flush(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Text is the current content of every line, for tests and logging.
func (b *Board) Text() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}
