package plain

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/idursun/scramble/internal/scramble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlush_FirstDrawWritesEveryLine(t *testing.T) {
	b := NewBoard(2)
	b.Line(0).SetText("one")
	b.Line(1).SetText("two")

	var out bytes.Buffer
	require.NoError(t, b.Flush(&out))

	assert.Equal(t, ansi.EraseEntireLine+"one\n"+ansi.EraseEntireLine+"two", out.String())
}

func TestFlush_RedrawMovesCursorBack(t *testing.T) {
	b := NewBoard(3)
	var out bytes.Buffer
	require.NoError(t, b.Flush(&out))
	out.Reset()

	b.Line(1).SetText("x")
	require.NoError(t, b.Flush(&out))

	assert.Equal(t, "\r"+ansi.CursorUp(2)+
		ansi.EraseEntireLine+"\n"+
		ansi.EraseEntireLine+"x\n"+
		ansi.EraseEntireLine, out.String())
}

func TestFlush_SkipsWhenUnchanged(t *testing.T) {
	b := NewBoard(1)
	b.Line(0).SetText("same")
	var out bytes.Buffer
	require.NoError(t, b.Flush(&out))
	out.Reset()

	b.Line(0).SetText("same")
	require.NoError(t, b.Flush(&out))
	assert.Empty(t, out.String())
}

func TestClose_EndsWithNewline(t *testing.T) {
	b := NewBoard(1)
	b.Line(0).SetText("done")

	var out bytes.Buffer
	require.NoError(t, b.Close(&out))
	assert.Equal(t, "done\n", ansi.Strip(out.String()))
}

func TestBoard_DrivenByPlayback(t *testing.T) {
	clock := scramble.NewManualClock()
	b := NewBoard(2)
	scramble.New("left", scramble.Options{Easing: scramble.Linear}).Play(clock, b.Line(0))
	scramble.New("right", scramble.Options{Easing: scramble.Linear, Direction: scramble.FromEnd}).Play(clock, b.Line(1))

	var out bytes.Buffer
	for clock.Pending() > 0 {
		clock.Advance()
		require.NoError(t, b.Flush(&out))
	}

	assert.Equal(t, []string{"left", "right"}, b.Text())
}
