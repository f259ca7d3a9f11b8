package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI_Colors(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\x1b[31mred\x1b[0m plain\n")

	require.NoError(t, stripANSI(context.Background(), &out, in))
	assert.Equal(t, "red plain\n", out.String())
}

func TestStripANSI_CursorAndErase(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\x1b[2Jcleared\x1b[1;1Hhome\n")

	require.NoError(t, stripANSI(context.Background(), &out, in))
	assert.Equal(t, "clearedhome\n", out.String())
}

func TestStripANSI_OSCTitle(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\x1b]0;window title\x07text\n")

	require.NoError(t, stripANSI(context.Background(), &out, in))
	assert.Equal(t, "text\n", out.String())
}

func TestStripANSI_PlainPassesThrough(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("no escapes here\nsecond line\n")

	require.NoError(t, stripANSI(context.Background(), &out, in))
	assert.Equal(t, "no escapes here\nsecond line\n", out.String())
}

func TestStripANSI_LongLine(t *testing.T) {
	// Well past bufio's default buffer size, on a single line.
	payload := strings.Repeat("x", 256*1024)
	var out bytes.Buffer
	in := strings.NewReader("\x1b[32m" + payload + "\x1b[0m\n")

	require.NoError(t, stripANSI(context.Background(), &out, in))
	assert.Equal(t, payload+"\n", out.String())
}

func TestStripANSI_NoTrailingNewline(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\x1b[1mbold\x1b[0m tail")

	require.NoError(t, stripANSI(context.Background(), &out, in))
	assert.Equal(t, "bold tail", out.String())
}

func TestStripANSI_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := stripANSI(ctx, &out, strings.NewReader("line\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
