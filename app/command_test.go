package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"", Command{Op: OpNone}},
		{"  # comment", Command{Op: OpNone}},
		{"f(x)=x^2", Command{Op: OpEdit, Slot: 0, Text: "f(x)=x^2"}},
		{"g(x) = f(x)*2", Command{Op: OpEdit, Slot: 1, Text: "g(x) = f(x)*2"}},
		{"h: sin(x)", Command{Op: OpEdit, Slot: 2, Text: "sin(x)"}},
		{"o:", Command{Op: OpEdit, Slot: 9, Text: ""}},
		{"zoom in", Command{Op: OpZoom, In: true}},
		{"zoom OUT 10 20", Command{Op: OpZoom, Args: []float64{10, 20}}},
		{"move -150 0", Command{Op: OpMove, Args: []float64{-150, 0}}},
		{"view -1 1 -2 2.5", Command{Op: OpView, Args: []float64{-1, 1, -2, 2.5}}},
		{"resize 1024 768", Command{Op: OpResize, Args: []float64{1024, 768}}},
		{"points", Command{Op: OpPoints}},
		{"eval g 3", Command{Op: OpEval, Slot: 1, Args: []float64{3}}},
		{"curve f", Command{Op: OpCurve}},
		{"curve i 2", Command{Op: OpCurve, Slot: 3, Args: []float64{2}}},
		{"list", Command{Op: OpList}},
		{"stats", Command{Op: OpStats}},
		{"save plot.png", Command{Op: OpSave, Text: "plot.png"}},
		{"help", Command{Op: OpHelp}},
		{"quit", Command{Op: OpQuit}},
		{"exit", Command{Op: OpQuit}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.line, 'f')
		require.NoError(t, err, "ParseCommand(%q)", tt.line)
		assert.Equal(t, tt.want, got, "ParseCommand(%q)", tt.line)
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		line string
		msg  string
	}{
		{"bogus", `unknown command "bogus"`},
		{"f(x)+1", `unknown command "f(x)+1"`},
		{"move 1", "move: wrong number of arguments"},
		{"save a b", "save: wrong number of arguments"},
		{"zoom sideways", `zoom: expected in or out, got "sideways"`},
		{"zoom in 5", "zoom: pointer needs both px and py"},
		{"eval z 1", `eval: "z" is not a slot`},
		{"eval ff 1", `eval: "ff" is not a slot`},
		{"view 0 1 a 2", `view: bad number "a"`},
	}
	for _, tt := range tests {
		_, err := ParseCommand(tt.line, 'f')
		require.Error(t, err, "ParseCommand(%q)", tt.line)
		assert.Equal(t, tt.msg, err.Error())
	}
}

func TestParseCommandBaseLetter(t *testing.T) {
	cmd, err := ParseCommand("c: x", 'a')
	require.NoError(t, err)
	assert.Equal(t, 2, cmd.Slot)

	// 'p' is one past the last slot with the default base.
	_, err = ParseCommand("p: x", 'f')
	assert.Error(t, err)
}
