package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	h := newHighlighter('f', "x")
	got := h.Tokenize("sin(x) + g(2)*pi$")
	want := []Token{
		{"sin", TokenFunction},
		{"(", TokenParen},
		{"x", TokenVariable},
		{")", TokenParen},
		{" ", TokenPlain},
		{"+", TokenOperator},
		{" ", TokenPlain},
		{"g", TokenReference},
		{"(", TokenParen},
		{"2", TokenNumber},
		{")", TokenParen},
		{"*", TokenOperator},
		{"pi", TokenConstant},
		{"$", TokenIllegal},
	}
	assert.Equal(t, want, got)
	assert.Nil(t, h.Tokenize(""))
}

func TestTokenizeUnknownWord(t *testing.T) {
	h := newHighlighter('f', "x")
	assert.Equal(t, []Token{{"y", TokenPlain}}, h.Tokenize("y"))
	assert.Equal(t, []Token{{"a", TokenPlain}}, h.Tokenize("a"), "below the first slot")
}

func TestColorize(t *testing.T) {
	h := newHighlighter('f', "x")
	assert.Equal(t, "", h.Colorize(""))
	assert.Equal(t, tokenColors[TokenVariable]+"x"+ansiReset+"+"+tokenColors[TokenNumber]+"1"+ansiReset, h.Colorize("x+1"))
}
