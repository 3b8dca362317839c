package main

import (
	"strings"

	"graphplot/app/lang"
)

// TokenKind represents the category of a syntax token.
type TokenKind int

const (
	TokenPlain TokenKind = iota
	TokenNumber
	TokenOperator
	TokenParen
	TokenFunction
	TokenConstant
	TokenVariable
	TokenReference
	TokenIllegal
)

// Token is a span of text with a syntax category.
type Token struct {
	Text string
	Kind TokenKind
}

// tokenColors maps token kinds to ANSI SGR sequences. Dark-theme oriented.
var tokenColors = map[TokenKind]string{
	TokenNumber:    "\x1b[38;5;151m", // green
	TokenParen:     "\x1b[38;5;220m", // yellow
	TokenFunction:  "\x1b[38;5;74m",  // blue
	TokenConstant:  "\x1b[38;5;151m",
	TokenVariable:  "\x1b[38;5;117m", // light blue
	TokenReference: "\x1b[38;5;79m",  // teal
	TokenIllegal:   "\x1b[38;5;203m", // red
}

const (
	ansiReset = "\x1b[0m"
	errColor  = "\x1b[38;5;203m"
)

// Highlighter colours normalised sources for terminal output.
type Highlighter struct {
	base     byte
	variable string
}

func newHighlighter(base byte, variable string) Highlighter {
	return Highlighter{base: base, variable: variable}
}

func (h Highlighter) wordKind(word string) TokenKind {
	switch {
	case word == h.variable:
		return TokenVariable
	case lang.IsBuiltin(word):
		return TokenFunction
	case lang.IsConstantName(word):
		return TokenConstant
	case len(word) == 1:
		if _, ok := slotOf(word[0], h.base); ok {
			return TokenReference
		}
	}
	return TokenPlain
}

func langTokenKind(t lang.TokenType) TokenKind {
	switch t {
	case lang.TOKEN_NUMBER:
		return TokenNumber
	case lang.TOKEN_PLUS, lang.TOKEN_MINUS, lang.TOKEN_STAR, lang.TOKEN_STARSTAR, lang.TOKEN_SLASH, lang.TOKEN_COMMA:
		return TokenOperator
	case lang.TOKEN_LPAREN, lang.TOKEN_RPAREN:
		return TokenParen
	case lang.TOKEN_ILLEGAL:
		return TokenIllegal
	default:
		return TokenPlain
	}
}

// Tokenize splits a line into highlighted tokens using the lang lexer.
func (h Highlighter) Tokenize(line string) []Token {
	if line == "" {
		return nil
	}

	var result []Token
	lastEnd := 0
	for _, lt := range lang.Lex(line) {
		if lt.Type == lang.TOKEN_EOF {
			break
		}
		if lt.Pos > lastEnd {
			result = append(result, Token{Text: line[lastEnd:lt.Pos], Kind: TokenPlain})
		}
		kind := langTokenKind(lt.Type)
		if lt.Type == lang.TOKEN_WORD {
			kind = h.wordKind(lt.Literal)
		}
		result = append(result, Token{Text: lt.Literal, Kind: kind})
		lastEnd = lt.Pos + len(lt.Literal)
	}
	if lastEnd < len(line) {
		result = append(result, Token{Text: line[lastEnd:], Kind: TokenPlain})
	}
	return result
}

// Colorize renders line with ANSI colours.
func (h Highlighter) Colorize(line string) string {
	var b strings.Builder
	for _, t := range h.Tokenize(line) {
		c, ok := tokenColors[t.Kind]
		if !ok {
			b.WriteString(t.Text)
			continue
		}
		b.WriteString(c)
		b.WriteString(t.Text)
		b.WriteString(ansiReset)
	}
	return b.String()
}
