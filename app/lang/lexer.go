package lang

import "unicode/utf8"

// Lex tokenizes a normalized expression into a slice of tokens.
// Characters outside the expression grammar become TOKEN_ILLEGAL so the
// parser rejects them instead of silently dropping them.
func Lex(input string) []Token {
	var tokens []Token
	i := 0
	for i < len(input) {
		ch := input[i]

		// Skip whitespace
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			i++
			continue
		}

		switch ch {
		case '+':
			tokens = append(tokens, Token{Type: TOKEN_PLUS, Literal: "+", Pos: i})
			i++
		case '-':
			tokens = append(tokens, Token{Type: TOKEN_MINUS, Literal: "-", Pos: i})
			i++
		case '*':
			if i+1 < len(input) && input[i+1] == '*' {
				tokens = append(tokens, Token{Type: TOKEN_STARSTAR, Literal: "**", Pos: i})
				i += 2
			} else {
				tokens = append(tokens, Token{Type: TOKEN_STAR, Literal: "*", Pos: i})
				i++
			}
		case '^':
			tokens = append(tokens, Token{Type: TOKEN_STARSTAR, Literal: "^", Pos: i})
			i++
		case '/':
			tokens = append(tokens, Token{Type: TOKEN_SLASH, Literal: "/", Pos: i})
			i++
		case '(':
			tokens = append(tokens, Token{Type: TOKEN_LPAREN, Literal: "(", Pos: i})
			i++
		case ')':
			tokens = append(tokens, Token{Type: TOKEN_RPAREN, Literal: ")", Pos: i})
			i++
		case ',':
			tokens = append(tokens, Token{Type: TOKEN_COMMA, Literal: ",", Pos: i})
			i++
		default:
			if isDigit(ch) || (ch == '.' && i+1 < len(input) && isDigit(input[i+1])) {
				start := i
				for i < len(input) && isDigit(input[i]) {
					i++
				}
				if i < len(input) && input[i] == '.' {
					i++ // past '.'
					for i < len(input) && isDigit(input[i]) {
						i++
					}
				}
				tokens = append(tokens, Token{Type: TOKEN_NUMBER, Literal: input[start:i], Pos: start})
			} else if isWordStart(ch) {
				start := i
				for i < len(input) && isWordContinue(input[i]) {
					i++
				}
				tokens = append(tokens, Token{Type: TOKEN_WORD, Literal: input[start:i], Pos: start})
			} else {
				_, size := utf8.DecodeRuneInString(input[i:])
				tokens = append(tokens, Token{Type: TOKEN_ILLEGAL, Literal: input[i : i+size], Pos: i})
				i += size
			}
		}
	}
	tokens = append(tokens, Token{Type: TOKEN_EOF, Literal: "", Pos: i})
	return tokens
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordStart(ch byte) bool {
	return isAlpha(ch) || ch == '_'
}

func isWordContinue(ch byte) bool {
	return isWordStart(ch) || isDigit(ch)
}
