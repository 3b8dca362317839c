package lang

import "strings"

const (
	// EulerExpr replaces a standalone e.
	EulerExpr = "exp(1)"
	// ImaginaryExpr replaces a standalone i.
	ImaginaryExpr = "((-1)**(1/2))"
	// PowerOperator replaces ^.
	PowerOperator = "**"
)

// Normalize rewrites raw user input into an unambiguous expression:
// the definition prefix is removed, implicit multiplication is made
// explicit, ^ becomes **, missing closing brackets are appended and the
// standalone letters e and i become Euler's number and the imaginary unit.
// Normalize never fails; malformed input is left for the parser to reject.
func Normalize(raw string) string {
	s := StripDefinition(raw)
	s = InsertMultiplication(s)
	s = strings.ReplaceAll(s, "^", PowerOperator)
	s = CompleteBrackets(s)
	// Expanded constants end in ')', so "1e3" needs another pass.
	return InsertMultiplication(ReplaceConstants(s))
}

// Prepare applies the first normalization steps only: trimming, removing
// the definition prefix and completing brackets. References to other
// functions are still intact in the result.
func Prepare(raw string) string {
	return CompleteBrackets(StripDefinition(raw))
}

// StripDefinition trims s and removes everything up to and including the
// first lone top-level '=' ("f(x) = x^2" becomes "x^2"). '==', '<=',
// '>=' and '!=' are not treated as a definition.
func StripDefinition(s string) string {
	s = strings.TrimSpace(s)
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '=':
			if depth != 0 {
				continue
			}
			if i > 0 && strings.IndexByte("=<>!", s[i-1]) >= 0 {
				continue
			}
			if i+1 < len(s) && s[i+1] == '=' {
				i++ // skip the second half of '=='
				continue
			}
			return strings.TrimSpace(s[i+1:])
		}
	}
	return s
}

// InsertMultiplication makes implicit products explicit:
// "2x" → "2*x", "(x+1)(x-1)" → "(x+1)*(x-1)", "x(x+1)" → "x*(x+1)".
// A letter or digit that is part of a longer name, as in "sin(x)" or
// "log10(x)", is a call.
func InsertMultiplication(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		b.WriteByte(s[i])
		if i+1 >= len(s) {
			break
		}
		ch, next := s[i], s[i+1]
		switch {
		case isAlpha(ch) && IsStandalone(s, i) && next == '(':
			b.WriteByte('*')
		case ch == ')' && (isAlpha(next) || next == '('):
			b.WriteByte('*')
		case isDigit(ch) && (isAlpha(next) || next == '(') && !inName(s, i):
			b.WriteByte('*')
		case ch == ')' && isDigit(next):
			b.WriteByte('*')
		}
	}
	return b.String()
}

// inName reports whether the digit s[i] ends a run that starts with a
// letter, as in "log10" or "atan2".
func inName(s string, i int) bool {
	j := i
	for j > 0 && isWordContinue(s[j-1]) {
		j--
	}
	return isWordStart(s[j])
}

// CompleteBrackets appends one ')' per unmatched '('. Excess ')' are kept.
func CompleteBrackets(s string) string {
	missing := strings.Count(s, "(") - strings.Count(s, ")")
	if missing > 0 {
		s += strings.Repeat(")", missing)
	}
	return s
}

// ReplaceConstants rewrites every standalone e and i.
func ReplaceConstants(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == 'e' && IsStandalone(s, i):
			b.WriteString(EulerExpr)
		case s[i] == 'i' && IsStandalone(s, i):
			b.WriteString(ImaginaryExpr)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ReplaceVariable substitutes every standalone occurrence of the single
// letter name in s with repl.
func ReplaceVariable(s string, name byte, repl string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == name && IsStandalone(s, i) {
			b.WriteString(repl)
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// IsStandalone reports whether s[i] has no alphabetic neighbour.
func IsStandalone(s string, i int) bool {
	if i > 0 && isAlpha(s[i-1]) {
		return false
	}
	if i+1 < len(s) && isAlpha(s[i+1]) {
		return false
	}
	return true
}

// MatchingBracket returns the index of the ')' closing the '(' at open,
// or -1 when it is never closed.
func MatchingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
