package lang

import (
	"fmt"
	"strconv"
)

// Parser holds the state for parsing a token stream.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse parses a token slice into an AST node.
// Returns nil for empty input.
func Parse(tokens []Token) (Node, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	// Check if all tokens are EOF
	if len(tokens) == 1 && tokens[0].Type == TOKEN_EOF {
		return nil, nil
	}

	p := &Parser{tokens: tokens, pos: 0}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.peek().Type != TOKEN_EOF {
		return nil, p.unexpected()
	}

	return node, nil
}

// ParseLine lexes and parses a single expression without evaluating it.
func ParseLine(line string) (Node, error) {
	return Parse(Lex(line))
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TOKEN_EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) unexpected() error {
	t := p.peek()
	return &EvalError{Msg: fmt.Sprintf("unexpected token %q at offset %d", t.Literal, t.Pos)}
}

func (p *Parser) expected(what string) error {
	return &EvalError{Msg: fmt.Sprintf("expected %s at offset %d", what, p.peek().Pos)}
}

func (p *Parser) advance() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

// parseExpression: term ( ("+" | "-") term )*
func (p *Parser) parseExpression() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TOKEN_PLUS || p.peek().Type == TOKEN_MINUS {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op.Type, Left: left, Right: right}
	}

	return left, nil
}

// parseTerm: unary ( ("*" | "/") unary )*
func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TOKEN_STAR || p.peek().Type == TOKEN_SLASH {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op.Type, Left: left, Right: right}
	}

	return left, nil
}

// parseUnary: ("-" | "+") unary | power
func (p *Parser) parseUnary() (Node, error) {
	if p.peek().Type == TOKEN_MINUS || p.peek().Type == TOKEN_PLUS {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op.Type, Operand: operand}, nil
	}
	return p.parsePower()
}

// parsePower: primary ( "**" unary )?
// Exponentiation is right-associative and binds tighter than a leading
// minus, so -x**2 is -(x**2) and 2**-1 is 0.5.
func (p *Parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TOKEN_STARSTAR {
		return base, nil
	}
	p.advance() // consume '**'
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: TOKEN_STARSTAR, Left: base, Right: exp}, nil
}

// parsePrimary: number | name | name "(" args ")" | "(" expression ")"
func (p *Parser) parsePrimary() (Node, error) {
	tok := p.peek()

	switch tok.Type {
	case TOKEN_NUMBER:
		p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &EvalError{Msg: "invalid number: " + tok.Literal}
		}
		return &NumberLit{Value: v}, nil

	case TOKEN_LPAREN:
		p.advance() // consume '('
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.peek().Type != TOKEN_RPAREN {
			return nil, p.expected("')'")
		}
		p.advance() // consume ')'
		return expr, nil

	case TOKEN_WORD:
		// Check if this is a function call: WORD followed by LPAREN
		if p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Type == TOKEN_LPAREN {
			return p.parseFuncCall()
		}
		return &VarRef{Name: p.advance().Literal}, nil

	case TOKEN_EOF:
		return nil, &EvalError{Msg: "unexpected end of expression"}

	default:
		return nil, p.unexpected()
	}
}

// parseFuncCall: WORD "(" [expression ("," expression)*] ")"
func (p *Parser) parseFuncCall() (Node, error) {
	name := p.advance().Literal // consume function name
	p.advance()                 // consume '('

	var args []Node
	if p.peek().Type != TOKEN_RPAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.peek().Type == TOKEN_COMMA {
			p.advance() // consume ','
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}

	if p.peek().Type != TOKEN_RPAREN {
		return nil, p.expected("')' in call to " + name)
	}
	p.advance() // consume ')'
	return &FuncCall{Name: name, Args: args}, nil
}
