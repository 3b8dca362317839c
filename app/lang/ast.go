package lang

// Node is the interface all AST nodes implement.
type Node interface {
	nodeTag()
}

// NumberLit represents a real number literal.
type NumberLit struct {
	Value float64
}

// VarRef represents a named symbol: the plotting variable, a constant
// such as pi, or any other (free) identifier.
type VarRef struct {
	Name string
}

// BinaryExpr represents a binary operation.
type BinaryExpr struct {
	Op    TokenType // TOKEN_PLUS, TOKEN_MINUS, TOKEN_STAR, TOKEN_SLASH, TOKEN_STARSTAR
	Left  Node
	Right Node
}

// UnaryExpr represents a unary operation (negation or unary plus).
type UnaryExpr struct {
	Op      TokenType // TOKEN_MINUS, TOKEN_PLUS
	Operand Node
}

// FuncCall represents a call like sin(x), log(x, 2) or integrate(x, x).
type FuncCall struct {
	Name string
	Args []Node
}

func (*NumberLit) nodeTag()  {}
func (*VarRef) nodeTag()     {}
func (*BinaryExpr) nodeTag() {}
func (*UnaryExpr) nodeTag()  {}
func (*FuncCall) nodeTag()   {}
