package parser

// NumberLiteral is a numeric literal.
type NumberLiteral struct {
	Value    float64
	Location SourceLocation
}

func (e *NumberLiteral) exprNode()                  {}
func (e *NumberLiteral) GetLocation() SourceLocation { return e.Location }

// StringLiteral is a string literal with escapes already decoded by the
// scanner.
type StringLiteral struct {
	Value    string
	Location SourceLocation
}

func (e *StringLiteral) exprNode()                  {}
func (e *StringLiteral) GetLocation() SourceLocation { return e.Location }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value    bool
	Location SourceLocation
}

func (e *BoolLiteral) exprNode()                  {}
func (e *BoolLiteral) GetLocation() SourceLocation { return e.Location }

// NullLiteral is `null`.
type NullLiteral struct {
	Location SourceLocation
}

func (e *NullLiteral) exprNode()                  {}
func (e *NullLiteral) GetLocation() SourceLocation { return e.Location }

// Identifier references a name bound in some enclosing scope.
type Identifier struct {
	Name     string
	Location SourceLocation
}

func (e *Identifier) exprNode()                  {}
func (e *Identifier) GetLocation() SourceLocation { return e.Location }

// BinaryExpr covers arithmetic, comparison, equality, and logical `and`/`or`
// operators; Operator is the literal operator lexeme ("+", "==", "and", ...).
type BinaryExpr struct {
	Left     ExprNode
	Operator string
	Right    ExprNode
	Location SourceLocation
}

func (e *BinaryExpr) exprNode()                  {}
func (e *BinaryExpr) GetLocation() SourceLocation { return e.Location }

// UnaryExpr is a prefix `-`.
type UnaryExpr struct {
	Operand  ExprNode
	Location SourceLocation
}

func (e *UnaryExpr) exprNode()                  {}
func (e *UnaryExpr) GetLocation() SourceLocation { return e.Location }

// AssignExpr is `name = value`; the parser rejects any non-identifier target.
type AssignExpr struct {
	Name     string
	Value    ExprNode
	Location SourceLocation
}

func (e *AssignExpr) exprNode()                  {}
func (e *AssignExpr) GetLocation() SourceLocation { return e.Location }

// CallExpr applies Callee (typically a MemberExpr or Identifier) to Args,
// evaluated left to right.
type CallExpr struct {
	Callee   ExprNode
	Args     []ExprNode
	Location SourceLocation
}

func (e *CallExpr) exprNode()                  {}
func (e *CallExpr) GetLocation() SourceLocation { return e.Location }

// MemberExpr is `Object.Property`. Property lexemes may be keywords (`state`,
// `body`, ...) as well as plain identifiers.
type MemberExpr struct {
	Object   ExprNode
	Property string
	Location SourceLocation
}

func (e *MemberExpr) exprNode()                  {}
func (e *MemberExpr) GetLocation() SourceLocation { return e.Location }

// ArrayLiteral is `[ elem, elem, ... ]`.
type ArrayLiteral struct {
	Elements []ExprNode
	Location SourceLocation
}

func (e *ArrayLiteral) exprNode()                  {}
func (e *ArrayLiteral) GetLocation() SourceLocation { return e.Location }

// ObjectPair is one `key: value` entry of an ObjectLiteral, in source order.
type ObjectPair struct {
	Key   string
	Value ExprNode
}

// ObjectLiteral is `{ key: value, ... }`; Pairs preserves declaration order.
type ObjectLiteral struct {
	Pairs    []ObjectPair
	Location SourceLocation
}

func (e *ObjectLiteral) exprNode()                  {}
func (e *ObjectLiteral) GetLocation() SourceLocation { return e.Location }

// FunctionExpr is an anonymous `fn (params) { ... }` literal.
type FunctionExpr struct {
	Params   []string
	Body     []StmtNode
	Location SourceLocation
}

func (e *FunctionExpr) exprNode()                  {}
func (e *FunctionExpr) GetLocation() SourceLocation { return e.Location }
