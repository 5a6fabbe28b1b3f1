package parser

// SourceLocation pins an AST node to the line/column it started at.
type SourceLocation struct {
	Line   int
	Column int
}

// ExprNode is implemented by every expression AST node.
type ExprNode interface {
	exprNode()
	GetLocation() SourceLocation
}

// StmtNode is implemented by every statement AST node.
type StmtNode interface {
	stmtNode()
	GetLocation() SourceLocation
}

// Program is the root of the AST: an ordered sequence of top-level statements.
type Program struct {
	Statements []StmtNode
}

// StateStmt declares a named state machine's ordered state list. States[0]
// is the initial state.
type StateStmt struct {
	Name     string
	States   []string
	Location SourceLocation
}

func (s *StateStmt) stmtNode()                  {}
func (s *StateStmt) GetLocation() SourceLocation { return s.Location }

// TransitionRule is one `from -> to when event` entry inside a TransitionStmt.
type TransitionRule struct {
	From  string
	To    string
	Event string
}

// TransitionStmt declares the legal (from, event) -> to edges for a named
// state machine.
type TransitionStmt struct {
	StateName string
	Rules     []TransitionRule
	Location  SourceLocation
}

func (s *TransitionStmt) stmtNode()                  {}
func (s *TransitionStmt) GetLocation() SourceLocation { return s.Location }

// LetStmt binds the evaluated value of an expression to a name in the
// current scope.
type LetStmt struct {
	Name     string
	Value    ExprNode
	Location SourceLocation
}

func (s *LetStmt) stmtNode()                  {}
func (s *LetStmt) GetLocation() SourceLocation { return s.Location }

// FnStmt declares a named function, binding a Function value capturing the
// current scope.
type FnStmt struct {
	Name     string
	Params   []string
	Body     []StmtNode
	Location SourceLocation
}

func (s *FnStmt) stmtNode()                  {}
func (s *FnStmt) GetLocation() SourceLocation { return s.Location }

// IfStmt is `if (Cond) Then (else Else)?`. Else, when present, is either a
// *BlockStmt or a nested *IfStmt (an `else if` chain).
type IfStmt struct {
	Cond     ExprNode
	Then     *BlockStmt
	Else     StmtNode
	Location SourceLocation
}

func (s *IfStmt) stmtNode()                  {}
func (s *IfStmt) GetLocation() SourceLocation { return s.Location }

// ReturnStmt unwinds to the nearest enclosing function call, carrying an
// optional value.
type ReturnStmt struct {
	Arg      ExprNode // nil when bare `return`
	Location SourceLocation
}

func (s *ReturnStmt) stmtNode()                  {}
func (s *ReturnStmt) GetLocation() SourceLocation { return s.Location }

// PrintStmt evaluates and stringifies its argument to the host print sink.
type PrintStmt struct {
	Arg      ExprNode
	Location SourceLocation
}

func (s *PrintStmt) stmtNode()                  {}
func (s *PrintStmt) GetLocation() SourceLocation { return s.Location }

// BlockStmt opens a child scope and executes its body sequentially.
type BlockStmt struct {
	Body     []StmtNode
	Location SourceLocation
}

func (s *BlockStmt) stmtNode()                  {}
func (s *BlockStmt) GetLocation() SourceLocation { return s.Location }

// ExpressionStmt evaluates an expression for its side effects and discards
// the result.
type ExpressionStmt struct {
	Expr     ExprNode
	Location SourceLocation
}

func (s *ExpressionStmt) stmtNode()                  {}
func (s *ExpressionStmt) GetLocation() SourceLocation { return s.Location }

// EndpointStmt declares an HTTP handler: method, path, the ordered list of
// middleware names applied to it, and the handler body.
type EndpointStmt struct {
	Method      string
	Path        string
	Middlewares []string
	Body        *BlockStmt
	Location    SourceLocation
}

func (s *EndpointStmt) stmtNode()                  {}
func (s *EndpointStmt) GetLocation() SourceLocation { return s.Location }

// MiddlewareStmt declares a named, reusable block run before endpoint bodies.
type MiddlewareStmt struct {
	Name     string
	Body     *BlockStmt
	Location SourceLocation
}

func (s *MiddlewareStmt) stmtNode()                  {}
func (s *MiddlewareStmt) GetLocation() SourceLocation { return s.Location }

// UseStmt registers middleware names to be applied globally, in order.
type UseStmt struct {
	Middlewares []string
	Location    SourceLocation
}

func (s *UseStmt) stmtNode()                  {}
func (s *UseStmt) GetLocation() SourceLocation { return s.Location }

// ValidationField is one declared (name, type, optional, nested?) entry in a
// validate schema.
type ValidationField struct {
	Name     string
	Type     string // string | number | boolean | array | object
	Optional bool
	Nested   []*ValidationField // only populated when Type == "object"
}

// ValidateStmt checks an evaluated target Object against a declared schema.
type ValidateStmt struct {
	Target   ExprNode
	Fields   []*ValidationField
	Location SourceLocation
}

func (s *ValidateStmt) stmtNode()                  {}
func (s *ValidateStmt) GetLocation() SourceLocation { return s.Location }

// ServerStmt declares the port the host should listen on.
type ServerStmt struct {
	Port     ExprNode
	Location SourceLocation
}

func (s *ServerStmt) stmtNode()                  {}
func (s *ServerStmt) GetLocation() SourceLocation { return s.Location }
