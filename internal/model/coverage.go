package model

// Range is a span of the original source. Lines are 1-based, columns are
// 0-based byte offsets within the line.
type Range struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// BranchKind names the construct a branch was registered for.
type BranchKind string

const (
	// BranchIf is an if statement with its consequent and alternate arms.
	BranchIf BranchKind = "if"
	// BranchCondExpr is a ternary expression.
	BranchCondExpr BranchKind = "cond-expr"
	// BranchSwitch is a switch statement, one path per case.
	BranchSwitch BranchKind = "switch"
	// BranchBinaryExpr is a short-circuit chain of &&, || or ??.
	BranchBinaryExpr BranchKind = "binary-expr"
	// BranchDefaultArg is a default value of a parameter or pattern.
	BranchDefaultArg BranchKind = "default-arg"
)

// Statement is one entry of the statement registry.
type Statement struct {
	ID       int
	Location Range
}

// Function is one entry of the function registry. Name is nil for
// anonymous functions.
type Function struct {
	ID       int
	Name     *string
	Decl     Range
	Location Range
}

// BranchPath is one arm of a branch. Its index within the branch never
// changes once assigned.
type BranchPath struct {
	Location Range
	Skip     bool
}

// Branch is one entry of the branch registry.
type Branch struct {
	ID       int
	Kind     BranchKind
	Location Range
	Paths    []BranchPath
	// Truthy marks logical branches whose leaves also feed the parallel
	// truthiness counters (bT).
	Truthy bool
}

// SourceCoverage owns the statement, function and branch registries of one
// source file. It is created per file, filled during a single traversal and
// read-only afterwards. It is not safe for concurrent use.
type SourceCoverage struct {
	Path     string
	Accessor string

	statements []Statement
	functions  []Function
	branches   []Branch
}

// NewSourceCoverage creates an empty model for path whose injected counters
// reference accessor.
func NewSourceCoverage(path, accessor string) *SourceCoverage {
	return &SourceCoverage{Path: path, Accessor: accessor}
}

// NewStatement registers a statement and returns its id.
func (c *SourceCoverage) NewStatement(r Range) int {
	id := len(c.statements)
	c.statements = append(c.statements, Statement{ID: id, Location: r})

	return id
}

// NewFunction registers a function keyed by its declaration and body spans.
func (c *SourceCoverage) NewFunction(name *string, decl, body Range) int {
	id := len(c.functions)
	c.functions = append(c.functions, Function{ID: id, Name: name, Decl: decl, Location: body})

	return id
}

// NewBranch registers a branch with no paths yet.
func (c *SourceCoverage) NewBranch(kind BranchKind, r Range) int {
	id := len(c.branches)
	c.branches = append(c.branches, Branch{ID: id, Kind: kind, Location: r})

	return id
}

// AddBranchPath appends a path to branch and returns its index. An unknown
// branch id is a programming error and panics like any out of range index.
func (c *SourceCoverage) AddBranchPath(branch int, r Range) int {
	b := &c.branches[branch]
	b.Paths = append(b.Paths, BranchPath{Location: r})

	return len(b.Paths) - 1
}

// SkipBranchPath marks a registered path as excluded by an ignore hint.
func (c *SourceCoverage) SkipBranchPath(branch, path int) {
	c.branches[branch].Paths[path].Skip = true
}

// MarkTruthy records that branch feeds the truthiness counters.
func (c *SourceCoverage) MarkTruthy(branch int) {
	c.branches[branch].Truthy = true
}

// Statements returns the statement registry in id order.
func (c *SourceCoverage) Statements() []Statement { return c.statements }

// Functions returns the function registry in id order.
func (c *SourceCoverage) Functions() []Function { return c.functions }

// Branches returns the branch registry in id order.
func (c *SourceCoverage) Branches() []Branch { return c.branches }

// HasTruthy reports whether any branch feeds the truthiness counters.
func (c *SourceCoverage) HasTruthy() bool {
	for _, b := range c.branches {
		if b.Truthy {
			return true
		}
	}

	return false
}

// Counts summarises the registries.
func (c *SourceCoverage) Counts() Counts {
	counts := Counts{
		Statements: len(c.statements),
		Functions:  len(c.functions),
		Branches:   len(c.branches),
	}

	for _, b := range c.branches {
		counts.Paths += len(b.Paths)
	}

	return counts
}
