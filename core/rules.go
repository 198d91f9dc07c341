package core

// RuleDocument is the declarative form access rules are written in.
// Statements are keyed by rule name; a rule with no statement falls
// back to Defaults, and is allowed when absent there too.
type RuleDocument struct {
	Statements map[string]RuleStatement `json:"statements"`
	Defaults   map[string]bool          `json:"defaults"`
}

type RuleStatement struct {
	Condition Expr `json:"condition"`
}

type Expr struct {
	Op    string `json:"op"`
	Args  []Expr `json:"args"`
	Const any    `json:"const"`
}
