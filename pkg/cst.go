package volt

// CSTNodeKind distinguishes the three node variants: a leaf carrying a
// token, an internal node produced by a grammar rule, and the
// epsilon/empty production.
type CSTNodeKind int

const (
	CSTToken CSTNodeKind = iota
	CSTExpression
	CSTEmpty
)

// CSTNode is a concrete-syntax tree node. Every non-leaf node records the
// grammar rule that produced it, which is always a rule defined in the
// registry the parser ran against. Nodes are owned by the Parser that
// built them and simply become unreferenced when that parser goes out of
// scope.
type CSTNode struct {
	Kind CSTNodeKind

	// RuleName names the grammar rule that produced this node. Empty for
	// CSTToken and CSTEmpty nodes.
	RuleName string

	// Token is set only for CSTToken nodes.
	Token *Token

	// Children holds the nodes produced by each element of the winning
	// alternative, in that alternative's element order.
	Children []*CSTNode
}

func newTokenNode(tok Token) *CSTNode {
	t := tok
	return &CSTNode{Kind: CSTToken, Token: &t}
}

func newExpressionNode(rule string) *CSTNode {
	return &CSTNode{Kind: CSTExpression, RuleName: rule}
}

func newEmptyNode() *CSTNode {
	return &CSTNode{Kind: CSTEmpty}
}

func (n *CSTNode) addChild(child *CSTNode) {
	if n == nil || child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// Leaves walks the subtree in tree order and returns every token held by a
// CSTToken leaf. For any node of a successful parse, the leaves form a
// contiguous slice of the input token vector.
func (n *CSTNode) Leaves() []Token {
	if n == nil {
		return nil
	}

	var out []Token
	var walk func(*CSTNode)
	walk = func(node *CSTNode) {
		if node == nil {
			return
		}
		switch node.Kind {
		case CSTToken:
			out = append(out, *node.Token)
		case CSTExpression:
			for _, c := range node.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// Find returns the first direct child produced by rule name, or nil.
func (n *CSTNode) Find(ruleName string) *CSTNode {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == CSTExpression && c.RuleName == ruleName {
			return c
		}
	}
	return nil
}

// FindToken returns the first direct child that is a token of kind k, or
// nil.
func (n *CSTNode) FindToken(k TokenKind) *CSTNode {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == CSTToken && c.Token.Kind == k {
			return c
		}
	}
	return nil
}
