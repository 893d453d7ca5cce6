package sgf

// GameTree is one tree in an SGF file: a node sequence plus variations.
type GameTree struct {
	Nodes    []Node      // sequence of nodes on this line
	Children []*GameTree // variations; Children[0] continues the main line
}

// Node is a single SGF node, a set of properties such as B[pd], W[dd], C[...].
type Node struct {
	Properties map[string][]string // properties may carry several values (AB[aa][bb])
}

// SGF is the root element of a parsed record.
type SGF struct {
	Root *GameTree
}

// MainLine walks only the first child at every branch point and returns the
// node sequence of the record's primary variation, root node included.
func (s *SGF) MainLine() []Node {
	var nodes []Node
	tree := s.Root
	for tree != nil {
		nodes = append(nodes, tree.Nodes...)
		if len(tree.Children) == 0 {
			break
		}
		tree = tree.Children[0]
	}
	return nodes
}
