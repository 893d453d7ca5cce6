package sgf

import (
	"errors"
	"strings"

	apperr "sgf_review/internal/errors"
)

// Parse tokenizes record text into a property-map tree. Property values keep
// their backslash escapes verbatim so that serializing the tree reproduces
// the input byte for byte.
func Parse(text string) (*SGF, error) {
	p := &parser{text: text}
	p.skipSpace()
	tree, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	return &SGF{Root: tree}, nil
}

type parser struct {
	text string
	pos  int
}

func (p *parser) parseTree() (*GameTree, error) {
	if !p.consume('(') {
		return nil, p.fail("expected '('")
	}
	tree := &GameTree{}
	p.skipSpace()
	for p.peek() == ';' {
		p.pos++
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		tree.Nodes = append(tree.Nodes, node)
		p.skipSpace()
	}
	for p.peek() == '(' {
		child, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		tree.Children = append(tree.Children, child)
		p.skipSpace()
	}
	if !p.consume(')') {
		return nil, p.fail("expected ')'")
	}
	if len(tree.Nodes) == 0 && len(tree.Children) == 0 {
		return nil, p.fail("empty game tree")
	}
	return tree, nil
}

func (p *parser) parseNode() (Node, error) {
	node := Node{Properties: make(map[string][]string)}
	p.skipSpace()
	for isIdentByte(p.peek()) {
		ident := p.readIdent()
		p.skipSpace()
		if p.peek() != '[' {
			return Node{}, p.fail("property " + ident + " has no value")
		}
		for p.peek() == '[' {
			value, err := p.readValue()
			if err != nil {
				return Node{}, err
			}
			node.Properties[ident] = append(node.Properties[ident], value)
			p.skipSpace()
		}
	}
	return node, nil
}

// readValue consumes a bracketed value; a '\' keeps the following byte,
// ']' included, as part of the value.
func (p *parser) readValue() (string, error) {
	p.pos++ // '['
	var b strings.Builder
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.text) {
				return "", p.fail("dangling escape in property value")
			}
			b.WriteByte(c)
			b.WriteByte(p.text[p.pos+1])
			p.pos += 2
		case ']':
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.fail("unterminated property value")
}

func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.text) && isIdentByte(p.text[p.pos]) {
		p.pos++
	}
	return p.text[start:p.pos]
}

func isIdentByte(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func (p *parser) peek() byte {
	if p.pos >= len(p.text) {
		return 0
	}
	return p.text[p.pos]
}

func (p *parser) consume(c byte) bool {
	if p.peek() != c {
		return false
	}
	p.pos++
	return true
}

func (p *parser) skipSpace() {
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) fail(msg string) error {
	return &apperr.ParseError{
		Fragment: fragmentAt(p.text, p.pos),
		Pos:      p.pos,
		Err:      errors.New(msg),
	}
}

// fragmentAt cuts a short window around pos for error reporting.
func fragmentAt(text string, pos int) string {
	start := pos - 8
	if start < 0 {
		start = 0
	}
	end := pos + 16
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}
