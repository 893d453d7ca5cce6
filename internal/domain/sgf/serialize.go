package sgf

import (
	"fmt"
	"sort"
	"strings"
)

// Root properties are written in this fixed order; anything else follows
// sorted, so serialization is deterministic.
var orderedKeys = []string{
	"FF", "GM", "CA", "SZ", "HA", "PB", "BR", "PW", "WR",
	"EV", "GN", "DT", "RE", "KM", "RU", "TM", "PL", "AB", "AW", "C", "B", "W",
}

// Serialize renders a parsed tree back to record text.
func Serialize(s *SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")
		WriteNode(builder, node)
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

// WriteNode writes one node's properties without the leading ';'.
func WriteNode(builder *strings.Builder, node Node) {
	used := make(map[string]bool, len(node.Properties))
	for _, key := range orderedKeys {
		if values, ok := node.Properties[key]; ok {
			used[key] = true
			writeProperty(builder, key, values)
		}
	}

	rest := make([]string, 0, len(node.Properties))
	for key := range node.Properties {
		if !used[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		writeProperty(builder, key, node.Properties[key])
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		fmt.Fprintf(builder, "[%s]", v)
	}
}
