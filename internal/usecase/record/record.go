// Package record turns tokenized SGF into the canonical form the analysis
// pipeline works on: root properties plus the main-line move sequence as
// text, with byte offsets kept so engine verdicts can later be spliced back
// into the sequence without reserializing anything else.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"sgf_review/internal/domain/sgf"
	apperr "sgf_review/internal/errors"
)

// Move is one main-line move. Offset is the byte position of the move's
// ";B[..]" node inside Sequence.
type Move struct {
	Color  string // "B" or "W"
	Coord  string // RAW coordinate, "" for an explicit pass
	Offset int
}

// GameRecord is the parsed form of one record: root properties and the
// linear main line. Comments are dropped from the canonical rendering.
type GameRecord struct {
	Root     map[string][]string
	Moves    []Move
	Sequence string // ";B[pd];W[dd]..." main line only
	Size     int
}

// FromText tokenizes record text and builds a GameRecord from its root
// properties and first-child chain.
func FromText(text string) (*GameRecord, error) {
	parsed, err := sgf.Parse(text)
	if err != nil {
		return nil, err
	}
	nodes := parsed.MainLine()
	if len(nodes) == 0 {
		return nil, apperr.ErrNoMainLine
	}

	rec := &GameRecord{Root: nodes[0].Properties, Size: 19}
	if v, ok := rec.RootValue("SZ"); ok {
		size, convErr := strconv.Atoi(v)
		if convErr != nil || size < 1 || size > 25 {
			return nil, &apperr.ParseError{Fragment: "SZ[" + v + "]", Err: fmt.Errorf("bad board size %q", v)}
		}
		rec.Size = size
	}

	var b strings.Builder
	for _, node := range nodes {
		for _, color := range []string{"B", "W"} {
			values, ok := node.Properties[color]
			if !ok || len(values) == 0 {
				continue
			}
			mv := Move{Color: color, Coord: values[0], Offset: b.Len()}
			fmt.Fprintf(&b, ";%s[%s]", mv.Color, mv.Coord)
			rec.Moves = append(rec.Moves, mv)
		}
	}
	rec.Sequence = b.String()
	return rec, nil
}

// FromTextCorrected applies dialect correction before tokenizing. When the
// corrected text still fails to parse, the error's fragment is mapped back
// to the original input where derivable.
func FromTextCorrected(original string) (*GameRecord, error) {
	corrected := CorrectDialect(original)
	rec, err := FromText(corrected)
	if err == nil {
		return rec, nil
	}
	if pe, ok := err.(*apperr.ParseError); ok && !strings.Contains(original, pe.Fragment) {
		pos := pe.Pos
		if pos > len(original) {
			pos = len(original)
		}
		start := pos - 8
		if start < 0 {
			start = 0
		}
		end := pos + 16
		if end > len(original) {
			end = len(original)
		}
		return nil, &apperr.ParseError{Fragment: original[start:end], Pos: pos, Err: pe.Err}
	}
	return nil, err
}

// RootValue returns the first value of a root property. ok is false when the
// key is absent or its value list is empty, so callers never test slice
// truthiness themselves.
func (r *GameRecord) RootValue(key string) (string, bool) {
	values, ok := r.Root[key]
	if !ok || len(values) == 0 || values[0] == "" {
		return "", false
	}
	return values[0], true
}

// RootValues returns every value of a root property (AB, AW).
func (r *GameRecord) RootValues(key string) []string {
	return r.Root[key]
}

// TextWithSequence wraps a (possibly annotated) sequence with the root node,
// comments stripped.
func (r *GameRecord) TextWithSequence(sequence string) string {
	root := sgf.Node{Properties: make(map[string][]string, len(r.Root))}
	for key, values := range r.Root {
		if key == "C" || key == "B" || key == "W" {
			continue
		}
		root.Properties[key] = values
	}
	var b strings.Builder
	b.WriteString("(;")
	sgf.WriteNode(&b, root)
	b.WriteString(sequence)
	b.WriteString(")")
	return b.String()
}

// CanonicalText is the tailless form used for requests and persistence:
// root properties (minus comments) plus the unannotated main line.
func (r *GameRecord) CanonicalText() string {
	return r.TextWithSequence(r.Sequence)
}

// IsPass reports whether a coordinate denotes a pass on the given board
// size. "tt" is the conventional pass code on boards up to 19x19 only; from
// size 20 up it is a real point and only the empty form counts.
func IsPass(coord string, size int) bool {
	if coord == "" {
		return true
	}
	return size < 20 && coord == "tt"
}

// IsPass reports whether the move is a pass on this record's board.
func (r *GameRecord) IsPass(m Move) bool {
	return IsPass(m.Coord, r.Size)
}
