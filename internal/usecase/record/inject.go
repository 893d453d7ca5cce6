package record

import "strings"

// AddProperty inserts propertyText immediately after the first unescaped ']'
// found scanning forward from max(0, offset-1). An unescaped ']' is one not
// directly preceded by '\'. When no such bracket exists the sequence comes
// back unchanged and ok is false.
//
// Splicing into the serialized text, instead of reparsing and reserializing,
// keeps every untouched node byte for byte identical.
func AddProperty(sequence, propertyText string, offset int) (out string, ok bool) {
	start := offset - 1
	if start < 0 {
		start = 0
	}
	for i := start; i < len(sequence); i++ {
		if sequence[i] != ']' {
			continue
		}
		if i > 0 && sequence[i-1] == '\\' {
			continue
		}
		return sequence[:i+1] + propertyText + sequence[i+1:], true
	}
	return sequence, false
}

// MarkGood marks the move at offset as a good move (TE[1]).
func MarkGood(sequence string, offset int) (string, bool) {
	return AddProperty(sequence, "TE[1]", offset)
}

// MarkBad marks the move at offset as a bad move (BM[1]).
func MarkBad(sequence string, offset int) (string, bool) {
	return AddProperty(sequence, "BM[1]", offset)
}

// MarkBadHotSpot marks the move at offset as a bad move and a hot spot
// (BM[1]HO[1]).
func MarkBadHotSpot(sequence string, offset int) (string, bool) {
	return AddProperty(sequence, "BM[1]HO[1]", offset)
}

// AttachComment attaches C[text] to the move at offset, escaping every ']'
// inside the text as '\]'.
func AttachComment(sequence, text string, offset int) (string, bool) {
	escaped := strings.ReplaceAll(text, "]", `\]`)
	return AddProperty(sequence, "C["+escaped+"]", offset)
}
