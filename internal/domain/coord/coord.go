// Package coord converts board points between the three notations the
// pipeline deals with:
//
//   - RAW: two lowercase letters from the record text, column then row,
//     both counted from the top-left ("dp").
//   - COMPACT: board notation with the column letter skipping 'I' and a
//     1-based row counted from the top, same order as RAW ("D16").
//   - DISPLAY: COMPACT with the row renumbered from the bottom of a board
//     of the given size, the way diagrams print it.
package coord

import (
	"fmt"
	"strconv"

	apperr "sgf_review/internal/errors"
)

// MaxSize is the largest board edge the letter domain can express.
const MaxSize = 25

// ToCompact converts a RAW coordinate to COMPACT form.
func ToCompact(raw string) (string, error) {
	col, row, err := splitRaw(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%c%d", compactLetter(col), row+1), nil
}

// ToDisplay converts a RAW coordinate to DISPLAY form on a board of the
// given size. The row is renumbered bottom-to-top: size + 1 - rawRow.
func ToDisplay(raw string, size int) (string, error) {
	if size < 1 || size > MaxSize {
		return "", &apperr.RangeError{Input: strconv.Itoa(size), Msg: "unsupported board size"}
	}
	col, row, err := splitRaw(raw)
	if err != nil {
		return "", err
	}
	if col >= size || row >= size {
		return "", &apperr.RangeError{Input: raw, Msg: fmt.Sprintf("point outside %dx%d board", size, size)}
	}
	return fmt.Sprintf("%c%d", compactLetter(col), size-row), nil
}

// FromCompact converts a COMPACT coordinate back to RAW form. It is the
// exact inverse of ToCompact over the supported domain.
func FromCompact(compact string) (string, error) {
	col, row, err := splitCompact(compact)
	if err != nil {
		return "", err
	}
	return string([]byte{'a' + byte(col), 'a' + byte(row)}), nil
}

// FromDisplay converts a DISPLAY coordinate back to RAW form, the exact
// inverse of ToDisplay for the same board size.
func FromDisplay(display string, size int) (string, error) {
	if size < 1 || size > MaxSize {
		return "", &apperr.RangeError{Input: strconv.Itoa(size), Msg: "unsupported board size"}
	}
	col, row, err := splitCompact(display)
	if err != nil {
		return "", err
	}
	rawRow := size - 1 - row
	if col >= size || rawRow < 0 {
		return "", &apperr.RangeError{Input: display, Msg: fmt.Sprintf("point outside %dx%d board", size, size)}
	}
	return string([]byte{'a' + byte(col), 'a' + byte(rawRow)}), nil
}

// splitRaw validates a RAW pair and returns 0-based column and row indices.
func splitRaw(raw string) (col, row int, err error) {
	if len(raw) != 2 {
		return 0, 0, &apperr.RangeError{Input: raw, Msg: "raw coordinate must be two letters"}
	}
	col = int(raw[0] - 'a')
	row = int(raw[1] - 'a')
	if col < 0 || col >= MaxSize || row < 0 || row >= MaxSize {
		return 0, 0, &apperr.RangeError{Input: raw, Msg: "letter outside 'a'..'y'"}
	}
	return col, row, nil
}

// splitCompact validates a COMPACT/DISPLAY pair and returns 0-based column
// and row indices (row as written, i.e. still 1-based minus one).
func splitCompact(compact string) (col, row int, err error) {
	if len(compact) < 2 {
		return 0, 0, &apperr.RangeError{Input: compact, Msg: "compact coordinate too short"}
	}
	letter := compact[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return 0, 0, &apperr.RangeError{Input: compact, Msg: "column must be a letter"}
	}
	if letter == 'I' {
		return 0, 0, &apperr.RangeError{Input: compact, Msg: "column letter 'I' is reserved"}
	}
	col = int(letter - 'A')
	if letter > 'I' {
		col--
	}
	if col >= MaxSize {
		return 0, 0, &apperr.RangeError{Input: compact, Msg: "column beyond supported board"}
	}
	n, convErr := strconv.Atoi(compact[1:])
	if convErr != nil {
		return 0, 0, &apperr.RangeError{Input: compact, Msg: "row is not a number"}
	}
	if n < 1 || n > MaxSize {
		return 0, 0, &apperr.RangeError{Input: compact, Msg: "row beyond supported board"}
	}
	return col, n - 1, nil
}

// compactLetter maps a 0-based column index to its board letter, skipping 'I'.
func compactLetter(col int) byte {
	letter := byte('A' + col)
	if letter >= 'I' {
		letter++
	}
	return letter
}
