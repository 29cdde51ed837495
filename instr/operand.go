package instr

import (
	"fmt"
	"strconv"
	"strings"
)

// Fields splits an operand on sep without trimming the parts.
func Fields(operand, sep string) []string {
	return strings.Split(operand, sep)
}

// FieldFromEnd returns the n-th field counted from the end (1 is the last
// one). When there are fewer than n fields the first field is returned.
func FieldFromEnd(fields []string, n int) string {
	if len(fields) == 0 {
		return ""
	}

	if n > len(fields) || n < 1 {
		return fields[0]
	}

	return fields[len(fields)-n]
}

// LastField returns the text after the last occurrence of sep, or the whole
// operand when sep does not occur.
func LastField(operand, sep string) string {
	return FieldFromEnd(Fields(operand, sep), 1)
}

// FirstToken returns the first space separated token of the operand, after
// stripping surrounding spaces.
func FirstToken(operand string) string {
	return strings.Split(strings.Trim(operand, " "), " ")[0]
}

// TrailingInt parses the integer after the last occurrence of sep, as in
// `Unk=2`.
func TrailingInt(operand, sep string) (int, error) {
	text := strings.TrimSpace(LastField(operand, sep))

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q in operand %q: %w", text, operand, err)
	}

	return n, nil
}

// BracketedInt parses a count written as `[N]`.
func BracketedInt(operand string) (int, error) {
	text := strings.TrimSpace(operand)
	if len(text) < 2 {
		return 0, fmt.Errorf("invalid bracketed count %q", operand)
	}

	n, err := strconv.Atoi(text[1 : len(text)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid bracketed count %q: %w", operand, err)
	}

	return n, nil
}
