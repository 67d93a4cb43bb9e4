package util

import "strings"

// CloneSlice clones slice with cloneSize.
// This function will use src length as the clone size if cloneSize is 0.
func CloneSlice[T any](src []T, cloneSize int) []T {
	if cloneSize == 0 {
		cloneSize = len(src)
	}
	clone := make([]T, cloneSize)
	copy(clone, src)

	return clone
}

// CenterPad centers s within width columns using spaces.
//
// When the padding cannot be split evenly the extra space goes to the right, so
// CenterPad("12", 7) returns "  12   ". Strings at least width long are returned unchanged.
func CenterPad(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2

	var sb strings.Builder
	sb.Grow(width)
	sb.WriteString(strings.Repeat(" ", left))
	sb.WriteString(s)
	sb.WriteString(strings.Repeat(" ", pad-left))

	return sb.String()
}

// SplitTrim splits s around each instance of sep and trims surrounding white space from every part.
func SplitTrim(s string, sep string) []string {
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	return parts
}
