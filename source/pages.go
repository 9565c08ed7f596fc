package source

import (
	"strconv"
	"strings"
)

// PageRange extracts the starting and ending page from an OJS pages string
// such as "13-16" or "3, 7-9". Values that are not numbers become 0.
func PageRange(pages string) (start, end int) {
	pages = strings.TrimSpace(pages)
	if pages == "" {
		return 0, 0
	}

	ranges := strings.Split(pages, ",")
	first := strings.Split(ranges[0], "-")
	last := strings.Split(ranges[len(ranges)-1], "-")

	start = intval(first[0])
	end = intval(last[len(last)-1])
	return start, end
}

// intval reads the leading decimal digits of s, ignoring surrounding
// whitespace and an optional sign.
func intval(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0
	}
	return n
}
