package fulltext

import "strings"

// Excerpt returns text from the first occurrence of startKey up to the last
// occurrence of endKey. The start marker is kept and the end marker is not.
//
// An empty or missing startKey yields "". When endKey is empty, missing, or
// only occurs before the start marker, the excerpt runs to the end of text.
func Excerpt(text, startKey, endKey string) string {
	if startKey == "" {
		return ""
	}
	start := strings.Index(text, startKey)
	if start < 0 {
		return ""
	}

	if endKey == "" {
		return text[start:]
	}
	end := strings.LastIndex(text, endKey)
	if end < start {
		return text[start:]
	}
	return text[start:end]
}
