package analysis

import (
	"encoding/json"
	"strings"
)

// FirstJSONObject returns the first substring of s that parses as a JSON
// object, using a greedy first-'{' to last-'}' span. Models sometimes wrap
// their JSON in prose or code fences despite instructions; the greedy span
// recovers those cases. It is deliberately naive: prose containing an
// unrelated brace pair before the real object will defeat it.
//
// The second return value is false when no span exists or the span does not
// parse; that is a result, not an error.
func FirstJSONObject(s string) (map[string]any, bool) {
	if s == "" {
		return nil, false
	}
	start := strings.Index(s, "{")
	if start < 0 {
		return nil, false
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		return nil, false
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(s[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return obj, true
}
