package fixer

import (
	"fmt"
	"strconv"
	"strings"
)

// segment is one step of a document path: either a property name or an
// array index.
type segment struct {
	key     string
	index   int
	isIndex bool
}

// parsePath splits a dotted/bracketed locator such as
// "diagnostics[0].location.range.start.line" into ordered segments.
// The empty path addresses the document root.
func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, nil
	}

	var segments []segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		key := part
		var indices []string
		if open := strings.Index(part, "["); open >= 0 {
			key = part[:open]
			rest := part[open:]
			for rest != "" {
				if rest[0] != '[' {
					return nil, fmt.Errorf("invalid path %q: malformed index in %q", path, part)
				}
				close := strings.Index(rest, "]")
				if close < 0 {
					return nil, fmt.Errorf("invalid path %q: unterminated index in %q", path, part)
				}
				indices = append(indices, rest[1:close])
				rest = rest[close+1:]
			}
		}

		if key != "" {
			segments = append(segments, segment{key: key})
		}
		for _, raw := range indices {
			index, err := strconv.Atoi(raw)
			if err != nil || index < 0 {
				return nil, fmt.Errorf("invalid path %q: bad array index %q", path, raw)
			}
			segments = append(segments, segment{index: index, isIndex: true})
		}
	}
	return segments, nil
}

// getValueAtPath reads the value addressed by path from root.
func getValueAtPath(root interface{}, path string) (interface{}, bool) {
	segments, err := parsePath(path)
	if err != nil {
		return nil, false
	}

	current := root
	for _, seg := range segments {
		if seg.isIndex {
			arr, ok := current.([]interface{})
			if !ok || seg.index >= len(arr) {
				return nil, false
			}
			current = arr[seg.index]
			continue
		}
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[seg.key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setValueAtPath writes value at path inside root, creating intermediate
// containers on demand. Whether a missing container becomes an object or an
// array is decided by the next path segment. The possibly replaced root is
// returned; writing at the empty path replaces the document itself.
func setValueAtPath(root interface{}, path string, value interface{}) (interface{}, error) {
	segments, err := parsePath(path)
	if err != nil {
		return root, err
	}
	return setValue(root, segments, value), nil
}

func setValue(current interface{}, segments []segment, value interface{}) interface{} {
	if len(segments) == 0 {
		return value
	}

	seg := segments[0]
	if seg.isIndex {
		arr, ok := current.([]interface{})
		if !ok {
			arr = []interface{}{}
		}
		for len(arr) <= seg.index {
			arr = append(arr, nil)
		}
		arr[seg.index] = setValue(arr[seg.index], segments[1:], value)
		return arr
	}

	obj, ok := current.(map[string]interface{})
	if !ok {
		obj = map[string]interface{}{}
	}
	obj[seg.key] = setValue(obj[seg.key], segments[1:], value)
	return obj
}

// lastSegment returns the final property name of path, or "" when the path is
// empty or ends in an array index.
func lastSegment(path string) string {
	segments, err := parsePath(path)
	if err != nil || len(segments) == 0 {
		return ""
	}
	last := segments[len(segments)-1]
	if last.isIndex {
		return ""
	}
	return last.key
}

// cloneValue deep-copies a decoded JSON value so repairs never touch the
// caller's document.
func cloneValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		clone := make(map[string]interface{}, len(typed))
		for key, item := range typed {
			clone[key] = cloneValue(item)
		}
		return clone
	case []interface{}:
		clone := make([]interface{}, len(typed))
		for i, item := range typed {
			clone[i] = cloneValue(item)
		}
		return clone
	default:
		return typed
	}
}
