package nest

import (
	"strings"

	"github.com/cybergodev/nest/internal"
)

// Path engine: fail-soft access into nested containers via dotted paths.
// Absence and type mismatches never produce errors; reads degrade to a
// default value, checks to false, and writes/removals to a no-op.

// Exists reports whether key is a direct member of container, without
// path traversal. Non-container values are wrapped first, so a scalar
// behaves as a one-element sequence and nil as an empty one.
func Exists(container any, key string) bool {
	_, ok := member(wrapContainer(container), key)
	return ok
}

// Has reports whether every given path resolves to an existing value.
// Each path is checked as a literal key first and falls back to dotted
// traversal when it contains the delimiter. An absent container or an
// empty path list yields false.
func Has(container any, paths ...string) bool {
	if container == nil || len(paths) == 0 {
		return false
	}
	for _, path := range paths {
		if !hasPath(container, path) {
			return false
		}
	}
	return true
}

func hasPath(container any, path string) bool {
	if Exists(container, path) {
		return true
	}
	if !strings.Contains(path, DefaultDelimiter) {
		return false
	}
	node := container
	for _, seg := range internal.SplitPath(path, DefaultDelimiter) {
		v, ok := member(node, seg)
		if !ok {
			return false
		}
		node = v
	}
	return true
}

// Get returns the value at path inside container, or the default when any
// segment along the way is missing or the traversal hits a non-container.
// An empty path returns the container itself. A default that is a
// func() any is evaluated lazily, only on a miss.
func Get(container any, path string, defaultValue ...any) any {
	if path == "" {
		return container
	}
	node := container
	for _, seg := range internal.SplitPath(path, DefaultDelimiter) {
		v, ok := member(node, seg)
		if !ok {
			return defaultOf(defaultValue)
		}
		node = v
	}
	return node
}

// Set writes value at path inside container and returns the (possibly
// replaced) container. Missing intermediate segments are created as
// mappings; a scalar in the way of a deeper write is discarded and
// replaced by a fresh mapping (last write wins). A nil or empty path
// replaces the container with value entirely. Batch mode: when path is a
// map[string]any and value is omitted, every key/value pair of that map
// is set individually, one level, non-recursively.
func Set(container any, path any, value ...any) any {
	switch p := path.(type) {
	case nil:
		if len(value) == 0 {
			return container
		}
		return value[0]
	case map[string]any:
		if len(value) > 0 {
			// A mapping used as a literal single path is not supported;
			// batch mode only applies when value is omitted.
			return container
		}
		for _, k := range sortedKeys(p) {
			container = Set(container, k, p[k])
		}
		return container
	case string:
		if p == "" {
			if len(value) == 0 {
				return container
			}
			return value[0]
		}
		var v any
		if len(value) > 0 {
			v = value[0]
		}
		return setSegments(container, internal.SplitPath(p, DefaultDelimiter), v)
	case []string:
		var v any
		if len(value) > 0 {
			v = value[0]
		}
		if len(p) == 0 {
			if len(value) == 0 {
				return container
			}
			return v
		}
		return setSegments(container, p, v)
	}
	return container
}

func setSegments(node any, segs []string, value any) any {
	if len(segs) == 0 {
		return value
	}
	seg := segs[0]
	switch c := node.(type) {
	case map[string]any:
		c[seg] = setSegments(c[seg], segs[1:], value)
		return c
	case []any:
		if idx, ok := internal.ParseIndex(seg); ok {
			i := internal.NormalizeIndex(idx, len(c))
			if i >= 0 {
				for len(c) <= i {
					c = append(c, nil)
				}
				c[i] = setSegments(c[i], segs[1:], value)
				return c
			}
		}
	}
	// Scalar, nil, or an unaddressable sequence segment in the way:
	// replace with a fresh mapping rooted at this segment.
	return map[string]any{seg: setSegments(nil, segs[1:], value)}
}

// Remove deletes one or more paths from container and returns the
// container. Each path is tried as a literal direct key first; otherwise
// it is split on the delimiter and walked down, aborting (moving on to
// the next path) as soon as an intermediate segment is missing or not a
// container. Only the final segment is deleted: intermediate containers
// left empty by the removal are retained, not pruned.
func Remove(container any, paths ...string) any {
	for _, path := range paths {
		container = removePath(container, path)
	}
	return container
}

func removePath(container any, path string) any {
	if out, ok := removeMember(container, path); ok {
		return out
	}
	if !strings.Contains(path, DefaultDelimiter) {
		return container
	}
	return removeSegments(container, internal.SplitPath(path, DefaultDelimiter))
}

func removeSegments(node any, segs []string) any {
	if len(segs) == 0 {
		return node
	}
	if len(segs) == 1 {
		out, _ := removeMember(node, segs[0])
		return out
	}
	seg := segs[0]
	switch c := node.(type) {
	case map[string]any:
		child, ok := c[seg]
		if !ok || !isContainer(child) {
			return c
		}
		c[seg] = removeSegments(child, segs[1:])
		return c
	case []any:
		if idx, ok := internal.ParseIndex(seg); ok {
			i := internal.NormalizeIndex(idx, len(c))
			if i >= 0 && i < len(c) && isContainer(c[i]) {
				c[i] = removeSegments(c[i], segs[1:])
			}
		}
		return c
	}
	return node
}

// Path resolves a dotted path or pre-split []string against container
// like Get, additionally expanding the wildcard segment "*" into every
// element of the current container and collecting non-empty results into
// a fresh sequence. A literal key that is directly present wins over path
// splitting. Numeric-looking segments address sequences by index.
func Path(container any, path any, defaultValue ...any) any {
	return PathSep(container, path, defaultOf(defaultValue), DefaultDelimiter)
}

// PathSep is Path with an explicit segment delimiter.
func PathSep(container any, path any, defaultValue any, delimiter string) any {
	var segs []string
	switch p := path.(type) {
	case nil:
		return container
	case []string:
		segs = p
	case string:
		if p == "" {
			return container
		}
		// Direct-hit shortcut: a literal key wins over splitting.
		if v, ok := member(container, p); ok {
			return v
		}
		segs = internal.SplitPath(p, delimiter)
	default:
		return defaultValue
	}
	if len(segs) == 0 {
		return container
	}
	v, ok := resolveSegments(container, segs)
	if !ok {
		return defaultValue
	}
	return v
}

func resolveSegments(node any, segs []string) (any, bool) {
	if len(segs) == 0 {
		return node, true
	}
	seg := segs[0]
	if seg == Wildcard {
		if !isContainer(node) {
			return nil, false
		}
		out := make([]any, 0)
		for _, elem := range elements(node) {
			v, ok := resolveSegments(elem, segs[1:])
			if ok && !isEmptyValue(v) {
				out = append(out, v)
			}
		}
		return out, true
	}
	v, ok := member(node, seg)
	if !ok {
		return nil, false
	}
	return resolveSegments(v, segs[1:])
}

// member reads a direct member of node: a mapping key, or a sequence
// index when the segment is numeric (negative indices count from the end).
func member(node any, seg string) (any, bool) {
	switch c := node.(type) {
	case map[string]any:
		v, ok := c[seg]
		return v, ok
	case []any:
		if idx, ok := internal.ParseIndex(seg); ok {
			return internal.SafeElement(c, idx)
		}
	}
	return nil, false
}

// removeMember deletes a direct member of node, reporting whether a
// deletion happened. Mapping members are deleted in place; sequence
// members are spliced out, producing a new slice.
func removeMember(node any, seg string) (any, bool) {
	switch c := node.(type) {
	case map[string]any:
		if _, ok := c[seg]; ok {
			delete(c, seg)
			return c, true
		}
	case []any:
		if idx, ok := internal.ParseIndex(seg); ok {
			i := internal.NormalizeIndex(idx, len(c))
			if i >= 0 && i < len(c) {
				out := make([]any, 0, len(c)-1)
				out = append(out, c[:i]...)
				out = append(out, c[i+1:]...)
				return out, true
			}
		}
	}
	return node, false
}

// elements lists the members of a container for wildcard expansion,
// mapping values in sorted-key order for determinism.
func elements(node any) []any {
	switch c := node.(type) {
	case []any:
		return c
	case map[string]any:
		out := make([]any, 0, len(c))
		for _, k := range sortedKeys(c) {
			out = append(out, c[k])
		}
		return out
	}
	return nil
}

// defaultOf picks the optional default, evaluating a func() any lazily
func defaultOf(defaultValue []any) any {
	if len(defaultValue) == 0 {
		return nil
	}
	if fn, ok := defaultValue[0].(func() any); ok {
		return fn()
	}
	return defaultValue[0]
}
