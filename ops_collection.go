package nest

import "fmt"

func init() {
	builtin("pluck", KindValue, opPluck)
	builtin("map", KindValue, opMap)
	builtin("filter", KindValue, opFilter)
	builtin("filterEmpty", KindValue, opFilterEmpty)
	builtin("keys", KindValue, opKeys)
	builtin("values", KindValue, opValues)
	builtin("groupBy", KindValue, opGroupBy)
	builtin("unique", KindValue, opUnique)
	builtin("flatten", KindValue, opFlatten)
	builtin("reverse", KindValue, opReverse)
	builtin("chunk", KindValue, opChunk)
	builtin("first", KindValue, opFirst)
	builtin("last", KindValue, opLast)
	builtin("sum", KindValue, opSum)

	// The path engine exposed as chainable operations
	builtin("get", KindValue, opGet)
	builtin("set", KindValue, opSet)
	builtin("remove", KindValue, opRemove)
	builtin("path", KindValue, opPath)
	builtin("has", KindValue, opHas)
	builtin("exists", KindValue, opExists)
}

// missingValue marks path misses so pluck can tell an absent key from a
// stored nil.
var missingValue any = &struct{}{}

// opPluck collects the value at a (possibly dotted) key from every
// element of a sequence, skipping elements where the key is absent.
func opPluck(value any, args ...any) (any, error) {
	key, err := stringArg("pluck", args, 0)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0)
	for _, elem := range ToArray(value) {
		v := Get(elem, key, missingValue)
		if v == missingValue {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// opMap applies a mapper to every element, preserving the container
// shape: mappings keep their keys, everything else yields a sequence.
func opMap(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, newInvalidArgumentError("map", "missing mapper argument")
	}
	mapper, err := valueMapper("map", args[0])
	if err != nil {
		return nil, err
	}
	if c, ok := value.(map[string]any); ok {
		out := make(map[string]any, len(c))
		for i, k := range sortedKeys(c) {
			v, err := mapper(c[k], i)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
	items := ToArray(value)
	out := make([]any, len(items))
	for i, elem := range items {
		v, err := mapper(elem, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// opFilter keeps the elements matching a predicate, preserving the
// container shape like opMap.
func opFilter(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, newInvalidArgumentError("filter", "missing predicate argument")
	}
	keep, err := predicate("filter", args[0])
	if err != nil {
		return nil, err
	}
	if c, ok := value.(map[string]any); ok {
		out := make(map[string]any)
		for i, k := range sortedKeys(c) {
			ok, err := keep(c[k], i)
			if err != nil {
				return nil, err
			}
			if ok {
				out[k] = c[k]
			}
		}
		return out, nil
	}
	out := make([]any, 0)
	for i, elem := range ToArray(value) {
		ok, err := keep(elem, i)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, elem)
		}
	}
	return out, nil
}

// opFilterEmpty drops empty elements: nil, zero numbers, false, empty
// strings and empty containers.
func opFilterEmpty(value any, _ ...any) (any, error) {
	if c, ok := value.(map[string]any); ok {
		out := make(map[string]any)
		for k, v := range c {
			if !isEmptyValue(v) {
				out[k] = v
			}
		}
		return out, nil
	}
	out := make([]any, 0)
	for _, elem := range ToArray(value) {
		if !isEmptyValue(elem) {
			out = append(out, elem)
		}
	}
	return out, nil
}

// opKeys lists a mapping's keys in sorted order, or a sequence's indices.
func opKeys(value any, _ ...any) (any, error) {
	switch c := value.(type) {
	case map[string]any:
		keys := sortedKeys(c)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k
		}
		return out, nil
	case []any:
		out := make([]any, len(c))
		for i := range c {
			out[i] = i
		}
		return out, nil
	}
	return []any{}, nil
}

func opValues(value any, _ ...any) (any, error) {
	return ToArray(value), nil
}

// opGroupBy partitions a sequence into a mapping keyed by the stringified
// value at key in each element.
func opGroupBy(value any, args ...any) (any, error) {
	key, err := stringArg("groupBy", args, 0)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	for _, elem := range ToArray(value) {
		v := Get(elem, key, missingValue)
		if v == missingValue {
			continue
		}
		k := fmt.Sprint(v)
		group, _ := out[k].([]any)
		out[k] = append(group, elem)
	}
	return out, nil
}

// opUnique drops duplicate elements, keeping first occurrences in order
func opUnique(value any, _ ...any) (any, error) {
	seen := make(map[string]struct{})
	out := make([]any, 0)
	for _, elem := range ToArray(value) {
		k := fmt.Sprintf("%T\x00%v", elem, elem)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, elem)
	}
	return out, nil
}

// opFlatten flattens nested sequences. An optional depth argument limits
// how many levels are collapsed; the default flattens fully.
func opFlatten(value any, args ...any) (any, error) {
	depth := -1
	if len(args) > 0 {
		var err error
		if depth, err = intArg("flatten", args, 0); err != nil {
			return nil, err
		}
	}
	return flattenInto(make([]any, 0), ToArray(value), depth), nil
}

func flattenInto(out, items []any, depth int) []any {
	for _, elem := range items {
		if nested, ok := elem.([]any); ok && depth != 0 {
			out = flattenInto(out, nested, depth-1)
			continue
		}
		out = append(out, elem)
	}
	return out
}

// opReverse returns a new sequence with the elements in reverse order
func opReverse(value any, _ ...any) (any, error) {
	items := ToArray(value)
	out := make([]any, len(items))
	for i, elem := range items {
		out[len(items)-1-i] = elem
	}
	return out, nil
}

// opChunk splits a sequence into consecutive groups of size n
func opChunk(value any, args ...any) (any, error) {
	n, err := intArg("chunk", args, 0)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, newInvalidArgumentError("chunk", fmt.Sprintf("chunk size must be positive, got %d", n))
	}
	items := ToArray(value)
	out := make([]any, 0, (len(items)+n-1)/n)
	for start := 0; start < len(items); start += n {
		end := start + n
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out, nil
}

func opFirst(value any, _ ...any) (any, error) {
	items := ToArray(value)
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func opLast(value any, _ ...any) (any, error) {
	items := ToArray(value)
	if len(items) == 0 {
		return nil, nil
	}
	return items[len(items)-1], nil
}

// opSum adds the numeric elements of a sequence, ignoring the rest. The
// result is an int when every summand was integral.
func opSum(value any, _ ...any) (any, error) {
	var sum float64
	integral := true
	for _, elem := range ToArray(value) {
		f, ok := toFloat64(elem)
		if !ok {
			continue
		}
		if f != float64(int64(f)) {
			integral = false
		}
		sum += f
	}
	if integral {
		return int(sum), nil
	}
	return sum, nil
}

func opGet(value any, args ...any) (any, error) {
	path, err := stringArg("get", args, 0)
	if err != nil {
		return nil, err
	}
	return Get(value, path, args[1:]...), nil
}

func opSet(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, newInvalidArgumentError("set", "missing path argument")
	}
	return Set(value, args[0], args[1:]...), nil
}

func opRemove(value any, args ...any) (any, error) {
	paths, err := stringArgs("remove", args)
	if err != nil {
		return nil, err
	}
	return Remove(value, paths...), nil
}

func opPath(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, newInvalidArgumentError("path", "missing path argument")
	}
	return Path(value, args[0], args[1:]...), nil
}

func opHas(value any, args ...any) (any, error) {
	paths, err := stringArgs("has", args)
	if err != nil {
		return nil, err
	}
	return Has(value, paths...), nil
}

func opExists(value any, args ...any) (any, error) {
	key, err := stringArg("exists", args, 0)
	if err != nil {
		return nil, err
	}
	return Exists(value, key), nil
}

func stringArgs(op string, args []any) ([]string, error) {
	out := make([]string, len(args))
	for i := range args {
		s, err := stringArg(op, args, i)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
