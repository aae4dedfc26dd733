package nest

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/url"
	"os"
	"sort"
	"strconv"
	"unicode/utf8"

	"dario.cat/mergo"
	"github.com/davecgh/go-spew/spew"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

func init() {
	builtin("size", KindValue, opSize)
	builtin("count", KindValue, opSize)
	builtin("sample", KindValue, opSample)
	builtin("shuffle", KindMutate, opShuffle)
	builtin("sort", KindMutate, opSort)
	builtin("toQuery", KindValue, opToQuery)
	builtin("toArray", KindValue, opToArray)
	builtin("toObject", KindValue, opToObject)
	builtin("toJson", KindValue, opToJSON)
	builtin("toYaml", KindValue, opToYAML)
	builtin("merge", KindValue, opMerge)
	builtin("diff", KindValue, opDiff)
	builtin("patch", KindValue, opPatch)
	builtin("dump", KindValue, opDump)
}

// opSize counts members: container length, string rune count, 0 for nil
// and 1 for any other scalar.
func opSize(value any, _ ...any) (any, error) {
	switch c := value.(type) {
	case nil:
		return 0, nil
	case []any:
		return len(c), nil
	case map[string]any:
		return len(c), nil
	case string:
		return utf8.RuneCountInString(c), nil
	}
	return 1, nil
}

// opSample picks n distinct random elements (default 1). Requesting more
// samples than elements is an argument-contract violation.
func opSample(value any, args ...any) (any, error) {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = intArg("sample", args, 0); err != nil {
			return nil, err
		}
	}
	items := ToArray(value)
	if n < 0 || n > len(items) {
		return nil, newInvalidArgumentError("sample",
			fmt.Sprintf("cannot sample %d of %d elements", n, len(items)))
	}
	out := make([]any, 0, n)
	for _, i := range rand.Perm(len(items))[:n] {
		out = append(out, items[i])
	}
	return out, nil
}

// opShuffle permutes a sequence in place
func opShuffle(value any, _ ...any) (any, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, newInvalidArgumentError("shuffle", fmt.Sprintf("value must be a sequence, got %T", value))
	}
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return value, nil
}

// opSort sorts every sequence in the tree in place, recursing through
// mappings and nested sequences first.
func opSort(value any, _ ...any) (any, error) {
	sortRecursive(value)
	return value, nil
}

func sortRecursive(node any) {
	switch c := node.(type) {
	case []any:
		for _, elem := range c {
			sortRecursive(elem)
		}
		sort.SliceStable(c, func(i, j int) bool {
			return lessValue(c[i], c[j])
		})
	case map[string]any:
		for _, v := range c {
			sortRecursive(v)
		}
	}
}

// lessValue orders numbers numerically and everything else by its string
// form, so mixed sequences still get a stable total order.
func lessValue(a, b any) bool {
	fa, aok := toFloat64(a)
	fb, bok := toFloat64(b)
	if aok && bok {
		return fa < fb
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

// opToQuery builds an URL query string from a container, bracketing
// nested keys the usual way: a[b][0]=v.
func opToQuery(value any, _ ...any) (any, error) {
	vals := url.Values{}
	switch c := value.(type) {
	case map[string]any:
		for _, k := range sortedKeys(c) {
			buildQuery(vals, k, c[k])
		}
	case []any:
		for i, elem := range c {
			buildQuery(vals, strconv.Itoa(i), elem)
		}
	default:
		return "", nil
	}
	return vals.Encode(), nil
}

func buildQuery(vals url.Values, prefix string, value any) {
	switch c := value.(type) {
	case map[string]any:
		for _, k := range sortedKeys(c) {
			buildQuery(vals, prefix+"["+k+"]", c[k])
		}
	case []any:
		for i, elem := range c {
			buildQuery(vals, prefix+"["+strconv.Itoa(i)+"]", elem)
		}
	case nil:
		vals.Add(prefix, "")
	default:
		vals.Add(prefix, fmt.Sprint(c))
	}
}

func opToArray(value any, _ ...any) (any, error) {
	return ToArray(value), nil
}

func opToObject(value any, _ ...any) (any, error) {
	return ToObject(value), nil
}

func opToJSON(value any, _ ...any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, newInvalidArgumentError("toJson", err.Error())
	}
	return string(data), nil
}

func opToYAML(value any, _ ...any) (any, error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return nil, newInvalidArgumentError("toYaml", err.Error())
	}
	return string(data), nil
}

// opMerge deep-merges one or more mappings into the running value, later
// arguments overriding earlier ones.
func opMerge(value any, args ...any) (any, error) {
	dst, ok := value.(map[string]any)
	if !ok {
		return nil, newInvalidArgumentError("merge", fmt.Sprintf("value must be a mapping, got %T", value))
	}
	for _, arg := range args {
		if err := mergo.Merge(&dst, ToObject(arg), mergo.WithOverride); err != nil {
			return nil, newInvalidArgumentError("merge", err.Error())
		}
	}
	return dst, nil
}

// opDiff produces the JSON merge patch that turns the running value into
// the argument.
func opDiff(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, newInvalidArgumentError("diff", "missing comparison value")
	}
	original, err := json.Marshal(value)
	if err != nil {
		return nil, newInvalidArgumentError("diff", err.Error())
	}
	modified, err := json.Marshal(args[0])
	if err != nil {
		return nil, newInvalidArgumentError("diff", err.Error())
	}
	patch, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, newInvalidArgumentError("diff", err.Error())
	}
	var out any
	if err := json.Unmarshal(patch, &out); err != nil {
		return nil, newInvalidArgumentError("diff", err.Error())
	}
	return out, nil
}

// opPatch applies a JSON merge patch to the running value
func opPatch(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, newInvalidArgumentError("patch", "missing patch value")
	}
	doc, err := json.Marshal(value)
	if err != nil {
		return nil, newInvalidArgumentError("patch", err.Error())
	}
	patch, err := json.Marshal(args[0])
	if err != nil {
		return nil, newInvalidArgumentError("patch", err.Error())
	}
	patched, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, newInvalidArgumentError("patch", err.Error())
	}
	var out any
	if err := json.Unmarshal(patched, &out); err != nil {
		return nil, newInvalidArgumentError("patch", err.Error())
	}
	return out, nil
}

// opDump writes a spew dump of the running value and passes it through
// unchanged. An optional io.Writer argument redirects the dump away from
// stderr.
func opDump(value any, args ...any) (any, error) {
	w := io.Writer(os.Stderr)
	if len(args) > 0 {
		if aw, ok := args[0].(io.Writer); ok {
			w = aw
		}
	}
	spew.Fdump(w, value)
	return value, nil
}
