// Package manifest builds, merges and encodes package.json manifests.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"sort"

	"github.com/dusk-indust/frontgen/internal/validation"
)

// Manifest is a decoded package.json. Unknown keys are preserved.
type Manifest map[string]any

// mergedKeys are the only keys Merge combines key-wise.
var mergedKeys = []string{"dependencies", "devDependencies", "scripts"}

// keyOrder is the conventional top-level order used by Encode. Other keys
// follow in sorted order.
var keyOrder = []string{
	"name", "private", "version", "description", "type", "main", "module",
	"scripts", "dependencies", "devDependencies", "peerDependencies",
}

// Decode parses package.json bytes.
func Decode(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode package.json: %w", err)
	}
	if m == nil {
		m = Manifest{}
	}
	return m, nil
}

// Merge returns a copy of base where dependencies, devDependencies and
// scripts are combined key-wise with additions, additions winning on
// collision. Base entries that additions do not override keep their
// original values, strings or not. Every other key comes from base
// unchanged; other keys of additions are ignored. Neither input is modified.
func Merge(base, additions Manifest) Manifest {
	out := clone(base)
	for _, key := range mergedKeys {
		add := StringMap(additions[key])
		if len(add) == 0 {
			continue
		}
		switch existing := out[key].(type) {
		case map[string]any:
			for k, v := range add {
				existing[k] = v
			}
		case map[string]string:
			maps.Copy(existing, add)
		default:
			out[key] = add
		}
	}
	return out
}

// StringMap reads a string map from either decoded JSON or a built manifest.
// Non-string values are dropped.
func StringMap(v any) map[string]string {
	switch m := v.(type) {
	case map[string]string:
		return maps.Clone(m)
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			if s, ok := val.(string); ok {
				out[k] = s
			}
		}
		return out
	}
	return nil
}

// Encode renders m as indented JSON with conventional key order and a
// trailing newline.
func Encode(m Manifest) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range orderedKeys(m) {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m[key])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// MustEncode is Encode for manifests built by this package.
func MustEncode(m Manifest) string {
	data, err := Encode(m)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Validate encodes m and checks it with the package.json validator.
func Validate(m Manifest) validation.Result {
	data, err := Encode(m)
	if err != nil {
		var r validation.Result
		r.Errorf("package.json: %v", err)
		return r
	}
	return validation.PackageJSON(data)
}

func orderedKeys(m Manifest) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range keyOrder {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func clone(m Manifest) Manifest {
	out := make(Manifest, len(m))
	for k, v := range m {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case map[string]string:
		return maps.Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}
