// Package projectcfg turns a loosely typed parameter bag into one strongly
// typed configuration record per framework. Every field has a default, so
// missing keys never fail; wrong types and values outside a closed set do.
package projectcfg

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dusk-indust/frontgen/internal/errs"
)

const (
	paramTag = "param"
	enumTag  = "oneof"
)

// Builder extracts a T from a parameter bag, starting from defaults.
// Fields are bound through `param:"key"` tags; a `oneof:"a b c"` tag closes
// a string field to the listed values.
type Builder[T any] struct {
	framework string
	defaults  func() T
}

// NewBuilder returns a Builder for the named framework. defaults is called
// once per extraction so callers never share mutable state.
func NewBuilder[T any](framework string, defaults func() T) Builder[T] {
	return Builder[T]{framework: framework, defaults: defaults}
}

// Framework returns the framework the builder was created for.
func (b Builder[T]) Framework() string { return b.framework }

// Defaults returns a fresh default configuration.
func (b Builder[T]) Defaults() T { return b.defaults() }

// Extract is the strict entry point: it returns a configuration error listing
// every bad type or out-of-set enum value.
func (b Builder[T]) Extract(params map[string]any) (T, error) {
	cfg := b.defaults()
	if problems := b.Check(params); len(problems) > 0 {
		return cfg, errs.Configuration("extract "+b.framework+" config", problems)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: paramTag,
		Result:  &cfg,
	})
	if err != nil {
		return cfg, fmt.Errorf("extract %s config: %w", b.framework, err)
	}
	if err := dec.Decode(known(params, fieldsOf[T]())); err != nil {
		return cfg, errs.New(errs.KindConfiguration, "extract "+b.framework+" config", err)
	}
	return cfg, nil
}

// Check is the lenient entry point: it reports type and enum problems as
// strings and never fails.
func (b Builder[T]) Check(params map[string]any) []string {
	var problems []string
	for _, f := range fieldsOf[T]() {
		raw, ok := params[f.key]
		if !ok || raw == nil {
			continue
		}
		raw = coerce(raw, f.typ)
		target := reflect.New(f.typ)
		if err := mapstructure.Decode(raw, target.Interface()); err != nil {
			problems = append(problems, fmt.Sprintf("%s: expected %s, got %T", f.key, describe(f.typ), raw))
			continue
		}
		if len(f.allowed) > 0 {
			v := target.Elem().String()
			if !containsString(f.allowed, v) {
				problems = append(problems, fmt.Sprintf("%s: %q is not one of %s", f.key, v, strings.Join(f.allowed, ", ")))
			}
		}
	}
	return problems
}

// Keys returns the parameter keys the builder understands, sorted.
func (b Builder[T]) Keys() []string {
	fields := fieldsOf[T]()
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.key)
	}
	sort.Strings(keys)
	return keys
}

// Allowed returns the closed value set for key, or nil for open fields.
func (b Builder[T]) Allowed(key string) []string {
	for _, f := range fieldsOf[T]() {
		if f.key == key {
			return append([]string(nil), f.allowed...)
		}
	}
	return nil
}

// Echo flattens cfg back into a parameter map keyed by param tags.
func Echo(cfg any) map[string]any {
	out := make(map[string]any)
	v := reflect.Indirect(reflect.ValueOf(cfg))
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get(paramTag)
		if key == "" || key == "-" {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.String {
			out[key] = fv.String()
			continue
		}
		out[key] = fv.Interface()
	}
	return out
}

type field struct {
	key     string
	typ     reflect.Type
	allowed []string
}

func fieldsOf[T any]() []field {
	t := reflect.TypeOf((*T)(nil)).Elem()
	fields := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		key := sf.Tag.Get(paramTag)
		if key == "" || key == "-" {
			continue
		}
		f := field{key: key, typ: sf.Type}
		if oneof := sf.Tag.Get(enumTag); oneof != "" {
			f.allowed = strings.Fields(oneof)
		}
		fields = append(fields, f)
	}
	return fields
}

// known keeps only the keys bound to a field; the parameter bag also carries
// output_path, framework, schema and other request data.
func known(params map[string]any, fields []field) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := params[f.key]; ok && v != nil {
			out[f.key] = coerce(v, f.typ)
		}
	}
	return out
}

// coerce renders numeric scalars as strings for string fields, so
// vue_version: 3 from YAML or --set reads the same as "3".
func coerce(raw any, t reflect.Type) any {
	if t.Kind() != reflect.String {
		return raw
	}
	switch v := raw.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return raw
}

func describe(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice:
		return "a list of " + strings.TrimPrefix(describe(t.Elem()), "a ") + "s"
	default:
		return t.Kind().String()
	}
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
