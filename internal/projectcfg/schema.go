package projectcfg

import (
	"fmt"
	"sort"
	"strings"
)

// ProjectSchema is the caller-supplied project metadata threaded into
// human-facing text inside generated files.
type ProjectSchema struct {
	Name        string
	Description string
	Entities    []Entity
}

// Entity is a data model named by the schema.
type Entity struct {
	Name   string
	Fields []EntityField
}

// EntityField is one attribute of an Entity.
type EntityField struct {
	Name     string
	Type     string
	Optional bool
}

const defaultProjectName = "frontend-app"

// SchemaFrom reads params["schema"]. Missing metadata gets defaults.
func SchemaFrom(params map[string]any) ProjectSchema {
	raw, _ := params["schema"].(map[string]any)
	s := ProjectSchema{
		Name:        firstString(raw, "project_name", "name"),
		Description: firstString(raw, "description"),
		Entities:    ExtractEntities(raw),
	}
	if s.Name == "" {
		s.Name = firstString(params, "project_name")
	}
	if s.Name == "" {
		s.Name = defaultProjectName
	}
	if s.Description == "" {
		s.Description = fmt.Sprintf("%s frontend generated by frontgen", s.Name)
	}
	return s
}

// ExtractEntities looks for entity definitions under "entities", "models" or
// "database.entities". Each entity may be a map with name/fields or a bare
// name. Entities are returned in input order, or sorted by name when given
// as a map.
func ExtractEntities(schema map[string]any) []Entity {
	if schema == nil {
		return nil
	}
	var raw any
	for _, key := range []string{"entities", "models"} {
		if v, ok := schema[key]; ok {
			raw = v
			break
		}
	}
	if raw == nil {
		if db, ok := schema["database"].(map[string]any); ok {
			raw = db["entities"]
		}
	}

	switch v := raw.(type) {
	case []any:
		out := make([]Entity, 0, len(v))
		for _, item := range v {
			if e, ok := entityFrom(item, ""); ok {
				out = append(out, e)
			}
		}
		return out
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]Entity, 0, len(v))
		for _, name := range names {
			if e, ok := entityFrom(v[name], name); ok {
				out = append(out, e)
			}
		}
		return out
	}
	return nil
}

func entityFrom(item any, name string) (Entity, bool) {
	switch v := item.(type) {
	case string:
		return Entity{Name: v}, v != ""
	case map[string]any:
		e := Entity{Name: name}
		if n := firstString(v, "name"); n != "" {
			e.Name = n
		}
		e.Fields = fieldsFrom(v["fields"])
		return e, e.Name != ""
	}
	return Entity{}, false
}

func fieldsFrom(raw any) []EntityField {
	switch v := raw.(type) {
	case []any:
		out := make([]EntityField, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			f := EntityField{Name: firstString(m, "name"), Type: firstString(m, "type")}
			f.Optional, _ = m["optional"].(bool)
			if f.Name != "" {
				out = append(out, f)
			}
		}
		return out
	case map[string]any:
		names := make([]string, 0, len(v))
		for n := range v {
			names = append(names, n)
		}
		sort.Strings(names)
		out := make([]EntityField, 0, len(v))
		for _, n := range names {
			out = append(out, EntityField{Name: n, Type: fmt.Sprint(v[n])})
		}
		return out
	}
	return nil
}

// TSType maps a loose schema type name to a TypeScript type.
func TSType(t string) string {
	switch strings.ToLower(t) {
	case "int", "integer", "float", "double", "decimal", "number":
		return "number"
	case "bool", "boolean":
		return "boolean"
	case "date", "datetime", "timestamp":
		return "string"
	case "", "str", "string", "text", "uuid", "email":
		return "string"
	default:
		return "unknown"
	}
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
