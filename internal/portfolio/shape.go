package portfolio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	tagNull  = "!!null"
	tagStr   = "!!str"
	tagInt   = "!!int"
	tagBool  = "!!bool"
	tagFloat = "!!float"
)

// shapeError is the first node whose YAML kind or scalar tag does not fit
// the Go field it decodes into.
type shapeError struct {
	path string
	msg  string
}

func (e *shapeError) Error() string { return e.path + ": " + e.msg }

// checkShape walks n alongside t and rejects nodes yaml.v3 would either
// coerce silently (an int or bool into a string field) or refuse without a
// field path (a sequence into a string field). Null nodes are accepted
// everywhere; required-ness is the validator's job. Mapping keys with no
// matching field are ignored, as the decoder ignores them.
func checkShape(n *yaml.Node, t reflect.Type, path string) *shapeError {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return checkShape(n.Content[0], t, path)
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return checkShape(n.Alias, t, path)
	}
	if n.Kind == yaml.ScalarNode && n.Tag == tagNull {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return wantScalar(n, path, "a string", tagStr)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return wantScalar(n, path, "an integer", tagInt)
	case reflect.Bool:
		return wantScalar(n, path, "a boolean", tagBool)
	case reflect.Float32, reflect.Float64:
		return wantScalar(n, path, "a number", tagInt, tagFloat)
	case reflect.Slice:
		if n.Kind != yaml.SequenceNode {
			return mismatch(n, path, "a list")
		}
		for i, item := range n.Content {
			if err := checkShape(item, t.Elem(), path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	case reflect.Map:
		if n.Kind != yaml.MappingNode {
			return mismatch(n, path, "a mapping")
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if err := checkShape(key, t.Key(), path); err != nil {
				err.msg = "key " + err.msg
				return err
			}
			if err := checkShape(val, t.Elem(), join(path, key.Value)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		if n.Kind != yaml.MappingNode {
			return mismatch(n, path, "a mapping")
		}
		fields := yamlFields(t)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			ft, ok := fields[key.Value]
			if !ok {
				continue
			}
			if err := checkShape(val, ft, join(path, key.Value)); err != nil {
				return err
			}
		}
	}
	return nil
}

func wantScalar(n *yaml.Node, path, what string, tags ...string) *shapeError {
	if n.Kind != yaml.ScalarNode {
		return mismatch(n, path, what)
	}
	for _, tag := range tags {
		if n.Tag == tag {
			return nil
		}
	}
	return &shapeError{path: path, msg: fmt.Sprintf("must be %s, got %s %q", what, n.Tag, n.Value)}
}

func mismatch(n *yaml.Node, path, what string) *shapeError {
	return &shapeError{path: path, msg: fmt.Sprintf("must be %s, got %s", what, kindName(n))}
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.MappingNode:
		return "a mapping"
	default:
		return n.Tag + " " + strconv.Quote(n.Value)
	}
}

// yamlFields indexes the decodable fields of struct type t by YAML key.
func yamlFields(t reflect.Type) map[string]reflect.Type {
	out := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = strings.ToLower(f.Name)
		}
		out[name] = f.Type
	}
	return out
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
