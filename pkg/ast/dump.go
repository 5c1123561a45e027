package ast

import (
	"fmt"
	"reflect"

	"github.com/leapstack-labs/ferin/pkg/token"
)

var (
	positionType = reflect.TypeFor[token.Position]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

// Dump converts a node into plain maps and slices for JSON or YAML output.
// Each node becomes a map with a "node" key naming its type and a "pos" key
// holding its line:column. Empty fields are left out.
func Dump(n Node) any {
	if n == nil {
		return nil
	}
	return dumpValue(reflect.ValueOf(n))
}

func dumpValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		if v.Kind() == reflect.Pointer && v.Elem().Kind() == reflect.Struct {
			return dumpStruct(v)
		}
		return dumpValue(v.Elem())
	case reflect.Slice:
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			out = append(out, dumpValue(v.Index(i)))
		}
		return out
	case reflect.Struct:
		return dumpStruct(v)
	}
	if v.Type().Implements(stringerType) && v.Kind() != reflect.String {
		return v.Interface().(fmt.Stringer).String()
	}
	return v.Interface()
}

func dumpStruct(v reflect.Value) map[string]any {
	out := map[string]any{}
	if node, ok := v.Interface().(Node); ok {
		out["node"] = reflect.Indirect(v).Type().Name()
		if pos := node.Pos(); pos.IsValid() {
			out["pos"] = pos.String()
		}
	}

	s := reflect.Indirect(v)
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Type == positionType {
			continue
		}
		fv := s.Field(i)
		// enum kinds are ints whose zero value is meaningful
		if fv.IsZero() && fv.Kind() != reflect.Int {
			continue
		}
		out[field.Name] = dumpValue(fv)
	}
	return out
}
