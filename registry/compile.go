package registry

import (
	"fmt"
	"strings"

	"github.com/shyptr/graphql-validator/ast"
	"github.com/shyptr/graphql-validator/schema"
)

// Compile resolves every type reference in m and builds the Schema the
// validator consumes. Unknown type names, a missing query root, or a
// union member that is not an object are reported as errors; deeper
// semantic checks on the schema itself are not performed.
func Compile(m *Manifest) (*schema.Schema, error) {
	types := builtinScalars()

	// First pass: allocate a shell per declared type so references can
	// resolve regardless of declaration order.
	for _, decl := range m.Types {
		if _, exists := types[decl.Name]; exists {
			return nil, fmt.Errorf("registry: type %q declared twice", decl.Name)
		}
		switch decl.Kind {
		case "OBJECT":
			types[decl.Name] = &schema.Object{Name: decl.Name, Fields: make(map[string]*schema.Field)}
		case "INTERFACE":
			types[decl.Name] = &schema.Interface{Name: decl.Name, Fields: make(map[string]*schema.Field)}
		case "UNION":
			types[decl.Name] = &schema.Union{Name: decl.Name}
		case "SCALAR":
			types[decl.Name] = opaqueScalar(decl.Name)
		case "ENUM":
			values := make(map[string]struct{}, len(decl.Values))
			for _, v := range decl.Values {
				values[v] = struct{}{}
			}
			types[decl.Name] = &schema.Enum{Name: decl.Name, Values: values}
		case "INPUT_OBJECT":
			types[decl.Name] = &schema.InputObject{Name: decl.Name, Fields: make(map[string]*schema.InputValue)}
		}
	}

	// Second pass: resolve field signatures, union members, interfaces.
	for _, decl := range m.Types {
		switch t := types[decl.Name].(type) {
		case *schema.Object:
			if err := compileFields(types, decl.Fields, t.Fields); err != nil {
				return nil, fmt.Errorf("registry: type %q: %v", decl.Name, err)
			}
			for _, iface := range decl.Interfaces {
				if _, ok := types[iface].(*schema.Interface); !ok {
					return nil, fmt.Errorf("registry: type %q implements unknown interface %q", decl.Name, iface)
				}
				t.Implements(iface)
			}
		case *schema.Interface:
			if err := compileFields(types, decl.Fields, t.Fields); err != nil {
				return nil, fmt.Errorf("registry: type %q: %v", decl.Name, err)
			}
		case *schema.Union:
			for _, member := range decl.Members {
				obj, ok := types[member].(*schema.Object)
				if !ok {
					return nil, fmt.Errorf("registry: union %q member %q is not an object type", decl.Name, member)
				}
				t.Types = append(t.Types, obj)
			}
		case *schema.InputObject:
			for _, f := range decl.InputFields {
				ft, err := resolveTypeRef(types, f.Type)
				if err != nil {
					return nil, fmt.Errorf("registry: input %q field %q: %v", decl.Name, f.Name, err)
				}
				t.Fields[f.Name] = &schema.InputValue{Type: ft}
			}
		}
	}

	directives := make(map[string]*schema.Directive, len(m.Directives)+2)
	for _, d := range builtinDirectives(types["Boolean"]) {
		directives[d.Name] = d
	}
	for _, decl := range m.Directives {
		args, err := compileArguments(types, decl.Arguments)
		if err != nil {
			return nil, fmt.Errorf("registry: directive %q: %v", decl.Name, err)
		}
		directives[decl.Name] = &schema.Directive{Name: decl.Name, Arguments: args}
	}

	query, ok := types[m.Query].(*schema.Object)
	if !ok {
		return nil, fmt.Errorf("registry: query root %q is not a declared object type", m.Query)
	}
	return schema.New(query, types, directives), nil
}

func compileFields(types map[string]schema.NamedType, decls []FieldDecl, into map[string]*schema.Field) error {
	for _, f := range decls {
		ft, err := resolveTypeRef(types, f.Type)
		if err != nil {
			return fmt.Errorf("field %q: %v", f.Name, err)
		}
		args, err := compileArguments(types, f.Arguments)
		if err != nil {
			return fmt.Errorf("field %q: %v", f.Name, err)
		}
		into[f.Name] = &schema.Field{Type: ft, Arguments: args}
	}
	return nil
}

func compileArguments(types map[string]schema.NamedType, decls []ArgumentDecl) (map[string]*schema.InputValue, error) {
	args := make(map[string]*schema.InputValue, len(decls))
	for _, a := range decls {
		at, err := resolveTypeRef(types, a.Type)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %v", a.Name, err)
		}
		args[a.Name] = &schema.InputValue{Type: at}
	}
	return args, nil
}

// resolveTypeRef parses type-reference syntax ("Int", "Int!", "[User!]")
// against the named-type table.
func resolveTypeRef(types map[string]schema.NamedType, ref string) (schema.Type, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasSuffix(ref, "!") {
		inner, err := resolveTypeRef(types, ref[:len(ref)-1])
		if err != nil {
			return nil, err
		}
		return &schema.NonNull{OfType: inner}, nil
	}
	if strings.HasPrefix(ref, "[") {
		if !strings.HasSuffix(ref, "]") {
			return nil, fmt.Errorf("malformed type reference %q", ref)
		}
		inner, err := resolveTypeRef(types, ref[1:len(ref)-1])
		if err != nil {
			return nil, err
		}
		return &schema.List{OfType: inner}, nil
	}
	t, ok := types[ref]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", ref)
	}
	return t, nil
}

func builtinScalars() map[string]schema.NamedType {
	return map[string]schema.NamedType{
		"Int": &schema.Scalar{Name: "Int", ParseLiteral: func(v ast.Value) (interface{}, bool) {
			iv, ok := v.(*ast.IntValue)
			if !ok {
				return nil, false
			}
			return iv.Value, true
		}},
		"Float": &schema.Scalar{Name: "Float", ParseLiteral: func(v ast.Value) (interface{}, bool) {
			switch v := v.(type) {
			case *ast.IntValue:
				return v.Value, true
			case *ast.FloatValue:
				return v.Value, true
			}
			return nil, false
		}},
		"String": &schema.Scalar{Name: "String", ParseLiteral: func(v ast.Value) (interface{}, bool) {
			sv, ok := v.(*ast.StringValue)
			if !ok {
				return nil, false
			}
			return sv.Value, true
		}},
		"Boolean": &schema.Scalar{Name: "Boolean", ParseLiteral: func(v ast.Value) (interface{}, bool) {
			bv, ok := v.(*ast.BooleanValue)
			if !ok {
				return nil, false
			}
			return bv.Value, true
		}},
		"ID": &schema.Scalar{Name: "ID", ParseLiteral: func(v ast.Value) (interface{}, bool) {
			switch v := v.(type) {
			case *ast.IntValue:
				return v.Value, true
			case *ast.StringValue:
				return v.Value, true
			}
			return nil, false
		}},
	}
}

// opaqueScalar accepts any primitive literal. A manifest cannot carry
// coercion code, so a declared custom scalar only constrains the value
// to be a leaf literal.
func opaqueScalar(name string) *schema.Scalar {
	return &schema.Scalar{Name: name, ParseLiteral: func(v ast.Value) (interface{}, bool) {
		switch v := v.(type) {
		case *ast.IntValue:
			return v.Value, true
		case *ast.FloatValue:
			return v.Value, true
		case *ast.StringValue:
			return v.Value, true
		case *ast.BooleanValue:
			return v.Value, true
		}
		return nil, false
	}}
}

func builtinDirectives(boolean schema.Type) []*schema.Directive {
	boolArg := func() map[string]*schema.InputValue {
		return map[string]*schema.InputValue{
			"if": {Type: &schema.NonNull{OfType: boolean}},
		}
	}
	return []*schema.Directive{
		{Name: "skip", Arguments: boolArg()},
		{Name: "include", Arguments: boolArg()},
	}
}
