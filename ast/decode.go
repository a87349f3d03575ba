package ast

import (
	"encoding/json"
	"fmt"

	"github.com/shyptr/graphql-validator/errors"
)

// DecodeDocument reads a document from the JSON tree an upstream parser
// emits: every node carries a "kind" discriminator, names carry
// "value", locations are optional {"line","column"} records. Unknown
// kinds in definition, selection or value position are rejected;
// unknown attributes are ignored.
func DecodeDocument(data []byte) (*Document, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: decode document: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	doc, ok := node.(*Document)
	if !ok {
		return nil, fmt.Errorf("ast: root node is %q, want document", node.Kind())
	}
	return doc, nil
}

func decodeNode(raw interface{}) (Node, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("ast: node is not an object")
	}
	kind, _ := obj["kind"].(string)
	switch kind {
	case "document":
		doc := &Document{Loc: decodeLoc(obj)}
		for _, rawDef := range list(obj, "definitions") {
			node, err := decodeNode(rawDef)
			if err != nil {
				return nil, err
			}
			def, ok := node.(Definition)
			if !ok {
				return nil, fmt.Errorf("ast: %q cannot appear at document top level", node.Kind())
			}
			doc.Definitions = append(doc.Definitions, def)
		}
		return doc, nil

	case "operation":
		op := &OperationDefinition{
			Operation: OperationType(str(obj, "operation")),
			Name:      decodeName(obj["name"]),
			Loc:       decodeLoc(obj),
		}
		if op.Operation == "" {
			op.Operation = Query
		}
		var err error
		if op.Directives, err = decodeDirectives(obj); err != nil {
			return nil, err
		}
		if op.SelectionSet, err = decodeSelectionSet(obj["selectionSet"]); err != nil {
			return nil, err
		}
		return op, nil

	case "fragmentDefinition":
		frag := &FragmentDefinition{
			Name: decodeName(obj["name"]),
			Loc:  decodeLoc(obj),
		}
		if frag.Name == nil {
			return nil, fmt.Errorf("ast: fragment definition has no name")
		}
		var err error
		if frag.TypeCondition, err = decodeTypeCondition(obj["typeCondition"]); err != nil {
			return nil, err
		}
		if frag.Directives, err = decodeDirectives(obj); err != nil {
			return nil, err
		}
		if frag.SelectionSet, err = decodeSelectionSet(obj["selectionSet"]); err != nil {
			return nil, err
		}
		return frag, nil

	case "field":
		f := &Field{
			Alias: decodeName(obj["alias"]),
			Name:  decodeName(obj["name"]),
			Loc:   decodeLoc(obj),
		}
		if f.Name == nil {
			return nil, fmt.Errorf("ast: field has no name")
		}
		for _, rawArg := range list(obj, "arguments") {
			arg, err := decodeArgument(rawArg)
			if err != nil {
				return nil, err
			}
			f.Arguments = append(f.Arguments, arg)
		}
		var err error
		if f.Directives, err = decodeDirectives(obj); err != nil {
			return nil, err
		}
		if f.SelectionSet, err = decodeSelectionSet(obj["selectionSet"]); err != nil {
			return nil, err
		}
		return f, nil

	case "inlineFragment":
		f := &InlineFragment{Loc: decodeLoc(obj)}
		var err error
		if f.TypeCondition, err = decodeTypeCondition(obj["typeCondition"]); err != nil {
			return nil, err
		}
		if f.Directives, err = decodeDirectives(obj); err != nil {
			return nil, err
		}
		if f.SelectionSet, err = decodeSelectionSet(obj["selectionSet"]); err != nil {
			return nil, err
		}
		return f, nil

	case "fragmentSpread":
		spread := &FragmentSpread{
			Name: decodeName(obj["name"]),
			Loc:  decodeLoc(obj),
		}
		if spread.Name == nil {
			return nil, fmt.Errorf("ast: fragment spread has no name")
		}
		var err error
		if spread.Directives, err = decodeDirectives(obj); err != nil {
			return nil, err
		}
		return spread, nil

	default:
		return nil, fmt.Errorf("ast: unknown node kind %q", kind)
	}
}

func decodeSelectionSet(raw interface{}) (*SelectionSet, error) {
	if raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("ast: selection set is not an object")
	}
	ss := &SelectionSet{Loc: decodeLoc(obj)}
	for _, rawSel := range list(obj, "selections") {
		node, err := decodeNode(rawSel)
		if err != nil {
			return nil, err
		}
		sel, ok := node.(Selection)
		if !ok {
			return nil, fmt.Errorf("ast: %q cannot appear in a selection set", node.Kind())
		}
		ss.Selections = append(ss.Selections, sel)
	}
	return ss, nil
}

func decodeArgument(raw interface{}) (*Argument, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("ast: argument is not an object")
	}
	arg := &Argument{
		Name: decodeName(obj["name"]),
		Loc:  decodeLoc(obj),
	}
	if arg.Name == nil {
		return nil, fmt.Errorf("ast: argument has no name")
	}
	value, err := decodeValue(obj["value"])
	if err != nil {
		return nil, err
	}
	arg.Value = value
	return arg, nil
}

func decodeDirectives(obj map[string]interface{}) ([]*Directive, error) {
	var directives []*Directive
	for _, raw := range list(obj, "directives") {
		dirObj, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("ast: directive is not an object")
		}
		d := &Directive{
			Name: decodeName(dirObj["name"]),
			Loc:  decodeLoc(dirObj),
		}
		if d.Name == nil {
			return nil, fmt.Errorf("ast: directive has no name")
		}
		for _, rawArg := range list(dirObj, "arguments") {
			arg, err := decodeArgument(rawArg)
			if err != nil {
				return nil, err
			}
			d.Arguments = append(d.Arguments, arg)
		}
		directives = append(directives, d)
	}
	return directives, nil
}

func decodeValue(raw interface{}) (Value, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("ast: value is not an object")
	}
	kind, _ := obj["kind"].(string)
	loc := decodeLoc(obj)
	switch kind {
	case "variable":
		name := decodeName(obj["name"])
		if name == nil {
			return nil, fmt.Errorf("ast: variable has no name")
		}
		return &Variable{Name: name, Loc: loc}, nil
	case "int":
		return &IntValue{Value: str(obj, "value"), Loc: loc}, nil
	case "float":
		return &FloatValue{Value: str(obj, "value"), Loc: loc}, nil
	case "string":
		return &StringValue{Value: str(obj, "value"), Loc: loc}, nil
	case "boolean":
		b, _ := obj["value"].(bool)
		return &BooleanValue{Value: b, Loc: loc}, nil
	case "null":
		return &NullValue{Loc: loc}, nil
	case "enum":
		return &EnumValue{Value: str(obj, "value"), Loc: loc}, nil
	case "list":
		lv := &ListValue{Loc: loc}
		for _, rawEl := range list(obj, "values") {
			el, err := decodeValue(rawEl)
			if err != nil {
				return nil, err
			}
			lv.Values = append(lv.Values, el)
		}
		return lv, nil
	case "inputObject":
		ov := &ObjectValue{Loc: loc}
		for _, rawField := range list(obj, "values") {
			fieldObj, ok := rawField.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("ast: input object field is not an object")
			}
			name := decodeName(fieldObj["name"])
			if name == nil {
				return nil, fmt.Errorf("ast: input object field has no name")
			}
			value, err := decodeValue(fieldObj["value"])
			if err != nil {
				return nil, err
			}
			ov.Fields = append(ov.Fields, &ObjectField{Name: name, Value: value, Loc: decodeLoc(fieldObj)})
		}
		return ov, nil
	default:
		return nil, fmt.Errorf("ast: unknown value kind %q", kind)
	}
}

func decodeTypeCondition(raw interface{}) (*NamedType, error) {
	if raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("ast: type condition is not an object")
	}
	name := decodeName(obj["name"])
	if name == nil {
		// A bare {"value": "User"} name record is accepted too.
		name = decodeName(raw)
	}
	if name == nil {
		return nil, fmt.Errorf("ast: type condition has no name")
	}
	return &NamedType{Name: name, Loc: decodeLoc(obj)}, nil
}

func decodeName(raw interface{}) *Name {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	value, ok := obj["value"].(string)
	if !ok {
		return nil
	}
	return &Name{Value: value, Loc: decodeLoc(obj)}
}

func decodeLoc(obj map[string]interface{}) errors.Location {
	raw, ok := obj["loc"].(map[string]interface{})
	if !ok {
		return errors.Location{}
	}
	line, _ := raw["line"].(float64)
	column, _ := raw["column"].(float64)
	return errors.Location{Line: int(line), Column: int(column)}
}

func list(obj map[string]interface{}, key string) []interface{} {
	raw, _ := obj[key].([]interface{})
	return raw
}

func str(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return s
}
