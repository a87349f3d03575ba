package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/graphql-validator/ast"
	"github.com/shyptr/graphql-validator/registry"
	"github.com/shyptr/graphql-validator/schema"
	"github.com/shyptr/graphql-validator/validation"
)

const testManifest = `
query: Query
types:
  - name: Query
    kind: OBJECT
    fields:
      - {name: dog, type: Dog}
      - {name: cat, type: Cat}
      - {name: pet, type: Pet}
      - {name: catOrDog, type: CatOrDog}
      - {name: human, type: Human}
      - {name: alien, type: Alien}
      - {name: id, type: ID}
      - {name: a, type: Int}
      - {name: b, type: Int}
      - name: pick
        type: Int
        arguments:
          - {name: x, type: "Int!"}
      - name: complex
        type: String
        arguments:
          - {name: input, type: ComplexInput}
      - name: ints
        type: Int
        arguments:
          - {name: values, type: "[Int]"}
  - name: Being
    kind: INTERFACE
    fields:
      - {name: name, type: String}
  - name: Pet
    kind: INTERFACE
    fields:
      - {name: name, type: String}
      - {name: barkVolume, type: String}
  - name: Dog
    kind: OBJECT
    interfaces: [Being, Pet]
    fields:
      - name: name
        type: String
        arguments:
          - {name: surname, type: Boolean}
      - {name: nickname, type: String}
      - {name: barkVolume, type: Int}
      - name: doesKnowCommand
        type: Boolean
        arguments:
          - {name: dogCommand, type: "DogCommand!"}
      - name: isAtLocation
        type: Boolean
        arguments:
          - {name: x, type: Int}
          - {name: y, type: Int}
  - name: Cat
    kind: OBJECT
    interfaces: [Being, Pet]
    fields:
      - {name: name, type: String}
      - {name: meows, type: Boolean}
  - name: Human
    kind: OBJECT
    interfaces: [Being]
    fields:
      - {name: name, type: String}
      - {name: pets, type: "[Pet]"}
  - name: Alien
    kind: OBJECT
    fields:
      - {name: name, type: String}
  - name: CatOrDog
    kind: UNION
    members: [Cat, Dog]
  - name: DogCommand
    kind: ENUM
    values: [SIT, HEEL, DOWN]
  - name: ComplexInput
    kind: INPUT_OBJECT
    inputFields:
      - {name: requiredField, type: "Boolean!"}
      - {name: intField, type: Int}
directives:
  - {name: log}
`

var testSchema *schema.Schema

func init() {
	m, err := registry.ParseManifest([]byte(testManifest))
	if err != nil {
		panic(err)
	}
	testSchema, err = registry.Compile(m)
	if err != nil {
		panic(err)
	}
}

func name(v string) *ast.Name { return &ast.Name{Value: v} }

func field(n string, sels ...ast.Selection) *ast.Field {
	f := &ast.Field{Name: name(n)}
	if len(sels) > 0 {
		f.SelectionSet = &ast.SelectionSet{Selections: sels}
	}
	return f
}

func aliased(alias string, f *ast.Field) *ast.Field {
	f.Alias = name(alias)
	return f
}

func withArgs(f *ast.Field, args ...*ast.Argument) *ast.Field {
	f.Arguments = args
	return f
}

func withDirectives(f *ast.Field, directives ...*ast.Directive) *ast.Field {
	f.Directives = directives
	return f
}

func arg(n string, v ast.Value) *ast.Argument { return &ast.Argument{Name: name(n), Value: v} }

func directive(n string) *ast.Directive { return &ast.Directive{Name: name(n)} }

func intVal(s string) ast.Value  { return &ast.IntValue{Value: s} }
func strVal(s string) ast.Value  { return &ast.StringValue{Value: s} }
func boolVal(b bool) ast.Value   { return &ast.BooleanValue{Value: b} }
func enumVal(s string) ast.Value { return &ast.EnumValue{Value: s} }

func listVal(vs ...ast.Value) ast.Value { return &ast.ListValue{Values: vs} }

func objVal(fields ...*ast.ObjectField) ast.Value { return &ast.ObjectValue{Fields: fields} }

func objField(n string, v ast.Value) *ast.ObjectField {
	return &ast.ObjectField{Name: name(n), Value: v}
}

func query(n string, sels ...ast.Selection) *ast.OperationDefinition {
	op := &ast.OperationDefinition{
		Operation:    ast.Query,
		SelectionSet: &ast.SelectionSet{Selections: sels},
	}
	if n != "" {
		op.Name = name(n)
	}
	return op
}

func fragment(n, cond string, sels ...ast.Selection) *ast.FragmentDefinition {
	return &ast.FragmentDefinition{
		Name:          name(n),
		TypeCondition: &ast.NamedType{Name: name(cond)},
		SelectionSet:  &ast.SelectionSet{Selections: sels},
	}
}

func inline(cond string, sels ...ast.Selection) *ast.InlineFragment {
	f := &ast.InlineFragment{SelectionSet: &ast.SelectionSet{Selections: sels}}
	if cond != "" {
		f.TypeCondition = &ast.NamedType{Name: name(cond)}
	}
	return f
}

func spread(n string) *ast.FragmentSpread { return &ast.FragmentSpread{Name: name(n)} }

func document(defs ...ast.Definition) *ast.Document {
	return &ast.Document{Definitions: defs}
}

func TestValidate(t *testing.T) {
	t.Run("validates a well-formed query", func(t *testing.T) {
		doc := document(query("",
			field("catOrDog",
				inline("Cat", field("meows")),
				inline("Dog", field("nickname")),
			),
		))
		assert.Nil(t, validation.Validate(testSchema, doc))
	})

	t.Run("empty document validates", func(t *testing.T) {
		assert.Nil(t, validation.Validate(testSchema, document()))
	})

	t.Run("is pure", func(t *testing.T) {
		doc := document(query("", field("dog")))
		first := validation.Validate(testSchema, doc)
		second := validation.Validate(testSchema, doc)
		require.NotNil(t, first)
		assert.Empty(t, cmp.Diff(first, second))
	})
}

func TestOperationRules(t *testing.T) {
	t.Run("rejects duplicate operation names", func(t *testing.T) {
		doc := document(
			query("Q", field("a")),
			query("Q", field("b")),
		)
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "uniqueOperationNames", err.Rule)
		assert.Equal(t, `There can be only one operation named "Q".`, err.Message)
	})

	t.Run("rejects anonymous operation after a named one", func(t *testing.T) {
		doc := document(
			query("Q", field("a")),
			query("", field("b")),
		)
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "loneAnonymousOperation", err.Rule)
	})

	t.Run("rejects named operation after an anonymous one", func(t *testing.T) {
		doc := document(
			query("", field("a")),
			query("Q", field("b")),
		)
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "loneAnonymousOperation", err.Rule)
		assert.Equal(t, "This anonymous operation must be the only defined operation.", err.Message)
	})

	t.Run("a single anonymous operation validates", func(t *testing.T) {
		assert.Nil(t, validation.Validate(testSchema, document(query("", field("a")))))
	})

	t.Run("rejects an unknown directive on an operation", func(t *testing.T) {
		op := query("Q", field("a"))
		op.Directives = []*ast.Directive{directive("nope")}
		err := validation.Validate(testSchema, document(op))
		require.NotNil(t, err)
		assert.Equal(t, "directivesAreDefined", err.Rule)
		assert.Equal(t, `Unknown directive "nope".`, err.Message)
	})

	t.Run("accepts declared and builtin directives", func(t *testing.T) {
		doc := document(query("",
			withDirectives(field("a"), directive("log")),
			withDirectives(field("b"), directive("skip")),
		))
		assert.Nil(t, validation.Validate(testSchema, doc))
	})
}

func TestFieldRules(t *testing.T) {
	t.Run("rejects a field not defined on the parent type", func(t *testing.T) {
		doc := document(query("", field("dog", field("paws"))))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "fieldsDefinedOnType", err.Rule)
		assert.Equal(t, `Cannot query field "paws" on type "Dog".`, err.Message)
	})

	t.Run("rejects a subselection on a scalar field", func(t *testing.T) {
		doc := document(query("", field("id", field("x"))))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "scalarFieldsAreLeaves", err.Rule)
		assert.Equal(t, "Scalar values cannot have subselections", err.Message)
	})

	t.Run("rejects a composite field without a subselection", func(t *testing.T) {
		doc := document(query("", field("dog")))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "compositeFieldsAreNotLeaves", err.Rule)
		assert.Equal(t, "Composite types must have subselections", err.Message)
	})

	t.Run("rejects an unknown argument", func(t *testing.T) {
		doc := document(query("", field("dog",
			withArgs(field("name"), arg("fullName", boolVal(true))),
		)))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "argumentsDefinedOnType", err.Rule)
		assert.Equal(t, `Unknown argument "fullName" on field "name".`, err.Message)
	})

	t.Run("rejects duplicate argument names", func(t *testing.T) {
		doc := document(query("", field("dog",
			withArgs(field("isAtLocation"), arg("x", intVal("1")), arg("x", intVal("2"))),
		)))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "uniqueArgumentNames", err.Rule)
		assert.Equal(t, `There can be only one argument named "x".`, err.Message)
	})

	t.Run("rejects a missing required argument", func(t *testing.T) {
		doc := document(query("", field("pick")))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "requiredArgumentsPresent", err.Rule)
		assert.Equal(t, `Required argument "x" was not supplied.`, err.Message)
	})

	t.Run("argument order does not change the verdict", func(t *testing.T) {
		xy := document(query("", field("dog",
			withArgs(field("isAtLocation"), arg("x", intVal("1")), arg("y", intVal("2"))),
		)))
		yx := document(query("", field("dog",
			withArgs(field("isAtLocation"), arg("y", intVal("2")), arg("x", intVal("1"))),
		)))
		assert.Nil(t, validation.Validate(testSchema, xy))
		assert.Nil(t, validation.Validate(testSchema, yx))
	})
}

func TestArgumentValues(t *testing.T) {
	t.Run("accepts a valid scalar literal", func(t *testing.T) {
		doc := document(query("", withArgs(field("pick"), arg("x", intVal("3")))))
		assert.Nil(t, validation.Validate(testSchema, doc))
	})

	t.Run("rejects a scalar literal of the wrong kind", func(t *testing.T) {
		doc := document(query("", withArgs(field("pick"), arg("x", strVal("three")))))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "argumentsOfCorrectType", err.Rule)
		assert.Equal(t, `Argument "x" has invalid value.`, err.Message)
	})

	t.Run("rejects null for a non-null argument", func(t *testing.T) {
		doc := document(query("", withArgs(field("pick"), arg("x", &ast.NullValue{}))))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "argumentsOfCorrectType", err.Rule)
	})

	t.Run("checks enum literals against the value set", func(t *testing.T) {
		ok := document(query("", field("dog",
			withArgs(field("doesKnowCommand"), arg("dogCommand", enumVal("SIT"))),
		)))
		assert.Nil(t, validation.Validate(testSchema, ok))

		bad := document(query("", field("dog",
			withArgs(field("doesKnowCommand"), arg("dogCommand", enumVal("ROLL"))),
		)))
		err := validation.Validate(testSchema, bad)
		require.NotNil(t, err)
		assert.Equal(t, "argumentsOfCorrectType", err.Rule)

		quoted := document(query("", field("dog",
			withArgs(field("doesKnowCommand"), arg("dogCommand", strVal("SIT"))),
		)))
		err = validation.Validate(testSchema, quoted)
		require.NotNil(t, err)
		assert.Equal(t, "argumentsOfCorrectType", err.Rule)
	})

	t.Run("checks list literals element-wise", func(t *testing.T) {
		ok := document(query("", withArgs(field("ints"), arg("values", listVal(intVal("1"), intVal("2"))))))
		assert.Nil(t, validation.Validate(testSchema, ok))

		scalarInsteadOfList := document(query("", withArgs(field("ints"), arg("values", intVal("1")))))
		err := validation.Validate(testSchema, scalarInsteadOfList)
		require.NotNil(t, err)
		assert.Equal(t, "argumentsOfCorrectType", err.Rule)

		badElement := document(query("", withArgs(field("ints"), arg("values", listVal(intVal("1"), strVal("x"))))))
		err = validation.Validate(testSchema, badElement)
		require.NotNil(t, err)
		assert.Equal(t, "argumentsOfCorrectType", err.Rule)
	})

	t.Run("checks input object fields against the declared type", func(t *testing.T) {
		ok := document(query("", withArgs(field("complex"),
			arg("input", objVal(objField("requiredField", boolVal(true)), objField("intField", intVal("4")))),
		)))
		assert.Nil(t, validation.Validate(testSchema, ok))

		unknownField := document(query("", withArgs(field("complex"),
			arg("input", objVal(objField("nope", boolVal(true)))),
		)))
		err := validation.Validate(testSchema, unknownField)
		require.NotNil(t, err)
		assert.Equal(t, "argumentsOfCorrectType", err.Rule)
	})

	t.Run("rejects duplicate input object fields", func(t *testing.T) {
		doc := document(query("", withArgs(field("complex"),
			arg("input", objVal(
				objField("requiredField", boolVal(true)),
				objField("intField", intVal("1")),
				objField("intField", intVal("2")),
			)),
		)))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "uniqueInputObjectFields", err.Rule)
		assert.Equal(t, `There can be only one input field named "intField".`, err.Message)
	})

	t.Run("accepts variables wherever a literal is expected", func(t *testing.T) {
		doc := document(query("", withArgs(field("pick"),
			arg("x", &ast.Variable{Name: name("xVar")}),
		)))
		assert.Nil(t, validation.Validate(testSchema, doc))
	})
}

func TestFragmentRules(t *testing.T) {
	t.Run("rejects duplicate fragment names", func(t *testing.T) {
		doc := document(
			query("", field("dog", spread("F"))),
			fragment("F", "Dog", field("nickname")),
			fragment("F", "Dog", field("barkVolume")),
		)
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "uniqueFragmentNames", err.Rule)
		assert.Equal(t, `There can be only one fragment named "F".`, err.Message)
	})

	t.Run("rejects an unused fragment", func(t *testing.T) {
		doc := document(
			query("", field("a")),
			fragment("F", "Dog", field("nickname")),
		)
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "noUnusedFragments", err.Rule)
		assert.Equal(t, `Fragment "F" was not used.`, err.Message)
	})

	t.Run("rejects a spread of an unknown fragment", func(t *testing.T) {
		doc := document(query("", field("dog", spread("Missing"))))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "fragmentSpreadTargetDefined", err.Rule)
		assert.Equal(t, `Unknown fragment "Missing".`, err.Message)
	})

	t.Run("rejects a fragment on an unknown type", func(t *testing.T) {
		doc := document(
			query("", field("dog", spread("F"))),
			fragment("F", "Wolf", field("nickname")),
		)
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "fragmentHasValidType", err.Rule)
		assert.Equal(t, `Unknown type "Wolf".`, err.Message)
	})

	t.Run("rejects a fragment on a non-composite type", func(t *testing.T) {
		doc := document(query("", field("dog", inline("Int", field("nickname")))))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "fragmentHasValidType", err.Rule)
		assert.Equal(t, `Fragment cannot condition on non composite type "Int".`, err.Message)
	})

	t.Run("rejects a self-spreading fragment", func(t *testing.T) {
		doc := document(
			query("", field("dog", spread("F"))),
			fragment("F", "Dog", spread("F")),
		)
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "fragmentDefinitionHasNoCycles", err.Rule)
		assert.Equal(t, `Cannot spread fragment "F" within itself.`, err.Message)
	})

	t.Run("rejects a transitive fragment cycle", func(t *testing.T) {
		doc := document(
			query("", field("dog", spread("A"))),
			fragment("A", "Dog", spread("B")),
			fragment("B", "Dog", inline("Dog", spread("A"))),
		)
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "fragmentDefinitionHasNoCycles", err.Rule)
		assert.Equal(t, `Cannot spread fragment "A" within itself.`, err.Message)
	})

	t.Run("rejects an impossible inline fragment", func(t *testing.T) {
		doc := document(query("", field("dog", inline("Cat", field("meows")))))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "fragmentSpreadIsPossible", err.Rule)
		assert.Equal(t, `Fragment cannot be spread here as objects of type "Dog" can never be of type "Cat".`, err.Message)
	})

	t.Run("rejects an impossible named spread", func(t *testing.T) {
		doc := document(
			query("", field("dog", spread("CatFields"))),
			fragment("CatFields", "Cat", field("meows")),
		)
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "fragmentSpreadIsPossible", err.Rule)
		assert.Equal(t, `Fragment "CatFields" cannot be spread here as objects of type "Dog" can never be of type "Cat".`, err.Message)
	})

	t.Run("allows a spread through a shared interface", func(t *testing.T) {
		doc := document(query("", field("pet", inline("Dog", field("nickname")), field("name"))))
		assert.Nil(t, validation.Validate(testSchema, doc))
	})

	t.Run("allows a spread into a union member", func(t *testing.T) {
		doc := document(query("", field("catOrDog", inline("Cat", field("meows")))))
		assert.Nil(t, validation.Validate(testSchema, doc))
	})

	t.Run("allows an inline fragment without a type condition", func(t *testing.T) {
		doc := document(query("", field("dog", inline("", field("nickname")))))
		assert.Nil(t, validation.Validate(testSchema, doc))
	})
}

func TestUnambiguousSelections(t *testing.T) {
	t.Run("rejects two different fields under one output key", func(t *testing.T) {
		doc := document(query("",
			aliased("x", field("a")),
			aliased("x", field("b")),
		))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "unambiguousSelections", err.Rule)
		assert.Equal(t, `Fields "x" conflict because a and b are different fields: Type name mismatch.`, err.Message)
	})

	t.Run("rejects conflicting return types through an inline fragment", func(t *testing.T) {
		doc := document(query("", field("pet",
			field("barkVolume"),
			inline("Dog", field("barkVolume")),
		)))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "unambiguousSelections", err.Rule)
		assert.Equal(t, `Fields "barkVolume" conflict because they return conflicting types String and Int: Return type mismatch.`, err.Message)
	})

	t.Run("rejects differing arguments under one output key", func(t *testing.T) {
		doc := document(query("", field("dog",
			withArgs(field("name"), arg("surname", boolVal(true))),
			withArgs(field("name"), arg("surname", boolVal(false))),
		)))
		err := validation.Validate(testSchema, doc)
		require.NotNil(t, err)
		assert.Equal(t, "unambiguousSelections", err.Rule)
		assert.Equal(t, `Fields "name" conflict because they have differing arguments: Argument mismatch.`, err.Message)
	})

	t.Run("allows identical arguments in a different order", func(t *testing.T) {
		doc := document(query("", field("dog",
			withArgs(field("isAtLocation"), arg("x", intVal("1")), arg("y", intVal("2"))),
			withArgs(field("isAtLocation"), arg("y", intVal("2")), arg("x", intVal("1"))),
		)))
		assert.Nil(t, validation.Validate(testSchema, doc))
	})

	t.Run("allows different fields under one output key on disjoint object types", func(t *testing.T) {
		doc := document(query("", field("catOrDog",
			inline("Cat", aliased("sound", field("meows"))),
			inline("Dog", aliased("sound", field("barkVolume"))),
		)))
		assert.Nil(t, validation.Validate(testSchema, doc))
	})

	t.Run("allows a field merged with itself through a fragment", func(t *testing.T) {
		doc := document(
			query("", field("dog", field("nickname"), spread("DogName"))),
			fragment("DogName", "Dog", field("nickname")),
		)
		assert.Nil(t, validation.Validate(testSchema, doc))
	})
}

// Adding an unused fragment definition to a previously valid document
// must flip the verdict.
func TestUnusedFragmentFlipsVerdict(t *testing.T) {
	valid := document(query("", field("a")))
	assert.Nil(t, validation.Validate(testSchema, valid))

	withUnused := document(query("", field("a")), fragment("F", "Dog", field("nickname")))
	err := validation.Validate(testSchema, withUnused)
	require.NotNil(t, err)
	assert.Equal(t, "noUnusedFragments", err.Rule)
}
