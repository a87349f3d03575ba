// Package registry loads a schema manifest — the type names, field
// signatures and directives a deployment validates queries against —
// from YAML on disk or from a blob bucket, and compiles it into a
// *schema.Schema.
package registry

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// Manifest is the serialized description of a schema. Field and
// argument types use type-reference syntax: "Int", "Int!", "[User!]".
type Manifest struct {
	Query      string          `yaml:"query" validate:"required"`
	Types      []TypeDecl      `yaml:"types" validate:"required,dive"`
	Directives []DirectiveDecl `yaml:"directives" validate:"dive"`
}

// TypeDecl declares one named type. Which of the remaining fields are
// meaningful depends on Kind.
type TypeDecl struct {
	Name string `yaml:"name" validate:"required"`
	Kind string `yaml:"kind" validate:"required,oneof=OBJECT INTERFACE UNION SCALAR ENUM INPUT_OBJECT"`

	// OBJECT and INTERFACE
	Fields []FieldDecl `yaml:"fields,omitempty" validate:"dive"`

	// OBJECT only
	Interfaces []string `yaml:"interfaces,omitempty"`

	// UNION only
	Members []string `yaml:"members,omitempty"`

	// ENUM only
	Values []string `yaml:"values,omitempty"`

	// INPUT_OBJECT only
	InputFields []ArgumentDecl `yaml:"inputFields,omitempty" validate:"dive"`
}

// FieldDecl declares one output field.
type FieldDecl struct {
	Name      string         `yaml:"name" validate:"required"`
	Type      string         `yaml:"type" validate:"required"`
	Arguments []ArgumentDecl `yaml:"arguments,omitempty" validate:"dive"`
}

// ArgumentDecl declares one argument or input-object field.
type ArgumentDecl struct {
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type" validate:"required"`
}

// DirectiveDecl declares one directive.
type DirectiveDecl struct {
	Name      string         `yaml:"name" validate:"required"`
	Arguments []ArgumentDecl `yaml:"arguments,omitempty" validate:"dive"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func newValidate() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ParseManifest unmarshals and shape-checks a YAML manifest. It does
// not resolve type references; Compile does that.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if err := newValidate().Struct(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
