package schema

// Resolver is the capability set the validator consumes: a query root,
// type/directive lookup by name, and interface-implementor resolution.
// *Schema is the canonical implementation; wrappers may layer caching
// or instrumentation over one.
type Resolver interface {
	Query() Type
	GetType(name string) (NamedType, bool)
	GetDirective(name string) (*Directive, bool)
	GetImplementors(interfaceName string) []*Object
}

var _ Resolver = (*Schema)(nil)

// Schema is a Resolver backed by plain maps. It is built once
// (typically by registry) and treated as immutable, shared read-only
// for the duration of every validation walk.
type Schema struct {
	QueryType  Type
	Types      map[string]NamedType
	Directives map[string]*Directive

	implementors map[string][]*Object
}

// New builds a Schema from its type and directive maps, precomputing
// the interface -> implementors index GetImplementors serves from.
func New(query Type, types map[string]NamedType, directives map[string]*Directive) *Schema {
	s := &Schema{QueryType: query, Types: types, Directives: directives}
	s.implementors = make(map[string][]*Object)
	for _, t := range types {
		obj, ok := t.(*Object)
		if !ok {
			continue
		}
		for _, iface := range obj.interfaceNames {
			s.implementors[iface] = append(s.implementors[iface], obj)
		}
	}
	return s
}

// Query returns the root Object type operations are validated against.
func (s *Schema) Query() Type { return s.QueryType }

// GetType resolves a type by name, or reports absence.
func (s *Schema) GetType(name string) (NamedType, bool) {
	t, ok := s.Types[name]
	return t, ok
}

// GetDirective resolves a directive by name, or reports absence.
func (s *Schema) GetDirective(name string) (*Directive, bool) {
	d, ok := s.Directives[name]
	return d, ok
}

// GetImplementors returns the Object types declaring the named
// interface. An unknown interface name yields an empty set, never an
// error — callers (fragmentSpreadIsPossible) treat "no implementors"
// and "not an interface" identically.
func (s *Schema) GetImplementors(interfaceName string) []*Object {
	return s.implementors[interfaceName]
}
