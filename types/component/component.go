package component

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"pkg.world.dev/tablestore/codec"
)

// TypeID identifies a registered component type. Ordering of ids is
// numeric and is what table types are sorted by.
type TypeID int

// Built-in ids occupy the low range of the id space so that a table type
// containing any of them can be classified without scanning metadata.
const (
	Prefab      TypeID = 3
	LastBuiltin TypeID = 8
)

type (
	// Component is the interface a user defined component struct implements
	// to become storable.
	Component interface {
		// Name returns the name of the component.
		Name() string
	}

	// Metadata wraps a user defined Component struct and provides the
	// functionality the storage engine needs from it.
	Metadata interface {
		// SetID sets the TypeID of this component. It must only be set once.
		SetID(TypeID) error
		// ID returns the TypeID of the component.
		ID() TypeID
		// Size returns the fixed width in bytes of one column element of
		// this component. Zero means the component is a tag and has no
		// column storage.
		Size() int
		// New returns the marshaled bytes of the default value for the
		// component struct.
		New() ([]byte, error)
		Encode(any) ([]byte, error)
		Decode([]byte) (any, error)
		GetSchema() []byte

		Component
	}
)

// NewMetadata creates the metadata for a component type.
func NewMetadata[T Component](opts ...Option[T]) Metadata {
	var t T
	m := newMetadata(t, t.Name(), nil)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type metadata[T Component] struct {
	isIDSet    bool
	id         TypeID
	typ        reflect.Type
	name       string
	schema     []byte
	defaultVal interface{}
}

func newMetadata[T Component](s T, name string, defaultVal interface{}) *metadata[T] {
	schema, err := SerializeSchema(s)
	if err != nil {
		panic(eris.ToString(err, true))
	}
	m := &metadata[T]{
		typ:        reflect.TypeOf(s),
		name:       name,
		schema:     schema,
		defaultVal: defaultVal,
	}
	if defaultVal != nil {
		m.validateDefaultVal()
	}
	return m
}

// SetID sets this component's id. It must be unique across the engine.
func (c *metadata[T]) SetID(id TypeID) error {
	if c.isIDSet {
		// Components are only initialized once per engine. In tests it is
		// often useful to reuse the same component across engines, which is
		// allowed as long as the id doesn't change.
		if id == c.id {
			return nil
		}
		return eris.Errorf("id for component %v is already set to %v, cannot change to %v", c, c.id, id)
	}
	c.id = id
	c.isIDSet = true
	return nil
}

// String returns the component type name.
func (c *metadata[T]) String() string {
	return c.name
}

// Name returns the component type name.
func (c *metadata[T]) Name() string {
	return c.name
}

// ID returns the component type id.
func (c *metadata[T]) ID() TypeID {
	return c.id
}

// Size returns the in-memory width of the component struct. A zero-sized
// struct is a tag.
func (c *metadata[T]) Size() int {
	return int(c.typ.Size())
}

func (c *metadata[T]) New() ([]byte, error) {
	var comp T
	var ok bool
	if c.defaultVal != nil {
		comp, ok = c.defaultVal.(T)
		if !ok {
			return nil, eris.Errorf("could not convert %T to %T", c.defaultVal, new(T))
		}
	}
	return codec.Encode(comp)
}

func (c *metadata[T]) Encode(v any) ([]byte, error) {
	return codec.Encode(v)
}

func (c *metadata[T]) Decode(bz []byte) (any, error) {
	return codec.Decode[T](bz)
}

func (c *metadata[T]) GetSchema() []byte {
	return c.schema
}

func (c *metadata[T]) validateDefaultVal() {
	if !reflect.TypeOf(c.defaultVal).AssignableTo(c.typ) {
		errString := fmt.Sprintf("default value is not assignable to component type: %s", c.name)
		panic(errString)
	}
}

// SerializeSchema returns the JSON schema of a component struct.
func SerializeSchema(component Component) ([]byte, error) {
	componentSchema := jsonschema.Reflect(component)
	schema, err := componentSchema.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return schema, nil
}

// IsSchemaValid reports whether two serialized schemas describe the same
// component shape.
func IsSchemaValid(jsonSchemaBytes1 []byte, jsonSchemaBytes2 []byte) (bool, error) {
	patch, err := jsondiff.CompareJSON(jsonSchemaBytes1, jsonSchemaBytes2)
	if err != nil {
		return false, eris.Wrap(err, "")
	}
	return patch.String() == "", nil
}
