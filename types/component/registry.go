package component

import "github.com/rotisserie/eris"

// Registry assigns ids to component metadata and resolves the column
// element width of an id. Ids are handed out sequentially, starting just
// past the built-in range.
type Registry struct {
	comps  map[TypeID]Metadata
	byName map[string]Metadata
	nextID TypeID
}

func NewRegistry() *Registry {
	return &Registry{
		comps:  map[TypeID]Metadata{},
		byName: map[string]Metadata{},
		nextID: LastBuiltin,
	}
}

// Register assigns the next free id to md and records it. Registering two
// components with the same name is an error.
func (r *Registry) Register(md Metadata) error {
	if _, ok := r.byName[md.Name()]; ok {
		return eris.Errorf("component %q is already registered", md.Name())
	}
	id := r.nextID + 1
	if err := md.SetID(id); err != nil {
		return eris.Wrap(err, "failed to register component")
	}
	r.nextID = id
	r.comps[id] = md
	r.byName[md.Name()] = md
	return nil
}

// Metadata returns the metadata registered under id.
func (r *Registry) Metadata(id TypeID) (Metadata, bool) {
	md, ok := r.comps[id]
	return md, ok
}

// MetadataByName returns the metadata registered under a component name.
func (r *Registry) MetadataByName(name string) (Metadata, bool) {
	md, ok := r.byName[name]
	return md, ok
}

// SizeOf returns the column element width of id in bytes. Unknown ids and
// zero-sized components resolve to 0, which marks a tag with no column
// storage.
func (r *Registry) SizeOf(id TypeID) int {
	md, ok := r.comps[id]
	if !ok {
		return 0
	}
	return md.Size()
}
