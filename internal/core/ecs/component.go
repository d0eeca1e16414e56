package ecs

// Component is a tagged data payload. Implementations embed Owned and are used
// through pointers so the registry and systems share one instance.
//
// Kind must not dereference its receiver; Get relies on calling it on a nil
// pointer of the payload type.
type Component interface {
	Kind() Kind
	Owner() EntityID
	ownership() *Owned
}

// Owned carries the lookup-only back-reference from a payload to the entity
// that owns it. The registry stamps it once, at registration.
type Owned struct {
	owner EntityID
}

func (o *Owned) Owner() EntityID { return o.owner }

func (o *Owned) ownership() *Owned { return o }
