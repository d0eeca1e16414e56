package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/aliens/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// ArchetypeEntry names an ordered kind signature.
type ArchetypeEntry struct {
	Name  string   `yaml:"name"`
	Kinds []string `yaml:"kinds"`

	signature []ecs.Kind
}

// Signature returns the parsed kinds in declaration order.
func (e *ArchetypeEntry) Signature() []ecs.Kind {
	return e.signature
}

// ArchetypeTable is the catalog of archetypes the game declares at start-up.
type ArchetypeTable struct {
	entries []*ArchetypeEntry
	byName  map[string]*ArchetypeEntry
}

// LoadArchetypeTable loads archetypes.yaml.
func LoadArchetypeTable(path string) (*ArchetypeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetype list: %w", err)
	}
	var file struct {
		Archetypes []ArchetypeEntry `yaml:"archetypes"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse archetype list: %w", err)
	}
	t := &ArchetypeTable{byName: make(map[string]*ArchetypeEntry, len(file.Archetypes))}
	for i := range file.Archetypes {
		e := &file.Archetypes[i]
		if e.Name == "" {
			return nil, fmt.Errorf("archetype #%d: missing name", i)
		}
		if _, dup := t.byName[e.Name]; dup {
			return nil, fmt.Errorf("archetype %q: declared twice", e.Name)
		}
		for _, name := range e.Kinds {
			k, err := ecs.ParseKind(name)
			if err != nil {
				return nil, fmt.Errorf("archetype %q: %w", e.Name, err)
			}
			e.signature = append(e.signature, k)
		}
		t.entries = append(t.entries, e)
		t.byName[e.Name] = e
	}
	return t, nil
}

// Get returns the archetype with the given name, or nil if none.
func (t *ArchetypeTable) Get(name string) *ArchetypeEntry {
	return t.byName[name]
}

// Count returns the total number of archetypes loaded.
func (t *ArchetypeTable) Count() int {
	return len(t.entries)
}

// Declare adds every archetype to reg in file order and returns their ids by
// name. The registry rejects malformed signatures.
func (t *ArchetypeTable) Declare(reg *ecs.Registry) (map[string]ecs.ArchetypeID, error) {
	ids := make(map[string]ecs.ArchetypeID, len(t.entries))
	for _, e := range t.entries {
		id, err := reg.AddArchetype(e.signature...)
		if err != nil {
			return nil, fmt.Errorf("declare archetype %q: %w", e.Name, err)
		}
		ids[e.Name] = id
	}
	return ids, nil
}
