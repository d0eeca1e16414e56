package ecs

import "fmt"

// Kind tags a component payload variant. The set is closed; an entity carries
// at most one payload per kind.
type Kind uint8

const (
	KindGraphic Kind = iota
	KindAnimationCycle
	KindText
	KindVelocity
	KindHorizontalOrientation
	KindAudio
	KindLifetime

	kindCount
)

var kindNames = [kindCount]string{
	KindGraphic:               "graphic",
	KindAnimationCycle:        "animation_cycle",
	KindText:                  "text",
	KindVelocity:              "velocity",
	KindHorizontalOrientation: "horizontal_orientation",
	KindAudio:                 "audio",
	KindLifetime:              "lifetime",
}

func (k Kind) Valid() bool { return k < kindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind maps the snake_case name used in data files back to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown component kind %q", ErrCompositionMismatch, s)
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}
