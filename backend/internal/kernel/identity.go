// Package kernel implements the ruleset-agnostic rule orchestration core:
// command dispatch, rule chain scheduling, the shared game context, the
// seeded RNG, and the transactional effect-commit layer that binds them.
package kernel

import "strings"

// EntityKind is a brand attached to an EntityID so the kernel and its
// collaborators can distinguish what an identifier refers to without
// a lookup. The set is closed.
type EntityKind string

// The closed set of entity kinds the kernel recognizes.
const (
	KindCharacter EntityKind = "character"
	KindMonster   EntityKind = "monster"
	KindItem      EntityKind = "item"
	KindSpell     EntityKind = "spell"
)

// EntityID is an opaque, branded identifier. On the wire it is a plain
// string; the brand only matters for in-process type safety.
type EntityID string

// MintEntityID attaches kind to raw, producing a branded identifier.
func MintEntityID(kind EntityKind, raw string) EntityID {
	return EntityID(string(kind) + ":" + raw)
}

// IsKind reports whether id was minted with the given kind. It does not
// allocate.
func IsKind(id EntityID, kind EntityKind) bool {
	prefix := string(kind) + ":"
	return strings.HasPrefix(string(id), prefix)
}

// Entity is the only contract the kernel requires of domain data: a stable,
// branded identifier. Everything else about an entity is opaque to the
// kernel.
type Entity interface {
	ID() EntityID
}
