// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across lineage-press stages:
// genealogical records (Person, FamilyUnion), the derived book structures,
// and stage configuration.
package types

// Gender is the gender code carried on a Person record.
type Gender string

const (
	GenderMale    Gender = "m"
	GenderFemale  Gender = "f"
	GenderUnknown Gender = "u"
)

// Person is one genealogical record. Handle is the stable, unique key the
// store and all cross-references use; Families and ParentFamilies hold
// FamilyUnion handles and preserve the order the record set supplies them
// in, since traversal tie-breaks depend on it.
type Person struct {
	// Handle is the unique, stable identifier for this person.
	Handle string `json:"handle" yaml:"handle"`

	// Name is the display name used in the book and the name index.
	Name string `json:"name" yaml:"name"`

	// Gender is the gender code: m, f, or u.
	Gender Gender `json:"gender" yaml:"gender"`

	// BirthYear is the year of birth; 0 means unknown.
	BirthYear int `json:"birth_year,omitempty" yaml:"birth_year,omitempty"`

	// DeathYear is the year of death; 0 means unknown.
	DeathYear int `json:"death_year,omitempty" yaml:"death_year,omitempty"`

	// Living reports whether the person is alive.
	Living bool `json:"living" yaml:"living"`

	// Patrilineal marks membership in the traced bloodline, as opposed
	// to a married-in spouse.
	Patrilineal bool `json:"patrilineal" yaml:"patrilineal"`

	// Families lists the unions in which this person is a parent.
	Families []string `json:"families,omitempty" yaml:"families,omitempty"`

	// ParentFamilies lists the unions in which this person is a child.
	ParentFamilies []string `json:"parent_families,omitempty" yaml:"parent_families,omitempty"`

	// GenerationHint is an externally supplied 1-based generation,
	// used only as a fallback for persons unreachable from any root.
	// 0 means no hint.
	GenerationHint int `json:"generation_hint,omitempty" yaml:"generation_hint,omitempty"`
}

// FamilyUnion is a parent(s)-children grouping, the hyperedge of the family
// graph. Father and Mother hold Person handles and may be empty; Children
// is ordered by birth, which fixes each child's birth-order index.
type FamilyUnion struct {
	// Handle is the unique, stable identifier for this union.
	Handle string `json:"handle" yaml:"handle"`

	// Father is the father's Person handle, or empty.
	Father string `json:"father,omitempty" yaml:"father,omitempty"`

	// Mother is the mother's Person handle, or empty.
	Mother string `json:"mother,omitempty" yaml:"mother,omitempty"`

	// Children lists child Person handles in birth order.
	Children []string `json:"children,omitempty" yaml:"children,omitempty"`
}

// GenerationMap assigns every person handle a non-negative generation.
// Built once per report by the resolver and never mutated afterwards.
type GenerationMap map[string]int
