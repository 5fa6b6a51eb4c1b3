// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// BookEntry is a spouse or child line inside a person's book record:
// display name, formatted lifespan, and an out-of-lineage note when the
// referenced person is not patrilineal.
type BookEntry struct {
	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// Lifespan is the formatted lifespan string (e.g. "1950–2000",
	// "1950–present", or the em-dash placeholder).
	Lifespan string `json:"lifespan" yaml:"lifespan"`

	// Note is the out-of-lineage note, empty for lineage members.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// BookUnion is the structured per-marriage view: one spouse with the
// children of that union, preserving multi-marriage grouping that the
// flattened spouse slot on BookPerson loses.
type BookUnion struct {
	// Spouse is the other parent in this union; nil when the union
	// records only one parent.
	Spouse *BookEntry `json:"spouse,omitempty" yaml:"spouse,omitempty"`

	// Children lists this union's children in birth order.
	Children []BookEntry `json:"children,omitempty" yaml:"children,omitempty"`
}

// BookPerson is the derived, read-only narrative record for one
// patrilineal person. It copies scalar fields out of the inputs and holds
// no reference back into them.
type BookPerson struct {
	Handle      string `json:"handle" yaml:"handle"`
	Name        string `json:"name" yaml:"name"`
	Gender      Gender `json:"gender" yaml:"gender"`
	BirthYear   int    `json:"birth_year,omitempty" yaml:"birth_year,omitempty"`
	DeathYear   int    `json:"death_year,omitempty" yaml:"death_year,omitempty"`
	Living      bool   `json:"living" yaml:"living"`
	Patrilineal bool   `json:"patrilineal" yaml:"patrilineal"`

	// Generation is the resolved generation number.
	Generation int `json:"generation" yaml:"generation"`

	// FatherName and MotherName come from the first parent union that
	// records a parent; empty when unknown.
	FatherName string `json:"father_name,omitempty" yaml:"father_name,omitempty"`
	MotherName string `json:"mother_name,omitempty" yaml:"mother_name,omitempty"`

	// Spouse is the flattened spouse slot. When the person appears as a
	// parent in more than one union, the last-iterated union's spouse is
	// retained here; Unions preserves the full grouping.
	Spouse *BookEntry `json:"spouse,omitempty" yaml:"spouse,omitempty"`

	// Children accumulates the children of every union this person is a
	// parent in, union order first, birth order within each union.
	Children []BookEntry `json:"children,omitempty" yaml:"children,omitempty"`

	// Unions is the structured per-marriage view.
	Unions []BookUnion `json:"unions,omitempty" yaml:"unions,omitempty"`

	// BirthOrder is the 1-based position among the siblings of the first
	// parent union; 0 when the person has no recorded parent union.
	BirthOrder int `json:"birth_order,omitempty" yaml:"birth_order,omitempty"`
}

// BookChapter groups the patrilineal members of one generation.
type BookChapter struct {
	// Generation is the generation number this chapter covers.
	Generation int `json:"generation" yaml:"generation"`

	// Ordinal is the chapter's ordinal label: roman numerals for the
	// first twenty generations, decimal beyond.
	Ordinal string `json:"ordinal" yaml:"ordinal"`

	// Title is the rendered chapter title.
	Title string `json:"title" yaml:"title"`

	// Members lists the chapter's persons sorted by birth-order index,
	// entries without an index last.
	Members []BookPerson `json:"members" yaml:"members"`
}

// IndexEntry is one line of the book's name index. The index covers every
// person in the record set, patrilineal or not.
type IndexEntry struct {
	Name        string `json:"name" yaml:"name"`
	Generation  int    `json:"generation" yaml:"generation"`
	Patrilineal bool   `json:"patrilineal" yaml:"patrilineal"`
}

// BookData is the synthesized, chapter-organized report. It is computed
// fresh on every synthesis and never mutated in place.
type BookData struct {
	// FamilyName is the family/report label.
	FamilyName string `json:"family_name" yaml:"family_name"`

	// GeneratedAt is the synthesis timestamp.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Generations is the total generation count: highest assigned
	// generation plus one, minimum one.
	Generations int `json:"generations" yaml:"generations"`

	// Members is the total person count in the record set.
	Members int `json:"members" yaml:"members"`

	// Patrilineal is the count of lineage members.
	Patrilineal int `json:"patrilineal" yaml:"patrilineal"`

	// Chapters lists generation chapters in ascending generation order.
	// Generations with no patrilineal member produce no chapter.
	Chapters []BookChapter `json:"chapters" yaml:"chapters"`

	// Index is the name index, sorted by locale-aware comparison.
	Index []IndexEntry `json:"index" yaml:"index"`
}
