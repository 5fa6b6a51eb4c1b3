// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lineage-press/pkg/types"
)

// LineageFile is the YAML import format: the record set as flat people and
// union lists. Families and ParentFamilies on the people entries are
// ignored; memberships are always derived from the unions.
type LineageFile struct {
	Family string              `yaml:"family"`
	People []types.Person      `yaml:"people"`
	Unions []types.FamilyUnion `yaml:"unions"`
}

// IngestSummary holds counts from a record import run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of records processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest imports a lineage YAML file into the store. New records are
// appended after the existing ones, existing handles are updated in place
// (keeping their position), and records identical to what is stored are
// skipped. Unions referencing a person that exists neither in the store
// nor in the file are rejected, so a loaded record set stays referentially
// consistent.
func (s *Store) Ingest(ctx context.Context, w io.Writer, path string) (IngestSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading lineage file: %w", err)
	}

	var file LineageFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return IngestSummary{}, fmt.Errorf("parsing lineage file: %w", err)
	}

	existingPeople, existingUnions, err := s.Load(ctx)
	if err != nil {
		return IngestSummary{}, err
	}

	knownHandles := make(map[string]bool, len(existingPeople)+len(file.People))
	storedPeople := make(map[string]types.Person, len(existingPeople))
	for _, p := range existingPeople {
		knownHandles[p.Handle] = true
		storedPeople[p.Handle] = p
	}
	for _, p := range file.People {
		if p.Handle != "" {
			knownHandles[p.Handle] = true
		}
	}
	storedUnions := make(map[string]types.FamilyUnion, len(existingUnions))
	for _, u := range existingUnions {
		storedUnions[u.Handle] = u
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary IngestSummary
	nextPersonPos := len(existingPeople)
	nextUnionPos := len(existingUnions)

	for _, p := range file.People {
		if p.Handle == "" {
			fmt.Fprintf(w, "failed  person with empty handle (%q)\n", p.Name)
			summary.Failed++
			continue
		}
		stored, exists := storedPeople[p.Handle]
		if exists && samePerson(stored, p) {
			fmt.Fprintf(w, "skipped %s\n", p.Handle)
			summary.Skipped++
			continue
		}
		if err := insertPerson(ctx, tx, p, nextPersonPos); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", p.Handle, err)
			summary.Failed++
			continue
		}
		if exists {
			fmt.Fprintf(w, "updated %s\n", p.Handle)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", p.Handle)
			summary.Indexed++
			nextPersonPos++
		}
	}

	for _, u := range file.Unions {
		if u.Handle == "" {
			fmt.Fprintln(w, "failed  union with empty handle")
			summary.Failed++
			continue
		}
		if bad := danglingReference(u, knownHandles); bad != "" {
			fmt.Fprintf(w, "failed  %s: references unknown person %q\n", u.Handle, bad)
			summary.Failed++
			continue
		}
		stored, exists := storedUnions[u.Handle]
		if exists && sameUnion(stored, u) {
			fmt.Fprintf(w, "skipped %s\n", u.Handle)
			summary.Skipped++
			continue
		}
		if err := insertUnion(ctx, tx, u, nextUnionPos); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", u.Handle, err)
			summary.Failed++
			continue
		}
		if exists {
			fmt.Fprintf(w, "updated %s\n", u.Handle)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", u.Handle)
			summary.Indexed++
			nextUnionPos++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// samePerson compares the persisted scalar fields, ignoring the derived
// membership lists.
func samePerson(a, b types.Person) bool {
	a.Families, a.ParentFamilies = nil, nil
	b.Families, b.ParentFamilies = nil, nil
	return reflect.DeepEqual(a, b)
}

func sameUnion(a, b types.FamilyUnion) bool {
	return a.Handle == b.Handle && a.Father == b.Father && a.Mother == b.Mother &&
		reflect.DeepEqual(a.Children, b.Children)
}

// danglingReference returns the first person handle a union references that
// is not known, or the empty string when all references resolve.
func danglingReference(u types.FamilyUnion, known map[string]bool) string {
	if u.Father != "" && !known[u.Father] {
		return u.Father
	}
	if u.Mother != "" && !known[u.Mother] {
		return u.Mother
	}
	for _, child := range u.Children {
		if !known[child] {
			return child
		}
	}
	return ""
}
