// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generations assigns a generation number to every person in a
// record set by breadth-first propagation from the lineage's root
// ancestors. The resolver is a pure function of its inputs: it never
// mutates the supplied collections and is total over any finite record
// set, consistent or not.
package generations

import "github.com/pdiddy/lineage-press/pkg/types"

// workItem is one pending assignment in the BFS worklist.
type workItem struct {
	handle string
	gen    int
}

// Resolve maps every person handle to a generation. Roots — patrilineal
// persons who are not a child in any union — seed generation 0; each
// union then propagates a parent's generation to the other parent and
// generation+1 to the children, in the order the input slices supply
// them. The first assignment a handle receives wins, which both fixes
// tie-breaks on inconsistent graphs and terminates cycles. Persons
// unreachable from any root fall back to their generation hint (1-based)
// minus one, or 0 without a hint.
func Resolve(people []types.Person, unions []types.FamilyUnion) types.GenerationMap {
	unionsByHandle := make(map[string]*types.FamilyUnion, len(unions))
	childHandles := make(map[string]bool)
	for i := range unions {
		u := &unions[i]
		unionsByHandle[u.Handle] = u
		for _, child := range u.Children {
			childHandles[child] = true
		}
	}

	personsByHandle := make(map[string]*types.Person, len(people))
	for i := range people {
		personsByHandle[people[i].Handle] = &people[i]
	}

	assigned := make(types.GenerationMap, len(people))

	// Seed the worklist with every valid root, in input order.
	var queue []workItem
	for _, p := range people {
		if p.Patrilineal && !childHandles[p.Handle] {
			queue = append(queue, workItem{handle: p.Handle, gen: 0})
		}
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if _, ok := assigned[item.handle]; ok {
			continue
		}
		assigned[item.handle] = item.gen

		person, ok := personsByHandle[item.handle]
		if !ok {
			continue
		}

		for _, fh := range person.Families {
			union, ok := unionsByHandle[fh]
			if !ok {
				continue
			}

			// The other parent shares this person's generation.
			spouse := union.Father
			if spouse == item.handle {
				spouse = union.Mother
			}
			if spouse != "" {
				if _, ok := assigned[spouse]; !ok {
					queue = append(queue, workItem{handle: spouse, gen: item.gen})
				}
			}

			for _, child := range union.Children {
				if _, ok := assigned[child]; !ok {
					queue = append(queue, workItem{handle: child, gen: item.gen + 1})
				}
			}
		}
	}

	// Fallback for persons disconnected from every root.
	for _, p := range people {
		if _, ok := assigned[p.Handle]; ok {
			continue
		}
		if p.GenerationHint >= 1 {
			assigned[p.Handle] = p.GenerationHint - 1
		} else {
			assigned[p.Handle] = 0
		}
	}

	return assigned
}
