// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package book synthesizes the generation-chapterized family book from a
// record set and a resolved generation map. Synthesis is a pure
// transformation: it copies scalar fields out of the inputs, builds fresh
// output structures, and degrades missing optional data to placeholder
// strings rather than failing.
package book

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pdiddy/lineage-press/pkg/types"
)

const (
	// lifespanPlaceholder stands in when the birth year is unknown.
	lifespanPlaceholder = "—"

	// outOfLineageNote marks spouses and children who are not part of
	// the traced bloodline.
	outOfLineageNote = "out of lineage"

	// founderHonorific decorates the generation-0 chapter title.
	founderHonorific = "founding ancestor"

	defaultLanguage = "cs"
)

// Options configures a synthesis run.
type Options struct {
	// FamilyName is the family/report label.
	FamilyName string

	// Language is the BCP-47 tag selecting the name-index collation.
	// Empty selects the default ("cs").
	Language string
}

// Synthesize builds the BookData for a record set: one narrative entry per
// patrilineal person, grouped into generation chapters, plus a
// locale-collated name index covering every person. The inputs are not
// mutated and the result holds no references back into them.
func Synthesize(people []types.Person, unions []types.FamilyUnion, gens types.GenerationMap, opts Options) types.BookData {
	personsByHandle := make(map[string]*types.Person, len(people))
	for i := range people {
		personsByHandle[people[i].Handle] = &people[i]
	}
	unionsByHandle := make(map[string]*types.FamilyUnion, len(unions))
	for i := range unions {
		unionsByHandle[unions[i].Handle] = &unions[i]
	}

	byGeneration := make(map[int][]types.BookPerson)
	maxGen := 0
	patrilineal := 0

	for i := range people {
		p := &people[i]
		gen := gens[p.Handle]
		if gen > maxGen {
			maxGen = gen
		}
		if !p.Patrilineal {
			continue
		}
		patrilineal++

		bp := buildPerson(p, gen, personsByHandle, unionsByHandle)
		byGeneration[gen] = append(byGeneration[gen], bp)
	}

	return types.BookData{
		FamilyName:  opts.FamilyName,
		GeneratedAt: time.Now().UTC(),
		Generations: maxGen + 1,
		Members:     len(people),
		Patrilineal: patrilineal,
		Chapters:    buildChapters(byGeneration),
		Index:       buildIndex(people, gens, opts.Language),
	}
}

// buildPerson assembles the narrative record for one patrilineal person.
func buildPerson(p *types.Person, gen int, persons map[string]*types.Person, unions map[string]*types.FamilyUnion) types.BookPerson {
	bp := types.BookPerson{
		Handle:      p.Handle,
		Name:        p.Name,
		Gender:      p.Gender,
		BirthYear:   p.BirthYear,
		DeathYear:   p.DeathYear,
		Living:      p.Living,
		Patrilineal: p.Patrilineal,
		Generation:  gen,
	}

	// Parent names come from the first parent union that records a
	// parent; later parent unions are a data anomaly and do not
	// contribute.
	for _, fh := range p.ParentFamilies {
		u, ok := unions[fh]
		if !ok || (u.Father == "" && u.Mother == "") {
			continue
		}
		if father, ok := persons[u.Father]; ok {
			bp.FatherName = father.Name
		}
		if mother, ok := persons[u.Mother]; ok {
			bp.MotherName = mother.Name
		}
		break
	}

	// The flattened spouse slot keeps the last-iterated union's spouse;
	// children of every union accumulate. Unions preserves the full
	// per-marriage grouping.
	for _, fh := range p.Families {
		u, ok := unions[fh]
		if !ok {
			continue
		}

		var bu types.BookUnion

		spouseHandle := u.Father
		if spouseHandle == p.Handle {
			spouseHandle = u.Mother
		}
		if spouse, ok := persons[spouseHandle]; ok {
			entry := entryFor(spouse)
			bp.Spouse = &entry
			buEntry := entry
			bu.Spouse = &buEntry
		}

		for _, ch := range u.Children {
			child, ok := persons[ch]
			if !ok {
				continue
			}
			entry := entryFor(child)
			bp.Children = append(bp.Children, entry)
			bu.Children = append(bu.Children, entry)
		}

		bp.Unions = append(bp.Unions, bu)
	}

	// Birth-order index within the first recorded parent union.
	if len(p.ParentFamilies) > 0 {
		if u, ok := unions[p.ParentFamilies[0]]; ok {
			for i, ch := range u.Children {
				if ch == p.Handle {
					bp.BirthOrder = i + 1
					break
				}
			}
		}
	}

	return bp
}

// entryFor builds the spouse/child line for a person.
func entryFor(p *types.Person) types.BookEntry {
	e := types.BookEntry{
		Name:     p.Name,
		Lifespan: formatLifespan(p),
	}
	if !p.Patrilineal {
		e.Note = outOfLineageNote
	}
	return e
}

// formatLifespan renders a person's vital years: the placeholder dash when
// the birth year is unknown, "birth–death" when both are known,
// "birth–present" for the living, and the bare birth year for the dead
// with an unknown death year.
func formatLifespan(p *types.Person) string {
	if p.BirthYear == 0 {
		return lifespanPlaceholder
	}
	if p.DeathYear != 0 {
		return fmt.Sprintf("%d–%d", p.BirthYear, p.DeathYear)
	}
	if p.Living {
		return fmt.Sprintf("%d–present", p.BirthYear)
	}
	return strconv.Itoa(p.BirthYear)
}

// buildChapters groups book persons into per-generation chapters, skipping
// generations with no patrilineal member. Members sort ascending by
// birth-order index; entries without one sort after all indexed entries.
func buildChapters(byGeneration map[int][]types.BookPerson) []types.BookChapter {
	gens := make([]int, 0, len(byGeneration))
	for gen := range byGeneration {
		gens = append(gens, gen)
	}
	sort.Ints(gens)

	chapters := make([]types.BookChapter, 0, len(gens))
	for _, gen := range gens {
		members := byGeneration[gen]
		sort.SliceStable(members, func(i, j int) bool {
			return birthOrderKey(members[i]) < birthOrderKey(members[j])
		})

		ordinal := ordinalLabel(gen)
		title := fmt.Sprintf("Generation %s", ordinal)
		if gen == 0 {
			title = fmt.Sprintf("Generation %s — %s", ordinal, founderHonorific)
		}

		chapters = append(chapters, types.BookChapter{
			Generation: gen,
			Ordinal:    ordinal,
			Title:      title,
			Members:    members,
		})
	}
	return chapters
}

// birthOrderKey treats a missing birth-order index as maximal so that
// unindexed entries sort last.
func birthOrderKey(bp types.BookPerson) int {
	if bp.BirthOrder == 0 {
		return int(^uint(0) >> 1)
	}
	return bp.BirthOrder
}

// buildIndex builds the name index over every person, sorted by
// locale-aware comparison for the given BCP-47 language tag.
func buildIndex(people []types.Person, gens types.GenerationMap, lang string) []types.IndexEntry {
	if lang == "" {
		lang = defaultLanguage
	}
	collator := collate.New(language.Make(lang))

	index := make([]types.IndexEntry, len(people))
	for i, p := range people {
		index[i] = types.IndexEntry{
			Name:        p.Name,
			Generation:  gens[p.Handle],
			Patrilineal: p.Patrilineal,
		}
	}
	sort.SliceStable(index, func(i, j int) bool {
		return collator.CompareString(index[i].Name, index[j].Name) < 0
	})
	return index
}
