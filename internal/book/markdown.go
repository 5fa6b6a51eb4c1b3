// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package book

import (
	"fmt"
	"strings"

	"github.com/pdiddy/lineage-press/pkg/types"
)

// Markdown renders a BookData as a printable Markdown document: a title
// block, one section per chapter with a subsection per member, and the
// name index as a table.
func Markdown(data types.BookData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# The %s Family\n\n", data.FamilyName)
	fmt.Fprintf(&b, "Generated %s. %d generations, %d members, %d in the lineage.\n\n",
		data.GeneratedAt.Format("2006-01-02"), data.Generations, data.Members, data.Patrilineal)

	for _, ch := range data.Chapters {
		fmt.Fprintf(&b, "## %s\n\n", ch.Title)
		for _, m := range ch.Members {
			writeMember(&b, m)
		}
	}

	b.WriteString("## Name Index\n\n")
	b.WriteString("| Name | Generation | Lineage |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, e := range data.Index {
		lineage := ""
		if e.Patrilineal {
			lineage = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", e.Name, ordinalLabel(e.Generation), lineage)
	}

	return b.String()
}

func writeMember(b *strings.Builder, m types.BookPerson) {
	fmt.Fprintf(b, "### %s (%s)\n\n", m.Name, formatLifespan(&types.Person{
		BirthYear: m.BirthYear, DeathYear: m.DeathYear, Living: m.Living,
	}))

	if m.FatherName != "" || m.MotherName != "" {
		parents := m.FatherName
		if m.MotherName != "" {
			if parents != "" {
				parents += " and " + m.MotherName
			} else {
				parents = m.MotherName
			}
		}
		fmt.Fprintf(b, "Child of %s.", parents)
		if m.BirthOrder > 0 {
			fmt.Fprintf(b, " Born %s among the siblings.", ordinalWord(m.BirthOrder))
		}
		b.WriteString("\n\n")
	}

	if m.Spouse != nil {
		fmt.Fprintf(b, "Married to %s (%s)", m.Spouse.Name, m.Spouse.Lifespan)
		if m.Spouse.Note != "" {
			fmt.Fprintf(b, ", %s", m.Spouse.Note)
		}
		b.WriteString(".\n\n")
	}

	if len(m.Children) > 0 {
		b.WriteString("Children:\n\n")
		for _, c := range m.Children {
			fmt.Fprintf(b, "- %s (%s)", c.Name, c.Lifespan)
			if c.Note != "" {
				fmt.Fprintf(b, ", %s", c.Note)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

// ordinalWord spells out small birth-order positions; larger ones fall
// back to "Nth".
func ordinalWord(n int) string {
	words := []string{"", "first", "second", "third", "fourth", "fifth",
		"sixth", "seventh", "eighth", "ninth", "tenth"}
	if n > 0 && n < len(words) {
		return words[n]
	}
	return fmt.Sprintf("%dth", n)
}
