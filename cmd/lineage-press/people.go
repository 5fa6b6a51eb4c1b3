// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lineage-press/pkg/types"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Inspect the local record set (list, show)",
}

// --- list subcommand ---

var peopleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the people in the record store",
	RunE:  runPeopleList,
}

func runPeopleList(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	people, _, err := s.Load(context.Background())
	if err != nil {
		return err
	}

	lineageOnly, _ := cmd.Flags().GetBool("lineage")
	if lineageOnly {
		var filtered []types.Person
		for _, p := range people {
			if p.Patrilineal {
				filtered = append(filtered, p)
			}
		}
		people = filtered
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(people)
	}

	if len(people) == 0 {
		fmt.Println("No people in the record store.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-16s  %-30s  %-6s  %-9s  %-9s  %s\n",
		"Handle", "Name", "Gender", "Born", "Died", "Lineage")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 84))

	for _, p := range people {
		name := p.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		lineage := ""
		if p.Patrilineal {
			lineage = "yes"
		}
		fmt.Fprintf(os.Stdout, "%-16s  %-30s  %-6s  %-9s  %-9s  %s\n",
			p.Handle, name, p.Gender, yearOrDash(p.BirthYear), yearOrDash(p.DeathYear), lineage)
	}

	fmt.Fprintf(os.Stdout, "\n%d people\n", len(people))
	return nil
}

func yearOrDash(year int) string {
	if year == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", year)
}

// --- show subcommand ---

var peopleShowCmd = &cobra.Command{
	Use:   "show <handle>",
	Short: "Show one person with union memberships",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeopleShow,
}

func runPeopleShow(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.GetPerson(context.Background(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func init() {
	peopleListCmd.Flags().Bool("json", false, "output as JSON")
	peopleListCmd.Flags().Bool("lineage", false, "only list patrilineal members")

	peopleCmd.AddCommand(peopleListCmd)
	peopleCmd.AddCommand(peopleShowCmd)

	rootCmd.AddCommand(peopleCmd)
}
