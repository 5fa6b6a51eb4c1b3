// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lineage-press/internal/book"
	"github.com/pdiddy/lineage-press/internal/generations"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Compile and export the family book",
}

var bookGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Derive the generation-chapterized book from the record store",
	Long: `Generate loads the record set, resolves a generation for every person
by traversal from the lineage's root ancestors, synthesizes per-person
narrative entries grouped into generation chapters with a collated name
index, and writes the result under --output-dir in the chosen formats.`,
	RunE: runBookGenerate,
}

func runBookGenerate(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	people, unions, err := s.Load(ctx)
	if err != nil {
		return err
	}

	gens := generations.Resolve(people, unions)
	data := book.Synthesize(people, unions, gens, bookOptions(cmd))

	outputDir, _ := cmd.Flags().GetString("output-dir")
	formats, _ := cmd.Flags().GetStringSlice("format")

	for _, format := range formats {
		var (
			path string
			err  error
		)
		switch format {
		case "yaml":
			path, err = book.WriteYAML(data, outputDir)
		case "json":
			path, err = book.WriteJSON(data, outputDir)
		case "markdown", "md":
			path, err = book.WriteMarkdown(data, outputDir)
		default:
			return fmt.Errorf("unsupported format %q: use yaml, json, or markdown", format)
		}
		if err != nil {
			return err
		}
		fmt.Println("Wrote", path)
	}

	fmt.Printf("%d generations, %d members (%d in the lineage), %d chapters.\n",
		data.Generations, data.Members, data.Patrilineal, len(data.Chapters))
	return nil
}

// bookOptions resolves the synthesis options: flags first, then the
// config file.
func bookOptions(cmd *cobra.Command) book.Options {
	familyName, _ := cmd.Flags().GetString("family-name")
	if familyName == "" {
		familyName = viper.GetString("book.family_name")
	}
	if familyName == "" {
		familyName = "Unnamed"
	}
	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = viper.GetString("book.language")
	}
	return book.Options{FamilyName: familyName, Language: lang}
}

func init() {
	bookGenerateCmd.Flags().String("family-name", "", "family/report label")
	bookGenerateCmd.Flags().String("lang", "", "BCP-47 tag for name index collation (default cs)")
	bookGenerateCmd.Flags().String("output-dir", "output/books", "directory for exported books")
	bookGenerateCmd.Flags().StringSlice("format", []string{"yaml"}, "export formats: yaml, json, markdown")

	bookCmd.AddCommand(bookGenerateCmd)
	rootCmd.AddCommand(bookCmd)
}
