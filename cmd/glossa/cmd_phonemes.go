package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glossa/internal/phoneme"
)

var phonemeCategory string

// phonemesCmd prints the IPA reference catalog.
var phonemesCmd = &cobra.Command{
	Use:   "phonemes",
	Short: "List the IPA phoneme catalog",
	Long: `Prints the IPA reference catalog used for phoneme selection,
grouped by articulatory category.

Categories: pulmonic, non_pulmonic, vowel, ext_ipa, diacritic, suprasegmental`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if phonemeCategory != "" {
			entries := phoneme.ByCategory(phoneme.Category(phonemeCategory))
			if len(entries) == 0 {
				return fmt.Errorf("unknown category %q", phonemeCategory)
			}
			printPhonemes(entries)
			return nil
		}
		for _, cat := range phoneme.Categories() {
			fmt.Printf("%s\n", cat)
			printPhonemes(phoneme.ByCategory(cat))
			fmt.Println()
		}
		return nil
	},
}

func printPhonemes(entries []phoneme.Phoneme) {
	for _, p := range entries {
		fmt.Printf("  %-4s %-40s %s\n", p.Symbol, p.Description, p.Example)
	}
}

func init() {
	phonemesCmd.Flags().StringVar(&phonemeCategory, "category", "", "Only show one category")
}
