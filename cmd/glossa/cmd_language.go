package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"glossa/internal/conlang"
	"glossa/internal/store"
)

var (
	newVibe     string
	newPhonemes string
)

// newCmd creates and saves an empty language record.
var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new language",
	Long: `Creates a language record with a name, an optional aesthetic
description, and an optional phoneme selection, and saves it to the
local collection.

Example:
  glossa new Velka --vibe "wind over cold stone" --phonemes "p,t,k,a,i,u"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		c := conlang.New(args[0])
		c.Vibe = newVibe
		if newPhonemes != "" {
			c.SetPhonemes(splitSymbols(newPhonemes))
		}
		if err := st.Save(c); err != nil {
			return err
		}
		logInfo("created language", zap.String("language", c.Name), zap.String("id", c.ID))
		fmt.Printf("Created %s (%s)\n", c.Name, c.ID)
		return nil
	},
}

// listCmd lists the saved collection.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		all, err := st.List()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("No saved languages. Create one with: glossa new <name>")
			return nil
		}
		for _, c := range all {
			fmt.Printf("%-12s  %-20s  %3d phonemes  %4d words\n",
				shortID(c.ID), c.Name, len(c.Phonemes), len(c.Vocabulary))
		}
		return nil
	},
}

// showCmd prints one record in full.
var showCmd = &cobra.Command{
	Use:   "show [name-or-id]",
	Short: "Show a saved language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := resolveLanguage(st, args[0])
		if err != nil {
			return err
		}
		printLanguage(c)
		return nil
	},
}

// deleteCmd removes one record from the collection.
var deleteCmd = &cobra.Command{
	Use:   "delete [name-or-id]",
	Short: "Delete a saved language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := resolveLanguage(st, args[0])
		if err != nil {
			return err
		}
		if err := st.Delete(c.ID); err != nil {
			logError("delete failed", zap.String("id", c.ID), zap.Error(err))
			return err
		}
		logInfo("deleted language", zap.String("language", c.Name), zap.String("id", c.ID))
		fmt.Printf("Deleted %s\n", c.Name)
		return nil
	},
}

// resolveLanguage finds a record by exact id or by case-insensitive
// name. Ambiguous names are an error rather than a guess.
func resolveLanguage(st store.Store, key string) (*conlang.Conlang, error) {
	if c, err := st.Get(key); err == nil {
		return c, nil
	}
	all, err := st.List()
	if err != nil {
		return nil, err
	}
	var matches []*conlang.Conlang
	for _, c := range all {
		if strings.EqualFold(c.Name, key) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no language named %q", key)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%d languages named %q; use the id (see: glossa list)", len(matches), key)
	}
}

func printLanguage(c *conlang.Conlang) {
	fmt.Printf("%s  (%s)\n", c.Name, shortID(c.ID))
	if c.Vibe != "" {
		fmt.Printf("Vibe: %s\n", c.Vibe)
	}
	if c.Description != "" {
		fmt.Printf("\n%s\n", c.Description)
	}
	if len(c.Phonemes) > 0 {
		fmt.Printf("\nPhonemes (%d): %s\n", len(c.Phonemes), strings.Join(c.Phonemes, " "))
	}
	g := c.Grammar
	if g.WordOrder != "" || g.PluralRule != "" || g.TenseRule != "" || g.AdjectivePlacement != "" {
		fmt.Println("\nGrammar:")
		fmt.Printf("  Word order:          %s\n", g.WordOrder)
		fmt.Printf("  Plural rule:         %s\n", g.PluralRule)
		fmt.Printf("  Tense rule:          %s\n", g.TenseRule)
		fmt.Printf("  Adjective placement: %s\n", g.AdjectivePlacement)
	}
	if len(c.Vocabulary) > 0 {
		fmt.Printf("\nVocabulary (%d):\n", len(c.Vocabulary))
		for _, w := range c.Vocabulary {
			fmt.Printf("  %-16s %-24s [%s]\n", w.Native, w.Meaning, w.Pronunciation)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	newCmd.Flags().StringVar(&newVibe, "vibe", "", "Aesthetic description of the language")
	newCmd.Flags().StringVar(&newPhonemes, "phonemes", "", "Comma-separated IPA symbols")
}
