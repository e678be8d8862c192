package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"glossa/internal/generation"
)

var (
	extendTheme string
	extendCount int
)

// generateCmd runs core generation for a saved language.
var generateCmd = &cobra.Command{
	Use:   "generate [name-or-id]",
	Short: "Generate description, grammar, and starter vocabulary",
	Long: `Generates the language core from its phoneme selection and vibe:
a prose description, grammar rules, and a starter vocabulary whose words
use only the selected phonemes. The result replaces the previous
description, grammar, and vocabulary; the phoneme selection is kept.`,
	Args: cobra.ExactArgs(1),
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
		if err := c.Validate(); err != nil {
			return err
		}
		logInfo("generating language core",
			zap.String("language", c.Name),
			zap.Int("phonemes", len(c.Phonemes)))

		svc := newService()
		res, err := svc.GenerateCore(context.Background(), c.Name, c.Vibe, c.Phonemes)
		if err != nil {
			logError("core generation failed", zap.String("language", c.Name), zap.Error(err))
			return fmt.Errorf("%s", generation.Describe(err))
		}
		c.ApplyCore(*res)
		if err := st.Save(c); err != nil {
			return err
		}
		printLanguage(c)
		return nil
	},
}

// extendCmd coins more vocabulary for a saved language.
var extendCmd = &cobra.Command{
	Use:   "extend [name-or-id]",
	Short: "Add more vocabulary",
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

		logInfo("extending vocabulary",
			zap.String("language", c.Name),
			zap.String("theme", extendTheme),
			zap.Int("count", extendCount))

		svc := newService()
		words, err := svc.ExtendVocabulary(context.Background(), c, extendTheme, extendCount)
		if err != nil {
			logError("vocabulary extension failed", zap.String("language", c.Name), zap.Error(err))
			return fmt.Errorf("%s", generation.Describe(err))
		}
		c.AppendVocabulary(words)
		if err := st.Save(c); err != nil {
			return err
		}
		fmt.Printf("Added %d words:\n", len(words))
		for _, w := range words {
			fmt.Printf("  %-16s %-24s [%s]\n", w.Native, w.Meaning, w.Pronunciation)
		}
		return nil
	},
}

// translateCmd renders text in a saved language.
var translateCmd = &cobra.Command{
	Use:   "translate [name-or-id] [text...]",
	Short: "Translate text into a language",
	Args:  cobra.MinimumNArgs(2),
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
		text := strings.Join(args[1:], " ")
		logInfo("translating text", zap.String("language", c.Name), zap.Int("text_len", len(text)))

		svc := newService()
		tr, err := svc.TranslateText(context.Background(), c, text)
		if err != nil {
			logError("translation failed", zap.String("language", c.Name), zap.Error(err))
			return fmt.Errorf("%s", generation.Describe(err))
		}
		fmt.Println(tr.Translation)
		if tr.Pronunciation != "" {
			fmt.Printf("[%s]\n", tr.Pronunciation)
		}
		if len(tr.Breakdown) > 0 {
			fmt.Println()
			for _, b := range tr.Breakdown {
				fmt.Printf("  %-16s %s\n", b.Word, b.Meaning)
			}
		}
		return nil
	},
}

// askCmd sends one question to the language assistant.
var askCmd = &cobra.Command{
	Use:   "ask [name-or-id] [question...]",
	Short: "Ask the language assistant a question",
	Args:  cobra.MinimumNArgs(2),
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
		query := strings.Join(args[1:], " ")
		logInfo("asking assistant", zap.String("language", c.Name))

		svc := newService()
		answer, err := svc.AskAssistant(context.Background(), c, nil, query)
		if err != nil {
			logError("assistant query failed", zap.String("language", c.Name), zap.Error(err))
			return fmt.Errorf("%s", generation.Describe(err))
		}
		fmt.Println(answer)
		return nil
	},
}

// suggestCmd proposes a phoneme inventory for a vibe.
var suggestCmd = &cobra.Command{
	Use:   "suggest [name-or-id]",
	Short: "Suggest a phoneme inventory matching the vibe",
	Long: `Suggests an IPA phoneme inventory fitting the language's aesthetic
description and replaces the current selection with it.`,
	Args: cobra.ExactArgs(1),
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

		logInfo("suggesting phonemes", zap.String("language", c.Name))

		svc := newService()
		symbols, err := svc.SuggestPhonemes(context.Background(), c.Vibe)
		if err != nil {
			logError("phoneme suggestion failed", zap.String("language", c.Name), zap.Error(err))
			return fmt.Errorf("%s", generation.Describe(err))
		}
		c.SetPhonemes(symbols)
		if err := st.Save(c); err != nil {
			return err
		}
		fmt.Printf("Phonemes (%d): %s\n", len(c.Phonemes), strings.Join(c.Phonemes, " "))
		return nil
	},
}

// expandCmd rewrites the vibe as a fuller description.
var expandCmd = &cobra.Command{
	Use:   "expand [name-or-id]",
	Short: "Expand the vibe into a fuller description",
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

		logInfo("expanding vibe", zap.String("language", c.Name))

		svc := newService()
		expanded, err := svc.ExpandVibe(context.Background(), c.Vibe)
		if err != nil {
			logError("vibe expansion failed", zap.String("language", c.Name), zap.Error(err))
			return fmt.Errorf("%s", generation.Describe(err))
		}
		c.Vibe = expanded
		if err := st.Save(c); err != nil {
			return err
		}
		fmt.Println(expanded)
		return nil
	},
}

func init() {
	extendCmd.Flags().StringVar(&extendTheme, "theme", "", "Semantic theme for the new words (e.g. nature, trade)")
	extendCmd.Flags().IntVar(&extendCount, "count", 10, "How many words to coin")
}
