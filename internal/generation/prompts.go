package generation

import (
	"fmt"
	"strings"

	"glossa/internal/conlang"
)

// systemPrompt frames every call. The conlang context is resent in full
// on each request; the protocol itself holds no conversation state.
const systemPrompt = `You are an expert linguist and constructed-language designer. You build
naturalistic, internally consistent languages from a phoneme inventory and
an aesthetic description. When asked for JSON, output only the JSON object
with exactly the requested fields and nothing else.`

// conlangContext renders the parts of a record the model needs to stay
// consistent with: inventory, grammar, and existing vocabulary.
func conlangContext(c *conlang.Conlang) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Language name: %s\n", c.Name)
	if c.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", c.Description)
	}
	if c.Vibe != "" {
		fmt.Fprintf(&sb, "Aesthetic: %s\n", c.Vibe)
	}
	fmt.Fprintf(&sb, "Phoneme inventory (use ONLY these sounds): %s\n", strings.Join(c.Phonemes, " "))
	fmt.Fprintf(&sb, "Grammar:\n")
	fmt.Fprintf(&sb, "  Word order: %s\n", c.Grammar.WordOrder)
	fmt.Fprintf(&sb, "  Plurals: %s\n", c.Grammar.PluralRule)
	fmt.Fprintf(&sb, "  Tense: %s\n", c.Grammar.TenseRule)
	fmt.Fprintf(&sb, "  Adjectives: %s\n", c.Grammar.AdjectivePlacement)
	if len(c.Vocabulary) > 0 {
		sb.WriteString("Existing vocabulary:\n")
		for _, w := range c.Vocabulary {
			fmt.Fprintf(&sb, "  %s = %s [%s]\n", w.Native, w.Meaning, w.Pronunciation)
		}
	}
	return sb.String()
}

func buildCorePrompt(name, vibe string, phonemes []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create the core of a constructed language named %q.\n", name)
	if vibe != "" {
		fmt.Fprintf(&sb, "Aesthetic description: %s\n", vibe)
	}
	fmt.Fprintf(&sb, "Phoneme inventory: %s\n\n", strings.Join(phonemes, " "))
	sb.WriteString(`Produce a JSON object with:
- "description": 2-3 sentences describing the language's character and phonotactics.
- "grammar": an object with "wordOrder", "pluralRule", "tenseRule", and
  "adjectivePlacement", each a short natural-language rule consistent with
  the aesthetic.
- "vocabulary": exactly 15 common words. Each entry has "native" (the
  surface form, built ONLY from the phoneme inventory above), "meaning"
  (an English gloss), and "pronunciation" (an IPA transcription with
  syllable and stress marks).
Every native form and pronunciation must use only the supplied phonemes.`)
	return sb.String()
}

func buildExtendPrompt(c *conlang.Conlang, theme string, count int) string {
	var sb strings.Builder
	sb.WriteString(conlangContext(c))
	fmt.Fprintf(&sb, "\nCoin %d new words", count)
	if theme != "" {
		fmt.Fprintf(&sb, " on the theme %q", theme)
	}
	sb.WriteString(`. Follow the established phonotactics, reuse roots where it makes
sense, and do not repeat any existing word. Produce a JSON object with a
"vocabulary" array; each entry has "native", "meaning", and
"pronunciation", with surface forms built only from the phoneme inventory.`)
	return sb.String()
}

func buildTranslatePrompt(c *conlang.Conlang, text string) string {
	var sb strings.Builder
	sb.WriteString(conlangContext(c))
	fmt.Fprintf(&sb, "\nTranslate into %s: %q\n", c.Name, text)
	sb.WriteString(`Respect the language's word order. Prefer existing vocabulary; when
the dictionary lacks a word, coin one from the phoneme inventory that fits
the phonotactics. Produce a JSON object with "translation" (the sentence
in the language), "pronunciation" (full IPA transcription), and
"breakdown" (an array of {"word", "meaning"} pairs in sentence order,
marking coined words with "(new)" in the meaning).`)
	return sb.String()
}

func buildAssistantPrompt(c *conlang.Conlang, transcript []ChatMessage, query string) string {
	var sb strings.Builder
	sb.WriteString(conlangContext(c))
	if len(transcript) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, m := range transcript {
			fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Content)
		}
	}
	fmt.Fprintf(&sb, "\nQuestion: %s\n", query)
	sb.WriteString("Answer as a linguistics assistant for this language. Plain text, no JSON.")
	return sb.String()
}

func buildSuggestPrompt(vibe string) string {
	return fmt.Sprintf(`Suggest a phoneme inventory for a constructed language with this
aesthetic: %q

Pick between 15 and 25 IPA symbols that together produce that sound.
Produce a JSON object with a "phonemes" array of IPA symbol strings,
consonants first, then vowels, then any suprasegmentals.`, vibe)
}

func buildExpandPrompt(vibe string) string {
	return fmt.Sprintf(`Expand this short description of a constructed language's aesthetic
into 2-4 evocative sentences covering how it sounds, its rhythm, and the
culture it suggests: %q

Plain text only, no JSON, no preamble.`, vibe)
}
