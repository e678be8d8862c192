// Package conlang defines the constructed-language record and the merge
// rules applied to generation results. Nothing in this package talks to
// the network or the store; it is pure data and invariants.
package conlang

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VocabularyWord is one dictionary entry. Words are never mutated in
// place; extension appends and regeneration replaces wholesale.
type VocabularyWord struct {
	ID            string `json:"id"`
	Native        string `json:"native"`
	Meaning       string `json:"meaning"`
	Pronunciation string `json:"pronunciation"`
}

// GrammarRules holds the four descriptive grammar fields. Values are
// opaque natural-language text, not a formal grammar.
type GrammarRules struct {
	WordOrder          string `json:"wordOrder"`
	PluralRule         string `json:"pluralRule"`
	TenseRule          string `json:"tenseRule"`
	AdjectivePlacement string `json:"adjectivePlacement"`
}

// DefaultGrammar returns the editable placeholder grammar shown before
// the first generation call.
func DefaultGrammar() GrammarRules {
	return GrammarRules{
		WordOrder:          "Subject-Verb-Object",
		PluralRule:         "No plural marking yet",
		TenseRule:          "No tense marking yet",
		AdjectivePlacement: "Adjectives follow the noun",
	}
}

// Conlang is the aggregate root for one constructed language.
type Conlang struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Phonemes    []string         `json:"phonemes"`
	Vibe        string           `json:"vibe"`
	Grammar     GrammarRules     `json:"grammar"`
	Vocabulary  []VocabularyWord `json:"vocabulary"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// New returns an empty record for the editor. The ID stays empty until
// the first save assigns one.
func New(name string) *Conlang {
	return &Conlang{
		Name:      name,
		Grammar:   DefaultGrammar(),
		CreatedAt: time.Now().UTC(),
	}
}

// EnsureID assigns the permanent id on first save. Subsequent calls are
// no-ops; the id never changes once set.
func (c *Conlang) EnsureID() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
}

// SetPhonemes replaces the phoneme selection, deduplicating while
// preserving first-seen order.
func (c *Conlang) SetPhonemes(symbols []string) {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	c.Phonemes = out
}

// CoreResult is what a successful core generation contributes.
type CoreResult struct {
	Description string           `json:"description"`
	Grammar     GrammarRules     `json:"grammar"`
	Vocabulary  []VocabularyWord `json:"vocabulary"`
}

// ApplyCore merges a core generation result into the record. The phoneme
// selection is left untouched; description, grammar, and vocabulary are
// replaced wholesale.
func (c *Conlang) ApplyCore(res CoreResult) {
	c.Description = res.Description
	c.Grammar = res.Grammar
	c.Vocabulary = make([]VocabularyWord, len(res.Vocabulary))
	copy(c.Vocabulary, res.Vocabulary)
	ensureWordIDs(c.Vocabulary, nil)
}

// AppendVocabulary adds new words to the dictionary. Words arriving with
// missing or colliding ids get fresh ones so vocabulary ids stay unique
// within the record.
func (c *Conlang) AppendVocabulary(words []VocabularyWord) {
	existing := make(map[string]bool, len(c.Vocabulary))
	for _, w := range c.Vocabulary {
		existing[w.ID] = true
	}
	added := make([]VocabularyWord, len(words))
	copy(added, words)
	ensureWordIDs(added, existing)
	c.Vocabulary = append(c.Vocabulary, added...)
}

func ensureWordIDs(words []VocabularyWord, taken map[string]bool) {
	if taken == nil {
		taken = make(map[string]bool, len(words))
	}
	for i := range words {
		if words[i].ID == "" || taken[words[i].ID] {
			words[i].ID = uuid.NewString()
		}
		taken[words[i].ID] = true
	}
}

// Validate checks the record's local invariants. It does not verify
// generated surface forms against the phoneme inventory; that constraint
// is requested from the model, not enforced here.
func (c *Conlang) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("language name is required")
	}
	if len(c.Phonemes) == 0 {
		return fmt.Errorf("select at least one phoneme")
	}
	seen := make(map[string]bool, len(c.Vocabulary))
	for _, w := range c.Vocabulary {
		if seen[w.ID] {
			return fmt.Errorf("duplicate vocabulary id %q", w.ID)
		}
		seen[w.ID] = true
	}
	return nil
}

// Clone returns a deep copy. The controller edits a clone so a failed
// operation never leaves the saved record half-updated.
func (c *Conlang) Clone() *Conlang {
	out := *c
	out.Phonemes = append([]string(nil), c.Phonemes...)
	out.Vocabulary = append([]VocabularyWord(nil), c.Vocabulary...)
	return &out
}
