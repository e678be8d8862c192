package conlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIDAssignsOnce(t *testing.T) {
	c := New("Test")
	require.Empty(t, c.ID)
	c.EnsureID()
	first := c.ID
	require.NotEmpty(t, first)
	c.EnsureID()
	assert.Equal(t, first, c.ID)
}

func TestSetPhonemesDedupes(t *testing.T) {
	c := New("Test")
	c.SetPhonemes([]string{"p", "a", "p", " t ", "", "a"})
	assert.Equal(t, []string{"p", "a", "t"}, c.Phonemes)
}

func TestApplyCorePreservesPhonemes(t *testing.T) {
	c := New("Test")
	c.SetPhonemes([]string{"p", "a", "t"})

	res := CoreResult{
		Description: "A clipped, percussive tongue.",
		Grammar:     GrammarRules{WordOrder: "VSO"},
		Vocabulary: []VocabularyWord{
			{Native: "pat", Meaning: "stone", Pronunciation: "ˈpat"},
			{Native: "tapa", Meaning: "water", Pronunciation: "ˈta.pa"},
		},
	}
	c.ApplyCore(res)

	assert.Equal(t, []string{"p", "a", "t"}, c.Phonemes)
	assert.Equal(t, "A clipped, percussive tongue.", c.Description)
	assert.Equal(t, "VSO", c.Grammar.WordOrder)
	require.Len(t, c.Vocabulary, 2)
	for _, w := range c.Vocabulary {
		assert.NotEmpty(t, w.ID)
	}
}

func TestAppendVocabularyKeepsIDsUnique(t *testing.T) {
	c := New("Test")
	c.SetPhonemes([]string{"p", "a"})
	c.ApplyCore(CoreResult{Vocabulary: []VocabularyWord{{ID: "w1", Native: "pa", Meaning: "one"}}})

	c.AppendVocabulary([]VocabularyWord{
		{ID: "w1", Native: "apa", Meaning: "two"}, // collides
		{Native: "paa", Meaning: "three"},         // missing id
	})

	require.Len(t, c.Vocabulary, 3)
	seen := make(map[string]bool)
	for _, w := range c.Vocabulary {
		require.NotEmpty(t, w.ID)
		assert.False(t, seen[w.ID], "duplicate id %s", w.ID)
		seen[w.ID] = true
	}
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	c := New("")
	assert.Error(t, c.Validate())

	c = New("Test")
	assert.Error(t, c.Validate(), "empty phoneme selection must fail")

	c.SetPhonemes([]string{"p"})
	assert.NoError(t, c.Validate())

	c.Vocabulary = []VocabularyWord{{ID: "x"}, {ID: "x"}}
	assert.Error(t, c.Validate())
}

func TestCloneIsDeep(t *testing.T) {
	c := New("Test")
	c.SetPhonemes([]string{"p", "a"})
	c.ApplyCore(CoreResult{Vocabulary: []VocabularyWord{{ID: "w1", Native: "pa"}}})

	cp := c.Clone()
	cp.Phonemes[0] = "k"
	cp.Vocabulary[0].Native = "ka"
	cp.Name = "Other"

	assert.Equal(t, "p", c.Phonemes[0])
	assert.Equal(t, "pa", c.Vocabulary[0].Native)
	assert.Equal(t, "Test", c.Name)
}
