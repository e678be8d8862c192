package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/conlang"
	"glossa/internal/generation"
	"glossa/internal/share"
	"glossa/internal/store"
)

// memStore is an in-memory Store for controller tests.
type memStore struct {
	records []*conlang.Conlang
}

func (m *memStore) Save(c *conlang.Conlang) error {
	c.EnsureID()
	for i, r := range m.records {
		if r.ID == c.ID {
			m.records[i] = c.Clone()
			return nil
		}
	}
	m.records = append(m.records, c.Clone())
	return nil
}

func (m *memStore) Delete(id string) error {
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) Get(id string) (*conlang.Conlang, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r.Clone(), nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) List() ([]*conlang.Conlang, error) {
	out := make([]*conlang.Conlang, len(m.records))
	for i, r := range m.records {
		out[i] = r.Clone()
	}
	return out, nil
}

func (m *memStore) Close() error { return nil }

// fakeGen scripts the generation service per operation.
type fakeGen struct {
	core     *conlang.CoreResult
	coreErr  error
	words    []conlang.VocabularyWord
	wordsErr error
	trans    *generation.Translation
	answer   string
	symbols  []string
	expanded string
	err      error

	calls  map[string]int
	during func()
}

func (f *fakeGen) record(op string) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[op]++
	if f.during != nil {
		f.during()
	}
}

func (f *fakeGen) GenerateCore(ctx context.Context, name, vibe string, phonemes []string) (*conlang.CoreResult, error) {
	f.record("generate")
	if f.coreErr != nil {
		return nil, f.coreErr
	}
	return f.core, nil
}

func (f *fakeGen) ExtendVocabulary(ctx context.Context, c *conlang.Conlang, theme string, count int) ([]conlang.VocabularyWord, error) {
	f.record("extend")
	if f.wordsErr != nil {
		return nil, f.wordsErr
	}
	return f.words, nil
}

func (f *fakeGen) TranslateText(ctx context.Context, c *conlang.Conlang, text string) (*generation.Translation, error) {
	f.record("translate")
	if f.err != nil {
		return nil, f.err
	}
	return f.trans, nil
}

func (f *fakeGen) AskAssistant(ctx context.Context, c *conlang.Conlang, transcript []generation.ChatMessage, query string) (string, error) {
	f.record("ask")
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeGen) SuggestPhonemes(ctx context.Context, vibe string) ([]string, error) {
	f.record("suggest")
	if f.err != nil {
		return nil, f.err
	}
	return f.symbols, nil
}

func (f *fakeGen) ExpandVibe(ctx context.Context, vibe string) (string, error) {
	f.record("expand")
	if f.err != nil {
		return "", f.err
	}
	return f.expanded, nil
}

func fifteenWords() []conlang.VocabularyWord {
	words := make([]conlang.VocabularyWord, 15)
	for i := range words {
		words[i] = conlang.VocabularyWord{
			Native:        fmt.Sprintf("kel%d", i),
			Meaning:       fmt.Sprintf("meaning %d", i),
			Pronunciation: fmt.Sprintf("ˈkel.%d", i),
		}
	}
	return words
}

func editorController(t *testing.T, gen *fakeGen) *Controller {
	t.Helper()
	c := NewController(&memStore{}, gen)
	c.StartNew("Velka")
	c.SetVibe("wind over cold stone")
	c.SetPhonemes([]string{"p", "a", "t", "u", "ʃ"})
	return c
}

func TestInitialStateIsHome(t *testing.T) {
	c := NewController(&memStore{}, &fakeGen{})
	assert.Equal(t, StateHome, c.State())
	assert.Nil(t, c.Current())
}

func TestGeneratePopulatesRecord(t *testing.T) {
	gen := &fakeGen{core: &conlang.CoreResult{
		Description: "A language of wind and stone.",
		Grammar:     conlang.GrammarRules{WordOrder: "VSO"},
		Vocabulary:  fifteenWords(),
	}}
	c := editorController(t, gen)
	before := append([]string(nil), c.Current().Phonemes...)

	require.NoError(t, c.Generate(context.Background()))

	cur := c.Current()
	assert.Equal(t, "A language of wind and stone.", cur.Description)
	assert.Equal(t, "VSO", cur.Grammar.WordOrder)
	assert.Len(t, cur.Vocabulary, 15)
	assert.Equal(t, before, cur.Phonemes, "generation must not touch the phoneme selection")
	for _, w := range cur.Vocabulary {
		assert.NotEmpty(t, w.ID, "every word gets an id")
	}
	notice := c.Notice()
	require.NotNil(t, notice)
	assert.False(t, notice.IsError)
}

func TestGenerateValidationSkipsModel(t *testing.T) {
	gen := &fakeGen{}
	c := NewController(&memStore{}, gen)
	c.StartNew("   ")
	c.SetPhonemes([]string{"p"})

	err := c.Generate(context.Background())
	assert.Error(t, err)
	assert.Zero(t, gen.calls["generate"], "invalid input must not reach the model")
	require.NotNil(t, c.Notice())
	assert.True(t, c.Notice().IsError)

	c.SetName("Velka")
	c.SetPhonemes(nil)
	err = c.Generate(context.Background())
	assert.Error(t, err)
	assert.Zero(t, gen.calls["generate"])
}

func TestGenerateFailureLeavesRecordUntouched(t *testing.T) {
	gen := &fakeGen{coreErr: generation.ErrMalformedResponse}
	c := editorController(t, gen)

	err := c.Generate(context.Background())
	assert.Error(t, err)

	cur := c.Current()
	assert.Empty(t, cur.Vocabulary, "failed generation must not merge partial results")
	assert.Empty(t, cur.Description)
	require.NotNil(t, c.Notice())
	assert.True(t, c.Notice().IsError)
	assert.False(t, c.Busy(OpGenerate), "busy flag clears after failure")
}

func TestBusyRejectsSameKind(t *testing.T) {
	c := editorController(t, &fakeGen{})
	c.mu.Lock()
	c.busy[OpGenerate] = true
	c.mu.Unlock()

	err := c.Generate(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	// A different kind is unaffected.
	assert.False(t, c.Busy(OpExpand))
}

func TestExtendAppendsWithoutDuplicateIDs(t *testing.T) {
	gen := &fakeGen{
		core: &conlang.CoreResult{
			Description: "d",
			Vocabulary:  fifteenWords(),
		},
		words: []conlang.VocabularyWord{
			{Native: "ʃuʃa", Meaning: "wind", Pronunciation: "ˈʃu.ʃa"},
			{Native: "patu", Meaning: "stone", Pronunciation: "ˈpa.tu"},
		},
	}
	c := editorController(t, gen)
	require.NoError(t, c.Generate(context.Background()))
	require.NoError(t, c.Extend(context.Background(), "nature", 2))

	cur := c.Current()
	require.Len(t, cur.Vocabulary, 17)
	seen := make(map[string]bool)
	for _, w := range cur.Vocabulary {
		assert.False(t, seen[w.ID], "word ids must stay unique")
		seen[w.ID] = true
	}
}

func TestTranslateStoresResult(t *testing.T) {
	gen := &fakeGen{trans: &generation.Translation{
		Translation:   "ʃuʃa patu",
		Pronunciation: "ˈʃu.ʃa ˈpa.tu",
		Breakdown: []generation.BreakdownEntry{
			{Word: "ʃuʃa", Meaning: "wind"},
			{Word: "patu", Meaning: "stone (new)"},
		},
	}}
	c := editorController(t, gen)

	require.NoError(t, c.Translate(context.Background(), "wind stone"))
	tr := c.LastTranslation()
	require.NotNil(t, tr)
	assert.Equal(t, "ʃuʃa patu", tr.Translation)
	assert.Len(t, tr.Breakdown, 2)
}

func TestTranslateResolvingAfterGoHomeIsDropped(t *testing.T) {
	gen := &fakeGen{trans: &generation.Translation{Translation: "ʃuʃa"}}
	c := editorController(t, gen)
	gen.during = func() { c.GoHome() }

	require.NoError(t, c.Translate(context.Background(), "wind"))
	assert.Equal(t, StateHome, c.State())
	assert.Nil(t, c.LastTranslation(), "a result landing after leaving the editor stays dropped")
}

func TestAskAppendsTranscriptOnSuccessOnly(t *testing.T) {
	gen := &fakeGen{answer: "Use the preverbal particle."}
	c := editorController(t, gen)

	answer, err := c.Ask(context.Background(), "How do I mark tense?")
	require.NoError(t, err)
	assert.Equal(t, "Use the preverbal particle.", answer)

	tr := c.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, "user", tr[0].Role)
	assert.Equal(t, "assistant", tr[1].Role)

	gen.err = generation.ErrUnavailable
	_, err = c.Ask(context.Background(), "Another?")
	assert.Error(t, err)
	assert.Len(t, c.Transcript(), 2, "failed turns stay out of the transcript")
}

func TestSuggestReplacesPhonemes(t *testing.T) {
	gen := &fakeGen{symbols: []string{"k", "l", "ɸ", "i", "o"}}
	c := editorController(t, gen)

	require.NoError(t, c.Suggest(context.Background()))
	assert.Equal(t, []string{"k", "l", "ɸ", "i", "o"}, c.Current().Phonemes)
}

func TestExpandRewritesVibe(t *testing.T) {
	gen := &fakeGen{expanded: "A longer, richer description."}
	c := editorController(t, gen)

	require.NoError(t, c.Expand(context.Background()))
	assert.Equal(t, "A longer, richer description.", c.Current().Vibe)
}

func TestSaveListDelete(t *testing.T) {
	st := &memStore{}
	c := NewController(st, &fakeGen{})

	c.StartNew("Aari")
	c.SetPhonemes([]string{"a"})
	require.NoError(t, c.Save())
	firstID := c.Current().ID
	require.NotEmpty(t, firstID)

	c.StartNew("Beluth")
	c.SetPhonemes([]string{"b"})
	require.NoError(t, c.Save())

	all, err := c.ListSaved()
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, c.DeleteSaved(firstID))
	all, err = c.ListSaved()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Beluth", all[0].Name)
}

func TestOpenSavedEntersEditor(t *testing.T) {
	st := &memStore{}
	c := NewController(st, &fakeGen{})
	c.StartNew("Aari")
	c.SetPhonemes([]string{"a"})
	require.NoError(t, c.Save())
	id := c.Current().ID

	c.GoHome()
	assert.Nil(t, c.Current())

	require.NoError(t, c.OpenSaved(id))
	assert.Equal(t, StateEditor, c.State())
	assert.Equal(t, "Aari", c.Current().Name)
}

func TestOpenSharedShortCircuitsToEditor(t *testing.T) {
	orig := conlang.New("Velka")
	orig.EnsureID()
	orig.SetPhonemes([]string{"p", "a"})
	token, err := share.EncodeToken(orig)
	require.NoError(t, err)

	c := NewController(&memStore{}, &fakeGen{})
	require.NoError(t, c.OpenShared(token))
	assert.Equal(t, StateEditor, c.State())
	assert.Equal(t, "Velka", c.Current().Name)
}

func TestOpenSharedBadTokenKeepsState(t *testing.T) {
	c := NewController(&memStore{}, &fakeGen{})
	err := c.OpenShared("!!!garbage!!!")
	assert.Error(t, err)
	assert.Equal(t, StateHome, c.State())
	require.NotNil(t, c.Notice())
	assert.True(t, c.Notice().IsError)
}

func TestImportExportRoundTrip(t *testing.T) {
	c := NewController(&memStore{}, &fakeGen{})
	c.StartNew("Velka")
	c.SetPhonemes([]string{"p", "a"})

	data, err := c.ExportCurrent()
	require.NoError(t, err)

	c2 := NewController(&memStore{}, &fakeGen{})
	require.NoError(t, c2.ImportFile(data))
	assert.Equal(t, StateEditor, c2.State())
	assert.Equal(t, "Velka", c2.Current().Name)
}

func TestDismissNotice(t *testing.T) {
	c := editorController(t, &fakeGen{coreErr: generation.ErrRateLimited})
	_ = c.Generate(context.Background())
	require.NotNil(t, c.Notice())
	c.DismissNotice()
	assert.Nil(t, c.Notice())
}
