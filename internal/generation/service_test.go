package generation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/conlang"
)

// mockClient returns canned responses and records prompts. When gate is
// set, calls block inside the client until it is closed, signalling
// entry on enter first.
type mockClient struct {
	mu         sync.Mutex
	response   string
	err        error
	calls      int
	lastUser   string
	lastSchema string
	enter      chan struct{}
	gate       chan struct{}
}

func (m *mockClient) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastUser = user
	resp, err := m.response, m.err
	m.mu.Unlock()
	m.hold()
	return resp, err
}

func (m *mockClient) CompleteWithSchema(ctx context.Context, system, user, schema string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastUser = user
	m.lastSchema = schema
	resp, err := m.response, m.err
	m.mu.Unlock()
	m.hold()
	return resp, err
}

func (m *mockClient) hold() {
	if m.gate != nil {
		m.enter <- struct{}{}
		<-m.gate
	}
}

func testLang() *conlang.Conlang {
	c := conlang.New("Velka")
	c.SetPhonemes([]string{"p", "a", "t", "u"})
	c.ApplyCore(conlang.CoreResult{
		Description: "Clipped and percussive.",
		Grammar:     conlang.GrammarRules{WordOrder: "VSO", PluralRule: "-t", TenseRule: "particle", AdjectivePlacement: "after noun"},
		Vocabulary:  []conlang.VocabularyWord{{ID: "w1", Native: "patu", Meaning: "stone", Pronunciation: "ˈpa.tu"}},
	})
	return c
}

func TestGenerateCore(t *testing.T) {
	mc := &mockClient{response: `{
		"description": "A stern mountain tongue.",
		"grammar": {"wordOrder":"SOV","pluralRule":"reduplication","tenseRule":"suffix","adjectivePlacement":"before noun"},
		"vocabulary": [
			{"native":"pat","meaning":"stone","pronunciation":"ˈpat"},
			{"native":"tua","meaning":"sky","pronunciation":"ˈtu.a"}
		]
	}`}
	svc := NewService(mc)

	res, err := svc.GenerateCore(context.Background(), "Velka", "stern mountain tongue", []string{"p", "a", "t", "u"})
	require.NoError(t, err)
	assert.Equal(t, "A stern mountain tongue.", res.Description)
	assert.Equal(t, "SOV", res.Grammar.WordOrder)
	require.Len(t, res.Vocabulary, 2)
	for _, w := range res.Vocabulary {
		assert.NotEmpty(t, w.ID)
	}
	assert.Equal(t, coreSchema, mc.lastSchema)
	assert.Contains(t, mc.lastUser, "Velka")
	assert.Contains(t, mc.lastUser, "p a t u")
}

func TestGenerateCoreCollapsesConcurrentDuplicates(t *testing.T) {
	mc := &mockClient{
		response: `{
			"description": "A stern mountain tongue.",
			"grammar": {"wordOrder":"SOV","pluralRule":"reduplication","tenseRule":"suffix","adjectivePlacement":"before noun"},
			"vocabulary": [{"native":"pat","meaning":"stone","pronunciation":"ˈpat"}]
		}`,
		enter: make(chan struct{}, 1),
		gate:  make(chan struct{}),
	}
	svc := NewService(mc)

	results := make(chan error, 2)
	call := func() {
		_, err := svc.GenerateCore(context.Background(), "Velka", "stern", []string{"p", "a", "t"})
		results <- err
	}

	go call()
	<-mc.enter // first call is inside the client
	go call()
	// Give the duplicate time to reach the in-flight group, then let
	// the held request finish.
	time.Sleep(100 * time.Millisecond)
	close(mc.gate)

	require.NoError(t, <-results)
	require.NoError(t, <-results)
	assert.Equal(t, 1, mc.calls, "duplicate concurrent call must join the in-flight request")
}

func TestGenerateCoreRejectsBadInput(t *testing.T) {
	mc := &mockClient{}
	svc := NewService(mc)

	_, err := svc.GenerateCore(context.Background(), "", "", []string{"p"})
	assert.Error(t, err)
	_, err = svc.GenerateCore(context.Background(), "X", "", nil)
	assert.Error(t, err)
	assert.Zero(t, mc.calls, "no model call on invalid input")
}

func TestGenerateCoreMalformedResponse(t *testing.T) {
	mc := &mockClient{response: "Sorry, I cannot help with that."}
	svc := NewService(mc)

	_, err := svc.GenerateCore(context.Background(), "Velka", "", []string{"p", "a"})
	assert.True(t, errors.Is(err, ErrMalformedResponse), "got %v", err)
}

func TestGenerateCorePropagatesClientError(t *testing.T) {
	mc := &mockClient{err: ErrRateLimited}
	svc := NewService(mc)

	_, err := svc.GenerateCore(context.Background(), "Velka", "", []string{"p", "a"})
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestExtendVocabularyAvoidsIDCollisions(t *testing.T) {
	mc := &mockClient{response: `{"vocabulary":[
		{"id":"w1","native":"tupa","meaning":"river","pronunciation":"ˈtu.pa"},
		{"native":"apt","meaning":"wind","pronunciation":"ˈapt"}
	]}`}
	svc := NewService(mc)
	lang := testLang()

	words, err := svc.ExtendVocabulary(context.Background(), lang, "nature", 2)
	require.NoError(t, err)
	require.Len(t, words, 2)

	seen := map[string]bool{"w1": true}
	for _, w := range words {
		require.NotEmpty(t, w.ID)
		assert.False(t, seen[w.ID], "id %s collides", w.ID)
		seen[w.ID] = true
	}
	assert.Contains(t, mc.lastUser, "nature")
	assert.Contains(t, mc.lastUser, "patu = stone")
}

func TestTranslateText(t *testing.T) {
	mc := &mockClient{response: "```json\n" + `{
		"translation": "patu tua",
		"pronunciation": "ˈpa.tu ˈtu.a",
		"breakdown": [{"word":"patu","meaning":"stone"},{"word":"tua","meaning":"sky (new)"}]
	}` + "\n```"}
	svc := NewService(mc)

	tr, err := svc.TranslateText(context.Background(), testLang(), "the stone sky")
	require.NoError(t, err)
	assert.Equal(t, "patu tua", tr.Translation)
	assert.Equal(t, "ˈpa.tu ˈtu.a", tr.Pronunciation)
	require.Len(t, tr.Breakdown, 2)
	assert.Contains(t, mc.lastUser, "VSO")
}

func TestAskAssistantResendsTranscript(t *testing.T) {
	mc := &mockClient{response: "Your plural suffix is -t."}
	svc := NewService(mc)

	transcript := []ChatMessage{
		{Role: "user", Content: "How do plurals work?"},
		{Role: "assistant", Content: "With a suffix."},
	}
	answer, err := svc.AskAssistant(context.Background(), testLang(), transcript, "Which suffix?")
	require.NoError(t, err)
	assert.Equal(t, "Your plural suffix is -t.", answer)
	assert.Contains(t, mc.lastUser, "How do plurals work?")
	assert.Contains(t, mc.lastUser, "Which suffix?")
}

func TestSuggestPhonemesFiltersUnknown(t *testing.T) {
	mc := &mockClient{response: `{"phonemes":["p","☃","a","zz","ʃ","p"]}`}
	svc := NewService(mc)

	got, err := svc.SuggestPhonemes(context.Background(), "soft and whispering")
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "a", "ʃ"}, got)
}

func TestSuggestPhonemesAllUnknown(t *testing.T) {
	mc := &mockClient{response: `{"phonemes":["☃","Q9"]}`}
	svc := NewService(mc)

	_, err := svc.SuggestPhonemes(context.Background(), "soft")
	assert.True(t, errors.Is(err, ErrMalformedResponse), "got %v", err)
}

func TestExpandVibe(t *testing.T) {
	mc := &mockClient{response: "It murmurs like wind through dry grass."}
	svc := NewService(mc)

	out, err := svc.ExpandVibe(context.Background(), "windy steppe")
	require.NoError(t, err)
	assert.Contains(t, out, "murmurs")

	_, err = svc.ExpandVibe(context.Background(), "   ")
	assert.Error(t, err)
}
