package share

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/conlang"
)

func unicodeLang() *conlang.Conlang {
	c := conlang.New("Velka")
	c.EnsureID()
	c.SetPhonemes([]string{"pʰ", "a", "t", "u", "ʃ"})
	c.Vibe = "wind over cold stone"
	c.Grammar = conlang.GrammarRules{
		WordOrder:          "VSO",
		PluralRule:         "suffix -ʃ",
		TenseRule:          "preverbal particle",
		AdjectivePlacement: "after noun",
	}
	c.Vocabulary = []conlang.VocabularyWord{
		{ID: "w1", Native: "ˈpʰa.tu", Meaning: "stone", Pronunciation: "ˈpʰa.tu"},
		{ID: "w2", Native: "ʃuʃa", Meaning: "wind", Pronunciation: "ˈʃu.ʃa"},
	}
	return c
}

func TestFileRoundTrip(t *testing.T) {
	orig := unicodeLang()
	data, err := ExportJSON(orig)
	require.NoError(t, err)

	got, err := ImportJSON(data)
	require.NoError(t, err)
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	_, err := ImportJSON([]byte("{not json"))
	assert.Error(t, err)

	_, err = ImportJSON([]byte(`{"phonemes":["p"]}`))
	assert.Error(t, err, "record without a name is rejected")
}

func TestTokenRoundTripWithUnicode(t *testing.T) {
	orig := unicodeLang()
	token, err := EncodeToken(orig)
	require.NoError(t, err)
	assert.NotContains(t, token, "+", "token must be URL-safe")
	assert.NotContains(t, token, "/", "token must be URL-safe")

	got, err := DecodeToken(token)
	require.NoError(t, err)
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "ˈpʰa.tu", got.Vocabulary[0].Native)
}

func TestDecodeTokenReportsCorruption(t *testing.T) {
	orig := unicodeLang()
	token, err := EncodeToken(orig)
	require.NoError(t, err)

	_, err = DecodeToken(token[:len(token)/2])
	assert.Error(t, err, "truncated token must be reported")

	_, err = DecodeToken("!!!not-base64!!!")
	assert.Error(t, err)

	_, err = DecodeToken("")
	assert.Error(t, err)
}

func TestShareURLRoundTrip(t *testing.T) {
	orig := unicodeLang()
	link, err := ShareURL("https://glossa.dev/s", orig)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://glossa.dev/s?"))

	got, err := FromURL(link)
	require.NoError(t, err)
	assert.Equal(t, orig.Name, got.Name)
	assert.Equal(t, orig.Vocabulary, got.Vocabulary)
}

func TestFromURLMissingParam(t *testing.T) {
	_, err := FromURL("https://glossa.dev/s?other=1")
	assert.Error(t, err)
}
