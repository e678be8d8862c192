package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/conlang"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "glossa.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleLang(name string) *conlang.Conlang {
	c := conlang.New(name)
	c.SetPhonemes([]string{"p", "a", "t"})
	c.ApplyCore(conlang.CoreResult{
		Description: "Sample.",
		Grammar:     conlang.GrammarRules{WordOrder: "SVO"},
		Vocabulary:  []conlang.VocabularyWord{{ID: "w1", Native: "pat", Meaning: "stone", Pronunciation: "ˈpʰa.tu"}},
	})
	return c
}

func TestSaveAssignsIDOnce(t *testing.T) {
	s := newTestStore(t)
	c := sampleLang("Velka")
	require.Empty(t, c.ID)

	require.NoError(t, s.Save(c))
	first := c.ID
	require.NotEmpty(t, first)

	require.NoError(t, s.Save(c))
	assert.Equal(t, first, c.ID)
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	c := sampleLang("Velka")
	require.NoError(t, s.Save(c))

	got, err := s.Get(c.ID)
	require.NoError(t, err)
	// Timestamps travel through JSON; compare serialized forms.
	if diff := cmp.Diff(c.Vocabulary, got.Vocabulary); diff != "" {
		t.Errorf("vocabulary mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.Phonemes, got.Phonemes)
	assert.Equal(t, "ˈpʰa.tu", got.Vocabulary[0].Pronunciation, "IPA must survive storage")
}

func TestSaveIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	c := sampleLang("Velka")
	require.NoError(t, s.Save(c))
	require.NoError(t, s.Save(c))
	require.NoError(t, s.Save(c))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Velka", all[0].Name)
}

func TestSaveReplacesContent(t *testing.T) {
	s := newTestStore(t)
	c := sampleLang("Velka")
	require.NoError(t, s.Save(c))

	c.Description = "Revised."
	require.NoError(t, s.Save(c))

	got, err := s.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Revised.", got.Description)
}

func TestListInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	a := sampleLang("Aari")
	b := sampleLang("Beluth")
	require.NoError(t, s.Save(a))
	require.NoError(t, s.Save(b))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Aari", all[0].Name)
	assert.Equal(t, "Beluth", all[1].Name)

	// Updating the first record must not move it.
	a.Description = "still first"
	require.NoError(t, s.Save(a))
	all, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, "Aari", all[0].Name)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	a := sampleLang("Aari")
	b := sampleLang("Beluth")
	require.NoError(t, s.Save(a))
	require.NoError(t, s.Save(b))

	require.NoError(t, s.Delete(a.ID))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)

	assert.True(t, errors.Is(s.Delete(a.ID), ErrNotFound))
	_, err = s.Get(a.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListSkipsCorruptedRow(t *testing.T) {
	s := newTestStore(t)
	a := sampleLang("Aari")
	require.NoError(t, s.Save(a))

	_, err := s.db.Exec("INSERT INTO languages (id, position, data) VALUES ('bad', 99, 'not json')")
	require.NoError(t, err)

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Aari", all[0].Name)
}
