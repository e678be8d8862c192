package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"glossa/internal/conlang"
	"glossa/internal/logging"
	"glossa/internal/phoneme"
)

// CoreVocabularySize is the number of words requested from a core
// generation call.
const CoreVocabularySize = 15

// ChatMessage is one turn of the assistant transcript. The transcript is
// resent in full on every call; the service holds no conversation state.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// BreakdownEntry maps one word of a translation to its gloss.
type BreakdownEntry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// Translation is the result of translating source text into a conlang.
type Translation struct {
	Translation   string           `json:"translation"`
	Pronunciation string           `json:"pronunciation"`
	Breakdown     []BreakdownEntry `json:"breakdown"`
}

// Service exposes the six model-backed operations. It never mutates a
// Conlang; callers merge results. Duplicate in-flight requests for the
// same operation and inputs are collapsed into one call.
type Service struct {
	client Client
	group  singleflight.Group
}

// NewService creates a Service over the given client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

func flightKey(kind string, parts ...string) string {
	return kind + "\x1f" + strings.Join(parts, "\x1f")
}

// GenerateCore derives the description, grammar, and starter vocabulary
// for a new language.
func (s *Service) GenerateCore(ctx context.Context, name, vibe string, phonemes []string) (*conlang.CoreResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("language name is required")
	}
	if len(phonemes) == 0 {
		return nil, fmt.Errorf("phoneme selection is empty")
	}

	key := flightKey("core", name, vibe, strings.Join(phonemes, " "))
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		logging.Generation("GenerateCore: name=%q phonemes=%d", name, len(phonemes))
		raw, err := s.client.CompleteWithSchema(ctx, systemPrompt, buildCorePrompt(name, vibe, phonemes), coreSchema)
		if err != nil {
			return nil, err
		}

		var res conlang.CoreResult
		if err := decodeObject(raw, &res); err != nil {
			return nil, err
		}
		if res.Description == "" || len(res.Vocabulary) == 0 {
			return nil, fmt.Errorf("%w: missing description or vocabulary", ErrMalformedResponse)
		}
		for i := range res.Vocabulary {
			res.Vocabulary[i].ID = uuid.NewString()
		}
		return &res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*conlang.CoreResult), nil
}

// ExtendVocabulary coins count new words for an existing language. The
// returned words carry ids distinct from the record's existing ids.
func (s *Service) ExtendVocabulary(ctx context.Context, c *conlang.Conlang, theme string, count int) ([]conlang.VocabularyWord, error) {
	if count <= 0 {
		return nil, fmt.Errorf("word count must be positive")
	}

	key := flightKey("extend", c.ID, c.Name, theme, fmt.Sprintf("%d", count))
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		logging.Generation("ExtendVocabulary: lang=%q theme=%q count=%d", c.Name, theme, count)
		raw, err := s.client.CompleteWithSchema(ctx, systemPrompt, buildExtendPrompt(c, theme, count), extendSchema)
		if err != nil {
			return nil, err
		}

		var res struct {
			Vocabulary []conlang.VocabularyWord `json:"vocabulary"`
		}
		if err := decodeObject(raw, &res); err != nil {
			return nil, err
		}
		if len(res.Vocabulary) == 0 {
			return nil, fmt.Errorf("%w: empty vocabulary", ErrMalformedResponse)
		}

		taken := make(map[string]bool, len(c.Vocabulary))
		for _, w := range c.Vocabulary {
			taken[w.ID] = true
		}
		for i := range res.Vocabulary {
			if res.Vocabulary[i].ID == "" || taken[res.Vocabulary[i].ID] {
				res.Vocabulary[i].ID = uuid.NewString()
			}
			taken[res.Vocabulary[i].ID] = true
		}
		return res.Vocabulary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]conlang.VocabularyWord), nil
}

// TranslateText translates source text into the language, coining words
// where the dictionary lacks coverage.
func (s *Service) TranslateText(ctx context.Context, c *conlang.Conlang, text string) (*Translation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("nothing to translate")
	}

	key := flightKey("translate", c.ID, text)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		logging.Generation("TranslateText: lang=%q text_len=%d", c.Name, len(text))
		raw, err := s.client.CompleteWithSchema(ctx, systemPrompt, buildTranslatePrompt(c, text), translationSchema)
		if err != nil {
			return nil, err
		}

		var res Translation
		if err := decodeObject(raw, &res); err != nil {
			return nil, err
		}
		if res.Translation == "" {
			return nil, fmt.Errorf("%w: empty translation", ErrMalformedResponse)
		}
		return &res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Translation), nil
}

// AskAssistant answers a free-form linguistic question about the
// language. Advisory only; it has no structural effect on the record.
func (s *Service) AskAssistant(ctx context.Context, c *conlang.Conlang, transcript []ChatMessage, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("empty question")
	}

	logging.Generation("AskAssistant: lang=%q transcript=%d", c.Name, len(transcript))
	answer, err := s.client.Complete(ctx, systemPrompt, buildAssistantPrompt(c, transcript, query))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", ErrEmptyResponse
	}
	return answer, nil
}

// SuggestPhonemes proposes an inventory matching the vibe. Symbols not
// in the catalog are dropped; the caller may overwrite its selection
// wholesale with the result.
func (s *Service) SuggestPhonemes(ctx context.Context, vibe string) ([]string, error) {
	if strings.TrimSpace(vibe) == "" {
		return nil, fmt.Errorf("describe the language first")
	}

	key := flightKey("suggest", vibe)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		logging.Generation("SuggestPhonemes: vibe_len=%d", len(vibe))
		raw, err := s.client.CompleteWithSchema(ctx, systemPrompt, buildSuggestPrompt(vibe), suggestSchema)
		if err != nil {
			return nil, err
		}

		var res struct {
			Phonemes []string `json:"phonemes"`
		}
		if err := decodeObject(raw, &res); err != nil {
			return nil, err
		}
		known := phoneme.FilterKnown(res.Phonemes)
		if len(known) == 0 {
			return nil, fmt.Errorf("%w: no recognizable phonemes", ErrMalformedResponse)
		}
		return known, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// ExpandVibe grows a short aesthetic note into a fuller description. The
// caller may overwrite the vibe field with the result.
func (s *Service) ExpandVibe(ctx context.Context, vibe string) (string, error) {
	if strings.TrimSpace(vibe) == "" {
		return "", fmt.Errorf("write a few words to expand first")
	}

	logging.Generation("ExpandVibe: vibe_len=%d", len(vibe))
	expanded, err := s.client.Complete(ctx, systemPrompt, buildExpandPrompt(vibe))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(expanded) == "" {
		return "", ErrEmptyResponse
	}
	return expanded, nil
}
