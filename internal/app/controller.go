// Package app holds the application controller: view state, per-operation
// busy flags, the chat transcript, and the merge of generation results
// into the working record. It renders nothing; the CLI and TUI layers
// only dispatch intents and read state.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"glossa/internal/conlang"
	"glossa/internal/generation"
	"glossa/internal/logging"
	"glossa/internal/share"
	"glossa/internal/store"
)

// State is the current top-level view.
type State int

const (
	StateHome State = iota
	StateEditor
	StateLibrary
)

func (s State) String() string {
	switch s {
	case StateEditor:
		return "editor"
	case StateLibrary:
		return "library"
	default:
		return "home"
	}
}

// Operation identifies one long-running model-backed action. Busy flags
// are tracked per operation so one in-flight request never blocks or
// misrepresents another.
type Operation string

const (
	OpGenerate  Operation = "generate"
	OpExtend    Operation = "extend"
	OpTranslate Operation = "translate"
	OpAsk       Operation = "ask"
	OpSuggest   Operation = "suggest"
	OpExpand    Operation = "expand"
)

// ErrBusy is returned when an operation of the same kind is already
// outstanding. The superseding trigger is rejected, not queued.
var ErrBusy = errors.New("an operation of this kind is already running")

// Generator is the slice of the generation service the controller uses.
type Generator interface {
	GenerateCore(ctx context.Context, name, vibe string, phonemes []string) (*conlang.CoreResult, error)
	ExtendVocabulary(ctx context.Context, c *conlang.Conlang, theme string, count int) ([]conlang.VocabularyWord, error)
	TranslateText(ctx context.Context, c *conlang.Conlang, text string) (*generation.Translation, error)
	AskAssistant(ctx context.Context, c *conlang.Conlang, transcript []generation.ChatMessage, query string) (string, error)
	SuggestPhonemes(ctx context.Context, vibe string) ([]string, error)
	ExpandVibe(ctx context.Context, vibe string) (string, error)
}

// Notice is a transient, dismissible user notification.
type Notice struct {
	Text    string
	IsError bool
}

// Controller owns the transient application state. All dependencies are
// injected; it holds no ambient globals.
type Controller struct {
	store store.Store
	gen   Generator

	mu              sync.Mutex
	state           State
	current         *conlang.Conlang
	transcript      []generation.ChatMessage
	busy            map[Operation]bool
	notice          *Notice
	lastTranslation *generation.Translation
}

// NewController creates a controller in the Home state.
func NewController(st store.Store, gen Generator) *Controller {
	return &Controller{
		store: st,
		gen:   gen,
		state: StateHome,
		busy:  make(map[Operation]bool),
	}
}

// State returns the current view state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the record being edited, or nil outside the editor.
func (c *Controller) Current() *conlang.Conlang {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Transcript returns a copy of the assistant conversation.
func (c *Controller) Transcript() []generation.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]generation.ChatMessage(nil), c.transcript...)
}

// Busy reports whether an operation of the given kind is outstanding.
func (c *Controller) Busy(op Operation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[op]
}

// Notice returns the pending notification, if any.
func (c *Controller) Notice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// DismissNotice clears the pending notification.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = nil
}

// LastTranslation returns the most recent translation result.
func (c *Controller) LastTranslation() *generation.Translation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTranslation
}

func (c *Controller) setNotice(text string, isErr bool) {
	c.notice = &Notice{Text: text, IsError: isErr}
}

// StartNew opens the editor on a fresh record.
func (c *Controller) StartNew(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = conlang.New(name)
	c.transcript = nil
	c.lastTranslation = nil
	c.state = StateEditor
	logging.UI("StartNew: %q", name)
}

// OpenSaved loads a record from the store into the editor.
func (c *Controller) OpenSaved(id string) error {
	rec, err := c.store.Get(id)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.setNotice(fmt.Sprintf("Could not open language: %v", err), true)
		return err
	}
	c.current = rec
	c.transcript = nil
	c.lastTranslation = nil
	c.state = StateEditor
	return nil
}

// OpenShared short-circuits Home straight to the editor with the
// decoded record. Malformed tokens are reported and leave the state
// unchanged.
func (c *Controller) OpenShared(token string) error {
	rec, err := share.DecodeToken(token)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.setNotice(fmt.Sprintf("Could not open shared language: %v", err), true)
		return err
	}
	c.current = rec
	c.transcript = nil
	c.lastTranslation = nil
	c.state = StateEditor
	logging.UI("OpenShared: %q", rec.Name)
	return nil
}

// GoHome navigates to the home view. The in-memory record is discarded;
// unsaved work is gone, matching explicit-save semantics.
func (c *Controller) GoHome() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateHome
	c.current = nil
	c.transcript = nil
	c.lastTranslation = nil
}

// GoLibrary navigates to the saved-languages view.
func (c *Controller) GoLibrary() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateLibrary
}

// SetName updates the working record's name.
func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.Name = name
	}
}

// SetVibe updates the working record's aesthetic description.
func (c *Controller) SetVibe(vibe string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.Vibe = vibe
	}
}

// SetPhonemes replaces the working record's phoneme selection.
func (c *Controller) SetPhonemes(symbols []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.SetPhonemes(symbols)
	}
}

// TogglePhoneme adds or removes one symbol from the selection.
func (c *Controller) TogglePhoneme(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return
	}
	for i, s := range c.current.Phonemes {
		if s == symbol {
			c.current.Phonemes = append(c.current.Phonemes[:i], c.current.Phonemes[i+1:]...)
			return
		}
	}
	c.current.Phonemes = append(c.current.Phonemes, symbol)
}

// begin marks an operation in flight. Returns false when one of the
// same kind is already outstanding.
func (c *Controller) begin(op Operation) bool {
	if c.busy[op] {
		c.setNotice("That request is already running.", true)
		return false
	}
	c.busy[op] = true
	return true
}

// Generate runs core generation for the working record. Validation
// failures are reported inline and never reach the model. On failure the
// record keeps whatever it had before the call.
func (c *Controller) Generate(ctx context.Context) error {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return fmt.Errorf("no language open")
	}
	if err := c.current.Validate(); err != nil {
		c.setNotice(err.Error(), true)
		c.mu.Unlock()
		return err
	}
	if !c.begin(OpGenerate) {
		c.mu.Unlock()
		return ErrBusy
	}
	name := c.current.Name
	vibe := c.current.Vibe
	phonemes := append([]string(nil), c.current.Phonemes...)
	c.mu.Unlock()

	res, err := c.gen.GenerateCore(ctx, name, vibe, phonemes)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy[OpGenerate] = false
	if err != nil {
		c.setNotice(generation.Describe(err), true)
		return err
	}
	if c.current == nil {
		// User navigated away while the request was in flight.
		return nil
	}
	c.current.ApplyCore(*res)
	c.setNotice(fmt.Sprintf("Generated %d words and grammar for %s.", len(res.Vocabulary), c.current.Name), false)
	return nil
}

// Extend coins more vocabulary on a theme.
func (c *Controller) Extend(ctx context.Context, theme string, count int) error {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return fmt.Errorf("no language open")
	}
	if !c.begin(OpExtend) {
		c.mu.Unlock()
		return ErrBusy
	}
	snapshot := c.current.Clone()
	c.mu.Unlock()

	words, err := c.gen.ExtendVocabulary(ctx, snapshot, theme, count)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy[OpExtend] = false
	if err != nil {
		c.setNotice(generation.Describe(err), true)
		return err
	}
	if c.current == nil {
		return nil
	}
	c.current.AppendVocabulary(words)
	c.setNotice(fmt.Sprintf("Added %d words.", len(words)), false)
	return nil
}

// Translate renders source text in the working language.
func (c *Controller) Translate(ctx context.Context, text string) error {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return fmt.Errorf("no language open")
	}
	if !c.begin(OpTranslate) {
		c.mu.Unlock()
		return ErrBusy
	}
	snapshot := c.current.Clone()
	c.mu.Unlock()

	tr, err := c.gen.TranslateText(ctx, snapshot, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy[OpTranslate] = false
	if err != nil {
		c.setNotice(generation.Describe(err), true)
		return err
	}
	if c.current == nil {
		return nil
	}
	c.lastTranslation = tr
	return nil
}

// Ask sends a question to the assistant and appends both turns to the
// transcript on success.
func (c *Controller) Ask(ctx context.Context, query string) (string, error) {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return "", fmt.Errorf("no language open")
	}
	if !c.begin(OpAsk) {
		c.mu.Unlock()
		return "", ErrBusy
	}
	snapshot := c.current.Clone()
	transcript := append([]generation.ChatMessage(nil), c.transcript...)
	c.mu.Unlock()

	answer, err := c.gen.AskAssistant(ctx, snapshot, transcript, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy[OpAsk] = false
	if err != nil {
		c.setNotice(generation.Describe(err), true)
		return "", err
	}
	c.transcript = append(c.transcript,
		generation.ChatMessage{Role: "user", Content: query},
		generation.ChatMessage{Role: "assistant", Content: answer},
	)
	return answer, nil
}

// Suggest replaces the phoneme selection with an inventory matching the
// vibe. The overwrite is wholesale, as the suggestion is advisory.
func (c *Controller) Suggest(ctx context.Context) error {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return fmt.Errorf("no language open")
	}
	if !c.begin(OpSuggest) {
		c.mu.Unlock()
		return ErrBusy
	}
	vibe := c.current.Vibe
	c.mu.Unlock()

	symbols, err := c.gen.SuggestPhonemes(ctx, vibe)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy[OpSuggest] = false
	if err != nil {
		c.setNotice(generation.Describe(err), true)
		return err
	}
	if c.current == nil {
		return nil
	}
	c.current.SetPhonemes(symbols)
	c.setNotice(fmt.Sprintf("Suggested %d phonemes.", len(symbols)), false)
	return nil
}

// Expand rewrites the vibe field with an expanded description.
func (c *Controller) Expand(ctx context.Context) error {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return fmt.Errorf("no language open")
	}
	if !c.begin(OpExpand) {
		c.mu.Unlock()
		return ErrBusy
	}
	vibe := c.current.Vibe
	c.mu.Unlock()

	expanded, err := c.gen.ExpandVibe(ctx, vibe)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy[OpExpand] = false
	if err != nil {
		c.setNotice(generation.Describe(err), true)
		return err
	}
	if c.current == nil {
		return nil
	}
	c.current.Vibe = expanded
	return nil
}

// Save persists the working record into the collection.
func (c *Controller) Save() error {
	c.mu.Lock()
	cur := c.current
	c.mu.Unlock()
	if cur == nil {
		return fmt.Errorf("no language open")
	}

	err := c.store.Save(cur)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.setNotice(fmt.Sprintf("Could not save: %v", err), true)
		return err
	}
	c.setNotice(fmt.Sprintf("Saved %s.", cur.Name), false)
	return nil
}

// ListSaved returns the saved collection.
func (c *Controller) ListSaved() ([]*conlang.Conlang, error) {
	return c.store.List()
}

// DeleteSaved removes a record from the collection by id.
func (c *Controller) DeleteSaved(id string) error {
	err := c.store.Delete(id)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.setNotice(fmt.Sprintf("Could not delete: %v", err), true)
		return err
	}
	c.setNotice("Language deleted.", false)
	return nil
}

// ExportCurrent serializes the working record for file export.
func (c *Controller) ExportCurrent() ([]byte, error) {
	c.mu.Lock()
	cur := c.current
	c.mu.Unlock()
	if cur == nil {
		return nil, fmt.Errorf("no language open")
	}
	return share.ExportJSON(cur)
}

// ImportFile opens the editor on a record parsed from exported JSON.
// On failure the prior state is left intact.
func (c *Controller) ImportFile(data []byte) error {
	rec, err := share.ImportJSON(data)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.setNotice(err.Error(), true)
		return err
	}
	c.current = rec
	c.transcript = nil
	c.lastTranslation = nil
	c.state = StateEditor
	return nil
}

// ShareCurrent builds a share link for the working record.
func (c *Controller) ShareCurrent(baseURL string) (string, error) {
	c.mu.Lock()
	cur := c.current
	c.mu.Unlock()
	if cur == nil {
		return "", fmt.Errorf("no language open")
	}
	return share.ShareURL(baseURL, cur)
}
