// Package session drives one reply draft against the reply endpoint: it
// owns the document, keeps at most one request in flight per action, and
// re-translates the reply into English shortly after the operator stops
// editing it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"mailreply-be/internal/dto"
	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/draft"
)

// DefaultDebounce is how long the reply must stay unchanged before it is
// sent for English translation.
const DefaultDebounce = time.Second

var (
	ErrBusy         = errors.New("session: action already in progress")
	ErrEmptyInput   = errors.New("session: customer text is empty")
	ErrClosed       = errors.New("session: closed")
	ErrUnknownBlock = errors.New("session: unknown block type")
)

// Slot names an action that may have one request in flight.
type Slot string

const (
	SlotTranslate Slot = "translate"
	SlotGenerate  Slot = "generate"
)

// API is the part of the endpoint a session needs. *client.Client satisfies it.
type API interface {
	Translate(ctx context.Context, customerText string) (*dto.TranslateResponse, error)
	TranslateToEnglish(ctx context.Context, text string) (*dto.TranslateToEnglishResponse, error)
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
}

type Option func(*Session)

func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

func WithAddPolicy(p draft.AddPolicy) Option {
	return func(s *Session) { s.policy = p }
}

// WithErrorHandler receives errors from background English translation,
// which otherwise go unreported.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Session) { s.onError = fn }
}

// WithInitialDocument starts the session from an existing document.
func WithInitialDocument(d draft.Document) Option {
	return func(s *Session) { s.doc = d.Clone() }
}

type Session struct {
	api      API
	catalog  *catalog.Catalog
	policy   draft.AddPolicy
	debounce time.Duration
	onError  func(error)

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	doc    draft.Document
	busy   map[Slot]bool
	closed bool

	// At most one English translation runs at a time. A timer that fires
	// while one is running sets englishQueued and is replayed when it ends.
	timer           *time.Timer
	englishGen      uint64
	englishInFlight bool
	englishQueued   bool
	englishCancel   context.CancelFunc
}

func New(api API, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		api:      api,
		catalog:  catalog.Default(),
		policy:   draft.PolicyToggle,
		debounce: DefaultDebounce,
		onError:  func(error) {},
		ctx:      ctx,
		cancel:   cancel,
		doc:      draft.New(),
		busy:     make(map[Slot]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns a snapshot of the current document.
func (s *Session) Document() draft.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Dispatch applies an action and returns the resulting document.
func (s *Session) Dispatch(action draft.Action) draft.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = draft.Reduce(s.doc, action)
	return s.doc.Clone()
}

// AddBlock adds a block of type t under the session's add policy.
func (s *Session) AddBlock(t catalog.BlockType) (draft.Document, error) {
	tpl, ok := s.catalog.Template(t)
	if !ok {
		return draft.Document{}, fmt.Errorf("%w: %s", ErrUnknownBlock, t)
	}
	return s.Dispatch(draft.AddBlock{Template: tpl, Policy: s.policy}), nil
}

func (s *Session) Busy(slot Slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[slot]
}

// Translate sends the customer text for translation. The result is dropped
// if the customer text changed while the request was in flight.
func (s *Session) Translate(ctx context.Context) error {
	text, err := s.acquire(SlotTranslate, func(d draft.Document) (string, error) {
		if strings.TrimSpace(d.CustomerText) == "" {
			return "", ErrEmptyInput
		}
		return d.CustomerText, nil
	})
	if err != nil {
		return err
	}
	defer s.release(SlotTranslate)

	res, err := s.api.Translate(ctx, text)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.CustomerText == text {
		s.doc = draft.Reduce(s.doc, draft.ApplyTranslation{Text: res.TranslatedText, Language: res.DetectedLanguage})
	}
	return nil
}

// Generate requests a reply for the current document. A pending English
// re-translation is cancelled since the reply is about to be replaced.
func (s *Session) Generate(ctx context.Context) error {
	var req *dto.GenerateRequest
	_, err := s.acquire(SlotGenerate, func(d draft.Document) (string, error) {
		if strings.TrimSpace(d.CustomerText) == "" {
			return "", ErrEmptyInput
		}
		req = GenerateRequest(d)
		return "", nil
	})
	if err != nil {
		return err
	}
	defer s.release(SlotGenerate)

	res, err := s.api.Generate(ctx, req)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopEnglishLocked()
	s.doc = draft.Reduce(s.doc, draft.ApplyReply{Reply: res.Reply, English: res.EnglishTranslation})
	return nil
}

// SetReply records an edit to the reply and restarts the English
// re-translation timer. An empty reply clears the translation at once.
func (s *Session) SetReply(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = draft.Reduce(s.doc, draft.SetReply{Reply: text})
	s.stopEnglishLocked()

	if s.closed {
		return
	}
	if strings.TrimSpace(text) == "" {
		s.doc = draft.Reduce(s.doc, draft.SetEnglishTranslation{Text: ""})
		return
	}

	gen := s.englishGen
	s.timer = time.AfterFunc(s.debounce, func() { s.translateReply(gen) })
}

// Close stops any pending or in-flight English re-translation.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopEnglishLocked()
	s.cancel()
}

func (s *Session) translateReply(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.englishGen {
		s.mu.Unlock()
		return
	}
	if s.englishInFlight {
		s.englishQueued = true
		s.mu.Unlock()
		return
	}
	text := s.doc.Reply
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.englishInFlight = true
	s.englishCancel = cancel
	s.mu.Unlock()

	res, err := s.api.TranslateToEnglish(ctx, text)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.englishInFlight = false
	s.englishCancel = nil

	if s.englishQueued {
		s.englishQueued = false
		if !s.closed {
			go s.translateReply(s.englishGen)
		}
		return
	}
	if s.closed || gen != s.englishGen || s.doc.Reply != text {
		return
	}
	if err != nil {
		s.onError(fmt.Errorf("english translation: %w", err))
		return
	}
	s.doc = draft.Reduce(s.doc, draft.SetEnglishTranslation{Text: res.TranslatedText})
}

// stopEnglishLocked invalidates every scheduled or running re-translation
// and cancels the request in flight, if any.
func (s *Session) stopEnglishLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.englishCancel != nil {
		s.englishCancel()
	}
	s.englishQueued = false
	s.englishGen++
}

// acquire claims slot and reads what the request needs from the document
// under the same lock.
func (s *Session) acquire(slot Slot, read func(draft.Document) (string, error)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	if s.busy[slot] {
		return "", ErrBusy
	}
	out, err := read(s.doc)
	if err != nil {
		return "", err
	}
	s.busy[slot] = true
	return out, nil
}

func (s *Session) release(slot Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, slot)
}

// GenerateRequest builds the generate payload from a document. Blank
// optional fields are left out.
func GenerateRequest(d draft.Document) *dto.GenerateRequest {
	req := &dto.GenerateRequest{
		Action:       dto.ActionGenerate,
		CustomerText: d.CustomerText,
		Notes:        d.Notes,
		Tone:         d.Tone,
		Length:       d.Length,
	}
	if strings.TrimSpace(d.TranslatedCustomerText) != "" {
		req.TranslatedCustomerText = d.TranslatedCustomerText
	}
	if len(d.InfoBlocks) > 0 {
		req.InfoBlocks = d.Clone().InfoBlocks
	}
	return req
}
