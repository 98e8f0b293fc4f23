package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mailreply-be/internal/dto"
	"mailreply-be/pkg/blocks"
	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/draft"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu           sync.Mutex
	englishCalls []string
	generateReqs []*dto.GenerateRequest
	englishErr   error

	// block, when set, holds Translate and Generate until closed.
	block chan struct{}
	// englishBlock, when set, holds TranslateToEnglish until closed,
	// ignoring cancellation.
	englishBlock    chan struct{}
	englishInFlight int
	englishMax      int
}

func (f *fakeAPI) wait() {
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAPI) Translate(ctx context.Context, customerText string) (*dto.TranslateResponse, error) {
	f.wait()
	return &dto.TranslateResponse{TranslatedText: "訳: " + customerText, DetectedLanguage: "English"}, nil
}

func (f *fakeAPI) TranslateToEnglish(ctx context.Context, text string) (*dto.TranslateToEnglishResponse, error) {
	f.mu.Lock()
	f.englishCalls = append(f.englishCalls, text)
	err := f.englishErr
	f.englishInFlight++
	if f.englishInFlight > f.englishMax {
		f.englishMax = f.englishInFlight
	}
	f.mu.Unlock()

	if f.englishBlock != nil {
		<-f.englishBlock
	}

	f.mu.Lock()
	f.englishInFlight--
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &dto.TranslateToEnglishResponse{TranslatedText: "EN: " + text}, nil
}

func (f *fakeAPI) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	f.wait()
	f.mu.Lock()
	f.generateReqs = append(f.generateReqs, req)
	f.mu.Unlock()
	return &dto.GenerateResponse{Reply: "返信です。", EnglishTranslation: "This is the reply."}, nil
}

func (f *fakeAPI) English() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.englishCalls))
	copy(out, f.englishCalls)
	return out
}

func TestTranslateAppliesResult(t *testing.T) {
	s := New(&fakeAPI{})
	defer s.Close()

	assert.ErrorIs(t, s.Translate(context.Background()), ErrEmptyInput)

	s.Dispatch(draft.SetCustomerText{Text: "Hello"})
	require.NoError(t, s.Translate(context.Background()))

	doc := s.Document()
	assert.Equal(t, "訳: Hello", doc.TranslatedCustomerText)
	assert.Equal(t, "English", doc.DetectedLanguage)
	assert.False(t, s.Busy(SlotTranslate))
}

func TestBusySlotRejectsSecondCall(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{})}
	s := New(api)
	defer s.Close()
	s.Dispatch(draft.SetCustomerText{Text: "Hello"})

	done := make(chan error, 1)
	go func() { done <- s.Generate(context.Background()) }()

	require.Eventually(t, func() bool { return s.Busy(SlotGenerate) }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, s.Generate(context.Background()), ErrBusy)

	// The other slot is independent.
	translated := make(chan error, 1)
	go func() { translated <- s.Translate(context.Background()) }()
	require.Eventually(t, func() bool { return s.Busy(SlotTranslate) }, time.Second, 5*time.Millisecond)

	close(api.block)
	require.NoError(t, <-done)
	require.NoError(t, <-translated)

	assert.Len(t, api.generateReqs, 1)
	assert.False(t, s.Busy(SlotGenerate))
	assert.Equal(t, "返信です。", s.Document().Reply)
	assert.Equal(t, "This is the reply.", s.Document().EnglishTranslation)
}

func TestStaleTranslationIsDiscarded(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{})}
	s := New(api)
	defer s.Close()
	s.Dispatch(draft.SetCustomerText{Text: "first"})

	done := make(chan error, 1)
	go func() { done <- s.Translate(context.Background()) }()
	require.Eventually(t, func() bool { return s.Busy(SlotTranslate) }, time.Second, 5*time.Millisecond)

	s.Dispatch(draft.SetCustomerText{Text: "second"})
	close(api.block)
	require.NoError(t, <-done)

	assert.Empty(t, s.Document().TranslatedCustomerText)
}

func TestSetReplyDebouncesEnglish(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, WithDebounce(30*time.Millisecond))
	defer s.Close()

	s.SetReply("お")
	s.SetReply("お待ち")
	s.SetReply("お待ちしております。")

	require.Eventually(t, func() bool {
		return s.Document().EnglishTranslation == "EN: お待ちしております。"
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"お待ちしております。"}, api.English())
}

func TestEnglishCallsNeverOverlap(t *testing.T) {
	api := &fakeAPI{englishBlock: make(chan struct{})}
	s := New(api, WithDebounce(5*time.Millisecond))
	defer s.Close()

	s.SetReply("一回目")
	require.Eventually(t, func() bool { return len(api.English()) == 1 }, time.Second, 5*time.Millisecond)

	s.SetReply("二回目")
	time.Sleep(50 * time.Millisecond)
	s.SetReply("三回目")
	time.Sleep(50 * time.Millisecond)

	api.mu.Lock()
	assert.Equal(t, 1, api.englishMax)
	api.mu.Unlock()
	assert.Equal(t, []string{"一回目"}, api.English())

	close(api.englishBlock)

	require.Eventually(t, func() bool {
		return s.Document().EnglishTranslation == "EN: 三回目"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"一回目", "三回目"}, api.English())

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, 1, api.englishMax)
}

func TestEditCancelsInFlightEnglish(t *testing.T) {
	started := make(chan struct{}, 1)
	cancelled := make(chan struct{})
	api := &ctxAPI{started: started, cancelled: cancelled}
	s := New(api, WithDebounce(5*time.Millisecond))
	defer s.Close()

	s.SetReply("ご予約ありがとうございます。")
	<-started
	s.SetReply("ご予約ありがとうございました。")

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("in-flight english translation was not cancelled")
	}
}

// ctxAPI blocks TranslateToEnglish until its context is cancelled.
type ctxAPI struct {
	fakeAPI
	started   chan struct{}
	cancelled chan struct{}
	once      sync.Once
}

func (c *ctxAPI) TranslateToEnglish(ctx context.Context, text string) (*dto.TranslateToEnglishResponse, error) {
	select {
	case c.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	c.once.Do(func() { close(c.cancelled) })
	return nil, ctx.Err()
}

func TestEmptyReplyClearsEnglishImmediately(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, WithDebounce(30*time.Millisecond))
	defer s.Close()
	s.Dispatch(draft.ApplyReply{Reply: "返信", English: "Reply"})

	s.SetReply("返信を修正")
	s.SetReply("  ")

	assert.Empty(t, s.Document().EnglishTranslation)
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, api.English())
}

func TestCloseCancelsPendingEnglish(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, WithDebounce(30*time.Millisecond))

	s.SetReply("ご予約ありがとうございます。")
	s.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, api.English())
	assert.ErrorIs(t, s.Translate(context.Background()), ErrClosed)
}

func TestEnglishErrorsAreReported(t *testing.T) {
	api := &fakeAPI{englishErr: errors.New("502")}
	errs := make(chan error, 1)
	s := New(api, WithDebounce(10*time.Millisecond), WithErrorHandler(func(err error) { errs <- err }))
	defer s.Close()

	s.SetReply("よろしくお願いいたします。")

	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), "502")
	case <-time.After(time.Second):
		t.Fatal("expected english error")
	}
	assert.Empty(t, s.Document().EnglishTranslation)
}

func TestAddBlockUsesPolicy(t *testing.T) {
	s := New(&fakeAPI{}, WithAddPolicy(draft.PolicyMulti))
	defer s.Close()

	_, err := s.AddBlock(catalog.BlockParking)
	require.NoError(t, err)
	doc, err := s.AddBlock(catalog.BlockParking)
	require.NoError(t, err)
	assert.Len(t, doc.InfoBlocks, 2)

	_, err = s.AddBlock("spa")
	assert.ErrorIs(t, err, ErrUnknownBlock)
}

func TestGenerateRequest(t *testing.T) {
	d := draft.New()
	d.CustomerText = "Is breakfast included?"
	d.TranslatedCustomerText = "   "
	d.Notes = "朝食付きプラン"
	d.Tone = catalog.ToneLight
	d.InfoBlocks = []blocks.InfoBlock{{Id: "b1", Type: catalog.BlockBreakfast}}

	req := GenerateRequest(d)

	assert.Equal(t, dto.ActionGenerate, req.Action)
	assert.Equal(t, "Is breakfast included?", req.CustomerText)
	assert.Empty(t, req.TranslatedCustomerText)
	assert.Empty(t, req.Length)
	assert.Equal(t, catalog.ToneLight, req.Tone)
	require.Len(t, req.InfoBlocks, 1)

	req.InfoBlocks[0].Title = "changed"
	assert.Empty(t, d.InfoBlocks[0].Title)
}
