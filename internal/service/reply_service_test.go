package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mailreply-be/internal/dto"
	"mailreply-be/internal/pkg/apperror"
	"mailreply-be/internal/pkg/logger"
	"mailreply-be/internal/repository/memory"
	"mailreply-be/pkg/blocks"
	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/llm"
	"mailreply-be/pkg/llm/llmtest"
	"mailreply-be/pkg/replyprompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(stub *llmtest.StubProvider, cache *memory.TranslationCache, models ModelOverrides) IReplyService {
	return NewReplyService(stub, catalog.Default(), cache, models, logger.NewNopLogger())
}

func breakfastRequest() *dto.GenerateRequest {
	return &dto.GenerateRequest{
		Action:       dto.ActionGenerate,
		CustomerText: "Is breakfast included?",
		InfoBlocks: []blocks.InfoBlock{{
			Id:   "b1",
			Type: catalog.BlockBreakfast,
			Fields: []blocks.BlockField{
				{Id: "f1", Label: "料金", Value: "4,400円"},
			},
		}},
		Tone: catalog.TonePolite,
	}
}

func TestTranslate(t *testing.T) {
	t.Run("returns translation and detected language", func(t *testing.T) {
		stub := llmtest.NewStubProvider(`{"language":"English","translatedText":"朝食は含まれていますか？"}`)
		svc := newTestService(stub, nil, ModelOverrides{Translation: "gpt-4o-mini"})

		res, err := svc.Translate(context.Background(), &dto.TranslateRequest{CustomerText: "Is breakfast included?"})
		require.NoError(t, err)

		assert.Equal(t, "朝食は含まれていますか？", res.TranslatedText)
		assert.Equal(t, "English", res.DetectedLanguage)

		calls := stub.Calls()
		require.Len(t, calls, 1)
		assert.Contains(t, calls[0].Prompt(), "Is breakfast included?")
		assert.Equal(t, "gpt-4o-mini", calls[0].Options.Model)
		require.NotNil(t, calls[0].Options.JSONSchema)
		assert.Equal(t, replyprompt.TranslationSchemaName, calls[0].Options.JSONSchema.Name)
	})

	t.Run("unparseable output is a parse error", func(t *testing.T) {
		stub := llmtest.NewStubProvider("Sorry, I cannot help with that.")
		svc := newTestService(stub, nil, ModelOverrides{})

		_, err := svc.Translate(context.Background(), &dto.TranslateRequest{CustomerText: "hello"})

		assert.True(t, apperror.Is(err, apperror.KindParse))
	})

	t.Run("model failure is an upstream error", func(t *testing.T) {
		stub := llmtest.NewStubProvider().Then(llmtest.Response{Err: errors.New("503 from provider")})
		svc := newTestService(stub, nil, ModelOverrides{})

		_, err := svc.Translate(context.Background(), &dto.TranslateRequest{CustomerText: "hello"})

		assert.True(t, apperror.Is(err, apperror.KindUpstream))
	})
}

func TestTranslateToEnglish(t *testing.T) {
	stub := llmtest.NewStubProvider("  Thank you for your message.  ", "   ")
	svc := newTestService(stub, nil, ModelOverrides{})

	res, err := svc.TranslateToEnglish(context.Background(), &dto.TranslateToEnglishRequest{Text: "ご連絡ありがとうございます。"})
	require.NoError(t, err)
	assert.Equal(t, "Thank you for your message.", res.TranslatedText)
	assert.Nil(t, stub.Calls()[0].Options.JSONSchema)

	_, err = svc.TranslateToEnglish(context.Background(), &dto.TranslateToEnglishRequest{Text: "別の文章です。"})
	assert.True(t, apperror.Is(err, apperror.KindEmptyResult))
}

func TestGenerate(t *testing.T) {
	t.Run("reply and english translation", func(t *testing.T) {
		stub := llmtest.NewStubProvider("朝食は4,400円でご用意しております。", "Breakfast is available for 4,400 yen.")
		svc := newTestService(stub, nil, ModelOverrides{Reply: "gpt-4o", Translation: "gpt-4o-mini"})

		res, err := svc.Generate(context.Background(), breakfastRequest())
		require.NoError(t, err)

		assert.Equal(t, "朝食は4,400円でご用意しております。", res.Reply)
		assert.Equal(t, "Breakfast is available for 4,400 yen.", res.EnglishTranslation)

		calls := stub.Calls()
		require.Len(t, calls, 2)
		assert.Contains(t, calls[0].Prompt(), "4,400円")
		assert.Contains(t, calls[0].Prompt(), "朝食")
		assert.Equal(t, "gpt-4o", calls[0].Options.Model)
		assert.Contains(t, calls[1].Prompt(), "朝食は4,400円でご用意しております。")
		assert.Equal(t, "gpt-4o-mini", calls[1].Options.Model)
	})

	t.Run("english failure still returns the reply", func(t *testing.T) {
		stub := llmtest.NewStubProvider("ご用意しております。").
			Then(llmtest.Response{Err: errors.New("rate limited")})
		svc := newTestService(stub, nil, ModelOverrides{})

		res, err := svc.Generate(context.Background(), breakfastRequest())
		require.NoError(t, err)

		assert.Equal(t, "ご用意しております。", res.Reply)
		assert.Empty(t, res.EnglishTranslation)
		assert.Equal(t, 2, stub.CallCount())
	})

	t.Run("blank reply skips the english call", func(t *testing.T) {
		stub := llmtest.NewStubProvider(" \n ", "should not be used")
		svc := newTestService(stub, nil, ModelOverrides{})

		_, err := svc.Generate(context.Background(), breakfastRequest())

		assert.True(t, apperror.Is(err, apperror.KindEmptyResult))
		assert.Equal(t, 1, stub.CallCount())
	})

	t.Run("reply failure is an upstream error", func(t *testing.T) {
		stub := llmtest.NewStubProvider().Then(llmtest.Response{Err: context.DeadlineExceeded})
		svc := newTestService(stub, nil, ModelOverrides{})

		_, err := svc.Generate(context.Background(), breakfastRequest())

		assert.True(t, apperror.Is(err, apperror.KindUpstream))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, stub.CallCount())
	})
}

func TestMissingCredentialsMakesNoCalls(t *testing.T) {
	stub := llmtest.NewStubProvider("unused")
	stub.CredentialsErr = llm.ErrMissingCredentials
	svc := newTestService(stub, nil, ModelOverrides{})
	ctx := context.Background()

	_, err := svc.Translate(ctx, &dto.TranslateRequest{CustomerText: "hello"})
	assert.True(t, apperror.Is(err, apperror.KindConfiguration))

	_, err = svc.TranslateToEnglish(ctx, &dto.TranslateToEnglishRequest{Text: "こんにちは"})
	assert.True(t, apperror.Is(err, apperror.KindConfiguration))

	_, err = svc.Generate(ctx, breakfastRequest())
	assert.True(t, apperror.Is(err, apperror.KindConfiguration))
	assert.ErrorIs(t, err, llm.ErrMissingCredentials)

	assert.Equal(t, 0, stub.CallCount())
}

func TestEnglishCache(t *testing.T) {
	stub := llmtest.NewStubProvider("Thank you.", "ありがとうございます。")
	svc := newTestService(stub, memory.NewTranslationCache(time.Minute), ModelOverrides{})
	ctx := context.Background()

	first, err := svc.TranslateToEnglish(ctx, &dto.TranslateToEnglishRequest{Text: "ありがとうございます。"})
	require.NoError(t, err)
	assert.Equal(t, 1, stub.CallCount())

	second, err := svc.TranslateToEnglish(ctx, &dto.TranslateToEnglishRequest{Text: "ありがとうございます。"})
	require.NoError(t, err)
	assert.Equal(t, first.TranslatedText, second.TranslatedText)
	assert.Equal(t, 1, stub.CallCount())

	// The reply text matches the cached source, so only the reply call is made.
	res, err := svc.Generate(ctx, breakfastRequest())
	require.NoError(t, err)
	assert.Equal(t, "ありがとうございます。", res.Reply)
	assert.Equal(t, "Thank you.", res.EnglishTranslation)
	assert.Equal(t, 2, stub.CallCount())
}
