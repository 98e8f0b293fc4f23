package service

import (
	"context"
	"strings"
	"time"

	"mailreply-be/internal/dto"
	"mailreply-be/internal/pkg/apperror"
	"mailreply-be/internal/pkg/logger"
	"mailreply-be/internal/repository/memory"
	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/llm"
	"mailreply-be/pkg/replyprompt"
)

const replyModule = "REPLY"

// IReplyService runs the three model-backed actions of the reply endpoint.
// Requests are expected to be validated already.
type IReplyService interface {
	Translate(ctx context.Context, req *dto.TranslateRequest) (*dto.TranslateResponse, error)
	TranslateToEnglish(ctx context.Context, req *dto.TranslateToEnglishRequest) (*dto.TranslateToEnglishResponse, error)
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
}

// ModelOverrides selects a model per operation; empty keeps the provider default.
type ModelOverrides struct {
	Translation string
	Reply       string
}

type replyService struct {
	llmProvider llm.LLMProvider
	catalog     *catalog.Catalog
	cache       *memory.TranslationCache
	models      ModelOverrides
	logger      logger.ILogger
}

func NewReplyService(
	llmProvider llm.LLMProvider,
	c *catalog.Catalog,
	cache *memory.TranslationCache,
	models ModelOverrides,
	log logger.ILogger,
) IReplyService {
	return &replyService{
		llmProvider: llmProvider,
		catalog:     c,
		cache:       cache,
		models:      models,
		logger:      log,
	}
}

func (s *replyService) Translate(ctx context.Context, req *dto.TranslateRequest) (*dto.TranslateResponse, error) {
	if err := s.checkCredentials(); err != nil {
		return nil, err
	}

	prompt := replyprompt.TranslatePrompt(req.CustomerText)
	raw, err := s.call(ctx, "translate", prompt, s.models.Translation)
	if err != nil {
		return nil, apperror.Upstream("translation request failed", err)
	}

	translation, err := replyprompt.ParseTranslation(raw)
	if err != nil {
		s.logger.Warn(replyModule, "unparseable translation result", map[string]interface{}{
			"error":        err.Error(),
			"response_len": len(raw),
		})
		return nil, apperror.Parse("could not read the translation result", err)
	}

	return &dto.TranslateResponse{
		TranslatedText:   translation.TranslatedText,
		DetectedLanguage: translation.Language,
	}, nil
}

func (s *replyService) TranslateToEnglish(ctx context.Context, req *dto.TranslateToEnglishRequest) (*dto.TranslateToEnglishResponse, error) {
	if err := s.checkCredentials(); err != nil {
		return nil, err
	}

	english, err := s.english(ctx, req.Text)
	if err != nil {
		return nil, apperror.Upstream("english translation request failed", err)
	}
	if english == "" {
		return nil, apperror.EmptyResult("the model returned an empty translation")
	}

	return &dto.TranslateToEnglishResponse{TranslatedText: english}, nil
}

// Generate drafts the Japanese reply, then tries an English rendering of it.
// Only the reply call can fail the request.
func (s *replyService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if err := s.checkCredentials(); err != nil {
		return nil, err
	}

	prompt := replyprompt.ReplyPrompt(replyprompt.ReplyInput{
		CustomerText:           req.CustomerText,
		TranslatedCustomerText: req.TranslatedCustomerText,
		InfoBlocks:             req.InfoBlocks,
		Notes:                  req.Notes,
		Tone:                   req.Tone,
		Length:                 req.Length,
	}, s.catalog)

	raw, err := s.call(ctx, "generate", prompt, s.models.Reply)
	if err != nil {
		return nil, apperror.Upstream("reply generation failed", err)
	}

	reply := strings.TrimSpace(raw)
	if reply == "" {
		return nil, apperror.EmptyResult("the model returned an empty reply")
	}

	res := &dto.GenerateResponse{Reply: reply}

	english, err := s.english(ctx, reply)
	switch {
	case err != nil:
		s.logger.Warn(replyModule, "english translation of reply failed, returning reply only", map[string]interface{}{
			"error": err.Error(),
		})
	case english == "":
		s.logger.Warn(replyModule, "english translation of reply was empty, returning reply only", nil)
	default:
		res.EnglishTranslation = english
	}

	return res, nil
}

// english renders a Japanese text in English, consulting the cache first.
// Only non-empty results are cached.
func (s *replyService) english(ctx context.Context, japanese string) (string, error) {
	if cached, ok := s.cache.Get(japanese); ok {
		s.logger.Debug(replyModule, "english translation cache hit", nil)
		return cached, nil
	}

	raw, err := s.call(ctx, "translate-to-english", replyprompt.EnglishPrompt(japanese), s.models.Translation)
	if err != nil {
		return "", err
	}

	english := strings.TrimSpace(raw)
	if english != "" {
		s.cache.Save(japanese, english)
		s.logger.Debug(replyModule, "english translation cached", map[string]interface{}{
			"entries": s.cache.Len(),
		})
	}
	return english, nil
}

func (s *replyService) call(ctx context.Context, op string, prompt replyprompt.Prompt, model string) (string, error) {
	opts := append(prompt.Options(), llm.WithModel(model))

	start := time.Now()
	raw, err := s.llmProvider.Chat(ctx, prompt.Messages(), opts...)
	details := map[string]interface{}{
		"operation":   op,
		"provider":    s.llmProvider.Name(),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if model != "" {
		details["model"] = model
	}

	if err != nil {
		details["error"] = err.Error()
		s.logger.Error(replyModule, "model call failed", details)
		return "", err
	}

	details["response_len"] = len(raw)
	s.logger.Info(replyModule, "model call completed", details)
	return raw, nil
}

func (s *replyService) checkCredentials() error {
	if err := s.llmProvider.CheckCredentials(); err != nil {
		return apperror.Configuration("the language model is not configured", err)
	}
	return nil
}
