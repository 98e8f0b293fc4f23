package bootstrap

import (
	"fmt"

	"mailreply-be/internal/config"
	"mailreply-be/internal/controller"
	"mailreply-be/internal/pkg/logger"
	"mailreply-be/internal/pkg/serverutils"
	"mailreply-be/internal/repository/memory"
	"mailreply-be/internal/service"
	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/draft"
	"mailreply-be/pkg/llm"
	"mailreply-be/pkg/llm/factory"
)

type Container struct {
	Logger      logger.ILogger
	Catalog     *catalog.Catalog
	LLMProvider llm.LLMProvider

	// Controllers
	ReplyController   controller.IReplyController
	CatalogController controller.ICatalogController
	HealthController  controller.IHealthController
}

// NewContainer builds the LLM provider named in cfg and wires everything
// around it. A missing API key is logged, not fatal: requests fail with a
// configuration error until the key is set.
func NewContainer(cfg *config.Config, log logger.ILogger) (*Container, error) {
	llmProvider, err := factory.NewLLMProvider(factory.Settings{
		Provider: cfg.Ai.LLMProvider,
		APIKey:   cfg.Ai.APIKey,
		BaseURL:  cfg.Ai.BaseURL,
		Timeout:  cfg.Ai.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	if err := llmProvider.CheckCredentials(); err != nil {
		log.Warn("BOOTSTRAP", "LLM credentials are missing, model calls will fail until configured", map[string]interface{}{
			"provider": llmProvider.Name(),
			"error":    err.Error(),
		})
	}

	return NewContainerWithProvider(cfg, log, llmProvider)
}

// NewContainerWithProvider wires the container around an existing provider.
func NewContainerWithProvider(cfg *config.Config, log logger.ILogger, llmProvider llm.LLMProvider) (*Container, error) {
	c, err := catalog.Load(cfg.Draft.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	policy, err := draft.ParseAddPolicy(cfg.Draft.BlockAddPolicy)
	if err != nil {
		return nil, err
	}

	translationCache := memory.NewTranslationCache(cfg.Ai.TranslationCache)

	replyService := service.NewReplyService(
		llmProvider,
		c,
		translationCache,
		service.ModelOverrides{
			Translation: cfg.Ai.TranslationModel,
			Reply:       cfg.Ai.ReplyModel,
		},
		log,
	)

	log.Info("BOOTSTRAP", "container ready", map[string]interface{}{
		"provider":    llmProvider.Name(),
		"block_types": len(c.Types()),
		"add_policy":  string(policy),
		"cache":       translationCache != nil,
	})

	return &Container{
		Logger:      log,
		Catalog:     c,
		LLMProvider: llmProvider,

		ReplyController:   controller.NewReplyController(replyService, serverutils.NewValidator(c)),
		CatalogController: controller.NewCatalogController(c, policy),
		HealthController:  controller.NewHealthController(llmProvider),
	}, nil
}
