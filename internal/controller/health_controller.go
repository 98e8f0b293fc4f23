package controller

import (
	"mailreply-be/internal/dto"
	"mailreply-be/internal/pkg/serverutils"
	"mailreply-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	llmProvider llm.LLMProvider
}

func NewHealthController(llmProvider llm.LLMProvider) IHealthController {
	return &healthController{llmProvider: llmProvider}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", dto.HealthResponse{
		Status:   "ok",
		Provider: c.llmProvider.Name(),
	}))
}
