package controller

import (
	"mailreply-be/internal/dto"
	"mailreply-be/internal/pkg/apperror"
	"mailreply-be/internal/pkg/serverutils"
	"mailreply-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReplyController interface {
	RegisterRoutes(r fiber.Router)
	Handle(ctx *fiber.Ctx) error
}

type replyController struct {
	replyService service.IReplyService
	validator    *serverutils.Validator
}

func NewReplyController(replyService service.IReplyService, validator *serverutils.Validator) IReplyController {
	return &replyController{
		replyService: replyService,
		validator:    validator,
	}
}

func (c *replyController) RegisterRoutes(r fiber.Router) {
	r.Post("/reply", c.Handle)
	r.Post("/reply/v1", c.Handle)
}

// Handle dispatches on the "action" field. The body is decoded twice: once
// for the envelope, once into the matching request type.
func (c *replyController) Handle(ctx *fiber.Ctx) error {
	var envelope dto.ActionEnvelope
	if err := c.parse(ctx, &envelope); err != nil {
		return err
	}

	switch envelope.Action {
	case dto.ActionTranslate:
		var req dto.TranslateRequest
		if err := c.parse(ctx, &req); err != nil {
			return err
		}
		res, err := c.replyService.Translate(ctx.UserContext(), &req)
		if err != nil {
			return err
		}
		return ctx.JSON(res)

	case dto.ActionTranslateToEnglish:
		var req dto.TranslateToEnglishRequest
		if err := c.parse(ctx, &req); err != nil {
			return err
		}
		res, err := c.replyService.TranslateToEnglish(ctx.UserContext(), &req)
		if err != nil {
			return err
		}
		return ctx.JSON(res)

	default:
		var req dto.GenerateRequest
		if err := c.parse(ctx, &req); err != nil {
			return err
		}
		res, err := c.replyService.Generate(ctx.UserContext(), &req)
		if err != nil {
			return err
		}
		return ctx.JSON(res)
	}
}

func (c *replyController) parse(ctx *fiber.Ctx, out any) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.Validation("request body must be a JSON object", nil)
	}
	return c.validator.Struct(out)
}
