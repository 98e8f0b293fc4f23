package controller

import (
	"mailreply-be/internal/dto"
	"mailreply-be/internal/pkg/serverutils"
	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/draft"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type catalogController struct {
	response dto.CatalogResponse
}

// NewCatalogController renders the catalog once; it never changes after startup.
func NewCatalogController(c *catalog.Catalog, policy draft.AddPolicy) ICatalogController {
	res := dto.CatalogResponse{
		Blocks:    c.Templates(),
		AddPolicy: policy,
	}
	for _, t := range catalog.Tones() {
		res.Tones = append(res.Tones, dto.OptionDTO{Value: string(t), Guide: c.ToneGuide(t)})
	}
	for _, l := range catalog.Lengths() {
		res.Lengths = append(res.Lengths, dto.OptionDTO{Value: string(l), Guide: c.LengthGuide(l)})
	}
	return &catalogController{response: res}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	r.Get("/catalog", c.Show)
}

func (c *catalogController) Show(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get catalog", c.response))
}
