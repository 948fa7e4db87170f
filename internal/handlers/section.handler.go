package handlers

import (
	"reefclean/internal/app"
	sectionController "reefclean/internal/controllers/sections"
	"reefclean/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type SectionHandler struct {
	Handler
	sectionController sectionController.SectionControllerInterface
}

func NewSectionHandler(app app.App, router fiber.Router) *SectionHandler {
	return &SectionHandler{
		sectionController: app.Controllers.Section,
		Handler: Handler{
			log:        logger.New("handlers").File("section_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SectionHandler) Register() {
	sections := h.router.Group("/sections")

	sections.Get("/templates", h.listTemplates)
	sections.Post("/templates", h.createTemplate)
	sections.Post("", h.createSection)
	sections.Put("/:id", h.updateSection)
	sections.Delete("/:id", h.deleteSection)
}

func (h *SectionHandler) listTemplates(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listTemplates")

	templates, err := h.sectionController.ListTemplates(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"templates": templates})
}

func (h *SectionHandler) createTemplate(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createTemplate")

	var req sectionController.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	template, err := h.sectionController.CreateTemplate(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"template": template})
}

func (h *SectionHandler) createSection(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createSection")

	var req sectionController.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	section, err := h.sectionController.CreateSection(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"section": section})
}

func (h *SectionHandler) updateSection(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateSection")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	var req sectionController.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	section, err := h.sectionController.UpdateSection(c.UserContext(), middleware.GetUser(c), id, req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"section": section})
}

func (h *SectionHandler) deleteSection(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteSection")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	if err := h.sectionController.DeleteSection(c.UserContext(), middleware.GetUser(c), id); err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
