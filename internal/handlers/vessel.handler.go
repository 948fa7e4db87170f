package handlers

import (
	"reefclean/internal/app"
	vesselController "reefclean/internal/controllers/vessels"
	"reefclean/internal/handlers/middleware"
	"reefclean/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type VesselHandler struct {
	Handler
	vesselController vesselController.VesselControllerInterface
}

func NewVesselHandler(app app.App, router fiber.Router) *VesselHandler {
	return &VesselHandler{
		vesselController: app.Controllers.Vessel,
		Handler: Handler{
			log:        logger.New("handlers").File("vessel_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *VesselHandler) Register() {
	vessels := h.router.Group("/vessels")

	vessels.Get("", h.listVessels)
	vessels.Post("", h.createVessel)
	vessels.Get("/:id", h.getVessel)
	vessels.Put("/:id", h.updateVessel)
	vessels.Delete("/:id", h.deleteVessel)
	vessels.Post("/:id/sections/from-templates", h.createSectionsFromTemplates)
}

func (h *VesselHandler) listVessels(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listVessels")

	limit, limitErr := queryLimit(c)
	cursor, cursorErr := queryUUID(c, "cursor")
	clientID, clientErr := queryUUID(c, "clientId")
	if err := collect(limitErr, cursorErr, clientErr); err != nil {
		return handleError(c, log, err)
	}

	req := vesselController.ListVesselsRequest{
		ClientID: clientID,
		Search:   c.Query("search"),
		Limit:    limit,
		Cursor:   cursor,
	}
	if raw := c.Query("type"); raw != "" {
		vesselType := models.VesselType(raw)
		req.Type = &vesselType
	}

	page, err := h.vesselController.List(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(page)
}

func (h *VesselHandler) getVessel(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getVessel")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	vessel, err := h.vesselController.Get(c.UserContext(), middleware.GetUser(c), id)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"vessel": vessel})
}

func (h *VesselHandler) createVessel(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createVessel")

	var req vesselController.CreateVesselRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	vessel, err := h.vesselController.Create(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"vessel": vessel})
}

func (h *VesselHandler) updateVessel(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateVessel")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	var req vesselController.UpdateVesselRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	vessel, err := h.vesselController.Update(c.UserContext(), middleware.GetUser(c), id, req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"vessel": vessel})
}

func (h *VesselHandler) deleteVessel(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteVessel")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	if err := h.vesselController.Delete(c.UserContext(), middleware.GetUser(c), id); err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *VesselHandler) createSectionsFromTemplates(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createSectionsFromTemplates")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	var req vesselController.CreateSectionsFromTemplatesRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	sections, err := h.vesselController.CreateSectionsFromTemplates(c.UserContext(), middleware.GetUser(c), id, req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sections": sections})
}
