package handlers

import (
	"reefclean/internal/app"
	progressController "reefclean/internal/controllers/progress"
	"reefclean/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ProgressHandler struct {
	Handler
	progressController progressController.ProgressControllerInterface
}

func NewProgressHandler(app app.App, router fiber.Router) *ProgressHandler {
	return &ProgressHandler{
		progressController: app.Controllers.Progress,
		Handler: Handler{
			log:        logger.New("handlers").File("progress_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ProgressHandler) Register() {
	progress := h.router.Group("/progress")

	progress.Put("", h.upsertProgress)
	progress.Post("/media", h.addMedia)
	progress.Delete("/media/:id", h.deleteMedia)
}

func (h *ProgressHandler) upsertProgress(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("upsertProgress")

	var req progressController.UpsertProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	progress, err := h.progressController.Upsert(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"progress": progress})
}

func (h *ProgressHandler) addMedia(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("addMedia")

	var req progressController.AddMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	media, err := h.progressController.AddMedia(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"media": media})
}

func (h *ProgressHandler) deleteMedia(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteMedia")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	if err := h.progressController.DeleteMedia(c.UserContext(), middleware.GetUser(c), id); err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
