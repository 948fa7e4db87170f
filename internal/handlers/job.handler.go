package handlers

import (
	"reefclean/internal/app"
	jobController "reefclean/internal/controllers/jobs"
	"reefclean/internal/handlers/middleware"
	"reefclean/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	Handler
	jobController jobController.JobControllerInterface
}

func NewJobHandler(app app.App, router fiber.Router) *JobHandler {
	return &JobHandler{
		jobController: app.Controllers.Job,
		Handler: Handler{
			log:        logger.New("handlers").File("job_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *JobHandler) Register() {
	jobs := h.router.Group("/jobs")

	jobs.Get("", h.listJobs)
	jobs.Get("/mine", h.myJobs)
	jobs.Post("", h.createJob)
	jobs.Get("/:id", h.getJob)
	jobs.Patch("/:id/status", h.updateStatus)
	jobs.Patch("/:id/assign", h.assignJob)
	jobs.Delete("/:id", h.deleteJob)
}

func (h *JobHandler) listJobs(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listJobs")

	limit, limitErr := queryLimit(c)
	cursor, cursorErr := queryUUID(c, "cursor")
	assignedTo, assignedErr := queryUUID(c, "assignedTo")
	vesselID, vesselErr := queryUUID(c, "vesselId")
	if err := collect(limitErr, cursorErr, assignedErr, vesselErr); err != nil {
		return handleError(c, log, err)
	}

	req := jobController.ListJobsRequest{
		AssignedTo: assignedTo,
		VesselID:   vesselID,
		Limit:      limit,
		Cursor:     cursor,
	}
	if raw := c.Query("status"); raw != "" {
		status := models.JobStatus(raw)
		req.Status = &status
	}

	page, err := h.jobController.List(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(page)
}

func (h *JobHandler) myJobs(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("myJobs")

	jobs, err := h.jobController.Mine(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"jobs": jobs})
}

func (h *JobHandler) getJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getJob")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	job, err := h.jobController.Get(c.UserContext(), middleware.GetUser(c), id)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) createJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createJob")

	var req jobController.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	job, err := h.jobController.Create(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

func (h *JobHandler) updateStatus(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateStatus")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	var req jobController.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	job, err := h.jobController.UpdateStatus(c.UserContext(), middleware.GetUser(c), id, req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) assignJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("assignJob")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	var req jobController.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	job, err := h.jobController.Assign(c.UserContext(), middleware.GetUser(c), id, req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) deleteJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteJob")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	if err := h.jobController.Delete(c.UserContext(), middleware.GetUser(c), id); err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
