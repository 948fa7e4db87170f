package handlers

import (
	"fmt"

	"reefclean/internal/app"
	reportController "reefclean/internal/controllers/reports"
	"reefclean/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	Handler
	reportController reportController.ReportControllerInterface
}

func NewReportHandler(app app.App, router fiber.Router) *ReportHandler {
	return &ReportHandler{
		reportController: app.Controllers.Report,
		Handler: Handler{
			log:        logger.New("handlers").File("report_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReportHandler) Register() {
	reports := h.router.Group("/reports")

	reports.Get("/summary", h.summary)
	reports.Get("/summary/export", h.exportSummary)
	reports.Get("/jobs/:id", h.jobDetail)
}

func (h *ReportHandler) parseSummary(c *fiber.Ctx) (reportController.SummaryRequest, error) {
	from, fromErr := queryTime(c, "from", false)
	to, toErr := queryTime(c, "to", true)
	clientID, clientErr := queryUUID(c, "clientId")
	vesselID, vesselErr := queryUUID(c, "vesselId")
	if err := collect(fromErr, toErr, clientErr, vesselErr); err != nil {
		return reportController.SummaryRequest{}, err
	}

	return reportController.SummaryRequest{
		From:     from,
		To:       to,
		ClientID: clientID,
		VesselID: vesselID,
	}, nil
}

func (h *ReportHandler) summary(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("summary")

	req, err := h.parseSummary(c)
	if err != nil {
		return handleError(c, log, err)
	}

	summary, err := h.reportController.Summary(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(summary)
}

func (h *ReportHandler) exportSummary(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("exportSummary")

	req, err := h.parseSummary(c)
	if err != nil {
		return handleError(c, log, err)
	}

	data, err := h.reportController.Export(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	filename := fmt.Sprintf(
		"cleaning-summary-%s-%s.xlsx",
		req.From.Format("20060102"),
		req.To.Format("20060102"),
	)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment(filename)
	return c.Send(data)
}

func (h *ReportHandler) jobDetail(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("jobDetail")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	detail, err := h.reportController.Detail(c.UserContext(), middleware.GetUser(c), id)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": detail})
}
