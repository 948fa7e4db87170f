package handlers

import (
	"reefclean/internal/app"
	clientController "reefclean/internal/controllers/clients"
	"reefclean/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	Handler
	clientController clientController.ClientControllerInterface
}

func NewClientHandler(app app.App, router fiber.Router) *ClientHandler {
	return &ClientHandler{
		clientController: app.Controllers.Client,
		Handler: Handler{
			log:        logger.New("handlers").File("client_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ClientHandler) Register() {
	clients := h.router.Group("/clients")

	clients.Get("", h.listClients)
	clients.Post("", h.createClient)
	clients.Get("/:id", h.getClient)
	clients.Put("/:id", h.updateClient)
	clients.Delete("/:id", h.deleteClient)
}

func (h *ClientHandler) listClients(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listClients")

	limit, limitErr := queryLimit(c)
	cursor, cursorErr := queryUUID(c, "cursor")
	if err := collect(limitErr, cursorErr); err != nil {
		return handleError(c, log, err)
	}

	page, err := h.clientController.List(c.UserContext(), middleware.GetUser(c), clientController.ListClientsRequest{
		Search: c.Query("search"),
		Limit:  limit,
		Cursor: cursor,
	})
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(page)
}

func (h *ClientHandler) getClient(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getClient")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	client, err := h.clientController.Get(c.UserContext(), middleware.GetUser(c), id)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) createClient(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createClient")

	var req clientController.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	client, err := h.clientController.Create(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) updateClient(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateClient")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	var req clientController.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return handleError(c, log, invalidBody(err))
	}

	client, err := h.clientController.Update(c.UserContext(), middleware.GetUser(c), id, req)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) deleteClient(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteClient")

	id, err := pathID(c, "id")
	if err != nil {
		return handleError(c, log, err)
	}

	if err := h.clientController.Delete(c.UserContext(), middleware.GetUser(c), id); err != nil {
		return handleError(c, log, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
