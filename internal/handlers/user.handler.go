package handlers

import (
	"reefclean/internal/app"
	userController "reefclean/internal/controllers/users"
	"reefclean/internal/handlers/middleware"
	"reefclean/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	return &UserHandler{
		userController: app.Controllers.User,
		Handler: Handler{
			log:        logger.New("handlers").File("user_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")

	users.Get("/me", h.getMe)
	users.Get("", h.listUsers)
}

func (h *UserHandler) getMe(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getMe")

	profile, err := h.userController.GetMe(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"user": profile})
}

func (h *UserHandler) listUsers(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listUsers")

	var role *models.Role
	if raw := c.Query("role"); raw != "" {
		value := models.Role(raw)
		role = &value
	}

	users, err := h.userController.ListUsers(c.UserContext(), middleware.GetUser(c), role)
	if err != nil {
		return handleError(c, log, err)
	}

	return c.JSON(fiber.Map{"users": users})
}
