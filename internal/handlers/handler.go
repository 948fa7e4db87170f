package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"reefclean/internal/handlers/middleware"
	"reefclean/internal/types"
	"reefclean/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func statusFor(kind types.ErrorKind) int {
	switch kind {
	case types.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case types.KindForbidden:
		return fiber.StatusForbidden
	case types.KindValidation:
		return fiber.StatusBadRequest
	case types.KindNotFound:
		return fiber.StatusNotFound
	case types.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError renders err as {"error", "kind", "fields"}. Internal failures
// are logged and their message withheld.
func handleError(c *fiber.Ctx, log logger.Logger, err error) error {
	kind := types.KindOf(err)

	body := fiber.Map{
		"error": err.Error(),
		"kind":  kind,
	}
	if fields := types.FieldErrors(err); len(fields) > 0 {
		body["fields"] = fields
	}

	switch kind {
	case types.KindInternal:
		_ = log.Err("request failed", err)
		body["error"] = "Internal server error"
	case types.KindUnauthenticated, types.KindForbidden:
		log.Info("request denied", "kind", kind, "reason", err.Error())
	}

	return c.Status(statusFor(kind)).JSON(body)
}

func invalidBody(err error) error {
	return types.NewValidationError("body", "json", "could not be parsed: "+err.Error())
}

func pathID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, types.NewValidationError(name, "uuid", "must be a valid UUID")
	}
	return id, nil
}

func queryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, types.NewValidationError(key, "uuid", "must be a valid UUID")
	}
	return &id, nil
}

func queryLimit(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, types.NewValidationError("limit", "min", "must be at least 1")
	}
	return limit, nil
}

// queryTime reads a date or timestamp query parameter. A plain date used as
// an upper bound covers the whole day.
func queryTime(c *fiber.Ctx, key string, endOfDay bool) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, types.NewValidationError(key, "required", "is required")
	}

	t, err := utils.ParseDateBound(raw, endOfDay)
	if err != nil {
		return time.Time{}, types.NewValidationError(key, "datetime", "must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}
	return t, nil
}

// collect merges parse failures into one field error list.
func collect(errs ...error) error {
	var fields types.ValidationErrors
	for _, err := range errs {
		if err == nil {
			continue
		}
		var fieldErr *types.ValidationError
		if !errors.As(err, &fieldErr) {
			return err
		}
		fields = append(fields, fieldErr)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
