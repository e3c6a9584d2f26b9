package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/session"
	"github.com/i474232898/weather-lookup/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *session.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		var req createRequest
		if err := bindOptional(c, &req); err != nil {
			return err
		}
		lang := req.Lang
		if lang == "" {
			lang = c.Get(fiber.HeaderAcceptLanguage)
		}

		view, err := service.Create(c.UserContext(), lang)
		if err != nil {
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	})

	v1.Get("/sessions/:id", validateSessionID, func(c *fiber.Ctx) error {
		view, err := service.View(c.UserContext(), c.Params("id"))
		if err != nil {
			return mapError(err)
		}
		return c.JSON(view)
	})

	v1.Put("/sessions/:id/input", validateSessionID, func(c *fiber.Ctx) error {
		var req cityRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		view, err := service.SetInput(c.UserContext(), c.Params("id"), req.City)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(view)
	})

	v1.Post("/sessions/:id/search", validateSessionID, func(c *fiber.Ctx) error {
		var req searchRequest
		if err := bindOptional(c, &req); err != nil {
			return err
		}
		view, err := service.Search(c.UserContext(), c.Params("id"), req.City)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(view)
	})

	v1.Post("/sessions/:id/favorites/toggle", validateSessionID, func(c *fiber.Ctx) error {
		var req cityRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		view, err := service.ToggleFavorite(c.UserContext(), c.Params("id"), req.City)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(view)
	})

	v1.Post("/sessions/:id/favorites/:index/select", validateSessionID, func(c *fiber.Ctx) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "favorite index must be an integer")
		}
		view, err := service.SelectFavorite(c.UserContext(), c.Params("id"), index)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(view)
	})
}

// sessionParams holds the path parameters shared by session routes.
type sessionParams struct {
	ID string `validate:"required,uuid4"`
}

func validateSessionID(c *fiber.Ctx) error {
	p := sessionParams{ID: c.Params("id")}
	if err := validate.Struct(p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	return c.Next()
}

type createRequest struct {
	Lang string `json:"lang"`
}

// cityRequest carries a city name exactly as the user typed it.
type cityRequest struct {
	City string `json:"city"`
}

// searchRequest leaves City nil to search for the typed input.
type searchRequest struct {
	City *string `json:"city"`
}

// bindOptional parses the body into v when one was sent.
func bindOptional(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	case errors.Is(err, store.ErrTooManySessions):
		return fiber.NewError(fiber.StatusServiceUnavailable, "too many active sessions")
	case errors.Is(err, session.ErrFavoriteNotFound):
		return fiber.NewError(fiber.StatusNotFound, "favorite not found")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}

// ErrorHandler renders every error as a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
