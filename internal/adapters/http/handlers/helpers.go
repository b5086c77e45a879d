package handlers

import (
	"errors"

	"roomfinder/internal/adapters/http/middleware"
	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/response"
	"roomfinder/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// bindBody decodes and validates the request body into dst.
// A non-nil return is the already written 400 response.
func bindBody(c *fiber.Ctx, dst interface{}) error {
	err := validate.ParseBody(c, dst)
	if err == nil {
		return nil
	}

	var verr *validate.Error
	if errors.As(err, &verr) {
		return response.ValidationFailed(c, verr.Message, verr.Fields)
	}
	return response.BadRequest(c, "Invalid request body")
}

// serverError logs the cause and answers with a generic 500
func serverError(c *fiber.Ctx, log *zap.Logger, message string, err error) error {
	log.Error(message,
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return response.InternalServerError(c, message)
}

// caller returns the authenticated identity; routes guarantee AuthMiddleware ran
func caller(c *fiber.Ctx) services.Identity {
	id, _ := middleware.CurrentIdentity(c)
	return id
}
