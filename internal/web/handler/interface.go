package handler

import (
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error
}

// ErrorResponse is the JSON body of a failed api request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendError writes status and msg as ErrorResponse.
func SendError(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg}) //nolint:wrapcheck
}
