package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/logger"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// FromError переводит доменные ошибки в HTTP-ответ. Неизвестные ошибки
// логируются, клиент получает только общий текст.
func FromError(c *fiber.Ctx, err error) error {
	status, message := Status(err)
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeHTTP,
			"method":              c.Method(),
			"path":                c.Path(),
		}).Errorf("request failed: %v", err)
	}
	return Error(c, status, message)
}

// Status returns the HTTP status and client-facing message for err.
func Status(err error) (int, string) {
	var (
		authValidation auth.ErrValidation
		jobValidation  job.ErrValidation
		appValidation  application.ErrValidation
	)
	switch {
	case errors.As(err, &authValidation), errors.As(err, &jobValidation), errors.As(err, &appValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest, "invalid credentials"
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, "you are not allowed to do this"
	case errors.Is(err, auth.ErrNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, job.ErrNotFound), errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, auth.ErrUserAlreadyExists), errors.Is(err, application.ErrAlreadyApplied),
		errors.Is(err, application.ErrAlreadyDecided):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
