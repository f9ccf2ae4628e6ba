package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/artem13815/jobboard/api/http/middleware"
	"github.com/artem13815/jobboard/api/http/presenter"
)

// NewApp builds the Fiber app with shared middleware, /metrics and all API routes.
func NewApp(h Handlers, authMW fiber.Handler, allowedOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "jobboard",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(middleware.AccessLog())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	Register(app, h, authMW)
	return app
}

// errorHandler keeps the {"message": ...} body for errors that escape handlers,
// including fiber's own 404/405.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return presenter.Error(c, fe.Code, fe.Message)
	}
	return presenter.FromError(c, err)
}
