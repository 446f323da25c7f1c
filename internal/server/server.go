// Package server exposes the country directory and picker sessions over an
// HTTP JSON API so a remote host UI can drive pickers.
package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hightemp/countrypicker/internal/config"
	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/projection"
)

// IPLocator maps a client address to a country code.
type IPLocator interface {
	CountryCode(ip string) (string, error)
}

// Server wires HTTP handlers to the directory, projector and sessions.
type Server struct {
	app       *fiber.App
	dir       *countries.Directory
	projector *projection.Projector
	sessions  *sessionStore
	locator   IPLocator
	base      *slog.Logger
	log       *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLocator sets the locator used to default a new picker's selection
// from the client address.
func WithLocator(l IPLocator) Option {
	return func(s *Server) { s.locator = l }
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a server. Names are resolved with the projector's resolver.
func New(dir *countries.Directory, projector *projection.Projector, opts ...Option) *Server {
	s := &Server{
		dir:       dir,
		projector: projector,
		sessions:  newSessionStore(),
		base:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.base.With(config.LogKeyComponent, config.CompServer)

	s.app = fiber.New(fiber.Config{
		AppName:               config.AppName,
		DisableStartupMessage: true,
		// Handlers hand request strings to the projection cache and sessions.
		Immutable:    true,
		ErrorHandler: s.handleError,
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	api.Get("/countries", s.listCountries)
	api.Get("/countries/:code", s.getCountry)
	api.Get("/letters", s.listLetters)
	api.Get("/index/:letter", s.indexOf)

	api.Post("/pickers", s.createPicker)
	api.Get("/pickers/:id", s.getPicker)
	api.Delete("/pickers/:id", s.deletePicker)
	api.Put("/pickers/:id/open", s.setOpen)
	api.Put("/pickers/:id/filter", s.setFilter)
	api.Post("/pickers/:id/select", s.selectCountry)
	api.Get("/pickers/:id/countries", s.pickerCountries)
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info("listening", config.LogKeyAddr, addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed", config.LogKeyError, err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
