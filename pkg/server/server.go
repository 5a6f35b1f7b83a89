// Package server exposes the HTTP API that maps inbound requests onto the
// repository operations.
package server

import (
	"folio/pkg/auth"
	"folio/pkg/page"
	"folio/pkg/profile"
	"folio/pkg/sections"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Server wires the repositories, the section registry, and the auth service
// into a fiber application.
type Server struct {
	app           *fiber.App
	profiles      *profile.Repository
	pages         *page.Repository
	registry      *sections.Registry
	auth          *auth.Service
	adminPassword string
	log           *logrus.Logger
}

// New builds the server and registers all routes.
func New(
	profiles *profile.Repository,
	pages *page.Repository,
	registry *sections.Registry,
	authService *auth.Service,
	adminPassword string,
	log *logrus.Logger,
) (s *Server) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "folio",
	})

	s = &Server{
		app:           app,
		profiles:      profiles,
		pages:         pages,
		registry:      registry,
		auth:          authService,
		adminPassword: adminPassword,
		log:           log,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	api.Post("/auth/login", s.login)

	authed := api.Group("", s.requireAuth)

	authed.Get("/profile", s.getProfile)
	authed.Post("/profile/:section/items", s.addItem)
	authed.Put("/profile/:section/items/:index", s.updateItem)
	authed.Delete("/profile/:section/items/:index", s.removeItem)
	authed.Post("/profile/:section/items/:index/move", s.moveItem)
	authed.Post("/profile/:section/categories", s.addCategory)
	authed.Put("/profile/:section/categories/:name", s.editCategory)
	authed.Delete("/profile/:section/categories/:name", s.removeCategory)

	authed.Get("/page", s.getPage)
	authed.Put("/page", s.putPage)
	authed.Get("/page/presets", s.listPresets)
	authed.Get("/page/preset", s.currentPreset)
	authed.Post("/page/preset", s.applyPreset)

	authed.Get("/sections", s.listSections)
}

// App exposes the fiber application, used by tests and by graceful shutdown.
func (s *Server) App() (app *fiber.App) {
	app = s.app
	return app
}

// Listen blocks serving the API on addr.
func (s *Server) Listen(addr string) (err error) {
	s.log.WithField("addr", addr).Info("folio API listening")
	err = s.app.Listen(addr)
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() (err error) {
	err = s.app.Shutdown()
	return err
}
