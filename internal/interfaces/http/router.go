package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-sync/internal/application/auth"
	"github.com/jhoicas/inventario-sync/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *usecase.CatalogUseCase
	SyncUC    *usecase.SyncUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	items := protected.Group("/items")
	items.Get("/", catalogHandler.List)
	items.Get("/categories", catalogHandler.Categories)
	items.Get("/:id", catalogHandler.GetByID)
	items.Patch("/:id", catalogHandler.Update)
	items.Post("/:id/revert", catalogHandler.Revert)

	// Sincronización
	syncHandler := NewSyncHandler(deps.SyncUC)
	syncGroup := protected.Group("/sync")
	syncGroup.Post("/", syncHandler.Sync)
	syncGroup.Get("/status", syncHandler.Status)
}
