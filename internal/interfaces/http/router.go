package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/agregados-api/internal/application/auth"
	"github.com/tu-usuario/agregados-api/internal/application/inventory"
	"github.com/tu-usuario/agregados-api/internal/application/query"
	"github.com/tu-usuario/agregados-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC   *inventory.StockUseCase
	QueryUC   *query.QueryUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API. Las lecturas del catálogo son públicas
// (el frontend de consulta no exige sesión); toda mutación y el historial van
// detrás del Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/login", authHandler.Login)

	// Lecturas públicas
	productHandler := NewProductHandler(deps.StockUC, deps.QueryUC, deps.Log)
	api.Get("/products", productHandler.List)
	api.Get("/summary", productHandler.Summary)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/products", productHandler.Create)
	protected.Post("/products/minimum-stock", productHandler.SetMinimumStock)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)

	historyHandler := NewHistoryHandler(deps.StockUC, deps.QueryUC, deps.Log)
	protected.Get("/history", historyHandler.List)
	protected.Post("/reset", historyHandler.Reset)
}
