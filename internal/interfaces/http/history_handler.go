package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/agregados-api/internal/application/dto"
	"github.com/tu-usuario/agregados-api/internal/application/inventory"
	"github.com/tu-usuario/agregados-api/internal/application/query"
	"github.com/tu-usuario/agregados-api/pkg/logger"
)

// HistoryHandler maneja el historial de movimientos y el reset administrativo.
type HistoryHandler struct {
	stock *inventory.StockUseCase
	query *query.QueryUseCase
	log   *logger.Logger
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(stock *inventory.StockUseCase, q *query.QueryUseCase, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{stock: stock, query: q, log: log}
}

// List devuelve todo el historial, el movimiento más reciente primero.
// GET /api/history -> 200 [Movement+product_name] | 500
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	items, err := h.query.ListHistory()
	if err != nil {
		h.log.Error().Err(err).Str("op", "list_history").Msg("fallo al listar historial")
		return internalError(c)
	}
	return c.JSON(items)
}

// Reset vacía historial y productos y vuelve a sembrar el catálogo por
// defecto. Destructivo e irreversible; mismo gate de auth que las mutaciones.
// POST /api/reset -> 200 | 500
func (h *HistoryHandler) Reset(c *fiber.Ctx) error {
	if err := h.stock.Reset(c.UserContext()); err != nil {
		h.log.Error().Err(err).Str("op", "reset").Msg("fallo al resetear inventario")
		return internalError(c)
	}
	h.log.Warn().Str("op", "reset").Str("user_id", GetUserID(c)).Msg("inventario reseteado")
	return c.JSON(dto.MessageResponse{Message: "inventario reiniciado con el catálogo por defecto"})
}
