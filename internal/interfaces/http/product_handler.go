package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/agregados-api/internal/application/dto"
	"github.com/tu-usuario/agregados-api/internal/application/inventory"
	"github.com/tu-usuario/agregados-api/internal/application/query"
	"github.com/tu-usuario/agregados-api/internal/domain"
	"github.com/tu-usuario/agregados-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP para productos: lecturas públicas
// y mutaciones protegidas por el middleware de auth.
type ProductHandler struct {
	stock *inventory.StockUseCase
	query *query.QueryUseCase
	log   *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(stock *inventory.StockUseCase, q *query.QueryUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{stock: stock, query: q, log: log}
}

// List lista los productos activos ordenados por nombre.
// GET /api/products -> 200 [Product]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items, err := h.query.ListLiveProducts()
	if err != nil {
		h.log.Error().Err(err).Str("op", "list_products").Msg("fallo al listar productos")
		return internalError(c)
	}
	return c.JSON(items)
}

// Summary agrega el stock activo (toneladas, valor, bajos de mínimo).
// GET /api/summary -> 200 Summary
func (h *ProductHandler) Summary(c *fiber.Ctx) error {
	out, err := h.query.Summary()
	if err != nil {
		h.log.Error().Err(err).Str("op", "summary").Msg("fallo al calcular resumen")
		return internalError(c)
	}
	return c.JSON(out)
}

// Create crea un producto con su movimiento de creación.
// POST /api/products {name, price?, quantity?} -> 201 Product | 400 | 500
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.stock.Create(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el nombre del producto es obligatorio"})
		}
		h.log.Error().Err(err).Str("op", "create_product").Str("name", in.Name).Msg("fallo al crear producto")
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update reemplaza todos los campos del producto y registra el movimiento con
// el delta de cantidad.
// PUT /api/products/:id {name, quantity, price, minimum_stock} -> 200 Product | 400 | 404 | 500
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.stock.Update(c.UserContext(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el nombre del producto es obligatorio"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		h.log.Error().Err(err).Str("op", "update_product").Int64("product_id", id).Msg("fallo al actualizar producto")
		return internalError(c)
	}
	return c.JSON(out)
}

// Delete borra lógicamente el producto y registra la remoción en el historial.
// DELETE /api/products/:id -> 200 | 400 | 404 | 500
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.stock.SoftDelete(c.UserContext(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		h.log.Error().Err(err).Str("op", "delete_product").Int64("product_id", id).Msg("fallo al borrar producto")
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

// SetMinimumStock fija el stock mínimo de todos los productos activos.
// POST /api/products/minimum-stock {minimum_stock} -> 200 {updated} | 400 | 500
func (h *ProductHandler) SetMinimumStock(c *fiber.Ctx) error {
	var in dto.SetMinimumStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, err := h.stock.SetMinimumStockAll(c.UserContext(), in.MinimumStock)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "minimum_stock no puede ser negativo"})
		}
		h.log.Error().Err(err).Str("op", "set_minimum_stock").Msg("fallo al fijar stock mínimo")
		return internalError(c)
	}
	return c.JSON(dto.SetMinimumStockResponse{Updated: updated})
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
