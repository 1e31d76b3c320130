package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/rs/zerolog"
)

// BalanceHandler lecturas de saldos por ubicación (protegido).
type BalanceHandler struct {
	query StockQueries
	log   zerolog.Logger
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(query StockQueries, log zerolog.Logger) *BalanceHandler {
	return &BalanceHandler{query: query, log: log}
}

func (h *BalanceHandler) list(c *fiber.Ctx, loc entity.Location) error {
	q, err := parseListQuery(c, balanceParams)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.ListBalances(c.Context(), loc, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *BalanceHandler) get(c *fiber.Ctx, loc entity.Location) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.GetBalance(c.Context(), productID, loc)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListWarehouse godoc
// @Summary      Saldos de la bodega
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Lista separada por comas"
// @Param        search      query  string  false  "Nombre de producto contiene"
// @Success      200  {object}  dto.ListResponse[dto.BalanceResponse]
// @Router       /api/stocks/warehouse [get]
func (h *BalanceHandler) ListWarehouse(c *fiber.Ctx) error {
	return h.list(c, entity.Warehouse())
}

// ListStore godoc
// @Summary      Saldos de una tienda
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Success      200  {object}  dto.ListResponse[dto.BalanceResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stocks/stores/{storeId} [get]
func (h *BalanceHandler) ListStore(c *fiber.Ctx) error {
	storeID, err := paramID(c, "storeId")
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.list(c, entity.Store(storeID))
}

// GetWarehouse godoc
// @Summary      Saldo de un producto en bodega
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Router       /api/stocks/warehouse/{productId} [get]
func (h *BalanceHandler) GetWarehouse(c *fiber.Ctx) error {
	return h.get(c, entity.Warehouse())
}

// GetStore godoc
// @Summary      Saldo de un producto en una tienda
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        storeId    path  int  true  "ID de la tienda"
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Router       /api/stocks/stores/{storeId}/{productId} [get]
func (h *BalanceHandler) GetStore(c *fiber.Ctx) error {
	storeID, err := paramID(c, "storeId")
	if err != nil {
		return writeError(c, h.log, err)
	}
	return h.get(c, entity.Store(storeID))
}
