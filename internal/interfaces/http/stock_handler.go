package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/filter"
	"github.com/rs/zerolog"
)

// MovementEngine registra movimientos de stock.
type MovementEngine interface {
	ProcessStockIn(ctx context.Context, req *dto.StockInRequest, actor entity.Actor) (*dto.StockInResponse, error)
	ProcessStockOut(ctx context.Context, req *dto.StockOutRequest, actor entity.Actor) (*dto.StockOutResponse, error)
	ProcessStockMutation(ctx context.Context, req *dto.StockMutationRequest, actor entity.Actor) (*dto.StockMutationResponse, error)
}

// StockQueries lecturas del libro y de los saldos.
type StockQueries interface {
	ListStockIns(ctx context.Context, q filter.Query) (*dto.ListResponse[dto.StockInResponse], error)
	ListStockOuts(ctx context.Context, q filter.Query) (*dto.ListResponse[dto.StockOutResponse], error)
	ListStockMutations(ctx context.Context, q filter.Query) (*dto.ListResponse[dto.StockMutationResponse], error)
	GetStockIn(ctx context.Context, id int64) (*dto.StockInResponse, error)
	GetStockOut(ctx context.Context, id int64) (*dto.StockOutResponse, error)
	GetStockMutation(ctx context.Context, id int64) (*dto.StockMutationResponse, error)
	NextIndex(ctx context.Context, kind entity.MovementKind) (*dto.NextIndexResponse, error)
	ListBalances(ctx context.Context, loc entity.Location, q filter.Query) (*dto.ListResponse[dto.BalanceResponse], error)
	GetBalance(ctx context.Context, productID int64, loc entity.Location) (*dto.BalanceResponse, error)
}

// StockHandler maneja entradas, salidas y traslados (protegido).
type StockHandler struct {
	engine MovementEngine
	query  StockQueries
	log    zerolog.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(engine MovementEngine, query StockQueries, log zerolog.Logger) *StockHandler {
	return &StockHandler{engine: engine, query: query, log: log}
}

func (h *StockHandler) actor(c *fiber.Ctx) (entity.Actor, error) {
	actor, ok := GetActor(c)
	if !ok {
		return entity.Actor{}, domain.ErrUnauthorized
	}
	return actor, nil
}

// CreateStockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "transactionCode, date, toWarehouse, storeId, products"
// @Success      201   {object}  dto.StockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-in [post]
func (h *StockHandler) CreateStockIn(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.engine.ProcessStockIn(c.Context(), &in, actor)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateStockOut godoc
// @Summary      Registrar salida de stock desde bodega
// @Tags         stock-out
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "transactionCode, date, storeId, products"
// @Success      201   {object}  dto.StockOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-out [post]
func (h *StockHandler) CreateStockOut(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.StockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.engine.ProcessStockOut(c.Context(), &in, actor)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateStockMutation godoc
// @Summary      Registrar traslado hacia una tienda
// @Tags         stock-mutation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMutationRequest  true  "transactionCode, date, fromWarehouse, fromStoreId, toStoreId, products"
// @Success      201   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-mutation [post]
func (h *StockHandler) CreateStockMutation(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.StockMutationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.engine.ProcessStockMutation(c.Context(), &in, actor)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStockIns godoc
// @Summary      Listar entradas
// @Tags         stock-in
// @Security     Bearer
// @Produce      json
// @Param        limit       query  int     false  "Tamaño de página (máx. 100)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Param        page        query  int     false  "Página desde 1 (alternativa a offset)"
// @Param        sort        query  string  false  "date | transaction_code | id | created_at"
// @Param        order       query  string  false  "asc | desc"
// @Param        date_from   query  string  false  "YYYY-MM-DD"
// @Param        date_to     query  string  false  "YYYY-MM-DD"
// @Param        store_id    query  string  false  "Lista separada por comas"
// @Param        product_id  query  string  false  "Lista separada por comas"
// @Param        search      query  string  false  "Código de transacción contiene"
// @Success      200  {object}  dto.ListResponse[dto.StockInResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-in [get]
func (h *StockHandler) ListStockIns(c *fiber.Ctx) error {
	q, err := parseListQuery(c, stockInParams)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.ListStockIns(c.Context(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListStockOuts godoc
// @Summary      Listar salidas
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.StockOutResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-out [get]
func (h *StockHandler) ListStockOuts(c *fiber.Ctx) error {
	q, err := parseListQuery(c, stockOutParams)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.ListStockOuts(c.Context(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListStockMutations godoc
// @Summary      Listar traslados
// @Tags         stock-mutation
// @Security     Bearer
// @Produce      json
// @Param        from_store_id  query  string  false  "Tiendas origen, separadas por comas"
// @Param        to_store_id    query  string  false  "Tiendas destino, separadas por comas"
// @Success      200  {object}  dto.ListResponse[dto.StockMutationResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-mutation [get]
func (h *StockHandler) ListStockMutations(c *fiber.Ctx) error {
	q, err := parseListQuery(c, stockMutationParams)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.ListStockMutations(c.Context(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetStockIn godoc
// @Summary      Obtener entrada con sus líneas
// @Tags         stock-in
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.StockInResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-in/{id} [get]
func (h *StockHandler) GetStockIn(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.GetStockIn(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetStockOut godoc
// @Summary      Obtener salida con sus líneas
// @Tags         stock-out
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la salida"
// @Success      200  {object}  dto.StockOutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-out/{id} [get]
func (h *StockHandler) GetStockOut(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.GetStockOut(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetStockMutation godoc
// @Summary      Obtener traslado con sus líneas
// @Tags         stock-mutation
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del traslado"
// @Success      200  {object}  dto.StockMutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-mutation/{id} [get]
func (h *StockHandler) GetStockMutation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.GetStockMutation(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// NextIndex devuelve un handler con el siguiente índice sugerido para el tipo.
// El valor es orientativo: no reserva el id.
//
// @Summary      Siguiente índice sugerido
// @Tags         stock-in, stock-out, stock-mutation
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NextIndexResponse
// @Router       /api/stock-in/next-index [get]
func (h *StockHandler) NextIndex(kind entity.MovementKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.query.NextIndex(c.Context(), kind)
		if err != nil {
			return writeError(c, h.log, err)
		}
		return c.JSON(out)
	}
}
