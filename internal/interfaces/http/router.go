package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine    MovementEngine
	Query     StockQueries
	AuthUC    Authenticator
	JWTSecret string
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Group("/auth").Post("/login", authHandler.Login)

	requireAuth := AuthMiddleware(deps.JWTSecret, deps.AuthUC, deps.Log)
	stockHandler := NewStockHandler(deps.Engine, deps.Query, deps.Log)

	// Entradas (protegido)
	stockIn := api.Group("/stock-in", requireAuth)
	stockIn.Post("/", stockHandler.CreateStockIn)
	stockIn.Get("/", stockHandler.ListStockIns)
	stockIn.Get("/next-index", stockHandler.NextIndex(entity.KindStockIn))
	stockIn.Get("/:id", stockHandler.GetStockIn)

	// Salidas (protegido)
	stockOut := api.Group("/stock-out", requireAuth)
	stockOut.Post("/", stockHandler.CreateStockOut)
	stockOut.Get("/", stockHandler.ListStockOuts)
	stockOut.Get("/next-index", stockHandler.NextIndex(entity.KindStockOut))
	stockOut.Get("/:id", stockHandler.GetStockOut)

	// Traslados (protegido)
	mutations := api.Group("/stock-mutation", requireAuth)
	mutations.Post("/", stockHandler.CreateStockMutation)
	mutations.Get("/", stockHandler.ListStockMutations)
	mutations.Get("/next-index", stockHandler.NextIndex(entity.KindStockMutation))
	mutations.Get("/:id", stockHandler.GetStockMutation)

	// Saldos (protegido)
	balanceHandler := NewBalanceHandler(deps.Query, deps.Log)
	stocks := api.Group("/stocks", requireAuth)
	stocks.Get("/warehouse", balanceHandler.ListWarehouse)
	stocks.Get("/warehouse/:productId", balanceHandler.GetWarehouse)
	stocks.Get("/stores/:storeId", balanceHandler.ListStore)
	stocks.Get("/stores/:storeId/:productId", balanceHandler.GetStore)
}
