package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

func requireValidation(t *testing.T, err error, contains string) {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, contains)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateStockIn_Reglas(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *dto.StockInRequest)
		want   string
	}{
		{"codigo ausente", func(r *dto.StockInRequest) { r.TransactionCode = nil }, "transactionCode"},
		{"codigo en blanco", func(r *dto.StockInRequest) { r.TransactionCode = ptr("   ") }, "transactionCode"},
		{"codigo largo", func(r *dto.StockInRequest) { r.TransactionCode = ptr(string(make([]byte, 65))) }, "64"},
		{"fecha ausente", func(r *dto.StockInRequest) { r.Date = nil }, "date"},
		{"fecha invalida", func(r *dto.StockInRequest) { r.Date = ptr("31/02/2024") }, "date"},
		{"toWarehouse ausente", func(r *dto.StockInRequest) { r.ToWarehouse = nil }, "toWarehouse"},
		{"tienda requerida", func(r *dto.StockInRequest) { r.ToWarehouse = ptr(false); r.StoreID = nil }, "storeId"},
		{"tienda no positiva", func(r *dto.StockInRequest) { r.ToWarehouse = ptr(false); r.StoreID = ptr(int64(0)) }, "storeId"},
		{"productos vacios", func(r *dto.StockInRequest) { r.Products = nil }, "products"},
		{"producto sin id", func(r *dto.StockInRequest) { r.Products[1].ProductID = nil }, "productId en la posición 1"},
		{"cantidad cero", func(r *dto.StockInRequest) { r.Products[0].Quantity = ptr(int64(0)) }, "quantity en la posición 0"},
		{"cantidad negativa", func(r *dto.StockInRequest) { r.Products[1].Quantity = ptr(int64(-2)) }, "quantity en la posición 1"},
		{"cantidad sobre el maximo", func(r *dto.StockInRequest) { r.Products[1].Quantity = ptr(stock.MaxLineQuantity + 1) }, "quantity en la posición 1 no puede superar"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := stockInToWarehouse("IN-1", 1, 2, 3, 4)
			tc.mutate(req)
			_, err := stock.ValidateStockIn(req)
			requireValidation(t, err, tc.want)
		})
	}
}

func TestValidateStockIn_CantidadMaximaSeAcepta(t *testing.T) {
	in, err := stock.ValidateStockIn(stockInToWarehouse("IN-1", 1, stock.MaxLineQuantity))
	require.NoError(t, err)
	assert.Equal(t, stock.MaxLineQuantity, in.Lines[0].Quantity)
}

func TestValidateStockIn_PayloadNulo(t *testing.T) {
	_, err := stock.ValidateStockIn(nil)
	requireValidation(t, err, "payload")
}

func TestValidateStockIn_PrimeraReglaGana(t *testing.T) {
	req := &dto.StockInRequest{Date: ptr("no-es-fecha")}
	_, err := stock.ValidateStockIn(req)
	requireValidation(t, err, "transactionCode")
}

func TestValidateStockIn_Normaliza(t *testing.T) {
	req := stockInToStore("  IN-7  ", 3, 7, 10)
	req.Date = ptr("2024-05-01")

	in, err := stock.ValidateStockIn(req)
	require.NoError(t, err)
	assert.Equal(t, "IN-7", in.TransactionCode)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), in.Date)
	require.NotNil(t, in.StoreID)
	assert.Equal(t, int64(3), *in.StoreID)
	require.Len(t, in.Lines, 1)
	assert.Equal(t, int64(7), in.Lines[0].ProductID)
}

func TestValidateStockIn_FormatosDeFecha(t *testing.T) {
	for _, d := range []string{"2024-05-01", "2024-05-01T08:30:00", "2024-05-01T08:30:00Z", "2024-05-01T08:30:00.123-05:00"} {
		req := stockInToWarehouse("IN-1", 1, 1)
		req.Date = ptr(d)
		_, err := stock.ValidateStockIn(req)
		assert.NoError(t, err, d)
	}
}

func TestValidateStockOut_TiendaSiempreObligatoria(t *testing.T) {
	req := stockOut("OUT-1", 1, 1, 1)
	req.StoreID = nil
	_, err := stock.ValidateStockOut(req)
	requireValidation(t, err, "storeId")

	out, err := stock.ValidateStockOut(stockOut("OUT-1", 4, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.StoreID)
}

func TestValidateStockMutation_Reglas(t *testing.T) {
	base := func() *dto.StockMutationRequest {
		return &dto.StockMutationRequest{
			TransactionCode: ptr("MUT-1"),
			Date:            ptr("2024-05-03"),
			FromWarehouse:   ptr(false),
			FromStoreID:     ptr(int64(1)),
			ToStoreID:       ptr(int64(2)),
			Products:        lines(1, 1),
		}
	}
	cases := []struct {
		name   string
		mutate func(r *dto.StockMutationRequest)
		want   string
	}{
		{"fromWarehouse ausente", func(r *dto.StockMutationRequest) { r.FromWarehouse = nil }, "fromWarehouse"},
		{"origen requerido", func(r *dto.StockMutationRequest) { r.FromStoreID = nil }, "fromStoreId"},
		{"destino requerido", func(r *dto.StockMutationRequest) { r.ToStoreID = nil }, "toStoreId"},
		{"misma tienda", func(r *dto.StockMutationRequest) { r.ToStoreID = ptr(int64(1)) }, "distintas"},
		{"productos vacios", func(r *dto.StockMutationRequest) { r.Products = []dto.MovementLineRequest{} }, "products"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mutate(req)
			_, err := stock.ValidateStockMutation(req)
			requireValidation(t, err, tc.want)
		})
	}

	t.Run("desde bodega no exige origen", func(t *testing.T) {
		req := base()
		req.FromWarehouse = ptr(true)
		req.FromStoreID = ptr(int64(2))
		m, err := stock.ValidateStockMutation(req)
		require.NoError(t, err)
		assert.Nil(t, m.FromStoreID)
		assert.True(t, m.Source().IsWarehouse())
	})
}
