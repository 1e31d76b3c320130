package stock

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MaxTransactionCodeLen longitud máxima del código de transacción.
const MaxTransactionCodeLen = 64

// MaxLineQuantity cantidad máxima por línea.
const MaxLineQuantity int64 = 1_000_000_000_000

var validate = validator.New()

// Formatos aceptados para la fecha del movimiento.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func init() {
	_ = validate.RegisterValidation("movement_date", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ValidateStockIn valida el body de una entrada y devuelve la transacción normalizada.
// Se detiene en la primera regla que falle.
func ValidateStockIn(req *dto.StockInRequest) (*entity.StockIn, error) {
	if req == nil {
		return nil, errInvalidPayload()
	}
	code, date, err := validateHeader(req.TransactionCode, req.Date)
	if err != nil {
		return nil, err
	}
	if req.ToWarehouse == nil {
		return nil, domain.NewValidationError("toWarehouse debe ser booleano")
	}
	var storeID *int64
	if !*req.ToWarehouse {
		if !validID(req.StoreID) {
			return nil, domain.NewValidationError("storeId es obligatorio cuando toWarehouse es false")
		}
		id := *req.StoreID
		storeID = &id
	}
	lines, err := validateLines(req.Products)
	if err != nil {
		return nil, err
	}
	return &entity.StockIn{
		Movement:    entity.Movement{TransactionCode: code, Date: date, Lines: lines},
		ToWarehouse: *req.ToWarehouse,
		StoreID:     storeID,
	}, nil
}

// ValidateStockOut valida el body de una salida. storeId siempre es obligatorio.
func ValidateStockOut(req *dto.StockOutRequest) (*entity.StockOut, error) {
	if req == nil {
		return nil, errInvalidPayload()
	}
	code, date, err := validateHeader(req.TransactionCode, req.Date)
	if err != nil {
		return nil, err
	}
	if !validID(req.StoreID) {
		return nil, domain.NewValidationError("storeId es obligatorio y debe ser un entero positivo")
	}
	lines, err := validateLines(req.Products)
	if err != nil {
		return nil, err
	}
	return &entity.StockOut{
		Movement: entity.Movement{TransactionCode: code, Date: date, Lines: lines},
		StoreID:  *req.StoreID,
	}, nil
}

// ValidateStockMutation valida el body de un traslado: fromStoreId obligatorio si fromWarehouse
// es false, toStoreId siempre, y origen distinto de destino.
func ValidateStockMutation(req *dto.StockMutationRequest) (*entity.StockMutation, error) {
	if req == nil {
		return nil, errInvalidPayload()
	}
	code, date, err := validateHeader(req.TransactionCode, req.Date)
	if err != nil {
		return nil, err
	}
	if req.FromWarehouse == nil {
		return nil, domain.NewValidationError("fromWarehouse debe ser booleano")
	}
	var fromStoreID *int64
	if !*req.FromWarehouse {
		if !validID(req.FromStoreID) {
			return nil, domain.NewValidationError("fromStoreId es obligatorio cuando fromWarehouse es false")
		}
		id := *req.FromStoreID
		fromStoreID = &id
	}
	if !validID(req.ToStoreID) {
		return nil, domain.NewValidationError("toStoreId es obligatorio y debe ser un entero positivo")
	}
	if fromStoreID != nil && *fromStoreID == *req.ToStoreID {
		return nil, domain.NewValidationError("la tienda de origen y la de destino deben ser distintas")
	}
	lines, err := validateLines(req.Products)
	if err != nil {
		return nil, err
	}
	return &entity.StockMutation{
		Movement:      entity.Movement{TransactionCode: code, Date: date, Lines: lines},
		FromWarehouse: *req.FromWarehouse,
		FromStoreID:   fromStoreID,
		ToStoreID:     *req.ToStoreID,
	}, nil
}

func errInvalidPayload() error {
	return domain.NewValidationError("formato de payload inválido")
}

func validateHeader(code, date *string) (string, time.Time, error) {
	if code == nil {
		return "", time.Time{}, domain.NewValidationError("transactionCode es obligatorio y debe ser texto")
	}
	trimmed := strings.TrimSpace(*code)
	if validate.Var(trimmed, "required") != nil {
		return "", time.Time{}, domain.NewValidationError("transactionCode es obligatorio y debe ser texto")
	}
	if validate.Var(trimmed, "max="+strconv.Itoa(MaxTransactionCodeLen)) != nil {
		return "", time.Time{}, domain.NewValidationError("transactionCode no puede superar %d caracteres", MaxTransactionCodeLen)
	}
	if date == nil || validate.Var(strings.TrimSpace(*date), "required,movement_date") != nil {
		return "", time.Time{}, domain.NewValidationError("date debe ser una fecha válida")
	}
	parsed, _ := parseDate(strings.TrimSpace(*date))
	return trimmed, parsed, nil
}

func validID(id *int64) bool {
	return id != nil && validate.Var(*id, "gt=0") == nil
}

func validateLines(products []dto.MovementLineRequest) ([]entity.MovementLine, error) {
	if validate.Var(products, "required,min=1") != nil {
		return nil, domain.NewValidationError("products debe ser una lista no vacía")
	}
	lines := make([]entity.MovementLine, 0, len(products))
	for i, p := range products {
		if !validID(p.ProductID) {
			return nil, domain.NewValidationError("productId en la posición %d debe ser un entero positivo", i)
		}
		if p.Quantity == nil || validate.Var(*p.Quantity, "gt=0") != nil {
			return nil, domain.NewValidationError("quantity en la posición %d debe ser un número positivo", i)
		}
		if validate.Var(*p.Quantity, "lte="+strconv.FormatInt(MaxLineQuantity, 10)) != nil {
			return nil, domain.NewValidationError("quantity en la posición %d no puede superar %d", i, MaxLineQuantity)
		}
		lines = append(lines, entity.MovementLine{ProductID: *p.ProductID, Quantity: *p.Quantity})
	}
	return lines, nil
}
