package service

import (
	"context"
	"regexp"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// limiteMaximo caps list pagination; the original API had no upper bound,
// which let a single request drag the whole table.
const limiteMaximo = 1000

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func validarPaginacion(skip, limit int) error {
	if skip < 0 {
		return apperr.Validation("skip debe ser mayor o igual a 0")
	}
	if limit < 1 || limit > limiteMaximo {
		return apperr.Validation("limit debe estar entre 1 y %d", limiteMaximo)
	}
	return nil
}

var precioMaximo = decimal.RequireFromString("999999999.99")

func validarPrecio(p decimal.Decimal) error {
	if !p.IsPositive() {
		return apperr.Validation("El precio debe ser mayor a 0")
	}
	if p.GreaterThan(precioMaximo) {
		return apperr.Validation("El precio no puede superar %s", precioMaximo.String())
	}
	if p.Exponent() < -2 {
		return apperr.Validation("El precio no puede tener más de 2 decimales")
	}
	return nil
}

// documentoRe: solo dígitos, espacios y guiones.
var documentoRe = regexp.MustCompile(`^[0-9 \-]+$`)

func validarDocumento(doc string) error {
	if !documentoRe.MatchString(doc) {
		return apperr.Validation("El documento solo puede contener dígitos, espacios y guiones")
	}
	return nil
}
