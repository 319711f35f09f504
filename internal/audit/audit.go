// Package audit builds and persists the immutable audit trail.
// One HistorialAuditoria row is written for every committed mutation on
// productos or clientes, inside the same transaction as the mutation, so
// either both persist or neither does.
package audit

import (
	"strings"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/apperr"
)

// Tablas auditables.
const (
	TablaProductos = "productos"
	TablaClientes  = "clientes"
)

// Operacion is the kind of mutation being recorded.
type Operacion string

const (
	OperacionCreate Operacion = "CREATE"
	OperacionUpdate Operacion = "UPDATE"
	OperacionDelete Operacion = "DELETE"
)

// ParseOperacion normalizes a caller-supplied operation filter to the enum.
// Matching is case-insensitive ("create" → CREATE).
func ParseOperacion(s string) (Operacion, error) {
	switch Operacion(strings.ToUpper(strings.TrimSpace(s))) {
	case OperacionCreate:
		return OperacionCreate, nil
	case OperacionUpdate:
		return OperacionUpdate, nil
	case OperacionDelete:
		return OperacionDelete, nil
	default:
		return "", apperr.Validation("Operación inválida '%s': debe ser CREATE, UPDATE o DELETE", s)
	}
}

// ValidarTabla rejects table names outside the audited set.
func ValidarTabla(tabla string) error {
	if tabla != TablaProductos && tabla != TablaClientes {
		return apperr.Validation("Tabla inválida '%s': debe ser %s o %s", tabla, TablaProductos, TablaClientes)
	}
	return nil
}
