package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromDBTraducciones(t *testing.T) {
	assert.NoError(t, FromDB(nil, "", ""))

	err := FromDB(gorm.ErrRecordNotFound, "Producto no encontrado", "")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Producto no encontrado", err.Error())

	err = FromDB(gorm.ErrDuplicatedKey, "", "Ya existe un cliente con el email 'x@y.co'")
	assert.True(t, IsConflict(err))
	assert.Equal(t, "Ya existe un cliente con el email 'x@y.co'", err.Error())

	err = FromDB(context.DeadlineExceeded, "", "")
	assert.True(t, IsTimeout(err))

	// La cancelación del llamador pasa sin envolver.
	err = FromDB(context.Canceled, "", "")
	assert.ErrorIs(t, err, context.Canceled)

	err = FromDB(errors.New("connection refused"), "", "")
	assert.True(t, IsUnavailable(err))
}

func TestFromDBConservaCausaEnvuelta(t *testing.T) {
	causa := errors.New("dial tcp: connection refused")
	err := FromDB(causa, "", "")

	require.True(t, IsUnavailable(err))
	assert.ErrorIs(t, err, causa, "la causa viaja envuelta para los logs")
	assert.Contains(t, err.Error(), "Error de base de datos")
}

func TestFromDBErroresEnvueltos(t *testing.T) {
	// errors.Is debe atravesar envolturas intermedias.
	envuelto := fmt.Errorf("consultando producto: %w", gorm.ErrRecordNotFound)
	assert.True(t, IsNotFound(FromDB(envuelto, "no encontrado", "")))
}

func TestPredicadosNoConfundenKinds(t *testing.T) {
	err := Validation("skip debe ser mayor o igual a 0")
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}
