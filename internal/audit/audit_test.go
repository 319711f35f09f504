package audit

import (
	"encoding/json"
	"testing"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperacion(t *testing.T) {
	casos := []struct {
		entrada  string
		esperada Operacion
	}{
		{"CREATE", OperacionCreate},
		{"create", OperacionCreate},
		{"  Update ", OperacionUpdate},
		{"delete", OperacionDelete},
	}
	for _, c := range casos {
		op, err := ParseOperacion(c.entrada)
		require.NoError(t, err, c.entrada)
		assert.Equal(t, c.esperada, op)
	}

	for _, invalida := range []string{"", "TRUNCATE", "crear"} {
		_, err := ParseOperacion(invalida)
		assert.True(t, apperr.IsValidation(err), "%q debe rechazarse", invalida)
	}
}

func TestValidarTabla(t *testing.T) {
	assert.NoError(t, ValidarTabla(TablaProductos))
	assert.NoError(t, ValidarTabla(TablaClientes))
	assert.True(t, apperr.IsValidation(ValidarTabla("ventas")))
	assert.True(t, apperr.IsValidation(ValidarTabla("")))
}

func TestSerializar(t *testing.T) {
	// nil y mapa vacío producen NULL, no "{}" ni "null".
	s, err := serializar(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = serializar(map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = serializar(map[string]any{"stock": 5, "nombre": "Camiseta"})
	require.NoError(t, err)
	require.NotNil(t, s)

	var decodificado map[string]any
	require.NoError(t, json.Unmarshal([]byte(*s), &decodificado))
	assert.Equal(t, "Camiseta", decodificado["nombre"])
	assert.EqualValues(t, 5, decodificado["stock"])
}
