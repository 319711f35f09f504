//go:build integration

package service

// Integration tests against real Postgres via testcontainers.
// Run with: go test -tags integration ./internal/service/... -v
//
// Cubre lo que los stubs no pueden: la transacción real que une mutación y
// auditoría, la traducción del índice único y el orden estable del historial.

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/apperr"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/audit"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/dto"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/infra"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("tienda_test"),
		tcPostgres.WithUsername("tienda"),
		tcPostgres.WithPassword("tienda"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDB(dsn)
	require.NoError(t, err)
	return db
}

func TestCicloCompletoProductoConAuditoria(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	productoSvc := NewProductoService(repository.NewProductoRepository(db), audit.NewRecorder(), nil, 0)
	auditoriaSvc := NewAuditoriaService(repository.NewAuditoriaRepository(db))

	creado, err := productoSvc.Crear(ctx, "GRUPO_1", dto.CrearProductoRequest{
		Nombre: "Camiseta FUMC",
		Precio: decimal.RequireFromString("59900.00"),
		Stock:  10,
	})
	require.NoError(t, err)

	_, err = productoSvc.Actualizar(ctx, "GRUPO_2", creado.ID, dto.ActualizarProductoRequest{
		Stock: intptr(5),
	})
	require.NoError(t, err)

	_, err = productoSvc.Eliminar(ctx, "GRUPO_3", creado.ID)
	require.NoError(t, err)

	// Historial newest-first, con desempate por id cuando la marca de
	// tiempo coincide (las tres operaciones corren en el mismo instante).
	historial, err := auditoriaSvc.PorRegistro(ctx, audit.TablaProductos, creado.ID)
	require.NoError(t, err)
	require.Len(t, historial, 3)
	assert.Equal(t, "DELETE", historial[0].Operacion)
	assert.Equal(t, "UPDATE", historial[1].Operacion)
	assert.Equal(t, "CREATE", historial[2].Operacion)
	assert.Equal(t, "GRUPO_3", historial[0].GrupoResponsable)

	// CREATE no lleva estado anterior; DELETE sí.
	assert.Nil(t, historial[2].DatosAnteriores)
	require.NotNil(t, historial[0].DatosAnteriores)
	assert.Contains(t, *historial[0].DatosAnteriores, `"activo":true`)

	// El registro inactivo sigue siendo consultable por ID.
	porID, err := productoSvc.ObtenerPorID(ctx, creado.ID)
	require.NoError(t, err)
	assert.False(t, porID.Activo)

	// Pero no aparece en el listado por defecto.
	lista, err := productoSvc.Listar(ctx, dto.ProductoFilter{Limit: 100})
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func TestIndiceUnicoEmailTraducido(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	clienteSvc := NewClienteService(repository.NewClienteRepository(db), audit.NewRecorder())

	_, err := clienteSvc.Crear(ctx, "GRUPO_1", dto.CrearClienteRequest{
		Nombre: "Ana Restrepo",
		Email:  "ana@fumc.edu.co",
	})
	require.NoError(t, err)

	_, err = clienteSvc.Crear(ctx, "GRUPO_2", dto.CrearClienteRequest{
		Nombre: "Otra Ana",
		Email:  "ana@fumc.edu.co",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// El intento rechazado no dejó entrada en el historial.
	auditoriaSvc := NewAuditoriaService(repository.NewAuditoriaRepository(db))
	historial, err := auditoriaSvc.PorTabla(ctx, audit.TablaClientes, dto.Paginacion{Skip: 0, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, historial, 1)
}

func TestMutacionesConcurrentesUnaEntradaPorMutacion(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	productoSvc := NewProductoService(repository.NewProductoRepository(db), audit.NewRecorder(), nil, 0)
	auditoriaSvc := NewAuditoriaService(repository.NewAuditoriaRepository(db))

	// Cada goroutine muta una entidad distinta: crear, actualizar, borrar.
	const escritores = 8
	ids := make([]uint, escritores)
	var wg sync.WaitGroup
	errs := make(chan error, escritores)

	for i := 0; i < escritores; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			grupo := fmt.Sprintf("GRUPO_%d", i+1)

			creado, err := productoSvc.Crear(ctx, grupo, dto.CrearProductoRequest{
				Nombre: fmt.Sprintf("Producto concurrente %d", i),
				Precio: decimal.RequireFromString("10.00"),
				Stock:  10,
			})
			if err != nil {
				errs <- err
				return
			}
			ids[i] = creado.ID

			if _, err := productoSvc.Actualizar(ctx, grupo, creado.ID, dto.ActualizarProductoRequest{
				Stock: intptr(5),
			}); err != nil {
				errs <- err
				return
			}
			if _, err := productoSvc.Eliminar(ctx, grupo, creado.ID); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Exactamente una entrada por mutación confirmada: tres por entidad,
	// una por operación, sin duplicados ni faltantes.
	historial, err := auditoriaSvc.PorTabla(ctx, audit.TablaProductos, dto.Paginacion{Skip: 0, Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, historial, escritores*3)

	for i, id := range ids {
		porRegistro, err := auditoriaSvc.PorRegistro(ctx, audit.TablaProductos, id)
		require.NoError(t, err)
		require.Len(t, porRegistro, 3, "entidad %d", i)

		ops := map[string]int{}
		for _, e := range porRegistro {
			ops[e.Operacion]++
		}
		assert.Equal(t, map[string]int{"CREATE": 1, "UPDATE": 1, "DELETE": 1}, ops)
	}
}

func TestBusquedaPorNombreInsensibleAMayusculas(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	productoSvc := NewProductoService(repository.NewProductoRepository(db), audit.NewRecorder(), nil, 0)

	_, err := productoSvc.Crear(ctx, "GRUPO_1", dto.CrearProductoRequest{
		Nombre: "Camiseta FUMC",
		Precio: decimal.RequireFromString("59900.00"),
	})
	require.NoError(t, err)

	resultados, err := productoSvc.BuscarPorNombre(ctx, "camiseta")
	require.NoError(t, err)
	require.Len(t, resultados, 1)
	assert.Equal(t, "Camiseta FUMC", resultados[0].Nombre)
}
