package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/apperr"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/dto"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/middleware"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stub ProductoService ─────────────────────────────────────────────────────

type stubProductoService struct {
	ultimoGrupo string
	errCrear    error
	errObtener  error
	errEliminar error
}

func (s *stubProductoService) Crear(_ context.Context, grupo string, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	s.ultimoGrupo = grupo
	if s.errCrear != nil {
		return nil, s.errCrear
	}
	return &dto.ProductoResponse{ID: 1, Nombre: req.Nombre, Precio: req.Precio, Activo: true, GrupoCreador: grupo}, nil
}

func (s *stubProductoService) ObtenerPorID(_ context.Context, id uint) (*dto.ProductoResponse, error) {
	if s.errObtener != nil {
		return nil, s.errObtener
	}
	return &dto.ProductoResponse{ID: id, Nombre: "Camiseta FUMC", Activo: true}, nil
}

func (s *stubProductoService) Listar(_ context.Context, _ dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	return []dto.ProductoResponse{}, nil
}

func (s *stubProductoService) BuscarPorNombre(_ context.Context, query string) ([]dto.ProductoResponse, error) {
	if len(query) < 2 {
		return nil, apperr.Validation("La búsqueda debe tener al menos 2 caracteres")
	}
	return []dto.ProductoResponse{}, nil
}

func (s *stubProductoService) Actualizar(_ context.Context, grupo string, id uint, _ dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	s.ultimoGrupo = grupo
	return &dto.ProductoResponse{ID: id, Activo: true}, nil
}

func (s *stubProductoService) Eliminar(_ context.Context, grupo string, _ uint) (*dto.MensajeResponse, error) {
	s.ultimoGrupo = grupo
	if s.errEliminar != nil {
		return nil, s.errEliminar
	}
	return &dto.MensajeResponse{Mensaje: "ok"}, nil
}

var _ service.ProductoService = (*stubProductoService)(nil)

// ── helpers ──────────────────────────────────────────────────────────────────

func setupProductosRouter(svc service.ProductoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Grupo("GRUPO_1"))
	h := NewProductosHandler(svc)
	r.POST("/productos", h.Crear)
	r.GET("/productos/buscar/nombre", h.BuscarPorNombre)
	r.GET("/productos/:id", h.ObtenerPorID)
	r.DELETE("/productos/:id", h.Eliminar)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(b)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearProductoUsaGrupoDelHeader(t *testing.T) {
	svc := &stubProductoService{}
	r := setupProductosRouter(svc)

	body := dto.CrearProductoRequest{Nombre: "Camiseta FUMC", Precio: decimal.RequireFromString("59900.00")}
	w := doRequest(t, r, http.MethodPost, "/productos", body, map[string]string{"X-Grupo": "GRUPO_7"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "GRUPO_7", svc.ultimoGrupo)
}

func TestCrearProductoGrupoPorDefecto(t *testing.T) {
	svc := &stubProductoService{}
	r := setupProductosRouter(svc)

	body := dto.CrearProductoRequest{Nombre: "Camiseta FUMC", Precio: decimal.RequireFromString("59900.00")}
	w := doRequest(t, r, http.MethodPost, "/productos", body, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "GRUPO_1", svc.ultimoGrupo)
}

func TestCrearProductoCamposInvalidos(t *testing.T) {
	r := setupProductosRouter(&stubProductoService{})

	// nombre de 2 caracteres viola min=3
	body := dto.CrearProductoRequest{Nombre: "ab", Precio: decimal.RequireFromString("10.00")}
	w := doRequest(t, r, http.MethodPost, "/productos", body, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "Nombre")
}

func TestCrearProductoJSONMalformado(t *testing.T) {
	r := setupProductosRouter(&stubProductoService{})

	req := httptest.NewRequest(http.MethodPost, "/productos", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMapeoDeErroresAHTTP(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		status int
	}{
		{"validación", apperr.Validation("inválido"), http.StatusBadRequest},
		{"no encontrado", apperr.NotFound("Producto con ID 9 no encontrado"), http.StatusNotFound},
		{"conflicto", apperr.Conflict("ya está inactivo"), http.StatusConflict},
		{"timeout", apperr.Timeout("la base de datos no respondió", nil), http.StatusGatewayTimeout},
		{"no disponible", apperr.Unavailable("error de base de datos", nil), http.StatusServiceUnavailable},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			svc := &stubProductoService{errObtener: c.err}
			r := setupProductosRouter(svc)

			w := doRequest(t, r, http.MethodGet, "/productos/9", nil, nil)
			assert.Equal(t, c.status, w.Code)

			var resp struct {
				Detail string `json:"detail"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Detail)
		})
	}
}

func TestIDInvalidoEnRuta(t *testing.T) {
	r := setupProductosRouter(&stubProductoService{})

	for _, path := range []string{"/productos/abc", "/productos/0", "/productos/-1"} {
		w := doRequest(t, r, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestBuscarPorNombreQueryCortaHTTP(t *testing.T) {
	r := setupProductosRouter(&stubProductoService{})

	w := doRequest(t, r, http.MethodGet, "/productos/buscar/nombre?query=a", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
