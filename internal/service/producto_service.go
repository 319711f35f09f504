package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/apperr"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/audit"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/dto"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/model"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProductoService defines the business logic contract for productos.
// Every mutating call takes the acting group explicitly — the service
// never reads ambient actor state.
type ProductoService interface {
	Crear(ctx context.Context, grupo string, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	BuscarPorNombre(ctx context.Context, query string) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, grupo string, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, grupo string, id uint) (*dto.MensajeResponse, error)
}

type productoService struct {
	repo     repository.ProductoRepository
	auditor  audit.Recorder
	rdb      *redis.Client // nil in unit tests — cache is best effort
	cacheTTL time.Duration
}

func NewProductoService(repo repository.ProductoRepository, auditor audit.Recorder, rdb *redis.Client, cacheTTL time.Duration) ProductoService {
	return &productoService{repo: repo, auditor: auditor, rdb: rdb, cacheTTL: cacheTTL}
}

const msgProductoNoEncontrado = "Producto no encontrado"

func (s *productoService) Crear(ctx context.Context, grupo string, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if err := validarPrecio(req.Precio); err != nil {
		return nil, err
	}
	if req.Stock < 0 {
		return nil, apperr.Validation("El stock no puede ser negativo")
	}

	p := &model.Producto{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Precio:       req.Precio,
		Stock:        req.Stock,
		Categoria:    req.Categoria,
		ImagenURL:    req.ImagenURL,
		Activo:       true,
		GrupoCreador: grupo,
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, p); err != nil {
			return apperr.FromDB(err, msgProductoNoEncontrado, "")
		}
		return s.auditor.Registrar(tx, audit.Entrada{
			Tabla:         audit.TablaProductos,
			IDRegistro:    p.ID,
			Operacion:     audit.OperacionCreate,
			Grupo:         grupo,
			DatosNuevos:   camposCreacionProducto(req),
			Observaciones: fmt.Sprintf("Producto '%s' creado por %s", p.Nombre, grupo),
		})
	})
	if err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	cacheKey := fmt.Sprintf("producto:%d", id)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.ProductoResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, fmt.Sprintf("Producto con ID %d no encontrado", id), "")
	}
	resp := productoToResponse(p)

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey, b, s.cacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	if err := validarPaginacion(filter.Skip, filter.Limit); err != nil {
		return nil, err
	}
	productos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return productosToResponse(productos), nil
}

func (s *productoService) BuscarPorNombre(ctx context.Context, query string) ([]dto.ProductoResponse, error) {
	if utf8.RuneCountInString(query) < 2 {
		return nil, apperr.Validation("La búsqueda debe tener al menos 2 caracteres")
	}
	productos, err := s.repo.SearchByNombre(ctx, query)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return productosToResponse(productos), nil
}

func (s *productoService) Actualizar(ctx context.Context, grupo string, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio != nil {
		if err := validarPrecio(*req.Precio); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, apperr.Validation("El stock no puede ser negativo")
	}

	var p *model.Producto
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		p, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			return apperr.FromDB(err, fmt.Sprintf("Producto con ID %d no encontrado", id), "")
		}

		// Snapshot completo de los campos de dominio ANTES de aplicar
		// los cambios; los datos nuevos llevan solo lo enviado.
		anteriores := snapshotProducto(p)
		cambios := map[string]any{}

		if req.Nombre != nil {
			p.Nombre = *req.Nombre
			cambios["nombre"] = *req.Nombre
		}
		if req.Descripcion != nil {
			p.Descripcion = req.Descripcion
			cambios["descripcion"] = *req.Descripcion
		}
		if req.Precio != nil {
			p.Precio = *req.Precio
			cambios["precio"] = *req.Precio
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
			cambios["stock"] = *req.Stock
		}
		if req.Categoria != nil {
			p.Categoria = req.Categoria
			cambios["categoria"] = *req.Categoria
		}
		if req.ImagenURL != nil {
			p.ImagenURL = req.ImagenURL
			cambios["imagen_url"] = *req.ImagenURL
		}

		p.GrupoUltimaModificacion = &grupo
		if err := s.repo.SaveTx(tx, p); err != nil {
			return apperr.FromDB(err, msgProductoNoEncontrado, "")
		}

		return s.auditor.Registrar(tx, audit.Entrada{
			Tabla:           audit.TablaProductos,
			IDRegistro:      p.ID,
			Operacion:       audit.OperacionUpdate,
			Grupo:           grupo,
			DatosAnteriores: anteriores,
			DatosNuevos:     cambios,
			Observaciones:   fmt.Sprintf("Producto '%s' actualizado por %s", p.Nombre, grupo),
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidarCache(ctx, id)
	return productoToResponse(p), nil
}

func (s *productoService) Eliminar(ctx context.Context, grupo string, id uint) (*dto.MensajeResponse, error) {
	var nombre string
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return apperr.FromDB(err, fmt.Sprintf("Producto con ID %d no encontrado", id), "")
		}
		if !p.Activo {
			return apperr.Conflict("El producto '%s' ya está inactivo", p.Nombre)
		}
		nombre = p.Nombre

		anteriores := map[string]any{"nombre": p.Nombre, "activo": true}
		p.Activo = false
		p.GrupoUltimaModificacion = &grupo
		if err := s.repo.SaveTx(tx, p); err != nil {
			return apperr.FromDB(err, msgProductoNoEncontrado, "")
		}

		return s.auditor.Registrar(tx, audit.Entrada{
			Tabla:           audit.TablaProductos,
			IDRegistro:      p.ID,
			Operacion:       audit.OperacionDelete,
			Grupo:           grupo,
			DatosAnteriores: anteriores,
			DatosNuevos:     map[string]any{"activo": false},
			Observaciones:   fmt.Sprintf("Producto '%s' eliminado (lógicamente) por %s", p.Nombre, grupo),
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidarCache(ctx, id)
	return &dto.MensajeResponse{
		Mensaje: fmt.Sprintf("Producto '%s' eliminado correctamente", nombre),
		Detalle: "Eliminación lógica: el producto está marcado como inactivo",
	}, nil
}

func (s *productoService) invalidarCache(ctx context.Context, id uint) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, fmt.Sprintf("producto:%d", id)).Err()
}

// camposCreacionProducto is the after_state of a CREATE: the fields the
// caller supplied, defaults included, without the audit columns.
func camposCreacionProducto(req dto.CrearProductoRequest) map[string]any {
	return map[string]any{
		"nombre":      req.Nombre,
		"descripcion": req.Descripcion,
		"precio":      req.Precio,
		"stock":       req.Stock,
		"categoria":   req.Categoria,
		"imagen_url":  req.ImagenURL,
	}
}

// snapshotProducto captures the domain fields (never the audit columns)
// for the before/after states of an audit record.
func snapshotProducto(p *model.Producto) map[string]any {
	return map[string]any{
		"nombre":      p.Nombre,
		"descripcion": p.Descripcion,
		"precio":      p.Precio,
		"stock":       p.Stock,
		"categoria":   p.Categoria,
		"imagen_url":  p.ImagenURL,
		"activo":      p.Activo,
	}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:                      p.ID,
		Nombre:                  p.Nombre,
		Descripcion:             p.Descripcion,
		Precio:                  p.Precio,
		Stock:                   p.Stock,
		Categoria:               p.Categoria,
		ImagenURL:               p.ImagenURL,
		Activo:                  p.Activo,
		FechaCreacion:           p.FechaCreacion,
		FechaActualizacion:      p.FechaActualizacion,
		GrupoCreador:            p.GrupoCreador,
		GrupoUltimaModificacion: p.GrupoUltimaModificacion,
	}
}

func productosToResponse(productos []model.Producto) []dto.ProductoResponse {
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}
	return out
}
