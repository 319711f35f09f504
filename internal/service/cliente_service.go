package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/apperr"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/audit"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/dto"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/model"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/repository"

	"gorm.io/gorm"
)

// ClienteService defines the business logic contract for clientes.
type ClienteService interface {
	Crear(ctx context.Context, grupo string, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) ([]dto.ClienteResponse, error)
	BuscarPorNombre(ctx context.Context, query string) ([]dto.ClienteResponse, error)
	BuscarPorEmail(ctx context.Context, email string) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, grupo string, id uint, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, grupo string, id uint) (*dto.MensajeResponse, error)
}

type clienteService struct {
	repo    repository.ClienteRepository
	auditor audit.Recorder
}

func NewClienteService(repo repository.ClienteRepository, auditor audit.Recorder) ClienteService {
	return &clienteService{repo: repo, auditor: auditor}
}

func msgEmailDuplicado(email string) string {
	return fmt.Sprintf("Ya existe un cliente con el email '%s'", email)
}

func msgDocumentoDuplicado(doc string) string {
	return fmt.Sprintf("Ya existe un cliente con el documento '%s'", doc)
}

// msgClienteDuplicado cubre la violación del índice único detectada al
// confirmar la transacción. La traducción del driver no conserva cuál de
// los dos índices falló, así que el mensaje nombra ambos campos.
const msgClienteDuplicado = "Ya existe un cliente con ese email o documento"

func (s *clienteService) Crear(ctx context.Context, grupo string, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if req.Documento != nil {
		if err := validarDocumento(*req.Documento); err != nil {
			return nil, err
		}
	}

	c := &model.Cliente{
		Nombre:       req.Nombre,
		Email:        req.Email,
		Telefono:     req.Telefono,
		Direccion:    req.Direccion,
		Ciudad:       req.Ciudad,
		Documento:    req.Documento,
		Activo:       true,
		GrupoCreador: grupo,
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Pre-chequeo para un mensaje amigable; el índice único de la BD
		// es la garantía real y su violación produce el mismo conflicto.
		if existe, err := s.repo.ExistsByEmailTx(tx, req.Email, 0); err != nil {
			return apperr.FromDB(err, "", "")
		} else if existe {
			return apperr.Conflict("%s", msgEmailDuplicado(req.Email))
		}
		if req.Documento != nil {
			if existe, err := s.repo.ExistsByDocumentoTx(tx, *req.Documento, 0); err != nil {
				return apperr.FromDB(err, "", "")
			} else if existe {
				return apperr.Conflict("%s", msgDocumentoDuplicado(*req.Documento))
			}
		}

		if err := s.repo.CreateTx(tx, c); err != nil {
			return apperr.FromDB(err, "", msgClienteDuplicado)
		}
		return s.auditor.Registrar(tx, audit.Entrada{
			Tabla:         audit.TablaClientes,
			IDRegistro:    c.ID,
			Operacion:     audit.OperacionCreate,
			Grupo:         grupo,
			DatosNuevos:   camposCreacionCliente(req),
			Observaciones: fmt.Sprintf("Cliente '%s' creado por %s", c.Nombre, grupo),
		})
	})
	if err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uint) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, fmt.Sprintf("Cliente con ID %d no encontrado", id), "")
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) ([]dto.ClienteResponse, error) {
	if err := validarPaginacion(filter.Skip, filter.Limit); err != nil {
		return nil, err
	}
	clientes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return clientesToResponse(clientes), nil
}

func (s *clienteService) BuscarPorNombre(ctx context.Context, query string) ([]dto.ClienteResponse, error) {
	if utf8.RuneCountInString(query) < 2 {
		return nil, apperr.Validation("La búsqueda debe tener al menos 2 caracteres")
	}
	clientes, err := s.repo.SearchByNombre(ctx, query)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return clientesToResponse(clientes), nil
}

func (s *clienteService) BuscarPorEmail(ctx context.Context, email string) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.FromDB(err, fmt.Sprintf("No se encontró un cliente con el email '%s'", email), "")
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Actualizar(ctx context.Context, grupo string, id uint, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	if req.Documento != nil {
		if err := validarDocumento(*req.Documento); err != nil {
			return nil, err
		}
	}

	var c *model.Cliente
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		c, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			return apperr.FromDB(err, fmt.Sprintf("Cliente con ID %d no encontrado", id), "")
		}

		// Re-chequear unicidad solo si el valor cambia respecto al actual.
		if req.Email != nil && *req.Email != c.Email {
			if existe, err := s.repo.ExistsByEmailTx(tx, *req.Email, c.ID); err != nil {
				return apperr.FromDB(err, "", "")
			} else if existe {
				return apperr.Conflict("%s", msgEmailDuplicado(*req.Email))
			}
		}
		if req.Documento != nil && (c.Documento == nil || *req.Documento != *c.Documento) {
			if existe, err := s.repo.ExistsByDocumentoTx(tx, *req.Documento, c.ID); err != nil {
				return apperr.FromDB(err, "", "")
			} else if existe {
				return apperr.Conflict("%s", msgDocumentoDuplicado(*req.Documento))
			}
		}

		anteriores := snapshotCliente(c)
		cambios := map[string]any{}

		if req.Nombre != nil {
			c.Nombre = *req.Nombre
			cambios["nombre"] = *req.Nombre
		}
		if req.Email != nil {
			c.Email = *req.Email
			cambios["email"] = *req.Email
		}
		if req.Telefono != nil {
			c.Telefono = req.Telefono
			cambios["telefono"] = *req.Telefono
		}
		if req.Direccion != nil {
			c.Direccion = req.Direccion
			cambios["direccion"] = *req.Direccion
		}
		if req.Ciudad != nil {
			c.Ciudad = req.Ciudad
			cambios["ciudad"] = *req.Ciudad
		}
		if req.Documento != nil {
			c.Documento = req.Documento
			cambios["documento"] = *req.Documento
		}

		c.GrupoUltimaModificacion = &grupo
		if err := s.repo.SaveTx(tx, c); err != nil {
			return apperr.FromDB(err, "", msgClienteDuplicado)
		}

		return s.auditor.Registrar(tx, audit.Entrada{
			Tabla:           audit.TablaClientes,
			IDRegistro:      c.ID,
			Operacion:       audit.OperacionUpdate,
			Grupo:           grupo,
			DatosAnteriores: anteriores,
			DatosNuevos:     cambios,
			Observaciones:   fmt.Sprintf("Cliente '%s' actualizado por %s", c.Nombre, grupo),
		})
	})
	if err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, grupo string, id uint) (*dto.MensajeResponse, error) {
	var nombre string
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return apperr.FromDB(err, fmt.Sprintf("Cliente con ID %d no encontrado", id), "")
		}
		if !c.Activo {
			return apperr.Conflict("El cliente '%s' ya está inactivo", c.Nombre)
		}
		nombre = c.Nombre

		anteriores := map[string]any{"nombre": c.Nombre, "activo": true}
		c.Activo = false
		c.GrupoUltimaModificacion = &grupo
		if err := s.repo.SaveTx(tx, c); err != nil {
			return apperr.FromDB(err, "", "")
		}

		return s.auditor.Registrar(tx, audit.Entrada{
			Tabla:           audit.TablaClientes,
			IDRegistro:      c.ID,
			Operacion:       audit.OperacionDelete,
			Grupo:           grupo,
			DatosAnteriores: anteriores,
			DatosNuevos:     map[string]any{"activo": false},
			Observaciones:   fmt.Sprintf("Cliente '%s' eliminado (lógicamente) por %s", c.Nombre, grupo),
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.MensajeResponse{
		Mensaje: fmt.Sprintf("Cliente '%s' eliminado correctamente", nombre),
		Detalle: "Eliminación lógica: el cliente está marcado como inactivo",
	}, nil
}

func camposCreacionCliente(req dto.CrearClienteRequest) map[string]any {
	return map[string]any{
		"nombre":    req.Nombre,
		"email":     req.Email,
		"telefono":  req.Telefono,
		"direccion": req.Direccion,
		"ciudad":    req.Ciudad,
		"documento": req.Documento,
	}
}

func snapshotCliente(c *model.Cliente) map[string]any {
	return map[string]any{
		"nombre":    c.Nombre,
		"email":     c.Email,
		"telefono":  c.Telefono,
		"direccion": c.Direccion,
		"ciudad":    c.Ciudad,
		"documento": c.Documento,
		"activo":    c.Activo,
	}
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:                      c.ID,
		Nombre:                  c.Nombre,
		Email:                   c.Email,
		Telefono:                c.Telefono,
		Direccion:               c.Direccion,
		Ciudad:                  c.Ciudad,
		Documento:               c.Documento,
		Activo:                  c.Activo,
		FechaCreacion:           c.FechaCreacion,
		FechaActualizacion:      c.FechaActualizacion,
		GrupoCreador:            c.GrupoCreador,
		GrupoUltimaModificacion: c.GrupoUltimaModificacion,
	}
}

func clientesToResponse(clientes []model.Cliente) []dto.ClienteResponse {
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out
}
