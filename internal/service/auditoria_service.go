package service

import (
	"context"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/apperr"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/audit"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/dto"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/model"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/repository"
)

// AuditoriaService is the read-only browsing side of the audit trail.
// It never mutates state. Filter values outside the enumerated sets
// (tabla, operación) are rejected as validation errors rather than
// returning an empty page, so caller typos surface during recovery review.
type AuditoriaService interface {
	Listar(ctx context.Context, pag dto.Paginacion) ([]dto.AuditoriaResponse, error)
	PorGrupo(ctx context.Context, grupo string, pag dto.Paginacion) ([]dto.AuditoriaResponse, error)
	PorTabla(ctx context.Context, tabla string, pag dto.Paginacion) ([]dto.AuditoriaResponse, error)
	PorOperacion(ctx context.Context, operacion string, pag dto.Paginacion) ([]dto.AuditoriaResponse, error)
	PorRegistro(ctx context.Context, tabla string, idRegistro uint) ([]dto.AuditoriaResponse, error)
}

type auditoriaService struct {
	repo repository.AuditoriaRepository
}

func NewAuditoriaService(repo repository.AuditoriaRepository) AuditoriaService {
	return &auditoriaService{repo: repo}
}

func (s *auditoriaService) Listar(ctx context.Context, pag dto.Paginacion) ([]dto.AuditoriaResponse, error) {
	if err := validarPaginacion(pag.Skip, pag.Limit); err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, pag.Skip, pag.Limit)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return auditoriaToResponse(rows), nil
}

func (s *auditoriaService) PorGrupo(ctx context.Context, grupo string, pag dto.Paginacion) ([]dto.AuditoriaResponse, error) {
	if err := validarPaginacion(pag.Skip, pag.Limit); err != nil {
		return nil, err
	}
	if grupo == "" {
		return nil, apperr.Validation("El nombre del grupo no puede estar vacío")
	}
	rows, err := s.repo.ListByGrupo(ctx, grupo, pag.Skip, pag.Limit)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return auditoriaToResponse(rows), nil
}

func (s *auditoriaService) PorTabla(ctx context.Context, tabla string, pag dto.Paginacion) ([]dto.AuditoriaResponse, error) {
	if err := validarPaginacion(pag.Skip, pag.Limit); err != nil {
		return nil, err
	}
	if err := audit.ValidarTabla(tabla); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByTabla(ctx, tabla, pag.Skip, pag.Limit)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return auditoriaToResponse(rows), nil
}

func (s *auditoriaService) PorOperacion(ctx context.Context, operacion string, pag dto.Paginacion) ([]dto.AuditoriaResponse, error) {
	if err := validarPaginacion(pag.Skip, pag.Limit); err != nil {
		return nil, err
	}
	op, err := audit.ParseOperacion(operacion)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByOperacion(ctx, string(op), pag.Skip, pag.Limit)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return auditoriaToResponse(rows), nil
}

func (s *auditoriaService) PorRegistro(ctx context.Context, tabla string, idRegistro uint) ([]dto.AuditoriaResponse, error) {
	if err := audit.ValidarTabla(tabla); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByRegistro(ctx, tabla, idRegistro)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return auditoriaToResponse(rows), nil
}

func auditoriaToResponse(rows []model.HistorialAuditoria) []dto.AuditoriaResponse {
	out := make([]dto.AuditoriaResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AuditoriaResponse{
			ID:               r.ID,
			TablaAfectada:    r.TablaAfectada,
			IDRegistro:       r.IDRegistro,
			Operacion:        r.Operacion,
			GrupoResponsable: r.GrupoResponsable,
			DatosAnteriores:  r.DatosAnteriores,
			DatosNuevos:      r.DatosNuevos,
			FechaOperacion:   r.FechaOperacion,
			Observaciones:    r.Observaciones,
		})
	}
	return out
}
