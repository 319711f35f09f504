package repository

import (
	"context"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/model"

	"gorm.io/gorm"
)

// ordenAuditoria keeps newest-first ordering stable when two operations
// share the same timestamp.
const ordenAuditoria = "fecha_operacion DESC, id DESC"

// AuditoriaRepository is the read side of the audit trail. Writes go
// exclusively through audit.Recorder inside mutation transactions; this
// interface never mutates anything.
type AuditoriaRepository interface {
	List(ctx context.Context, skip, limit int) ([]model.HistorialAuditoria, error)
	ListByGrupo(ctx context.Context, grupo string, skip, limit int) ([]model.HistorialAuditoria, error)
	ListByTabla(ctx context.Context, tabla string, skip, limit int) ([]model.HistorialAuditoria, error)
	ListByOperacion(ctx context.Context, operacion string, skip, limit int) ([]model.HistorialAuditoria, error)
	// ListByRegistro returns the full history of one record, unpaginated,
	// for point-in-time reconstruction.
	ListByRegistro(ctx context.Context, tabla string, idRegistro uint) ([]model.HistorialAuditoria, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) list(ctx context.Context, skip, limit int, conds ...any) ([]model.HistorialAuditoria, error) {
	q := r.db.WithContext(ctx).Model(&model.HistorialAuditoria{})
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	var rows []model.HistorialAuditoria
	err := q.Order(ordenAuditoria).Offset(skip).Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *auditoriaRepo) List(ctx context.Context, skip, limit int) ([]model.HistorialAuditoria, error) {
	return r.list(ctx, skip, limit)
}

func (r *auditoriaRepo) ListByGrupo(ctx context.Context, grupo string, skip, limit int) ([]model.HistorialAuditoria, error) {
	return r.list(ctx, skip, limit, "grupo_responsable = ?", grupo)
}

func (r *auditoriaRepo) ListByTabla(ctx context.Context, tabla string, skip, limit int) ([]model.HistorialAuditoria, error) {
	return r.list(ctx, skip, limit, "tabla_afectada = ?", tabla)
}

func (r *auditoriaRepo) ListByOperacion(ctx context.Context, operacion string, skip, limit int) ([]model.HistorialAuditoria, error) {
	return r.list(ctx, skip, limit, "operacion = ?", operacion)
}

func (r *auditoriaRepo) ListByRegistro(ctx context.Context, tabla string, idRegistro uint) ([]model.HistorialAuditoria, error) {
	var rows []model.HistorialAuditoria
	err := r.db.WithContext(ctx).
		Where("tabla_afectada = ? AND id_registro = ?", tabla, idRegistro).
		Order(ordenAuditoria).
		Find(&rows).Error
	return rows, err
}
