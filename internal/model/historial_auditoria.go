package model

import "time"

// HistorialAuditoria is one immutable entry of the audit trail. Rows are
// only ever inserted, in the same transaction as the mutation they record.
// DatosAnteriores/DatosNuevos hold JSON text; NULL means "no state on this
// side" (a CREATE has no previous state).
type HistorialAuditoria struct {
	ID               uint    `gorm:"primaryKey"`
	TablaAfectada    string  `gorm:"size:50;not null;index"`
	IDRegistro       uint    `gorm:"not null;index:idx_auditoria_registro"`
	Operacion        string  `gorm:"size:10;not null;index"`
	GrupoResponsable string  `gorm:"size:50;not null;index"`
	DatosAnteriores  *string `gorm:"type:text"`
	DatosNuevos      *string `gorm:"type:text"`

	FechaOperacion time.Time `gorm:"not null;autoCreateTime;index"`
	Observaciones  *string   `gorm:"size:500"`
}

func (HistorialAuditoria) TableName() string { return "historial_auditoria" }
