package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=3,max=100"`
	Email     string  `json:"email"     validate:"required,email,max=150"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=20"`
	Direccion *string `json:"direccion" validate:"omitempty,max=500"`
	Ciudad    *string `json:"ciudad"    validate:"omitempty,max=100"`
	Documento *string `json:"documento" validate:"omitempty,max=20"`
}

// ActualizarClienteRequest carries a sparse update; only non-nil fields
// are applied.
type ActualizarClienteRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=3,max=100"`
	Email     *string `json:"email"     validate:"omitempty,email,max=150"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=20"`
	Direccion *string `json:"direccion" validate:"omitempty,max=500"`
	Ciudad    *string `json:"ciudad"    validate:"omitempty,max=100"`
	Documento *string `json:"documento" validate:"omitempty,max=20"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ClienteFilter struct {
	Ciudad           string `form:"ciudad"`
	IncluirInactivos bool   `form:"incluir_inactivos"`
	Skip             int    `form:"skip,default=0"`
	Limit            int    `form:"limit,default=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID                      uint      `json:"id"`
	Nombre                  string    `json:"nombre"`
	Email                   string    `json:"email"`
	Telefono                *string   `json:"telefono"`
	Direccion               *string   `json:"direccion"`
	Ciudad                  *string   `json:"ciudad"`
	Documento               *string   `json:"documento"`
	Activo                  bool      `json:"activo"`
	FechaCreacion           time.Time `json:"fecha_creacion"`
	FechaActualizacion      time.Time `json:"fecha_actualizacion"`
	GrupoCreador            string    `json:"grupo_creador"`
	GrupoUltimaModificacion *string   `json:"grupo_ultima_modificacion"`
}
