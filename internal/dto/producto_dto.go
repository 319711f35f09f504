package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"      validate:"required,min=3,max=200"`
	Descripcion *string         `json:"descripcion" validate:"omitempty,max=2000"`
	Precio      decimal.Decimal `json:"precio"      validate:"required"`
	Stock       int             `json:"stock"       validate:"min=0"`
	Categoria   *string         `json:"categoria"   validate:"omitempty,max=100"`
	ImagenURL   *string         `json:"imagen_url"  validate:"omitempty,max=500"`
}

// ActualizarProductoRequest carries a sparse update: only non-nil fields
// are applied, the rest keep their stored value.
type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"      validate:"omitempty,min=3,max=200"`
	Descripcion *string          `json:"descripcion" validate:"omitempty,max=2000"`
	Precio      *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock"       validate:"omitempty,min=0"`
	Categoria   *string          `json:"categoria"   validate:"omitempty,max=100"`
	ImagenURL   *string          `json:"imagen_url"  validate:"omitempty,max=500"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Categoria        string `form:"categoria"`
	IncluirInactivos bool   `form:"incluir_inactivos"`
	Skip             int    `form:"skip,default=0"`
	Limit            int    `form:"limit,default=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID                      uint            `json:"id"`
	Nombre                  string          `json:"nombre"`
	Descripcion             *string         `json:"descripcion"`
	Precio                  decimal.Decimal `json:"precio"`
	Stock                   int             `json:"stock"`
	Categoria               *string         `json:"categoria"`
	ImagenURL               *string         `json:"imagen_url"`
	Activo                  bool            `json:"activo"`
	FechaCreacion           time.Time       `json:"fecha_creacion"`
	FechaActualizacion      time.Time       `json:"fecha_actualizacion"`
	GrupoCreador            string          `json:"grupo_creador"`
	GrupoUltimaModificacion *string         `json:"grupo_ultima_modificacion"`
}

// MensajeResponse confirms a soft delete.
type MensajeResponse struct {
	Mensaje string `json:"mensaje"`
	Detalle string `json:"detalle"`
}
